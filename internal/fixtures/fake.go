package fixtures

import (
	"fmt"
	"time"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/brianvoe/gofakeit/v6"
)

// Faker генерирует дополнительных пользователей и посты для локальной разработки
type Faker struct {
	f *gofakeit.Faker
}

func NewFaker(seed int64) *Faker {
	return &Faker{f: gofakeit.New(seed)}
}

// Users создает n пользователей с id, начиная с firstID. Друзья выбираются среди уже созданных.
func (fk *Faker) Users(firstID, n int) []*model.User {
	users := make([]*model.User, 0, n)
	for i := 0; i < n; i++ {
		id := firstID + i
		name := fk.f.FirstName()
		age := fk.f.Number(16, 80)

		u := &model.User{
			ID:     id,
			Name:   &name,
			Email:  fmt.Sprintf("%s.%d@%s", fk.f.Username(), id, fk.f.DomainName()),
			Age:    &age,
			Weight: fk.f.Float64Range(45, 110),
			Height: fk.f.Float64Range(150, 200),
		}
		if id > firstID {
			u.FriendIDs = []int{fk.f.Number(firstID, id-1)}
		}

		users = append(users, u)
	}
	return users
}

// Posts создает по perUser постов для каждого автора
func (fk *Faker) Posts(firstID int, authors []*model.User, perUser int) []*model.Post {
	posts := make([]*model.Post, 0, len(authors)*perUser)
	id := firstID
	for _, author := range authors {
		for i := 0; i < perUser; i++ {
			posts = append(posts, &model.Post{
				ID:           id,
				AuthorID:     author.ID,
				Title:        fk.f.Sentence(4),
				Body:         fk.f.Paragraph(1, 3, 8, " "),
				LikeGiverIDs: []int{},
				CreatedAt:    fk.f.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).UTC(),
			})
			id++
		}
	}
	return posts
}
