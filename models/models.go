package models

import (
	"time"

	"github.com/VitaminP8/gqltour/graph/model"
)

// User - строка таблицы users. ID назначаем сами (max+1), а не через автоинкремент.
type User struct {
	ID           uint `gorm:"primary_key;auto_increment:false"`
	Name         *string
	Email        string `gorm:"index"`
	Age          *int
	Weight       float64
	Height       float64
	PasswordHash string
	FriendIDs    IDList `gorm:"column:friend_ids;type:text"`
}

type Post struct {
	ID           uint `gorm:"primary_key;auto_increment:false"`
	AuthorID     uint `gorm:"index"`
	Title        string
	Body         string
	LikeGiverIDs IDList `gorm:"column:like_giver_ids;type:text"`
	CreatedAt    time.Time
}

func (u *User) ToModel() *model.User {
	return &model.User{
		ID:           int(u.ID),
		Name:         u.Name,
		Email:        u.Email,
		Age:          u.Age,
		Weight:       u.Weight,
		Height:       u.Height,
		PasswordHash: u.PasswordHash,
		FriendIDs:    append([]int{}, u.FriendIDs...),
	}
}

func UserFromModel(u *model.User) *User {
	return &User{
		ID:           uint(u.ID),
		Name:         u.Name,
		Email:        u.Email,
		Age:          u.Age,
		Weight:       u.Weight,
		Height:       u.Height,
		PasswordHash: u.PasswordHash,
		FriendIDs:    IDList(append([]int{}, u.FriendIDs...)),
	}
}

func (p *Post) ToModel() *model.Post {
	return &model.Post{
		ID:           int(p.ID),
		AuthorID:     int(p.AuthorID),
		Title:        p.Title,
		Body:         p.Body,
		LikeGiverIDs: append([]int{}, p.LikeGiverIDs...),
		CreatedAt:    p.CreatedAt.UTC(),
	}
}

func PostFromModel(p *model.Post) *Post {
	return &Post{
		ID:           uint(p.ID),
		AuthorID:     uint(p.AuthorID),
		Title:        p.Title,
		Body:         p.Body,
		LikeGiverIDs: IDList(append([]int{}, p.LikeGiverIDs...)),
		CreatedAt:    p.CreatedAt,
	}
}
