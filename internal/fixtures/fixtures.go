// Package fixtures содержит стартовые данные, с которыми поднимается сервер.
package fixtures

import (
	"time"

	"github.com/VitaminP8/gqltour/graph/model"
)

// DefaultPassword - пароль всех стартовых пользователей (хэшируется при сидировании)
const DefaultPassword = "123456"

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// Users каждый раз возвращает новые копии, поэтому тесты не делят состояние
func Users() []*model.User {
	return []*model.User{
		{
			ID:        1,
			Name:      strptr("Fong"),
			Email:     "fong@test.com",
			Age:       intptr(23),
			Weight:    60,
			Height:    170,
			FriendIDs: []int{2, 3},
		},
		{
			ID:        2,
			Name:      strptr("Kevin"),
			Email:     "kevin@test.com",
			Age:       intptr(40),
			Weight:    70,
			Height:    180,
			FriendIDs: []int{1},
		},
		{
			ID:        3,
			Name:      strptr("Mary"),
			Email:     "mary@test.com",
			Age:       intptr(18),
			Weight:    48,
			Height:    160,
			FriendIDs: []int{2},
		},
	}
}

func Posts() []*model.Post {
	return []*model.Post{
		{
			ID:           1,
			AuthorID:     1,
			Title:        "Hello World",
			Body:         "This is my first post",
			LikeGiverIDs: []int{1, 2},
			CreatedAt:    time.Date(2018, 10, 22, 1, 40, 14, 941000000, time.UTC),
		},
		{
			ID:           2,
			AuthorID:     2,
			Title:        "Nice Day",
			Body:         "Hello My Friend!",
			LikeGiverIDs: []int{1},
			CreatedAt:    time.Date(2018, 10, 24, 1, 40, 14, 941000000, time.UTC),
		},
	}
}

// WithPasswords проставляет хэш пароля всем пользователям без него
func WithPasswords(users []*model.User, hash func(string) (string, error)) ([]*model.User, error) {
	for _, u := range users {
		if u.PasswordHash != "" {
			continue
		}
		h, err := hash(DefaultPassword)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = h
	}
	return users, nil
}
