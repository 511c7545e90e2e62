package model

import "time"

// User хранит рост в сантиметрах и вес в килограммах, остальные единицы вычисляются при запросе.
type User struct {
	ID           int
	Name         *string
	Email        string
	Age          *int
	Weight       float64
	Height       float64
	PasswordHash string
	FriendIDs    []int
}

type Post struct {
	ID           int
	AuthorID     int
	Title        string
	Body         string
	LikeGiverIDs []int
	CreatedAt    time.Time
}

// UserPatch - частичное обновление пользователя, nil поля не трогаем
type UserPatch struct {
	Name *string
	Age  *int
}

type PostPatch struct {
	Title *string
	Body  *string
}

// Clone возвращает копию, чтобы хранилище не отдавало наружу свои указатели
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Name != nil {
		name := *u.Name
		c.Name = &name
	}
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	c.FriendIDs = append([]int{}, u.FriendIDs...)
	return &c
}

func (u *User) Apply(patch UserPatch) {
	if patch.Name != nil {
		name := *patch.Name
		u.Name = &name
	}
	if patch.Age != nil {
		age := *patch.Age
		u.Age = &age
	}
}

func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.LikeGiverIDs = append([]int{}, p.LikeGiverIDs...)
	return &c
}

func (p *Post) Apply(patch PostPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Body != nil {
		p.Body = *patch.Body
	}
}

func ContainsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ToggleID убирает id из списка, если он там есть, иначе добавляет в конец
func ToggleID(ids []int, id int) []int {
	if !ContainsID(ids, id) {
		return append(append([]int{}, ids...), id)
	}

	result := make([]int, 0, len(ids)-1)
	for _, v := range ids {
		if v != id {
			result = append(result, v)
		}
	}
	return result
}

// NextID - max(ids)+1, для пустой коллекции 1
func NextID(ids []int) int {
	maxID := 0
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
