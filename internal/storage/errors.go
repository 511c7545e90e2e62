package storage

import "errors"

// ErrNotFound возвращают все реализации хранилищ, когда записи с таким id нет
var ErrNotFound = errors.New("not found")
