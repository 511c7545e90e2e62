package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// IDList хранится в одной текстовой колонке как "1,2,3".
// Так схема одинаково работает и в PostgreSQL, и в sqlite для тестов.
type IDList []int

func (l IDList) Value() (driver.Value, error) {
	parts := make([]string, 0, len(l))
	for _, id := range l {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ","), nil
}

func (l *IDList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = IDList{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into IDList", src)
	}

	result := IDList{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid id %q in list: %w", part, err)
		}
		result = append(result, id)
	}
	*l = result
	return nil
}
