package handlers

import (
	"errors"
	"math"
	"time"
)

// rawBody is a partially-parsed JSON payload for PATCH requests. Only keys
// present in the body are applied, so absent fields keep their stored
// values, and an explicit null clears an optional field.
type rawBody map[string]any

var errBadFieldType = errors.New("invalid field type")

func (b rawBody) has(key string) bool {
	_, ok := b[key]
	return ok
}

func (b rawBody) isNull(key string) bool {
	v, ok := b[key]
	return ok && v == nil
}

func (b rawBody) str(key string) (string, error) {
	s, ok := b[key].(string)
	if !ok {
		return "", errBadFieldType
	}
	return s, nil
}

func (b rawBody) intVal(key string) (int, error) {
	// encoding/json decodes every JSON number into float64; a fractional
	// value is not a valid integer field, not something to truncate
	f, ok := b[key].(float64)
	if !ok || f != math.Trunc(f) {
		return 0, errBadFieldType
	}
	return int(f), nil
}

func (b rawBody) uintVal(key string) (uint64, error) {
	f, ok := b[key].(float64)
	if !ok || f < 0 || f != math.Trunc(f) {
		return 0, errBadFieldType
	}
	return uint64(f), nil
}

func (b rawBody) boolVal(key string) (bool, error) {
	v, ok := b[key].(bool)
	if !ok {
		return false, errBadFieldType
	}
	return v, nil
}

func (b rawBody) timeVal(key string) (time.Time, error) {
	s, ok := b[key].(string)
	if !ok {
		return time.Time{}, errBadFieldType
	}
	return time.Parse(time.RFC3339, s)
}

func (b rawBody) dateVal(key string) (time.Time, error) {
	s, ok := b[key].(string)
	if !ok {
		return time.Time{}, errBadFieldType
	}
	return parseDate(s)
}

// parseDate accepts plain dates and full RFC 3339 instants.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
