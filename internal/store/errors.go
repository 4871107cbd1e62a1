package store

import "errors"

var (
	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidChannel is returned when a channel is missing its identity
	// (external id or source) and cannot be keyed for upsert.
	ErrInvalidChannel = errors.New("channel requires external id and source")
)
