package storage

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidData     = errors.New("invalid data")
	ErrInvalidName     = errors.New("invalid file name")
	ErrStorageInit     = errors.New("storage initialization failed")
	ErrFileOperation   = errors.New("file operation failed")
)
