package core

import "errors"

var (
	ErrNotFound     = errors.New("record does not exist")
	ErrNilValue     = errors.New("required value is nil")
	ErrConflict     = errors.New("record conflicts with an existing record")
	ErrFieldMapping = errors.New("no matching entity field")
)
