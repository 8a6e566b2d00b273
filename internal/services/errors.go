package services

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrForbidden           = errors.New("forbidden")
	ErrDuplicateAssignment = errors.New("worker is already assigned to this project")
)
