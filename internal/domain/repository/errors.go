package repository

import "errors"

// ErrDuplicateKey is returned by Create and Update when a unique field,
// such as companyName, already belongs to another union.
var ErrDuplicateKey = errors.New("duplicate key")
