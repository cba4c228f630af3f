// Package repository defines error types shared by the repositories so
// that handlers can tell failure scenarios apart.
package repository

import "errors"

// ErrInvalidDocument is returned when a document cannot be stored as
// given, for example one without an id.  The editor reports it as a
// failed save.
var ErrInvalidDocument = errors.New("invalid layout document")
