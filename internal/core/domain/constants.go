package domain

import "errors"

var (
	// ErrFatal marks transport failures that cannot be retried, such as
	// rejected credentials. The poll loop stops when it sees one.
	ErrFatal = errors.New("fatal transport error")
)
