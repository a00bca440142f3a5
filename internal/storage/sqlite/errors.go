package sqlite

import "errors"

var (
	// ErrInvalidRecord indicates a command record missing its id, kind or target.
	ErrInvalidRecord = errors.New("invalid command record")
	// ErrClosed indicates use of a journal after Close.
	ErrClosed = errors.New("command journal closed")
)

var validKinds = map[string]bool{
	"sync":  true,
	"retry": true,
}

var validPhases = map[string]bool{
	"succeeded": true,
	"failed":    true,
}
