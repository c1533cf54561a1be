package cubetimer

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cubetimer package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("cubetimer: invalid move notation")
	ErrInvalidMove     = errors.New("cubetimer: invalid packed move")

	// Database errors
	ErrIDGeneratorRequired = errors.New("cubetimer: id generator not set")
	ErrDatabaseNotOpen     = errors.New("cubetimer: database not open")
)

// CorruptError reports a record that failed verification during decoding.
// Kind names the record kind ("solve", "solve list", "session",
// "session list").
type CorruptError struct {
	Kind   string
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("cubetimer: corrupt %s record: %s", e.Kind, e.Reason)
}

// IsCorrupt reports whether err is a record corruption error.
func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}
