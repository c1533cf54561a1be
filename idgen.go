package cubetimer

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers unique across the lifetime of the
// database. The History aggregate requires one before opening.
type IDGenerator interface {
	GenerateID() string
}

// Clock reports wall time in seconds since the Unix epoch. It is injected
// so tests can pin timestamps.
type Clock interface {
	Now() int64
}

type uuidGenerator struct{}

func (uuidGenerator) GenerateID() string {
	return uuid.New().String()
}

// NewUUIDGenerator returns an IDGenerator backed by random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

type systemClock struct{}

func (systemClock) Now() int64 {
	return time.Now().Unix()
}

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}
