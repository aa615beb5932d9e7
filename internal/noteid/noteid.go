package noteid

import (
	"sync"

	"github.com/google/uuid"
)

var (
	mu        sync.RWMutex
	generator = DefaultGenerator
)

// ValidID checks if the given id is a canonical UUID string.
func ValidID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}

// GenerateID generates a new note ID.
func GenerateID() string {
	mu.RLock()
	defer mu.RUnlock()
	return generator()
}

func DefaultGenerator() string {
	return uuid.NewString()
}

func ResetGenerator() {
	mu.Lock()
	defer mu.Unlock()
	generator = DefaultGenerator
}

func MockGenerator(mockValue string) {
	mu.Lock()
	defer mu.Unlock()
	generator = func() string {
		return mockValue
	}
}
