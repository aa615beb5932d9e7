package noteid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{GenerateID(), true},
		{"0", false},
		{"not-a-uuid", false},
		{"urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"6BA7B810-9DAD-11D1-80B4-00C04FD430C8", false},
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidID(tt.id))
		})
	}
}

func TestGenerateUniqueID(t *testing.T) {
	t.Run("uniqueness", func(t *testing.T) {
		assert.NotEqual(t, GenerateID(), GenerateID())
	})

	t.Run("concurrent uniqueness", func(t *testing.T) {
		var wg sync.WaitGroup
		ids := make(map[string]struct{})
		mu := sync.Mutex{}

		numIDs := 1000

		wg.Add(numIDs)
		for i := 0; i < numIDs; i++ {
			go func() {
				defer wg.Done()
				id := GenerateID()
				mu.Lock()
				defer mu.Unlock()
				ids[id] = struct{}{}
			}()
		}

		wg.Wait()

		assert.Equal(t, numIDs, len(ids))
	})
}

func TestMockGenerator(t *testing.T) {
	MockGenerator("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	defer ResetGenerator()

	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", GenerateID())
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", GenerateID())
}
