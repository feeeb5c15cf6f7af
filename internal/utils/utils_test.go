package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIDLength(t *testing.T) {
	id := GenerateID()
	assert.Len(t, id, 43)
	assert.NotContains(t, id, "=")
}

func TestGenerateShortIDLength(t *testing.T) {
	id := GenerateShortID()
	assert.Len(t, id, 22)
	assert.NotContains(t, id, "=")
}

func TestGenerateIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		assert.False(t, seen[id], "duplicate ID generated: %s", id)
		seen[id] = true
	}
}

func TestGeneratePrefixedID(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"user", GenerateUserID, "user-"},
		{"session", GenerateSessionID, "session-"},
		{"file", GenerateFileID, "file-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()
			assert.True(t, strings.HasPrefix(id, tt.prefix))
			assert.Len(t, id, len(tt.prefix)+22)
		})
	}
}
