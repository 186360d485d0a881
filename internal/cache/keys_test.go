package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "session key",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "3f1c0d2e-9a7b-4c1d-8e2f-0a1b2c3d4e5f",
			expectedKey: "tanukiquiz:quiz:session:3f1c0d2e-9a7b-4c1d-8e2f-0a1b2c3d4e5f",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "abc",
			paramsKey:   []string{},
			expectedKey: "tanukiquiz:quiz:session:abc",
		},
		{
			name:        "with one paramsKey",
			serviceName: "assets",
			objectType:  "similar",
			identifier:  "tanuki.png",
			paramsKey:   []string{"d8"},
			expectedKey: "tanukiquiz:assets:similar:tanuki.png:d8",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "assets",
			objectType:  "search",
			identifier:  "tanuki",
			paramsKey:   []string{"page1", "size20"},
			expectedKey: "tanukiquiz:assets:search:tanuki:page1_size20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}
