package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix string
	}{
		{"simple name", "TT-02", "tt-02-"},
		{"spaces collapse", "Lunch   Box", "lunch-box-"},
		{"special characters", "Wild Willy 2 (WR-02)!", "wild-willy-2-wr-02-"},
		{"leading and trailing junk", "--Hornet--", "hornet-"},
		{"empty name falls back", "", "model-"},
		{"only symbols falls back", "!!!", "model-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug := GenerateSlug(tt.input)
			assert.True(t, strings.HasPrefix(slug, tt.prefix),
				"slug %q should start with %q", slug, tt.prefix)

			suffix := strings.TrimPrefix(slug, tt.prefix)
			assert.Len(t, suffix, 6)
			for _, r := range suffix {
				assert.Contains(t, "abcdefghijklmnopqrstuvwxyz0123456789", string(r))
			}
		})
	}
}

func TestGenerateSlug_TruncatesLongNames(t *testing.T) {
	slug := GenerateSlug(strings.Repeat("very long model name ", 10))

	// 40 characters of base plus hyphen and suffix at most
	assert.LessOrEqual(t, len(slug), 47)
	assert.False(t, strings.Contains(slug, "--"))
}

func TestGenerateSlug_CollisionResistance(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		slug := GenerateSlug("TT-02")
		require.False(t, seen[slug], "duplicate slug %q", slug)
		seen[slug] = true
	}
}

func TestGenerateUuid(t *testing.T) {
	first := GenerateUuid()
	second := GenerateUuid()

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)
}
