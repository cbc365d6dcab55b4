package news

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestAssembleMessage(t *testing.T) {
	tests := []struct {
		name      string
		bodyRunes int
		truncated bool
	}{
		{"short", 200, false},
		{"exactly at limit", MaxMessageRunes - utf8.RuneCountInString(Header), false},
		{"one over", MaxMessageRunes - utf8.RuneCountInString(Header) + 1, true},
		{"far over", 5000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Repeat("å", tt.bodyRunes)
			got := AssembleMessage(Header, body)

			assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxMessageRunes)
			assert.True(t, strings.HasPrefix(got, Header))
			if tt.truncated {
				assert.True(t, strings.HasSuffix(got, TruncationMarker))
				assert.Equal(t, TruncateAtRunes+utf8.RuneCountInString(TruncationMarker), utf8.RuneCountInString(got))
			} else {
				assert.Equal(t, Header+body, got)
			}
		})
	}
}
