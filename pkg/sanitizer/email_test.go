package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusconnect/clientkit/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "alice@x.edu", "alice@x.edu"},
		{"uppercase folded", "Alice@X.EDU", "alice@x.edu"},
		{"surrounding whitespace", "  bob@campus.edu \n", "bob@campus.edu"},
		{"consecutive dots consolidated", "a..b..c@x.edu", "a.b.c@x.edu"},
		{"leading and trailing dots stripped", ".alice.@x.edu", "alice@x.edu"},
		{"invalid format preserved", "not-an-email", "not-an-email"},
		{"double at preserved", "a@b@c", "a@b@c"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.NormalizeEmail(tt.input))
		})
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Alice", sanitizer.Trim("  Alice\t"))
	assert.Equal(t, "", sanitizer.Trim("   "))
}
