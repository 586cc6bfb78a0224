package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	logger := Logger()
	assert.NotNil(t, logger)

	// Should be safe to use without InitLogger
	logger.Info("test message")
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"regular address", "jane@example.com", "j***@example.com"},
		{"surrounding whitespace", "  bob@site.org ", "b***@site.org"},
		{"missing at sign", "not-an-email", "***"},
		{"empty local part", "@example.com", "***"},
		{"empty domain", "jane@", "***"},
		{"empty", "", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskEmail(tt.email))
		})
	}
}

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"us national format", "(602) 555-0143", "+1 ***43"},
		{"international format", "+44 20 7946 0958", "+44 ***58"},
		{"empty", "", ""},
		{"single digit", "5", "***"},
		{"no digits", "call me", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskPhone(tt.phone))
		})
	}
}

func TestMaskPhone_DoesNotLeakNumber(t *testing.T) {
	masked := MaskPhone("602-555-0143")
	assert.NotContains(t, masked, "555")
	assert.NotContains(t, masked, "602")
}
