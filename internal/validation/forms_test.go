package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "alice_01", false},
		{"Too short", "ab", true},
		{"Too long", strings.Repeat("a", 33), true},
		{"Spaces", "a b c", true},
		{"Special characters", "alice!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ann@x.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("a@b"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidatePostFields(t *testing.T) {
	assert.NoError(t, ValidatePostFields("Title", "Content"))
	assert.Error(t, ValidatePostFields("", "Content"))
	assert.Error(t, ValidatePostFields("Title", ""))
	assert.Error(t, ValidatePostFields("   ", "Content"))
}
