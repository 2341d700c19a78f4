//go:build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"info", false},
		{"DEBUG", false}, // case-insensitive
		{"trace", false},
		{"panic", false},
		{"verbose", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			LogLevel = tt.level
			err := ValidateLogLevel()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLogLevelLowercasesValue(t *testing.T) {
	LogLevel = "WARN"
	assert.NoError(t, ValidateLogLevel())
	assert.Equal(t, "warn", LogLevel)
}

func TestValidateDelimiter(t *testing.T) {
	assert.NoError(t, ValidateDelimiter(","))
	assert.NoError(t, ValidateDelimiter(";"))
	assert.NoError(t, ValidateDelimiter("→")) // single multi-byte rune
	assert.Error(t, ValidateDelimiter(""))
	assert.Error(t, ValidateDelimiter(",,"))
}
