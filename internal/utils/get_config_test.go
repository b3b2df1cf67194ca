package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigGeminiModelDefault(t *testing.T) {
	// With no config file and no env, the model name still resolves so the
	// gateway builds a valid endpoint URL.
	assert.Equal(t, "gemini-1.5-flash", GetConfig("GEMINI_MODEL"))
}

func TestGetConfigUnknownKey(t *testing.T) {
	assert.Empty(t, GetConfig("NOT_A_KEY"))
}
