package motivator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/habithero/habitherod/internal/models"
)

func TestBuildPrompt_EmbedsAllFields(t *testing.T) {
	prompt := BuildPrompt(&models.MotivationRequest{
		Habit:       "Code for 30 minutes",
		Progress:    "4/10 days",
		Description: "Learn daily",
	})

	assert.Contains(t, prompt, "Habit: Code for 30 minutes")
	assert.Contains(t, prompt, "Progress: 4/10 days")
	assert.Contains(t, prompt, "Description: Learn daily")
	assert.Contains(t, prompt, "<= 50 characters")
	assert.True(t, strings.Contains(prompt, "Output only the text."))
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(nil, nil, "", "gemini-1.5-flash-latest")
	assert.Error(t, err)
}
