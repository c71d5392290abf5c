// Package motivator generates short motivational messages for habits
// through the Gemini API.
package motivator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/logger"
)

// promptTemplate is the fixed instruction sent to the model. The 50
// character limit and the tone are communicated to the model, not
// enforced on the response.
const promptTemplate = `
You are HabitHero AI coach.
Habit: %s
Progress: %s
Description: %s

Generate a short motivational message <= 50 characters.
Keep it positive, celebratory, and push user to continue.
Output only the text.`

// Gemini is the Motivator backed by the Gemini API.
type Gemini struct {
	logger *logger.Logger
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini motivator.
func NewGemini(ctx context.Context, logger *logger.Logger, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{logger: logger, client: client, model: model}, nil
}

// BuildPrompt renders the fixed template with the request fields.
func BuildPrompt(req *models.MotivationRequest) string {
	return fmt.Sprintf(promptTemplate, req.Habit, req.Progress, req.Description)
}

// Motivate requests one completion and returns the trimmed text. No
// retry is attempted; the caller surfaces the failure.
func (g *Gemini) Motivate(ctx context.Context, req *models.MotivationRequest) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(req)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate motivation: %w", err)
	}

	message := strings.TrimSpace(resp.Text())
	if message == "" {
		return "", fmt.Errorf("empty response from model")
	}

	g.logger.Debug("Motivation generated ", "habit ", req.Habit, " message ", message)
	return message, nil
}
