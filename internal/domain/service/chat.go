package service

import (
	"context"

	"DashPull/internal/domain/models"
)

// Prompt is everything a text-generation backend needs for one answer.
type Prompt struct {
	System  string
	Context string
	History []models.Turn
	Message string
}

// ChatProvider answers a prompt with generated text.
type ChatProvider interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Name() string
}
