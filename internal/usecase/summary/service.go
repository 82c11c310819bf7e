package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

// Generator is a text generation backend returning JSON text
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	_ Generator = (*ai.GeminiClient)(nil)
	_ Generator = (*ai.GroqClient)(nil)
)

// Agenda is a generated follow-up meeting agenda
type Agenda struct {
	MeetingAgenda map[string]interface{} `json:"meeting_agenda"`
	HTMLAgenda    string                 `json:"html_agenda"`
}

// Service defines AI summarization operations
type Service interface {
	Summarize(ctx context.Context, m mom.MeetingMinutes) (map[string]interface{}, error)
	Agenda(ctx context.Context, m mom.MeetingMinutes) (*Agenda, error)
}

type summaryService struct {
	gen    Generator
	logger *zap.Logger
}

// NewService creates a summary service over the given generator
func NewService(gen Generator, logger *zap.Logger) Service {
	return &summaryService{gen: gen, logger: logger}
}

func (s *summaryService) generate(ctx context.Context, tmpl string, m mom.MeetingMinutes) (string, error) {
	if m.IsEmpty() {
		return "", usecaseErrors.ErrMissingMinutes
	}
	prompt, err := buildPrompt(tmpl, m)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	out, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("generation failed", zap.String("provider", s.gen.Name()), zap.Error(err))
		}
		return "", fmt.Errorf("%w: %w", usecaseErrors.ErrSummaryFailed, err)
	}
	return out, nil
}

// Summarize produces a structured summary of the minutes
func (s *summaryService) Summarize(ctx context.Context, m mom.MeetingMinutes) (map[string]interface{}, error) {
	out, err := s.generate(ctx, summaryPrompt, m)
	if err != nil {
		return nil, err
	}
	result, err := ai.DecodeJSON(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrInvalidModelOutput, err)
	}
	return result, nil
}

// Agenda produces a follow-up agenda with an HTML rendition
func (s *summaryService) Agenda(ctx context.Context, m mom.MeetingMinutes) (*Agenda, error) {
	out, err := s.generate(ctx, agendaPrompt, m)
	if err != nil {
		return nil, err
	}
	var agenda Agenda
	if err := json.Unmarshal([]byte(ai.ExtractJSON(out)), &agenda); err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrInvalidModelOutput, err)
	}
	if strings.TrimSpace(agenda.HTMLAgenda) == "" {
		return nil, fmt.Errorf("%w: html_agenda is empty", usecaseErrors.ErrInvalidModelOutput)
	}
	return &agenda, nil
}
