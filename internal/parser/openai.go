package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultConfidenceThreshold is how sure the model must be before a parsed
// activity is folded into an existing category.
const DefaultConfidenceThreshold = 0.7

// OpenAIParser extracts activities, durations and dates from free text with
// a JSON-mode chat completion.
type OpenAIParser struct {
	client              *openai.Client
	model               string
	confidenceThreshold float64
	now                 func() time.Time
}

func NewOpenAIParser(apiKey, model string, confidenceThreshold float64) *OpenAIParser {
	if model == "" {
		model = openai.GPT4oMini
	}
	if confidenceThreshold <= 0 {
		confidenceThreshold = DefaultConfidenceThreshold
	}
	return &OpenAIParser{
		client:              openai.NewClient(apiKey),
		model:               model,
		confidenceThreshold: confidenceThreshold,
		now:                 time.Now,
	}
}

type rawActivity struct {
	Activity        string  `json:"activity"`
	Duration        float64 `json:"duration"`
	Confidence      float64 `json:"confidence"`
	MatchedCategory string  `json:"matched_category"`
	Date            string  `json:"date"`
}

type rawResponse struct {
	Activities []rawActivity `json:"activities"`
}

func (p *OpenAIParser) ParseMessage(ctx context.Context, message string, existing []string) ([]Activity, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt(existing)},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("parse message: model returned no choices")
	}

	return p.decode(resp.Choices[0].Message.Content)
}

// decode is split from the API call so the response handling stays testable
// without a network.
func (p *OpenAIParser) decode(content string) ([]Activity, error) {
	var raw rawResponse
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}

	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]Activity, 0, len(raw.Activities))
	for _, a := range raw.Activities {
		name := strings.TrimSpace(a.Activity)
		if a.MatchedCategory != "" && a.Confidence > p.confidenceThreshold {
			name = strings.TrimSpace(a.MatchedCategory)
		}
		if name == "" {
			continue
		}

		day := today
		if a.Date != "" {
			if parsed, err := time.Parse("2006-01-02", a.Date); err == nil {
				day = parsed
			}
		}

		out = append(out, Activity{
			Category:      name,
			DurationHours: a.Duration,
			Date:          day,
		})
	}
	return out, nil
}

func (p *OpenAIParser) systemPrompt(existing []string) string {
	return fmt.Sprintf(`Extract activities and their durations from the message. Multiple activities may be mentioned.
Today is %s.
Existing activity categories are: %s

If a described activity closely matches an existing category, use that category.
Always convert duration to hours (e.g., 30 minutes = 0.5 hours). If there is no concrete duration number in the input, estimate.
If the message names a day ("yesterday", "on Monday"), resolve it to an ISO date; otherwise leave the date empty and today is assumed.

Example:
Input: "Today I biked for an hour and read for 30 minutes"
Response: {
    "activities": [
        {"activity": "Biking", "duration": 1.0, "confidence": 0.9, "matched_category": "Biking", "date": ""},
        {"activity": "Reading", "duration": 0.5, "confidence": 1.0, "matched_category": "Reading", "date": ""}
    ]
}

Return JSON with an "activities" array containing objects with:
- activity: the activity name (use matched_category if confidence > %v)
- duration: duration in hours (convert minutes to decimal hours)
- confidence: how confident (0-1) this matches an existing category
- matched_category: the existing category it matches, if any
- date: the ISO date (YYYY-MM-DD) the activity happened on, or "" for today`,
		p.now().Format("2006-01-02"), strings.Join(existing, ", "), p.confidenceThreshold)
}
