package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *OpenAIParser {
	return &OpenAIParser{
		confidenceThreshold: 0.7,
		now: func() time.Time {
			return time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC)
		},
	}
}

func TestDecode_MatchedCategoryWins(t *testing.T) {
	p := newTestParser()

	activities, err := p.decode(`{"activities": [
		{"activity": "Calisthenics", "duration": 1.0, "confidence": 0.9, "matched_category": "Working out", "date": ""}
	]}`)

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Working out", activities[0].Category)
	assert.Equal(t, 1.0, activities[0].DurationHours)
}

func TestDecode_LowConfidenceKeepsOwnName(t *testing.T) {
	p := newTestParser()

	activities, err := p.decode(`{"activities": [
		{"activity": "Piano", "duration": 0.5, "confidence": 0.2, "matched_category": "Working out", "date": ""}
	]}`)

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Piano", activities[0].Category)
}

func TestDecode_DateDefaultsToToday(t *testing.T) {
	p := newTestParser()

	activities, err := p.decode(`{"activities": [
		{"activity": "Running", "duration": 0.5, "confidence": 1.0, "matched_category": "Running", "date": ""},
		{"activity": "Reading", "duration": 1.0, "confidence": 1.0, "matched_category": "Reading", "date": "2024-01-14"}
	]}`)

	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), activities[0].Date)
	assert.Equal(t, time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC), activities[1].Date)
}

func TestDecode_SkipsNamelessActivities(t *testing.T) {
	p := newTestParser()

	activities, err := p.decode(`{"activities": [
		{"activity": "  ", "duration": 0.5, "confidence": 0.1, "matched_category": "", "date": ""},
		{"activity": "Yoga", "duration": 0.75, "confidence": 1.0, "matched_category": "Yoga", "date": ""}
	]}`)

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Yoga", activities[0].Category)
}

func TestDecode_RejectsMalformedJSON(t *testing.T) {
	p := newTestParser()

	_, err := p.decode(`sure! here are your activities`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode model response")
}

func TestDecode_EmptyActivities(t *testing.T) {
	p := newTestParser()

	activities, err := p.decode(`{"activities": []}`)
	require.NoError(t, err)
	assert.Empty(t, activities)
}
