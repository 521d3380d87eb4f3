package ohmage

import "github.com/google/uuid"

// Survey represents a completed survey ready for upload. It is a plain map
// so the server's evolving schema passes through untouched; NewSurvey fills
// in the fields the upload endpoint requires.
type Survey map[string]any

// NewSurvey constructs a survey response taken at launchTimeMillis (epoch
// milliseconds) in the given timezone. A unique survey_key is generated
// automatically; use WithKey to supply one instead, e.g. when re-uploading.
func NewSurvey(surveyID string, launchTimeMillis int64, timezone string, responses []PromptResponse) Survey {
	return Survey{
		"survey_key":      uuid.NewString(),
		"time":            launchTimeMillis,
		"timezone":        timezone,
		"location_status": "unavailable",
		"survey_id":       surveyID,
		"survey_launch_context": map[string]any{
			"launch_time":     launchTimeMillis,
			"launch_timezone": timezone,
			"active_triggers": []string{},
		},
		"responses": responses,
	}
}

// WithKey overrides the generated survey_key and returns the survey for
// chaining.
func (s Survey) WithKey(key string) Survey {
	s["survey_key"] = key
	return s
}

// PromptResponse is the answer to a single prompt within a survey.
type PromptResponse map[string]any

// NewPromptResponse pairs a prompt with its recorded value.
func NewPromptResponse(promptID string, value any) PromptResponse {
	return PromptResponse{"prompt_id": promptID, "value": value}
}
