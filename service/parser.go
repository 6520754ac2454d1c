package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/sauhard98/sirion/model"
)

// The model is instructed to return JSON, optionally fenced in a code
// block. Both the tagged and the language-less fence are accepted.
var (
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n\\s*```")
	bareFencePattern = regexp.MustCompile("(?s)```\\s*\\n(.*?)\\n\\s*```")
)

// extractJSONPayload returns the interior of a fenced code block, or
// the whole text when no fence is present.
func extractJSONPayload(raw string) string {
	if m := jsonFencePattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := bareFencePattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// ParseAnalysisResponse decodes the model's raw reply into a contract
// analysis. Decoding is fail-closed: unknown enum values, missing
// required event fields, and undecodable dates are all rejected as a
// MalformedResponseError carrying the original text.
func ParseAnalysisResponse(raw string) (*model.ContractAnalysis, error) {
	payload := extractJSONPayload(raw)

	var analysis model.ContractAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	if err := validateAnalysis(&analysis); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	return &analysis, nil
}

// validateAnalysis enforces the required fields of the schema. Optional
// fields (expiryDate, parties, event id, repercussion) may be absent.
func validateAnalysis(a *model.ContractAnalysis) error {
	for i, s := range a.Structure {
		if s.Section == "" {
			return fmt.Errorf("structure[%d]: missing section title", i)
		}
	}

	for i, e := range a.TimelineEvents {
		if e.Title == "" {
			return fmt.Errorf("timelineEvents[%d]: missing title", i)
		}
		if e.Date == "" {
			return fmt.Errorf("timelineEvents[%d]: missing date", i)
		}
		if _, err := time.Parse(model.DateFormat, e.Date); err != nil {
			return fmt.Errorf("timelineEvents[%d]: invalid date %q", i, e.Date)
		}
		if !e.Type.Valid() {
			return fmt.Errorf("timelineEvents[%d]: missing event type", i)
		}
		if !e.Risk.Valid() {
			return fmt.Errorf("timelineEvents[%d]: missing risk level", i)
		}
	}

	return nil
}
