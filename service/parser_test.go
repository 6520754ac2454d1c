package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sauhard98/sirion/model"
)

const validAnalysisJSON = `{
  "metadata": {
    "value": "$150,000 USD",
    "effectiveDate": "2025-11-20",
    "expiryDate": "2026-11-20",
    "parties": ["Apex Logistics Inc.", "Zenith Code Solutions LLC"]
  },
  "structure": [
    {"section": "Agreement Overview", "content": "Twelve month services agreement."},
    {"section": "Payment Terms", "content": "Installments with late interest."}
  ],
  "timelineEvents": [
    {"title": "Phase 1 Due", "date": "2025-12-20", "type": "Deliverable", "risk": "High", "repercussion": "Penalty of $2,000 per week of delay."},
    {"title": "Contract Expiry", "date": "2026-11-20", "type": "Termination", "risk": "Low", "repercussion": "No specific repercussion mentioned in contract"}
  ]
}`

func TestParseAnalysisResponseFenceVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "bare json", raw: validAnalysisJSON},
		{name: "json fence", raw: "Here is the analysis:\n```json\n" + validAnalysisJSON + "\n```\nLet me know if you need more."},
		{name: "language-less fence", raw: "```\n" + validAnalysisJSON + "\n```"},
		{name: "fence with trailing spaces", raw: "```json  \n" + validAnalysisJSON + "\n  ```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := ParseAnalysisResponse(tt.raw)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if analysis.Metadata.Value != "$150,000 USD" {
				t.Errorf("Unexpected value: %q", analysis.Metadata.Value)
			}
			if len(analysis.Structure) != 2 {
				t.Errorf("Expected 2 sections, got %d", len(analysis.Structure))
			}
			if len(analysis.TimelineEvents) != 2 {
				t.Fatalf("Expected 2 events, got %d", len(analysis.TimelineEvents))
			}
			if analysis.TimelineEvents[0].Type != model.EventDeliverable {
				t.Errorf("Unexpected event type: %q", analysis.TimelineEvents[0].Type)
			}
			if analysis.TimelineEvents[1].Risk != model.RiskLow {
				t.Errorf("Unexpected risk: %q", analysis.TimelineEvents[1].Risk)
			}
		})
	}
}

func TestParseAnalysisResponseOptionalFieldsAbsent(t *testing.T) {
	raw := `{"metadata":{"value":"Not specified","effectiveDate":""},"structure":[],"timelineEvents":[]}`
	analysis, err := ParseAnalysisResponse(raw)
	if err != nil {
		t.Fatalf("Missing optional fields must not fail: %v", err)
	}
	if analysis.Metadata.ExpiryDate != "" || analysis.Metadata.Parties != nil {
		t.Errorf("Expected empty optional fields, got %+v", analysis.Metadata)
	}
}

func TestParseAnalysisResponseMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "I could not analyze this contract, sorry."},
		{name: "truncated json", raw: `{"metadata": {"value": "$1`},
		{name: "fenced garbage", raw: "```json\nnot actually json\n```"},
		{name: "unknown event type", raw: `{"metadata":{"value":"x","effectiveDate":""},"structure":[],"timelineEvents":[{"title":"T","date":"2025-01-01","type":"Penalty","risk":"Low","repercussion":""}]}`},
		{name: "unknown risk", raw: `{"metadata":{"value":"x","effectiveDate":""},"structure":[],"timelineEvents":[{"title":"T","date":"2025-01-01","type":"Payment","risk":"Severe","repercussion":""}]}`},
		{name: "missing event title", raw: `{"metadata":{"value":"x","effectiveDate":""},"structure":[],"timelineEvents":[{"date":"2025-01-01","type":"Payment","risk":"Low","repercussion":""}]}`},
		{name: "missing event date", raw: `{"metadata":{"value":"x","effectiveDate":""},"structure":[],"timelineEvents":[{"title":"T","type":"Payment","risk":"Low","repercussion":""}]}`},
		{name: "non-ISO date", raw: `{"metadata":{"value":"x","effectiveDate":""},"structure":[],"timelineEvents":[{"title":"T","date":"12/20/2025","type":"Payment","risk":"Low","repercussion":""}]}`},
		{name: "missing risk", raw: `{"metadata":{"value":"x","effectiveDate":""},"structure":[],"timelineEvents":[{"title":"T","date":"2025-01-01","type":"Payment","repercussion":""}]}`},
		{name: "missing section title", raw: `{"metadata":{"value":"x","effectiveDate":""},"structure":[{"content":"summary"}],"timelineEvents":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysisResponse(tt.raw)
			if err == nil {
				t.Fatal("Expected error")
			}

			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("Expected MalformedResponseError, got %T: %v", err, err)
			}
			if malformed.Raw != tt.raw {
				t.Error("Expected the original text to be preserved for diagnostics")
			}
		})
	}
}

func TestParseAnalysisResponseNeverTimeout(t *testing.T) {
	// Parse failures must never classify as timeouts
	_, err := ParseAnalysisResponse("garbage")
	if err == nil {
		t.Fatal("Expected error")
	}
	if IsTimeout(err) {
		t.Error("Parse failure must not classify as timeout")
	}
}

func TestExtractJSONPayloadPrefersTaggedFence(t *testing.T) {
	raw := "```\nplain block\n```\n```json\n{\"a\":1}\n```"
	got := extractJSONPayload(raw)
	if got != `{"a":1}` {
		t.Errorf("Expected the json-tagged block, got %q", got)
	}
}

func ExampleParseAnalysisResponse() {
	analysis, _ := ParseAnalysisResponse("```json\n" + validAnalysisJSON + "\n```")
	fmt.Println(analysis.TimelineEvents[0].Title)
	// Output: Phase 1 Due
}
