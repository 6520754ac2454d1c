package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType categorizes a timeline event extracted from a contract.
type EventType string

const (
	EventDeliverable EventType = "Deliverable"
	EventMilestone   EventType = "Milestone"
	EventPayment     EventType = "Payment"
	EventRenewal     EventType = "Renewal"
	EventTermination EventType = "Termination"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventDeliverable, EventMilestone, EventPayment, EventRenewal, EventTermination:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown event types instead of carrying them through.
func (t *EventType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := EventType(s)
	if !v.Valid() {
		return fmt.Errorf("unknown event type %q", s)
	}
	*t = v
	return nil
}

// RiskLevel is the severity attached to a timeline event, ordered
// Low < Medium < High < Critical.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Valid reports whether r is one of the known risk levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Severity returns the risk rank for ordering comparisons (Low=0 .. Critical=3).
func (r RiskLevel) Severity() int {
	switch r {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}

// UnmarshalJSON rejects unknown risk levels instead of carrying them through.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := RiskLevel(s)
	if !v.Valid() {
		return fmt.Errorf("unknown risk level %q", s)
	}
	*r = v
	return nil
}

// DateFormat is the calendar-date layout used throughout the analysis schema.
const DateFormat = "2006-01-02"

// ContractMetadata holds the headline facts extracted from a contract.
type ContractMetadata struct {
	Value         string   `json:"value"`
	EffectiveDate string   `json:"effectiveDate"`
	ExpiryDate    string   `json:"expiryDate,omitempty"`
	Parties       []string `json:"parties,omitempty"`
}

// ContractSection is one section of the document with a short summary.
// Order follows the document structure.
type ContractSection struct {
	Section string `json:"section"`
	Content string `json:"content"`
}

// TimelineEvent is a dated obligation or checkpoint. DaysUntil is derived
// relative to the moment of analysis, never model-sourced; negative means
// the event is in the past.
type TimelineEvent struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Type         EventType `json:"type"`
	Risk         RiskLevel `json:"risk"`
	Repercussion string    `json:"repercussion"`
	DaysUntil    *int      `json:"daysUntil,omitempty"`
}

// EventDate parses the event's calendar date.
func (e *TimelineEvent) EventDate() (time.Time, error) {
	return time.Parse(DateFormat, e.Date)
}

// ContractAnalysis is the full structured result of one model call.
// Event order is the model's order; it is not chronological until a
// consumer sorts it.
type ContractAnalysis struct {
	Metadata       ContractMetadata  `json:"metadata"`
	Structure      []ContractSection `json:"structure"`
	TimelineEvents []TimelineEvent   `json:"timelineEvents"`
}

// Contract is an uploaded document plus its analysis. Immutable after
// creation except for deletion.
type Contract struct {
	ID         string           `json:"id"`
	Filename   string           `json:"filename"`
	PDFURL     string           `json:"pdf_url,omitempty"`
	UploadedAt time.Time        `json:"uploaded_at"`
	Analysis   ContractAnalysis `json:"analysis"`
}

// ProcessingStatus is one progress update emitted while an upload runs.
type ProcessingStatus struct {
	Stage    string `json:"stage"`
	Progress int    `json:"progress"`
}
