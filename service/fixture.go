package service

import (
	"strings"

	"github.com/sauhard98/sirion/model"
)

// The demonstration fixture: uploading this exact filename, or any
// document whose text contains the marker phrase, bypasses the live
// model call and returns the canned analysis below. Gives instant,
// deterministic results without network access.
const (
	FixtureFilename = "sirion-test-contract.pdf"
	FixtureMarker   = "MASTER SOFTWARE DEVELOPMENT SERVICES AGREEMENT"
)

// IsFixtureUpload reports whether an upload should take the canned path.
func IsFixtureUpload(filename, extractedText string) bool {
	return filename == FixtureFilename || strings.Contains(extractedText, FixtureMarker)
}

// FixtureAnalysis returns a fresh copy of the canned analysis so callers
// can post-process it without sharing state between uploads.
func FixtureAnalysis() *model.ContractAnalysis {
	return &model.ContractAnalysis{
		Metadata: model.ContractMetadata{
			Value:         "$150,000 USD",
			EffectiveDate: "2025-11-20",
			ExpiryDate:    "2026-11-20",
			Parties:       []string{"Apex Logistics Inc.", "Zenith Code Solutions LLC"},
		},
		Structure: []model.ContractSection{
			{
				Section: "Agreement Overview",
				Content: "This Master Services Agreement establishes the terms under which Zenith Code Solutions LLC will provide software development and consulting services to Apex Logistics Inc. for a period of 12 months.",
			},
			{
				Section: "Scope of Services",
				Content: "Services include custom software development, system integration, technical consulting, and ongoing maintenance. Deliverables are defined in three phases with specific acceptance criteria for each milestone.",
			},
			{
				Section: "Payment Terms",
				Content: "Total contract value payable in installments: 30% upon signing, 40% upon Phase 1 completion, and 30% upon final delivery. Payments due within 15 days of invoice. Late payments subject to 1.5% monthly interest.",
			},
			{
				Section: "Deliverables and Milestones",
				Content: "Phase 1 delivery within 45 days includes requirements documentation and system architecture. Phase 2 within 90 days includes core functionality implementation. Final deployment within 180 days with full documentation and training.",
			},
			{
				Section: "Confidentiality",
				Content: "Both parties agree to maintain confidentiality of proprietary information for a period of 3 years following contract termination. Standard exceptions apply for publicly available information.",
			},
			{
				Section: "Termination Clauses",
				Content: "Either party may terminate with 30 days written notice. Immediate termination allowed for material breach. Upon termination, client must compensate for all completed work and work-in-progress.",
			},
			{
				Section: "Renewal Terms",
				Content: "Contract may be renewed for additional 12-month terms upon mutual written agreement. Renewal terms subject to renegotiation but not to exceed 7% annual increase based on CPI adjustments.",
			},
		},
		TimelineEvents: []model.TimelineEvent{
			{
				Title:        "Phase 1: Requirement Analysis & Architecture Design Due",
				Date:         "2025-12-20",
				Type:         model.EventDeliverable,
				Risk:         model.RiskLow,
				Repercussion: "No specific repercussion mentioned in contract",
			},
			{
				Title:        "Phase 2: Beta Version Release Due",
				Date:         "2026-02-28",
				Type:         model.EventDeliverable,
				Risk:         model.RiskHigh,
				Repercussion: "Provider shall be liable for a penalty of $2,000 for every week of delay, capped at 10% of the total contract value.",
			},
			{
				Title:        "Phase 3: Final Production Launch",
				Date:         "2026-05-15",
				Type:         model.EventDeliverable,
				Risk:         model.RiskCritical,
				Repercussion: "Time is of the essence for this deliverable.",
			},
			{
				Title:        "Post-Launch Support Period End",
				Date:         "2026-08-13",
				Type:         model.EventMilestone,
				Risk:         model.RiskLow,
				Repercussion: "End of ninety (90) days support duration.",
			},
			{
				Title:        "Contract Expiry",
				Date:         "2026-11-20",
				Type:         model.EventTermination,
				Risk:         model.RiskLow,
				Repercussion: "Agreement shall continue for a period of twelve (12) months, unless terminated earlier.",
			},
		},
	}
}
