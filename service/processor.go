package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sauhard98/sirion/model"
)

// Completer abstracts the bounded-wait completion client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProgressFunc receives human-readable stage labels with a
// non-decreasing percentage while an upload runs.
type ProgressFunc func(status model.ProcessingStatus)

// Fixed stage milestones reported while an analysis runs.
var processingStages = []model.ProcessingStatus{
	{Stage: "Initializing Document Scanner...", Progress: 10},
	{Stage: "Extracting Text from PDF...", Progress: 25},
	{Stage: "Analyzing Termination Clauses...", Progress: 40},
	{Stage: "Identifying Key Milestones...", Progress: 55},
	{Stage: "Extracting Deliverables...", Progress: 70},
	{Stage: "Calculating Risk Profiles...", Progress: 85},
	{Stage: "Generating Timeline Visualization...", Progress: 95},
	{Stage: "Analysis Complete", Progress: 100},
}

// Processor coordinates one upload end to end: text extraction, the
// fixture short-circuit or the prompt/complete/parse pipeline,
// post-processing, and the store commit. Only one upload may be in
// flight at a time; a second one is rejected rather than queued.
type Processor struct {
	completer Completer
	store     *ContractStore
	archive   *ArchiveService // optional

	// stageDelay paces the progress updates after the model call so the
	// later stages are visible at all; zero is valid and changes nothing
	// about correctness.
	stageDelay time.Duration

	busy sync.Mutex

	statusMu sync.RWMutex
	status   *model.ProcessingStatus
}

func NewProcessor(completer Completer, store *ContractStore, archive *ArchiveService, stageDelay time.Duration) *Processor {
	return &Processor{
		completer:  completer,
		store:      store,
		archive:    archive,
		stageDelay: stageDelay,
	}
}

// Status returns a snapshot of the in-flight upload's progress, or nil
// when no upload is running.
func (p *Processor) Status() *model.ProcessingStatus {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	if p.status == nil {
		return nil
	}
	s := *p.status
	return &s
}

func (p *Processor) setStatus(status *model.ProcessingStatus) {
	p.statusMu.Lock()
	p.status = status
	p.statusMu.Unlock()
}

// NewContractID generates a globally unique contract identifier.
func NewContractID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("CNT-%d-%s", time.Now().UnixMilli(), suffix)
}

// Process runs the full upload pipeline and commits the result to the
// store. On any failure nothing is committed; the caller distinguishes
// timeouts via IsTimeout. A failed upload is not retried here; the
// caller starts over with a fresh Process call.
func (p *Processor) Process(ctx context.Context, content []byte, filename string, onProgress ProgressFunc) (*model.Contract, error) {
	if !p.busy.TryLock() {
		return nil, ErrUploadInFlight
	}
	defer p.busy.Unlock()
	defer p.setStatus(nil)

	emit := func(status model.ProcessingStatus) {
		p.setStatus(&status)
		if onProgress != nil {
			onProgress(status)
		}
	}

	contractID := NewContractID()
	emit(model.ProcessingStatus{Stage: "Starting analysis...", Progress: 0})
	emit(processingStages[0])
	emit(processingStages[1])

	text := ExtractText(content, filename)

	var analysis *model.ContractAnalysis
	if IsFixtureUpload(filename, text) {
		slog.Info("fixture upload detected, skipping model call", "contract_id", contractID, "filename", filename)
		analysis = FixtureAnalysis()
	} else {
		emit(processingStages[2])

		prompt := BuildAnalysisPrompt(text)
		raw, err := p.completer.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("contract analysis failed: %w", err)
		}

		analysis, err = ParseAnalysisResponse(raw)
		if err != nil {
			return nil, fmt.Errorf("contract analysis failed: %w", err)
		}
	}

	for _, stage := range processingStages[3:] {
		emit(stage)
		if p.stageDelay > 0 {
			time.Sleep(p.stageDelay)
		}
	}

	finalized := FinalizeAnalysis(analysis, time.Now())

	contract := &model.Contract{
		ID:         contractID,
		Filename:   filename,
		UploadedAt: time.Now(),
		Analysis:   *finalized,
	}

	// Archival is best-effort: the analysis result matters more than a
	// copy of the source document.
	if p.archive != nil {
		url, err := p.archive.StoreDocument(ctx, contractID, filename, content)
		if err != nil {
			slog.Warn("failed to archive document", "contract_id", contractID, "error", err)
		} else {
			contract.PDFURL = url
		}
	}

	p.store.Add(contract)

	slog.Info("contract analyzed",
		"contract_id", contractID,
		"filename", filename,
		"sections", len(contract.Analysis.Structure),
		"events", len(contract.Analysis.TimelineEvents),
	)

	return contract, nil
}
