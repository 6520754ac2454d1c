package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sauhard98/sirion/model"
	"github.com/sauhard98/sirion/pkg/logger"
	"github.com/sauhard98/sirion/service"
)

type ContractHandler struct {
	store     *service.ContractStore
	processor *service.Processor
	completer service.Completer
	archive   *service.ArchiveService // may be nil
}

func NewContractHandler(store *service.ContractStore, processor *service.Processor, completer service.Completer, archive *service.ArchiveService) *ContractHandler {
	return &ContractHandler{
		store:     store,
		processor: processor,
		completer: completer,
		archive:   archive,
	}
}

// Upload handles contract file upload: the document is analyzed, the
// resulting contract committed to the store and marked active.
func (h *ContractHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" && ext != ".txt" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOCX and TXT files are allowed"})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	contract, err := h.processor.Process(ctx, content, header.Filename, func(status model.ProcessingStatus) {
		logger.Debug(ctx, "upload progress", "stage", status.Stage, "progress", status.Progress)
	})
	if err != nil {
		h.renderAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// AnalyzeRequest is the raw analysis boundary: extracted text in,
// structured analysis out, nothing committed.
type AnalyzeRequest struct {
	FileContent string `json:"fileContent" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
}

// Analyze runs the prompt/complete/parse pipeline over pre-extracted
// text. The fixture filename and marker short-circuit here too.
func (h *ContractHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	if service.IsFixtureUpload(req.FileName, req.FileContent) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": service.FixtureAnalysis()})
		return
	}

	prompt := service.BuildAnalysisPrompt(req.FileContent)
	raw, err := h.completer.Complete(ctx, prompt)
	if err != nil {
		h.renderAnalysisError(c, err)
		return
	}

	analysis, err := service.ParseAnalysisResponse(raw)
	if err != nil {
		h.renderAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": analysis})
}

// renderAnalysisError maps pipeline failures onto the response
// envelope. Timeouts get the dedicated status code so callers can
// classify without string-matching; everything else is reported
// generically with the detail kept in logs.
func (h *ContractHandler) renderAnalysisError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case service.IsTimeout(err):
		logger.Warn(ctx, "analysis timed out", "error", err)
		c.JSON(http.StatusRequestTimeout, gin.H{
			"success": false,
			"error":   "TIMEOUT",
			"message": "Request timed out after 10 seconds",
		})
	case errors.Is(err, service.ErrUploadInFlight):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "Another upload is already in progress",
		})
	default:
		var malformed *service.MalformedResponseError
		if errors.As(err, &malformed) {
			logger.Error(ctx, "model response could not be parsed", "error", err, "raw_response", malformed.Raw)
		} else {
			logger.Error(ctx, "analysis failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Analysis failed",
		})
	}
}

// List returns all stored contracts in upload order.
func (h *ContractHandler) List(c *gin.Context) {
	contracts := h.store.List()

	result := make([]gin.H, len(contracts))
	for i, contract := range contracts {
		result[i] = gin.H{
			"id":          contract.ID,
			"filename":    contract.Filename,
			"pdf_url":     contract.PDFURL,
			"uploaded_at": contract.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
			"value":       contract.Analysis.Metadata.Value,
			"events":      len(contract.Analysis.TimelineEvents),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"contracts": result,
		"active_id": h.store.ActiveID(),
	})
}

// Get returns a single contract with countdowns recomputed against the
// current clock.
func (h *ContractHandler) Get(c *gin.Context) {
	contract := h.store.Get(c.Param("id"))
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	c.JSON(http.StatusOK, service.WithCurrentCountdowns(contract, time.Now()))
}

// GetActive returns the currently selected contract, if any.
func (h *ContractHandler) GetActive(c *gin.Context) {
	contract := h.store.Active()
	if contract == nil {
		c.JSON(http.StatusOK, gin.H{"active": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": service.WithCurrentCountdowns(contract, time.Now())})
}

// Activate selects a stored contract for display.
func (h *ContractHandler) Activate(c *gin.Context) {
	id := c.Param("id")
	if h.store.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	h.store.SetActive(id)
	c.JSON(http.StatusOK, gin.H{"active_id": id})
}

// ClearActive deselects any active contract.
func (h *ContractHandler) ClearActive(c *gin.Context) {
	h.store.SetActive("")
	c.JSON(http.StatusOK, gin.H{"active_id": ""})
}

// GetProcessing exposes the in-flight upload's progress for polling.
func (h *ContractHandler) GetProcessing(c *gin.Context) {
	status := h.processor.Status()
	if status == nil {
		c.JSON(http.StatusOK, gin.H{"processing": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"processing": true, "status": status})
}

// Delete removes a contract and its archived document.
func (h *ContractHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	contract := h.store.Get(id)
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	h.store.Remove(id)

	if h.archive != nil && contract.PDFURL != "" {
		if err := h.archive.DeleteDocument(c.Request.Context(), contract.ID, contract.Filename); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete archived document", "contract_id", id, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}
