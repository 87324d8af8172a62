package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"sessionsheet/middleware"
	"sessionsheet/models"
	"sessionsheet/services/document"
	"sessionsheet/services/quota"
	"sessionsheet/services/schedule"
	"sessionsheet/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler serves the schedule preview and spreadsheet downloads.
type DocumentHandler struct {
	Svc    document.DocumentService
	Logger *zap.Logger
}

func NewDocumentHandler(svc document.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{Svc: svc, Logger: logger}
}

// PreviewHandler returns the expanded schedule as JSON.
func (h *DocumentHandler) PreviewHandler(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	preview, err := h.Svc.Preview(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// GenerateHandler returns a single spreadsheet covering the whole range.
func (h *DocumentHandler) GenerateHandler(c *gin.Context) {
	var req models.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	doc, err := h.Svc.Generate(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("X-Total-Sessions", strconv.Itoa(doc.TotalSessions))
	attachment(c, doc.FileName, document.SpreadsheetContentType, doc.Content)
}

// GenerateMonthlyHandler returns one spreadsheet per month. A single month is
// sent as-is; several are zipped as MM-YYYY.xlsx entries.
func (h *DocumentHandler) GenerateMonthlyHandler(c *gin.Context) {
	var req models.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	docs, err := h.Svc.GenerateByMonth(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	total := 0
	for _, d := range docs {
		total += d.TotalSessions
	}
	c.Header("X-Total-Sessions", strconv.Itoa(total))
	c.Header("X-Document-Count", strconv.Itoa(len(docs)))

	if len(docs) == 1 {
		attachment(c, docs[0].FileName, document.SpreadsheetContentType, docs[0].Content)
		return
	}
	archive, err := document.Bundle(docs, time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	attachment(c, document.ArchiveName(docs), document.ArchiveContentType, archive)
}

// ActivityLogsHandler lists recent generations of the caller, newest first.
func (h *DocumentHandler) ActivityLogsHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "limit must be a positive integer")
			return
		}
		limit = n
	}
	logs, err := h.Svc.RecentActivity(c.Request.Context(), middleware.Actor(c), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *DocumentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.Is(err, quota.ErrQuotaExceeded):
		utils.JSONError(c, http.StatusTooManyRequests, "quota exceeded", err.Error())
	default:
		getLogger(c, h.Logger).Error("spreadsheet request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate spreadsheet", err.Error())
	}
}

func attachment(c *gin.Context, name, contentType string, content []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, content)
}
