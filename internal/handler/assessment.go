package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"solace-backend/internal/assessment"
	"solace-backend/internal/model"
	"solace-backend/internal/service"
	"solace-backend/internal/storage"
	"solace-backend/pkg/logger"
)

type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
	}
}

// Analyze Level 1 整体筛查
func (h *AssessmentHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	result, file, err := h.assessmentService.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		logger.Errorf("assessment failed: %v", err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "assessment failed", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"file":   file,
	})
}

func (h *AssessmentHandler) ListResults(c *gin.Context) {
	files, err := h.assessmentService.ListResults()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *AssessmentHandler) GetResult(c *gin.Context) {
	file := c.Query("file")
	if file == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "no file specified"})
		return
	}

	data, err := h.assessmentService.GetResult(file)
	if err != nil {
		h.renderFileError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

func (h *AssessmentHandler) ListTranscripts(c *gin.Context) {
	files, err := h.assessmentService.ListTranscripts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *AssessmentHandler) GetTranscript(c *gin.Context) {
	file := c.Query("file")
	if file == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "no file specified"})
		return
	}

	content, err := h.assessmentService.GetTranscript(file)
	if err != nil {
		h.renderFileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// RunLevel2 针对单域、单个会谈记录的深度评估
func (h *AssessmentHandler) RunLevel2(c *gin.Context) {
	var req model.Level2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "domain and session file required"})
		return
	}

	result, err := h.assessmentService.RunLevel2(c.Request.Context(), req.Domain, req.Session)
	if err != nil {
		switch {
		case errors.Is(err, assessment.ErrUnknownDomain):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		case errors.Is(err, storage.ErrFileNotFound):
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "session file not found"})
		case errors.Is(err, storage.ErrInvalidName):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		default:
			logger.Errorf("level-2 assessment failed: %v", err)
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "assessment failed", Details: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AssessmentHandler) renderFileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrFileNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "file not found"})
	case errors.Is(err, storage.ErrInvalidName):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
	}
}
