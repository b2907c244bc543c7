package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/services"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
	"github.com/chasinalts/comet-scanner-wizard/internal/wizard"
)

type QuestionHandler struct {
	log             *logger.Logger
	questionService services.QuestionService
}

func NewQuestionHandler(log *logger.Logger, questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		log:             log.With("handler", "QuestionHandler"),
		questionService: questionService,
	}
}

func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questionService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req struct {
		Text    string         `json:"text" binding:"required"`
		Type    string         `json:"type" binding:"required"`
		Details wizard.Details `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rawDetails, err := json.Marshal(req.Details)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question details"})
		return
	}
	question := &types.Question{
		Text:    req.Text,
		Type:    req.Type,
		Details: datatypes.JSON(rawDetails),
	}
	created, err := h.questionService.Create(c.Request.Context(), question)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question": created})
}

func (h *QuestionHandler) Update(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}
	var req struct {
		Text    string         `json:"text" binding:"required"`
		Type    string         `json:"type" binding:"required"`
		Details wizard.Details `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rawDetails, err := json.Marshal(req.Details)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question details"})
		return
	}
	question := &types.Question{
		ID:      questionID,
		Text:    req.Text,
		Type:    req.Type,
		Details: datatypes.JSON(rawDetails),
	}
	updated, err := h.questionService.Update(c.Request.Context(), question)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": updated})
}

func (h *QuestionHandler) Reorder(c *gin.Context) {
	var req struct {
		OrderedIDs []uuid.UUID `json:"orderedIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.questionService.Reorder(c.Request.Context(), req.OrderedIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reordered"})
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}
	if err := h.questionService.Delete(c.Request.Context(), questionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ImportYAML replaces the whole question list from an uploaded YAML seed
// file. Accepts either a multipart "file" field or a raw request body.
func (h *QuestionHandler) ImportYAML(c *gin.Context) {
	var raw []byte
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, oErr := fileHeader.Open()
		if oErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer f.Close()
		raw, err = io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return
		}
	} else {
		body, rErr := io.ReadAll(c.Request.Body)
		if rErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}
		raw = body
	}

	questions, err := h.questionService.ImportYAML(c.Request.Context(), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}
