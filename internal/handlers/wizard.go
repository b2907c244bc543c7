package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/requestdata"
	"github.com/chasinalts/comet-scanner-wizard/internal/services"
)

type WizardHandler struct {
	log           *logger.Logger
	wizardService services.WizardService
}

func NewWizardHandler(log *logger.Logger, wizardService services.WizardService) *WizardHandler {
	return &WizardHandler{
		log:           log.With("handler", "WizardHandler"),
		wizardService: wizardService,
	}
}

func (h *WizardHandler) Start(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	state, err := h.wizardService.StartSession(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *WizardHandler) ChooseFullTemplate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	state, err := h.wizardService.ChooseFullTemplate(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *WizardHandler) StartBuilder(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	state, err := h.wizardService.StartBuilder(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *WizardHandler) Answer(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	var req struct {
		QuestionID string `json:"questionId" binding:"required"`
		Type       string `json:"type" binding:"required"`
		Value      string `json:"value"`
		BoolValue  *bool  `json:"boolValue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var state *services.SessionState
	var err error
	switch req.Type {
	case "string":
		state, err = h.wizardService.AnswerString(c.Request.Context(), rd.UserID, req.QuestionID, req.Value)
	case "boolean":
		if req.BoolValue == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "boolValue required for boolean answers"})
			return
		}
		state, err = h.wizardService.AnswerBoolean(c.Request.Context(), rd.UserID, req.QuestionID, *req.BoolValue)
	case "multiple-choice":
		state, err = h.wizardService.AnswerChoice(c.Request.Context(), rd.UserID, req.QuestionID, req.Value)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown answer type"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *WizardHandler) Skip(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	state, err := h.wizardService.Skip(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *WizardHandler) Next(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	state, err := h.wizardService.Next(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *WizardHandler) Previous(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	state, err := h.wizardService.Previous(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *WizardHandler) SaveProgress(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snapshot, err := h.wizardService.SaveProgress(c.Request.Context(), rd.UserID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": snapshot})
}

func (h *WizardHandler) Finish(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snapshot, state, err := h.wizardService.Finish(c.Request.Context(), rd.UserID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": snapshot, "session": state})
}

func (h *WizardHandler) LoadSnapshot(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	state, err := h.wizardService.LoadSnapshot(c.Request.Context(), rd.UserID, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *WizardHandler) ListTemplates(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	templates, err := h.wizardService.ListTemplates(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *WizardHandler) DeleteTemplate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}
	if err := h.wizardService.DeleteTemplate(c.Request.Context(), rd.UserID, c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
