package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/requestdata"
	"github.com/chasinalts/comet-scanner-wizard/internal/services"
)

type ContentHandler struct {
	log            *logger.Logger
	contentService services.ContentService
}

func NewContentHandler(log *logger.Logger, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		log:            log.With("handler", "ContentHandler"),
		contentService: contentService,
	}
}

func (h *ContentHandler) List(c *gin.Context) {
	records, err := h.contentService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": records})
}

func (h *ContentHandler) Get(c *gin.Context) {
	record, err := h.contentService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": record})
}

func (h *ContentHandler) Set(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var updatedBy *uuid.UUID
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		updatedBy = &rd.UserID
	}

	record, err := h.contentService.Set(c.Request.Context(), c.Param("key"), req.Value, updatedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": record})
}
