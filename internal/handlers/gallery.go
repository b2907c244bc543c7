package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/requestdata"
	"github.com/chasinalts/comet-scanner-wizard/internal/services"
)

// Uploaded gallery images are capped to keep the bucket and page weight sane.
const maxGalleryImageBytes = 10 << 20

type GalleryHandler struct {
	log            *logger.Logger
	galleryService services.GalleryService
}

func NewGalleryHandler(log *logger.Logger, galleryService services.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		log:            log.With("handler", "GalleryHandler"),
		galleryService: galleryService,
	}
}

func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.galleryService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (h *GalleryHandler) Upload(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}
	if fileHeader.Size > maxGalleryImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	title := c.PostForm("title")
	image, err := h.galleryService.Upload(c.Request.Context(), rd.UserID, title, fileHeader.Filename, raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image": image})
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image id"})
		return
	}
	if err := h.galleryService.Delete(c.Request.Context(), imageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
