package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/requestdata"
	"github.com/chasinalts/comet-scanner-wizard/internal/sse"
)

type SSEHandler struct {
	log *logger.Logger
	hub *sse.SSEHub

	// clients tracks open streams by client id so subscribe/unsubscribe
	// calls from other requests can find them.
	mu      sync.Mutex
	clients map[uuid.UUID]*sse.SSEClient
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{
		log:     log.With("handler", "SSEHandler"),
		hub:     hub,
		clients: make(map[uuid.UUID]*sse.SSEClient),
	}
}

// Stream opens the event stream. Every client starts subscribed to its own
// user channel and the shared site channel.
func (h *SSEHandler) Stream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
		return
	}

	client := h.hub.NewSSEClient(rd.UserID)
	h.hub.AddChannel(client, sse.UserChannel(rd.UserID))
	h.hub.AddChannel(client, sse.AdminChannel)

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client.ID)
		h.mu.Unlock()
		h.hub.CloseClient(client)
	}()

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}

func (h *SSEHandler) Subscribe(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}
	h.mu.Lock()
	client, ok := h.clients[clientID]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown SSE client"})
		return
	}
	var req struct {
		Channel string `json:"channel" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.hub.AddChannel(client, req.Channel)
	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}

func (h *SSEHandler) Unsubscribe(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}
	h.mu.Lock()
	client, ok := h.clients[clientID]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown SSE client"})
		return
	}
	var req struct {
		Channel string `json:"channel" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.hub.RemoveChannel(client, req.Channel)
	c.JSON(http.StatusOK, gin.H{"status": "unsubscribed"})
}
