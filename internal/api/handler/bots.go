package handler

import (
	"net/http"

	"github.com/HannanLK/code-red-server/internal/api/response"
	"github.com/HannanLK/code-red-server/internal/services/bot"
)

// BotsHandler serves the bot catalog
type BotsHandler struct{}

// NewBotsHandler creates a new bots handler
func NewBotsHandler() *BotsHandler {
	return &BotsHandler{}
}

// List handles GET /api/v1/bots
func (h *BotsHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.BotsResponse{Bots: bot.Catalog})
}
