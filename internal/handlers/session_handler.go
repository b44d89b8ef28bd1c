package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/statemachine"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": h.sessionService.State(middleware.GetUserID(c))})
}

// Event applies one navigation command, e.g. {"event": "open_profile", "customer_id": "1"}
func (h *SessionHandler) Event(c *gin.Context) {
	var cmd statemachine.Command
	if err := BindNestedOrFlat(c, "command", &cmd); err != nil {
		badRequest(c, err)
		return
	}
	state, err := h.sessionService.Apply(c.Request.Context(), middleware.GetUserID(c), cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (h *SessionHandler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": h.sessionService.Reset(middleware.GetUserID(c))})
}
