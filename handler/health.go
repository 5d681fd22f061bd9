package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pskill9/PreclinicalResearch/service"
)

type HealthHandler struct {
	store *service.RowStore
}

func NewHealthHandler(store *service.RowStore) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"rows":      h.store.Count(),
	})
}
