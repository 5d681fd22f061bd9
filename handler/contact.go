package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pskill9/PreclinicalResearch/form"
	"github.com/pskill9/PreclinicalResearch/model"
	"github.com/pskill9/PreclinicalResearch/pkg/logger"
)

// Deliverer forwards a submission to the webhook and returns its reply.
type Deliverer interface {
	Deliver(ctx context.Context, sub model.FormSubmission) (*model.WebhookResponse, error)
}

// ContactHandler is the same-origin proxy in front of the webhook.
type ContactHandler struct {
	webhook Deliverer
	now     func() time.Time
}

func NewContactHandler(webhook Deliverer) *ContactHandler {
	return &ContactHandler{
		webhook: webhook,
		now:     time.Now,
	}
}

// Submit validates a submission with the form rules and forwards it.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.FormSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sub := model.NewFormSubmission(h.now(), trimValues(req.Values()))
	if ts := strings.TrimSpace(req.Timestamp); ts != "" {
		sub.Timestamp = ts
	}

	if invalid := form.ValidateValues(sub.Values()); len(invalid) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Please fill in all required fields correctly.",
			"invalid_fields": invalid,
		})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.webhook.Deliver(ctx, sub)
	if err != nil {
		c.Error(err)
		logger.Error(ctx, "webhook delivery failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach the submission webhook"})
		return
	}

	if resp.Status == model.StatusError {
		logger.Warn(ctx, "webhook rejected submission", "message", resp.Message)
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	logger.Info(ctx, "submission forwarded", "email", sub.Email)
	c.JSON(http.StatusOK, resp)
}

func trimValues(values map[string]string) map[string]string {
	for k, v := range values {
		values[k] = strings.TrimSpace(v)
	}
	return values
}
