package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pskill9/PreclinicalResearch/model"
	"github.com/pskill9/PreclinicalResearch/pkg/logger"
	"github.com/pskill9/PreclinicalResearch/service"
)

const (
	msgRecorded = "Data successfully recorded"
	msgSpam     = "Submission flagged as spam"
)

// ReceiverHandler implements the submission webhook: it filters spam,
// records rows and sends notifications.
type ReceiverHandler struct {
	spam     *service.SpamFilter
	rows     service.RowAppender
	archive  service.RowAppender
	notifier service.Notifier
	now      func() time.Time
}

// NewReceiverHandler wires the receiver. archive and notifier may be nil.
func NewReceiverHandler(spam *service.SpamFilter, rows, archive service.RowAppender, notifier service.Notifier) *ReceiverHandler {
	return &ReceiverHandler{
		spam:     spam,
		rows:     rows,
		archive:  archive,
		notifier: notifier,
		now:      time.Now,
	}
}

// HandleSubmission records a posted submission.
func (h *ReceiverHandler) HandleSubmission(c *gin.Context) {
	var sub model.FormSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, model.WebhookResponse{
			Status:  model.StatusError,
			Message: "Invalid submission payload: " + err.Error(),
		})
		return
	}

	row := &model.Row{
		ID:         uuid.New().String(),
		Submission: sub,
		ReceivedAt: h.now(),
	}
	ctx := logger.WithSubmission(c.Request.Context(), row.ID)

	if term, spam := h.spam.Match(sub); spam {
		logger.Warn(ctx, "submission flagged as spam", "term", term)
		c.JSON(http.StatusUnprocessableEntity, model.WebhookResponse{
			Status:  model.StatusError,
			Message: msgSpam,
		})
		return
	}

	if err := h.rows.AppendRow(ctx, row); err != nil {
		c.Error(err)
		logger.Error(ctx, "failed to record submission", "error", err)
		c.JSON(http.StatusInternalServerError, model.WebhookResponse{
			Status:  model.StatusError,
			Message: "Failed to record submission",
		})
		return
	}

	if h.archive != nil {
		if err := h.archive.AppendRow(ctx, row); err != nil {
			logger.Error(ctx, "failed to archive submission", "error", err)
		}
	}

	if h.notifier != nil {
		if err := h.notifier.Notify(ctx, sub); err != nil {
			logger.Error(ctx, "failed to send notification", "error", err)
		}
	}

	logger.Info(ctx, "submission recorded")
	c.JSON(http.StatusOK, model.WebhookResponse{
		Status:  model.StatusSuccess,
		Message: msgRecorded,
	})
}
