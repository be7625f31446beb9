package consumer

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/dealflow/internal/deal/application"
	"github.com/wyfcoding/dealflow/internal/deal/domain"
	"github.com/wyfcoding/dealflow/pkg/mq"
)

// NotifyHandler 消费 deal.scored
type NotifyHandler struct {
	notify *application.NotifyService
	logger *slog.Logger
}

func NewNotifyHandler(notify *application.NotifyService, logger *slog.Logger) *NotifyHandler {
	return &NotifyHandler{notify: notify, logger: logger}
}

func (h *NotifyHandler) Handle(ctx context.Context, msg *mq.Message) error {
	var evt domain.DealScoredEvent
	if err := msg.UnmarshalPayload(&evt); err != nil {
		h.logger.ErrorContext(ctx, "failed to unmarshal deal scored event", "error", err)
		return err
	}

	return h.notify.HandleDealScored(ctx, evt)
}
