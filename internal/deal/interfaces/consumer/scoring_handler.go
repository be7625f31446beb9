package consumer

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/dealflow/internal/deal/application"
	"github.com/wyfcoding/dealflow/internal/deal/domain"
	"github.com/wyfcoding/dealflow/pkg/mq"
)

// ScoringHandler 消费 deal.submitted
type ScoringHandler struct {
	scoring *application.ScoringService
	logger  *slog.Logger
}

func NewScoringHandler(scoring *application.ScoringService, logger *slog.Logger) *ScoringHandler {
	return &ScoringHandler{scoring: scoring, logger: logger}
}

func (h *ScoringHandler) Handle(ctx context.Context, msg *mq.Message) error {
	var evt domain.DealSubmittedEvent
	if err := msg.UnmarshalPayload(&evt); err != nil {
		h.logger.ErrorContext(ctx, "failed to unmarshal deal submitted event", "error", err)
		return err
	}

	return h.scoring.HandleDealSubmitted(ctx, evt)
}
