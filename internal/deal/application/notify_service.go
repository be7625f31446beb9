package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wyfcoding/pkg/logging"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// NotifyService 评分完成通知，纯副作用，不回写交易状态。
// 发送失败只记录日志，消息照常视为消费成功。
type NotifyService struct {
	sender domain.Sender
	target string
}

func NewNotifyService(sender domain.Sender, target string) *NotifyService {
	return &NotifyService{sender: sender, target: target}
}

// HandleDealScored 构造通知载荷并尽力投递
func (s *NotifyService) HandleDealScored(ctx context.Context, evt domain.DealScoredEvent) error {
	payload := map[string]any{
		"type":      "AdaptiveCard",
		"title":     fmt.Sprintf("Deal Scored — %s Risk", evt.RiskFlag),
		"deal_id":   evt.DealID,
		"score":     evt.Score,
		"risk_flag": evt.RiskFlag,
		"scored_at": evt.ScoredAt,
	}
	content, _ := json.MarshalIndent(payload, "", "  ")

	subject := fmt.Sprintf("[DealFlow] Deal %s scored — %s", evt.DealID, evt.RiskFlag)
	if err := s.sender.Send(ctx, s.target, subject, string(content)); err != nil {
		logging.Error(ctx, "Notification delivery failed, continuing",
			"deal_id", evt.DealID, "correlation_id", evt.CorrelationID, "error", err)
		return nil
	}

	logging.Info(ctx, "Notification sent",
		"deal_id", evt.DealID, "correlation_id", evt.CorrelationID, "risk_flag", evt.RiskFlag)
	return nil
}
