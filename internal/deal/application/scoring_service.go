package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/logging"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// ScoringService 评分应用服务：推进 RECEIVED → SCORING → SCORED。
// 同一提交事件重复投递时效果至多发生一次。
type ScoringService struct {
	repo      domain.DealRepository
	publisher domain.EventPublisher
}

func NewScoringService(repo domain.DealRepository, publisher domain.EventPublisher) *ScoringService {
	return &ScoringService{repo: repo, publisher: publisher}
}

// HandleDealSubmitted 消费提交事件。
// 交易不存在：记录后丢弃，不再重投。
// 状态不是 RECEIVED：视为重复投递，no-op。
// 否则先以条件更新写入 SCORING 检查点，再评分并在一个事务内
// 落盘评分结果与审计事件，最后发出 deal.scored。
func (s *ScoringService) HandleDealSubmitted(ctx context.Context, evt domain.DealSubmittedEvent) error {
	logging.Info(ctx, "Scoring deal", "deal_id", evt.DealID, "correlation_id", evt.CorrelationID)

	deal, err := s.repo.GetByDealID(ctx, evt.DealID)
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			logging.Warn(ctx, "Deal not found, dropping event", "deal_id", evt.DealID)
			return nil
		}
		return fmt.Errorf("load deal %s: %w", evt.DealID, err)
	}

	if deal.Status != domain.StatusReceived {
		logging.Warn(ctx, "Deal not in RECEIVED status, skipping (idempotency)",
			"deal_id", evt.DealID, "status", deal.Status)
		return nil
	}

	claimed, err := s.repo.ClaimForScoring(ctx, evt.DealID)
	if err != nil {
		return fmt.Errorf("claim deal %s for scoring: %w", evt.DealID, err)
	}
	if !claimed {
		logging.Warn(ctx, "Deal claimed by concurrent consumer, skipping", "deal_id", evt.DealID)
		return nil
	}

	score, riskFlag := domain.ScoreDeal(evt)
	scoredAt := time.Now().UTC()

	payload, _ := json.Marshal(map[string]any{"score": score, "risk_flag": riskFlag})
	event := &domain.DealEvent{
		EventID:    fmt.Sprintf("EVT-%d", idgen.GenID()),
		DealID:     evt.DealID,
		EventType:  domain.EventDealScored,
		Payload:    string(payload),
		OccurredAt: scoredAt,
	}

	if err := s.repo.CompleteScoring(ctx, evt.DealID, score, riskFlag, scoredAt, event); err != nil {
		return fmt.Errorf("complete scoring for deal %s: %w", evt.DealID, err)
	}

	scored := domain.DealScoredEvent{
		CorrelationID: evt.CorrelationID,
		DealID:        evt.DealID,
		Score:         score,
		RiskFlag:      riskFlag,
		ScoredAt:      scoredAt,
	}
	if err := s.publisher.Publish(ctx, domain.DealScoredTopic, evt.DealID, scored); err != nil {
		return fmt.Errorf("publish deal scored: %w", err)
	}

	logging.Info(ctx, "Deal scored", "deal_id", evt.DealID, "score", score, "risk_flag", riskFlag)
	return nil
}

// RescueStaleScoring 回收滞留在 SCORING 的交易（评分中途崩溃留下的）
func (s *ScoringService) RescueStaleScoring(ctx context.Context, maxAge time.Duration) error {
	n, err := s.repo.RescueStaleScoring(ctx, maxAge)
	if err != nil {
		return err
	}
	if n > 0 {
		logging.Warn(ctx, "Rescued stale SCORING deals back to RECEIVED", "count", n, "max_age", maxAge)
	}
	return nil
}
