package application

import (
	"context"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// ReportingService 交易列表与审计时间线查询，只读
type ReportingService struct {
	repo domain.DealRepository
}

func NewReportingService(repo domain.DealRepository) *ReportingService {
	return &ReportingService{repo: repo}
}

// ListDeals 条件过滤，创建时间降序
func (s *ReportingService) ListDeals(ctx context.Context, filter domain.DealListFilter) ([]DealSummary, error) {
	deals, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	summaries := make([]DealSummary, 0, len(deals))
	for _, d := range deals {
		summaries = append(summaries, NewDealSummary(d))
	}
	return summaries, nil
}

// Timeline 审计事件时间线，occurred_at 升序；交易不存在返回 ErrDealNotFound
func (s *ReportingService) Timeline(ctx context.Context, dealID string) ([]TimelineEvent, error) {
	if _, err := s.repo.GetByDealID(ctx, dealID); err != nil {
		return nil, err
	}

	events, err := s.repo.ListEvents(ctx, dealID)
	if err != nil {
		return nil, err
	}

	timeline := make([]TimelineEvent, 0, len(events))
	for _, e := range events {
		timeline = append(timeline, TimelineEvent{
			EventType:  e.EventType,
			Payload:    e.Payload,
			OccurredAt: e.OccurredAt,
		})
	}
	return timeline, nil
}
