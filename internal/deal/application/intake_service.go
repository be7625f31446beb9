package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/logging"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// IntakeService 进件应用服务：创建 RECEIVED 交易并发出提交事件
type IntakeService struct {
	repo      domain.DealRepository
	publisher domain.EventPublisher
}

func NewIntakeService(repo domain.DealRepository, publisher domain.EventPublisher) *IntakeService {
	return &IntakeService{repo: repo, publisher: publisher}
}

// SubmitDeal 落库 + 审计事件同事务，提交后发布 deal.submitted
func (s *IntakeService) SubmitDeal(ctx context.Context, cmd SubmitDealCmd) (*domain.Deal, error) {
	now := time.Now().UTC()

	deal := &domain.Deal{
		DealID:                   fmt.Sprintf("DEAL-%d", idgen.GenID()),
		CorrelationID:            fmt.Sprintf("CORR-%d", idgen.GenID()),
		EquipmentType:            cmd.EquipmentType,
		EquipmentYear:            cmd.EquipmentYear,
		Amount:                   cmd.Amount,
		TermMonths:               cmd.TermMonths,
		Industry:                 cmd.Industry,
		Province:                 cmd.Province,
		CreditRating:             cmd.CreditRating,
		Status:                   domain.StatusReceived,
		AppNumber:                cmd.AppNumber,
		CustomerLegalName:        cmd.CustomerLegalName,
		PrimaryVendor:            cmd.PrimaryVendor,
		DealFormat:               cmd.DealFormat,
		Lessor:                   cmd.Lessor,
		AccountManager:           cmd.AccountManager,
		PrimaryEquipmentCategory: cmd.PrimaryEquipmentCategory,
		EquipmentCost:            valueOrZero(cmd.EquipmentCost),
		GrossContract:            valueOrZero(cmd.GrossContract),
		NetInvest:                valueOrZero(cmd.NetInvest),
		MonthlyPayment:           valueOrZero(cmd.MonthlyPayment),
		IsActive:                 true,
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("marshal submission payload: %w", err)
	}

	event := &domain.DealEvent{
		EventID:    fmt.Sprintf("EVT-%d", idgen.GenID()),
		DealID:     deal.DealID,
		EventType:  domain.EventDealSubmitted,
		Payload:    string(payload),
		OccurredAt: now,
	}

	if err := s.repo.Create(ctx, deal, event); err != nil {
		return nil, fmt.Errorf("create deal: %w", err)
	}

	submitted := domain.DealSubmittedEvent{
		CorrelationID: deal.CorrelationID,
		DealID:        deal.DealID,
		Amount:        deal.Amount,
		TermMonths:    deal.TermMonths,
		EquipmentYear: deal.EquipmentYear,
		CreditRating:  deal.CreditRating,
		Industry:      deal.Industry,
		Province:      deal.Province,
	}
	if err := s.publisher.Publish(ctx, domain.DealSubmittedTopic, deal.DealID, submitted); err != nil {
		logging.Error(ctx, "Failed to publish deal submitted event", "deal_id", deal.DealID, "error", err)
		return nil, fmt.Errorf("publish deal submitted: %w", err)
	}

	logging.Info(ctx, "Deal submitted", "deal_id", deal.DealID, "correlation_id", deal.CorrelationID)
	return deal, nil
}

// GetDeal 按交易 id 查询
func (s *IntakeService) GetDeal(ctx context.Context, dealID string) (*domain.Deal, error) {
	return s.repo.GetByDealID(ctx, dealID)
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
