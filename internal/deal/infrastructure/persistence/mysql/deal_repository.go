package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

type dealRepository struct{ db *gorm.DB }

func NewDealRepository(db *gorm.DB) domain.DealRepository {
	return &dealRepository{db: db}
}

// Create 交易与提交审计事件同一事务落库
func (r *dealRepository) Create(ctx context.Context, deal *domain.Deal, event *domain.DealEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(deal).Error; err != nil {
			return err
		}
		return tx.Create(event).Error
	})
}

func (r *dealRepository) GetByDealID(ctx context.Context, dealID string) (*domain.Deal, error) {
	var deal domain.Deal
	err := r.db.WithContext(ctx).Where("deal_id = ?", dealID).First(&deal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *dealRepository) List(ctx context.Context, filter domain.DealListFilter) ([]*domain.Deal, error) {
	q := r.db.WithContext(ctx).Model(&domain.Deal{})

	if filter.Status != "" {
		q = q.Where("status = ?", strings.ToUpper(filter.Status))
	}
	if filter.MinAmount != nil {
		q = q.Where("amount >= ?", filter.MinAmount)
	}
	if filter.CreditRating != "" {
		q = q.Where("credit_rating = ?", strings.ToUpper(filter.CreditRating))
	}

	var deals []*domain.Deal
	err := q.Order("created_at DESC").Find(&deals).Error
	return deals, err
}

func (r *dealRepository) ListEvents(ctx context.Context, dealID string) ([]*domain.DealEvent, error) {
	var events []*domain.DealEvent
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}

// ClaimForScoring 条件更新 RECEIVED → SCORING；RowsAffected 为 0 表示
// 已被并发消费者抢占或状态已推进
func (r *dealRepository) ClaimForScoring(ctx context.Context, dealID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Deal{}).
		Where("deal_id = ? AND status = ?", dealID, domain.StatusReceived).
		Update("status", domain.StatusScoring)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CompleteScoring 评分结果、SCORED 状态与审计事件在一个事务内提交
func (r *dealRepository) CompleteScoring(ctx context.Context, dealID string, score int, riskFlag string, scoredAt time.Time, event *domain.DealEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Deal{}).
			Where("deal_id = ? AND status = ?", dealID, domain.StatusScoring).
			Updates(map[string]any{
				"score":      score,
				"risk_flag":  riskFlag,
				"status":     domain.StatusScored,
				"updated_at": scoredAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("deal %s is not in %s status", dealID, domain.StatusScoring)
		}
		return tx.Create(event).Error
	})
}

func (r *dealRepository) RescueStaleScoring(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	res := r.db.WithContext(ctx).Model(&domain.Deal{}).
		Where("status = ? AND updated_at < ?", domain.StatusScoring, cutoff).
		Update("status", domain.StatusReceived)
	return res.RowsAffected, res.Error
}

// SearchByParty 大小写不敏感子串匹配；排序是查询契约：活跃优先，净投资额降序
func (r *dealRepository) SearchByParty(ctx context.Context, searchType domain.ExposureSearchType, name string, includeInactive bool) ([]*domain.Deal, error) {
	pattern := "%" + strings.ToLower(name) + "%"

	q := r.db.WithContext(ctx).Model(&domain.Deal{})
	switch searchType {
	case domain.SearchByCustomer:
		q = q.Where("customer_legal_name IS NOT NULL AND LOWER(customer_legal_name) LIKE ?", pattern)
	case domain.SearchByVendor:
		q = q.Where("primary_vendor IS NOT NULL AND LOWER(primary_vendor) LIKE ?", pattern)
	default:
		return nil, fmt.Errorf("unknown exposure search type %q", searchType)
	}

	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var deals []*domain.Deal
	err := q.Order("is_active DESC").Order("net_invest DESC").Find(&deals).Error
	return deals, err
}
