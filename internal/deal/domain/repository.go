package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrDealNotFound 按 id 查询不到交易
	ErrDealNotFound = errors.New("deal not found")
)

// ExposureSearchType 敞口查询维度
type ExposureSearchType string

const (
	SearchByCustomer ExposureSearchType = "customer"
	SearchByVendor   ExposureSearchType = "vendor"
)

// DealListFilter 交易列表过滤条件
type DealListFilter struct {
	Status       string
	MinAmount    *decimal.Decimal
	CreditRating string
}

// DealRepository 交易仓储接口
type DealRepository interface {
	Create(ctx context.Context, deal *Deal, event *DealEvent) error
	GetByDealID(ctx context.Context, dealID string) (*Deal, error)
	List(ctx context.Context, filter DealListFilter) ([]*Deal, error)
	ListEvents(ctx context.Context, dealID string) ([]*DealEvent, error)

	// ClaimForScoring 条件更新 RECEIVED → SCORING，返回是否抢占成功。
	// 并发的重复投递只会有一个调用方拿到 true。
	ClaimForScoring(ctx context.Context, dealID string) (bool, error)
	// CompleteScoring 在同一事务内写入评分结果、SCORED 状态与审计事件
	CompleteScoring(ctx context.Context, dealID string, score int, riskFlag string, scoredAt time.Time, event *DealEvent) error
	// RescueStaleScoring 将滞留 SCORING 超过 maxAge 的交易回退为 RECEIVED，
	// 等待 broker 重投后重新进入评分流程
	RescueStaleScoring(ctx context.Context, maxAge time.Duration) (int64, error)

	// SearchByParty 大小写不敏感的子串匹配，排序为活跃优先、净投资额降序
	SearchByParty(ctx context.Context, searchType ExposureSearchType, name string, includeInactive bool) ([]*Deal, error)
}

// EventPublisher 管道事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// Sender 通知发送通道（尽力而为，失败不回传管道）
type Sender interface {
	Send(ctx context.Context, target string, subject string, content string) error
}
