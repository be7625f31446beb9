package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kafka 主题
const (
	DealSubmittedTopic  = "deal.submitted"
	DealScoredTopic     = "deal.scored"
	DealDeadLetterTopic = "deal.dlq"
)

// DealSubmittedEvent 提交事件，进件服务发出，评分 worker 消费
type DealSubmittedEvent struct {
	CorrelationID string          `json:"correlation_id"`
	DealID        string          `json:"deal_id"`
	Amount        decimal.Decimal `json:"amount"`
	TermMonths    int             `json:"term_months"`
	EquipmentYear int             `json:"equipment_year"`
	CreditRating  string          `json:"credit_rating"`
	Industry      string          `json:"industry"`
	Province      string          `json:"province"`
}

// DealScoredEvent 评分完成事件，评分 worker 发出，通知 worker 消费
type DealScoredEvent struct {
	CorrelationID string    `json:"correlation_id"`
	DealID        string    `json:"deal_id"`
	Score         int       `json:"score"`
	RiskFlag      string    `json:"risk_flag"`
	ScoredAt      time.Time `json:"scored_at"`
}
