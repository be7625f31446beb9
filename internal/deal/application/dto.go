package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// SubmitDealCmd 进件命令
type SubmitDealCmd struct {
	EquipmentType string
	EquipmentYear int
	Amount        decimal.Decimal
	TermMonths    int
	Industry      string
	Province      string
	CreditRating  string

	AppNumber                *int
	CustomerLegalName        *string
	PrimaryVendor            *string
	DealFormat               *string
	Lessor                   *string
	AccountManager           *string
	PrimaryEquipmentCategory *string
	EquipmentCost            *decimal.Decimal
	GrossContract            *decimal.Decimal
	NetInvest                *decimal.Decimal
	MonthlyPayment           *decimal.Decimal
}

// DealSummary 列表视图
type DealSummary struct {
	DealID            string          `json:"deal_id"`
	EquipmentType     string          `json:"equipment_type"`
	Amount            decimal.Decimal `json:"amount"`
	CreditRating      string          `json:"credit_rating"`
	Status            string          `json:"status"`
	Score             *int            `json:"score"`
	RiskFlag          *string         `json:"risk_flag"`
	CreatedAt         time.Time       `json:"created_at"`
	AppNumber         *int            `json:"app_number"`
	CustomerLegalName *string         `json:"customer_legal_name"`
	PrimaryVendor     *string         `json:"primary_vendor"`
	Lessor            *string         `json:"lessor"`
	IsActive          bool            `json:"is_active"`
}

// NewDealSummary 由实体构造列表视图
func NewDealSummary(d *domain.Deal) DealSummary {
	return DealSummary{
		DealID:            d.DealID,
		EquipmentType:     d.EquipmentType,
		Amount:            d.Amount,
		CreditRating:      d.CreditRating,
		Status:            d.Status,
		Score:             d.Score,
		RiskFlag:          d.RiskFlag,
		CreatedAt:         d.CreatedAt,
		AppNumber:         d.AppNumber,
		CustomerLegalName: d.CustomerLegalName,
		PrimaryVendor:     d.PrimaryVendor,
		Lessor:            d.Lessor,
		IsActive:          d.IsActive,
	}
}

// TimelineEvent 审计时间线条目
type TimelineEvent struct {
	EventType  string    `json:"event_type"`
	Payload    string    `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ExposureReport 敞口查询结果
type ExposureReport struct {
	PartyName            string                      `json:"party_name"`
	SearchType           string                      `json:"search_type"`
	Summary              domain.ExposureSummary      `json:"summary"`
	DocumentRequirements domain.DocumentRequirements `json:"document_requirements"`
	Deals                []*domain.Deal              `json:"deals"`
}
