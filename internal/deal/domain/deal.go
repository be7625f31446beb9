package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 交易生命周期状态，只能单向推进：RECEIVED → SCORING → SCORED → NOTIFIED
const (
	StatusReceived = "RECEIVED"
	StatusScoring  = "SCORING"
	StatusScored   = "SCORED"
	StatusNotified = "NOTIFIED"
)

// 风险分级
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// 审批状态（业务侧视图，不参与评分流水线）
const (
	AppStatusCreditValidation    = "CREDIT_VALIDATION"
	AppStatusCreditReview        = "CREDIT_REVIEW"
	AppStatusAutoscoringApproved = "AUTOSCORING_APPROVED"
	AppStatusAutoscoringDeclined = "AUTOSCORING_DECLINED"
	AppStatusMissingInfo         = "MISSING_INFO"
	AppStatusDealDeclined        = "DEAL_DECLINED"
	AppStatusFunded              = "FUNDED"
	AppStatusPaidOff             = "PAID_OFF"
)

// 交易来源形式
const (
	DealFormatVendor = "VENDOR"
	DealFormatBroker = "BROKER"
)

// 信用评级，CR1 最优，CR5 最差
var ValidCreditRatings = []string{"CR1", "CR2", "CR3", "CR4", "CR5"}

// Deal 设备融资交易实体
type Deal struct {
	gorm.Model
	DealID        string `gorm:"column:deal_id;type:varchar(32);uniqueIndex;not null" json:"deal_id"`
	CorrelationID string `gorm:"column:correlation_id;type:varchar(32);index;not null" json:"correlation_id"`

	// 申请属性
	EquipmentType string          `gorm:"column:equipment_type;type:varchar(100);not null" json:"equipment_type"`
	EquipmentYear int             `gorm:"column:equipment_year;not null" json:"equipment_year"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	TermMonths    int             `gorm:"column:term_months;not null" json:"term_months"`
	Industry      string          `gorm:"column:industry;type:varchar(100);not null" json:"industry"`
	Province      string          `gorm:"column:province;type:varchar(50);not null" json:"province"`
	CreditRating  string          `gorm:"column:credit_rating;type:varchar(10);not null" json:"credit_rating"`

	// 生命周期与评分结果
	Status   string  `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	Score    *int    `gorm:"column:score" json:"score"`
	RiskFlag *string `gorm:"column:risk_flag;type:varchar(10)" json:"risk_flag"`

	// 业务侧视图字段
	AppNumber                *int    `gorm:"column:app_number" json:"app_number"`
	AppStatus                *string `gorm:"column:app_status;type:varchar(30)" json:"app_status"`
	CustomerLegalName        *string `gorm:"column:customer_legal_name;type:varchar(200);index:idx_exposure_lookup,priority:1" json:"customer_legal_name"`
	PrimaryVendor            *string `gorm:"column:primary_vendor;type:varchar(200);index:idx_exposure_lookup,priority:2" json:"primary_vendor"`
	DealFormat               *string `gorm:"column:deal_format;type:varchar(20)" json:"deal_format"`
	Lessor                   *string `gorm:"column:lessor;type:varchar(100)" json:"lessor"`
	AccountManager           *string `gorm:"column:account_manager;type:varchar(100)" json:"account_manager"`
	PrimaryEquipmentCategory *string `gorm:"column:primary_equipment_category;type:varchar(100)" json:"primary_equipment_category"`

	// 财务字段
	EquipmentCost     decimal.Decimal `gorm:"column:equipment_cost;type:decimal(18,2);not null;default:0" json:"equipment_cost"`
	GrossContract     decimal.Decimal `gorm:"column:gross_contract;type:decimal(18,2);not null;default:0" json:"gross_contract"`
	NetInvest         decimal.Decimal `gorm:"column:net_invest;type:decimal(18,2);not null;default:0" json:"net_invest"`
	MonthlyPayment    decimal.Decimal `gorm:"column:monthly_payment;type:decimal(18,2);not null;default:0" json:"monthly_payment"`
	PaymentsMade      int             `gorm:"column:payments_made;not null;default:0" json:"payments_made"`
	RemainingPayments int             `gorm:"column:remaining_payments;not null;default:0" json:"remaining_payments"`
	BookingDate       *time.Time      `gorm:"column:booking_date" json:"booking_date"`
	FinalPaymentDate  *time.Time      `gorm:"column:final_payment_date" json:"final_payment_date"`
	IsActive          bool            `gorm:"column:is_active;index:idx_exposure_lookup,priority:3;not null;default:true" json:"is_active"`

	// NSF 与逾期字段
	NsfCount    int             `gorm:"column:nsf_count;not null;default:0" json:"nsf_count"`
	LastNsfDate *time.Time      `gorm:"column:last_nsf_date" json:"last_nsf_date"`
	DaysPastDue int             `gorm:"column:days_past_due;not null;default:0" json:"days_past_due"`
	Past1       decimal.Decimal `gorm:"column:past_1;type:decimal(18,2);not null;default:0" json:"past_1"`
	Past31      decimal.Decimal `gorm:"column:past_31;type:decimal(18,2);not null;default:0" json:"past_31"`
	Past61      decimal.Decimal `gorm:"column:past_61;type:decimal(18,2);not null;default:0" json:"past_61"`
	Past91      decimal.Decimal `gorm:"column:past_91;type:decimal(18,2);not null;default:0" json:"past_91"`
}

func (Deal) TableName() string { return "deals" }

// TotalPastDue 四个账龄桶合计
func (d *Deal) TotalPastDue() decimal.Decimal {
	return d.Past1.Add(d.Past31).Add(d.Past61).Add(d.Past91)
}

// DealEvent 审计事件，仅追加，写入后不可变更
type DealEvent struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	EventID    string    `gorm:"column:event_id;type:varchar(32);uniqueIndex;not null" json:"event_id"`
	DealID     string    `gorm:"column:deal_id;type:varchar(32);index;not null" json:"deal_id"`
	EventType  string    `gorm:"column:event_type;type:varchar(50);not null" json:"event_type"`
	Payload    string    `gorm:"column:payload;type:text" json:"payload"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
}

func (DealEvent) TableName() string { return "deal_events" }

// 审计事件类型
const (
	EventDealSubmitted = "DealSubmitted"
	EventDealScored    = "DealScored"
)

// IsValidCreditRating 校验信用评级取值
func IsValidCreditRating(r string) bool {
	for _, v := range ValidCreditRatings {
		if v == r {
			return true
		}
	}
	return false
}
