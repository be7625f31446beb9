package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// 文档要求分层
const (
	TierStandard   = "Standard"
	TierEnhanced   = "Enhanced"
	TierFullReview = "FullReview"
)

// DocumentPolicy 敞口阈值配置，构造后不可变。
// 阈值为闭区间下界：敞口恰好等于阈值即落入该层。
type DocumentPolicy struct {
	EnhancedThreshold   decimal.Decimal
	FullReviewThreshold decimal.Decimal
}

// DefaultDocumentPolicy 默认阈值：25 万进入 Enhanced，100 万进入 FullReview
func DefaultDocumentPolicy() DocumentPolicy {
	return DocumentPolicy{
		EnhancedThreshold:   decimal.NewFromInt(250_000),
		FullReviewThreshold: decimal.NewFromInt(1_000_000),
	}
}

// DocumentRequirements 按总净敞口得出的支持文档要求
type DocumentRequirements struct {
	Tier             string          `json:"tier"`
	TotalNetExposure decimal.Decimal `json:"total_net_exposure"`
	Requirements     []string        `json:"requirements"`
	Note             string          `json:"note"`
}

// Evaluate 由总净敞口计算文档要求层级
func (p DocumentPolicy) Evaluate(totalNetExposure decimal.Decimal) DocumentRequirements {
	if totalNetExposure.GreaterThanOrEqual(p.FullReviewThreshold) {
		return DocumentRequirements{
			Tier:             TierFullReview,
			TotalNetExposure: totalNetExposure,
			Requirements: []string{
				"3-year financial statements required",
				"Interim financial statements required",
				"Spreads analysis required",
			},
			Note: fmt.Sprintf("Exposure $%s exceeds $%s threshold",
				totalNetExposure.StringFixed(2), p.FullReviewThreshold.StringFixed(0)),
		}
	}

	if totalNetExposure.GreaterThanOrEqual(p.EnhancedThreshold) {
		return DocumentRequirements{
			Tier:             TierEnhanced,
			TotalNetExposure: totalNetExposure,
			Requirements: []string{
				"Bank statements or financial statements required",
			},
			Note: fmt.Sprintf("Exposure $%s exceeds $%s threshold",
				totalNetExposure.StringFixed(2), p.EnhancedThreshold.StringFixed(0)),
		}
	}

	return DocumentRequirements{
		Tier:             TierStandard,
		TotalNetExposure: totalNetExposure,
		Requirements:     []string{},
		Note:             "No additional documents required",
	}
}
