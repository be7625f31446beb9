package domain

import "github.com/shopspring/decimal"

var (
	amountPenaltyHigh = decimal.NewFromInt(1_000_000)
	amountPenaltyMid  = decimal.NewFromInt(500_000)
)

// creditRatingPenalty CR1 最优不扣分，逐级加重
var creditRatingPenalty = map[string]int{
	"CR1": 0,
	"CR2": -5,
	"CR3": -15,
	"CR4": -25,
	"CR5": -35,
}

// ScoreDeal 确定性评分：满分 100，按金额、期限、设备年份、信用评级
// 独立叠加扣分，结果截断到 [0,100]。
// 阈值：<50 HIGH，<75 MEDIUM，否则 LOW。
func ScoreDeal(e DealSubmittedEvent) (int, string) {
	score := 100

	switch {
	case e.Amount.GreaterThan(amountPenaltyHigh):
		score -= 35
	case e.Amount.GreaterThan(amountPenaltyMid):
		score -= 20
	}

	if e.TermMonths > 60 {
		score -= 10
	}

	if e.EquipmentYear < 2018 {
		score -= 15
	}

	score += creditRatingPenalty[e.CreditRating]

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, ClassifyScore(score)
}

// ClassifyScore 分数到风险分级的映射
func ClassifyScore(score int) string {
	switch {
	case score < 50:
		return RiskHigh
	case score < 75:
		return RiskMedium
	default:
		return RiskLow
	}
}
