package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExposureSummary 客户/供应商敞口汇总
type ExposureSummary struct {
	TotalDeals         int             `json:"total_deals"`
	ActiveDeals        int             `json:"active_deals"`
	PaidOffDeals       int             `json:"paid_off_deals"`
	TotalNetExposure   decimal.Decimal `json:"total_net_exposure"`
	TotalGrossContract decimal.Decimal `json:"total_gross_contract"`
	TotalNsfCount      int             `json:"total_nsf_count"`
	LastNsfDate        *time.Time      `json:"last_nsf_date"`
	DealsWithNsfs      int             `json:"deals_with_nsfs"`
	DealsDelinquent    int             `json:"deals_delinquent"`
	TotalPastDue       decimal.Decimal `json:"total_past_due"`
}

// SummarizeExposure 在匹配集上聚合敞口。
// 净敞口与合同总额只计活跃交易；NSF 与逾期统计覆盖全部匹配交易。
func SummarizeExposure(deals []*Deal) ExposureSummary {
	s := ExposureSummary{
		TotalDeals:         len(deals),
		TotalNetExposure:   decimal.Zero,
		TotalGrossContract: decimal.Zero,
		TotalPastDue:       decimal.Zero,
	}

	for _, d := range deals {
		if d.IsActive {
			s.ActiveDeals++
			s.TotalNetExposure = s.TotalNetExposure.Add(d.NetInvest)
			s.TotalGrossContract = s.TotalGrossContract.Add(d.GrossContract)
		} else {
			s.PaidOffDeals++
		}

		s.TotalNsfCount += d.NsfCount
		if d.NsfCount > 0 {
			s.DealsWithNsfs++
		}
		if d.DaysPastDue > 0 {
			s.DealsDelinquent++
		}
		s.TotalPastDue = s.TotalPastDue.Add(d.TotalPastDue())

		if d.LastNsfDate != nil {
			if s.LastNsfDate == nil || d.LastNsfDate.After(*s.LastNsfDate) {
				t := *d.LastNsfDate
				s.LastNsfDate = &t
			}
		}
	}

	return s
}
