package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func exposureDeal(netInvest, grossContract int64, active bool) *Deal {
	return &Deal{
		NetInvest:     decimal.NewFromInt(netInvest),
		GrossContract: decimal.NewFromInt(grossContract),
		IsActive:      active,
	}
}

func TestSummarizeExposure_ActiveOnlyExposure(t *testing.T) {
	deals := []*Deal{
		exposureDeal(195_000, 234_500, true),
		exposureDeal(58_143, 71_371, true),
		exposureDeal(120_000, 150_000, false), // 已结清交易不贡献敞口
	}

	s := SummarizeExposure(deals)

	if s.TotalDeals != 3 || s.ActiveDeals != 2 || s.PaidOffDeals != 1 {
		t.Fatalf("counts = %d/%d/%d, want 3/2/1", s.TotalDeals, s.ActiveDeals, s.PaidOffDeals)
	}
	if s.TotalDeals != s.ActiveDeals+s.PaidOffDeals {
		t.Fatal("TotalDeals must equal ActiveDeals + PaidOffDeals")
	}
	if want := decimal.NewFromInt(253_143); !s.TotalNetExposure.Equal(want) {
		t.Fatalf("TotalNetExposure = %s, want %s", s.TotalNetExposure, want)
	}
	if want := decimal.NewFromInt(305_871); !s.TotalGrossContract.Equal(want) {
		t.Fatalf("TotalGrossContract = %s, want %s", s.TotalGrossContract, want)
	}
}

func TestSummarizeExposure_NsfAndDelinquencyCoverAllDeals(t *testing.T) {
	recent := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	active := exposureDeal(100_000, 120_000, true)
	active.NsfCount = 2
	active.LastNsfDate = &older
	active.DaysPastDue = 45
	active.Past31 = decimal.NewFromInt(2_400)

	paidOff := exposureDeal(0, 0, false)
	paidOff.NsfCount = 3
	paidOff.LastNsfDate = &recent
	paidOff.Past61 = decimal.NewFromInt(1_100)
	paidOff.Past91 = decimal.NewFromInt(500)

	clean := exposureDeal(50_000, 60_000, true)

	s := SummarizeExposure([]*Deal{active, paidOff, clean})

	if s.TotalNsfCount != 5 {
		t.Fatalf("TotalNsfCount = %d, want 5", s.TotalNsfCount)
	}
	if s.DealsWithNsfs != 2 {
		t.Fatalf("DealsWithNsfs = %d, want 2", s.DealsWithNsfs)
	}
	if s.DealsDelinquent != 1 {
		t.Fatalf("DealsDelinquent = %d, want 1", s.DealsDelinquent)
	}
	if s.LastNsfDate == nil || !s.LastNsfDate.Equal(recent) {
		t.Fatalf("LastNsfDate = %v, want %v", s.LastNsfDate, recent)
	}
	if want := decimal.NewFromInt(4_000); !s.TotalPastDue.Equal(want) {
		t.Fatalf("TotalPastDue = %s, want %s", s.TotalPastDue, want)
	}
}

func TestSummarizeExposure_EmptySet(t *testing.T) {
	s := SummarizeExposure(nil)
	if s.TotalDeals != 0 || !s.TotalNetExposure.IsZero() || s.LastNsfDate != nil {
		t.Fatalf("unexpected summary for empty set: %+v", s)
	}
}
