package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// 走完 提交 → 评分 的完整链路后检查时间线顺序
func TestTimeline_OrderedBySubmissionThenScore(t *testing.T) {
	repo := newFakeDealRepo()
	pub := &fakePublisher{}
	intake := NewIntakeService(repo, pub)
	scoring := NewScoringService(repo, pub)
	reporting := NewReportingService(repo)

	created, err := intake.SubmitDeal(context.Background(), SubmitDealCmd{
		EquipmentType: "CNC Machine",
		EquipmentYear: 2021,
		Amount:        decimal.NewFromInt(320_000),
		TermMonths:    48,
		Industry:      "Manufacturing",
		Province:      "QC",
		CreditRating:  "CR3",
	})
	if err != nil {
		t.Fatalf("SubmitDeal: %v", err)
	}

	submitted := pub.byTopic(domain.DealSubmittedTopic)[0].event.(domain.DealSubmittedEvent)
	if err := scoring.HandleDealSubmitted(context.Background(), submitted); err != nil {
		t.Fatalf("HandleDealSubmitted: %v", err)
	}

	timeline, err := reporting.Timeline(context.Background(), created.DealID)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("timeline has %d events, want 2", len(timeline))
	}
	if timeline[0].EventType != domain.EventDealSubmitted {
		t.Fatalf("first event = %s, want %s", timeline[0].EventType, domain.EventDealSubmitted)
	}
	if timeline[1].EventType != domain.EventDealScored {
		t.Fatalf("second event = %s, want %s", timeline[1].EventType, domain.EventDealScored)
	}
	if timeline[1].OccurredAt.Before(timeline[0].OccurredAt) {
		t.Fatal("timeline must be ordered by occurred_at ascending")
	}
}

func TestTimeline_UnknownDeal(t *testing.T) {
	reporting := NewReportingService(newFakeDealRepo())

	if _, err := reporting.Timeline(context.Background(), "DEAL-nope"); !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("err = %v, want ErrDealNotFound", err)
	}
}

func TestListDeals_Filters(t *testing.T) {
	repo := newFakeDealRepo()
	intake := NewIntakeService(repo, &fakePublisher{})
	reporting := NewReportingService(repo)

	seed := []SubmitDealCmd{
		{EquipmentType: "Loader", EquipmentYear: 2022, Amount: decimal.NewFromInt(90_000), TermMonths: 36, Industry: "Construction", Province: "ON", CreditRating: "CR1"},
		{EquipmentType: "Dozer", EquipmentYear: 2020, Amount: decimal.NewFromInt(450_000), TermMonths: 60, Industry: "Construction", Province: "BC", CreditRating: "CR2"},
		{EquipmentType: "Crane", EquipmentYear: 2019, Amount: decimal.NewFromInt(820_000), TermMonths: 72, Industry: "Construction", Province: "AB", CreditRating: "CR2"},
	}
	for _, cmd := range seed {
		if _, err := intake.SubmitDeal(context.Background(), cmd); err != nil {
			t.Fatalf("seed submit: %v", err)
		}
	}

	all, err := reporting.ListDeals(context.Background(), domain.DealListFilter{})
	if err != nil {
		t.Fatalf("ListDeals: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered list has %d deals, want 3", len(all))
	}

	min := decimal.NewFromInt(400_000)
	big, err := reporting.ListDeals(context.Background(), domain.DealListFilter{MinAmount: &min})
	if err != nil {
		t.Fatalf("ListDeals minAmount: %v", err)
	}
	if len(big) != 2 {
		t.Fatalf("minAmount filter returned %d deals, want 2", len(big))
	}

	cr2, err := reporting.ListDeals(context.Background(), domain.DealListFilter{CreditRating: "cr2", MinAmount: &min})
	if err != nil {
		t.Fatalf("ListDeals combined: %v", err)
	}
	if len(cr2) != 2 {
		t.Fatalf("combined filter returned %d deals, want 2", len(cr2))
	}

	none, err := reporting.ListDeals(context.Background(), domain.DealListFilter{Status: domain.StatusScored})
	if err != nil {
		t.Fatalf("ListDeals status: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("status filter returned %d deals, want 0", len(none))
	}
}
