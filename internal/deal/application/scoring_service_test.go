package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

func seedReceivedDeal(t *testing.T, repo *fakeDealRepo) *domain.Deal {
	t.Helper()
	deal := &domain.Deal{
		DealID:        "DEAL-100",
		CorrelationID: "CORR-100",
		EquipmentType: "Excavator",
		EquipmentYear: 2022,
		Amount:        decimal.NewFromInt(750_000),
		TermMonths:    48,
		Industry:      "Construction",
		Province:      "ON",
		CreditRating:  "CR1",
		Status:        domain.StatusReceived,
	}
	event := &domain.DealEvent{
		EventID:    "EVT-100",
		DealID:     deal.DealID,
		EventType:  domain.EventDealSubmitted,
		Payload:    "{}",
		OccurredAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), deal, event); err != nil {
		t.Fatalf("seed deal: %v", err)
	}
	return deal
}

func submittedEventFor(d *domain.Deal) domain.DealSubmittedEvent {
	return domain.DealSubmittedEvent{
		CorrelationID: d.CorrelationID,
		DealID:        d.DealID,
		Amount:        d.Amount,
		TermMonths:    d.TermMonths,
		EquipmentYear: d.EquipmentYear,
		CreditRating:  d.CreditRating,
		Industry:      d.Industry,
		Province:      d.Province,
	}
}

func TestHandleDealSubmitted_ScoresAndPublishes(t *testing.T) {
	repo := newFakeDealRepo()
	pub := &fakePublisher{}
	svc := NewScoringService(repo, pub)

	deal := seedReceivedDeal(t, repo)

	if err := svc.HandleDealSubmitted(context.Background(), submittedEventFor(deal)); err != nil {
		t.Fatalf("HandleDealSubmitted: %v", err)
	}

	got, err := repo.GetByDealID(context.Background(), deal.DealID)
	if err != nil {
		t.Fatalf("GetByDealID: %v", err)
	}
	if got.Status != domain.StatusScored {
		t.Fatalf("status = %s, want %s", got.Status, domain.StatusScored)
	}
	if got.Score == nil || *got.Score != 80 {
		t.Fatalf("score = %v, want 80", got.Score)
	}
	if got.RiskFlag == nil || *got.RiskFlag != domain.RiskLow {
		t.Fatalf("riskFlag = %v, want %s", got.RiskFlag, domain.RiskLow)
	}

	published := pub.byTopic(domain.DealScoredTopic)
	if len(published) != 1 {
		t.Fatalf("published %d scored events, want 1", len(published))
	}
	scored, ok := published[0].event.(domain.DealScoredEvent)
	if !ok {
		t.Fatalf("published event has type %T", published[0].event)
	}
	if scored.CorrelationID != deal.CorrelationID || scored.Score != 80 {
		t.Fatalf("unexpected scored event: %+v", scored)
	}
}

func TestHandleDealSubmitted_DuplicateDeliveryIsNoOp(t *testing.T) {
	repo := newFakeDealRepo()
	pub := &fakePublisher{}
	svc := NewScoringService(repo, pub)

	deal := seedReceivedDeal(t, repo)
	evt := submittedEventFor(deal)

	for i := 0; i < 3; i++ {
		if err := svc.HandleDealSubmitted(context.Background(), evt); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	if got := repo.eventsOfType(domain.EventDealScored); len(got) != 1 {
		t.Fatalf("recorded %d DealScored audit events, want exactly 1", len(got))
	}
	if got := pub.byTopic(domain.DealScoredTopic); len(got) != 1 {
		t.Fatalf("published %d scored events, want exactly 1", len(got))
	}

	d, _ := repo.GetByDealID(context.Background(), deal.DealID)
	if d.Status != domain.StatusScored {
		t.Fatalf("status = %s, want %s", d.Status, domain.StatusScored)
	}
}

func TestHandleDealSubmitted_UnknownDealIsDropped(t *testing.T) {
	repo := newFakeDealRepo()
	pub := &fakePublisher{}
	svc := NewScoringService(repo, pub)

	evt := domain.DealSubmittedEvent{DealID: "DEAL-missing", CorrelationID: "CORR-x", CreditRating: "CR1"}
	if err := svc.HandleDealSubmitted(context.Background(), evt); err != nil {
		t.Fatalf("expected drop without error, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatalf("published %d events, want 0", len(pub.published))
	}
}

func TestRescueStaleScoring(t *testing.T) {
	repo := newFakeDealRepo()
	svc := NewScoringService(repo, &fakePublisher{})

	deal := seedReceivedDeal(t, repo)
	if _, err := repo.ClaimForScoring(context.Background(), deal.DealID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	repo.mu.Lock()
	repo.deals[deal.DealID].UpdatedAt = time.Now().UTC().Add(-10 * time.Minute)
	repo.mu.Unlock()

	if err := svc.RescueStaleScoring(context.Background(), 5*time.Minute); err != nil {
		t.Fatalf("RescueStaleScoring: %v", err)
	}

	d, _ := repo.GetByDealID(context.Background(), deal.DealID)
	if d.Status != domain.StatusReceived {
		t.Fatalf("status = %s, want %s after rescue", d.Status, domain.StatusReceived)
	}
}
