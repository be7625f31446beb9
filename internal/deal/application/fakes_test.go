package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

// fakeDealRepo 内存仓储，复刻 mysql 实现的查询契约，测试无需数据库
type fakeDealRepo struct {
	mu     sync.Mutex
	deals  map[string]*domain.Deal
	events []*domain.DealEvent
}

func newFakeDealRepo() *fakeDealRepo {
	return &fakeDealRepo{deals: map[string]*domain.Deal{}}
}

func (r *fakeDealRepo) Create(_ context.Context, deal *domain.Deal, event *domain.DealEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *deal
	stored.CreatedAt = time.Now().UTC()
	r.deals[deal.DealID] = &stored
	r.events = append(r.events, event)
	return nil
}

func (r *fakeDealRepo) GetByDealID(_ context.Context, dealID string) (*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deals[dealID]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDealRepo) List(_ context.Context, filter domain.DealListFilter) ([]*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Deal
	for _, d := range r.deals {
		if filter.Status != "" && d.Status != strings.ToUpper(filter.Status) {
			continue
		}
		if filter.MinAmount != nil && d.Amount.LessThan(*filter.MinAmount) {
			continue
		}
		if filter.CreditRating != "" && d.CreditRating != strings.ToUpper(filter.CreditRating) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeDealRepo) ListEvents(_ context.Context, dealID string) ([]*domain.DealEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.DealEvent
	for _, e := range r.events {
		if e.DealID == dealID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (r *fakeDealRepo) ClaimForScoring(_ context.Context, dealID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deals[dealID]
	if !ok || d.Status != domain.StatusReceived {
		return false, nil
	}
	d.Status = domain.StatusScoring
	d.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *fakeDealRepo) CompleteScoring(_ context.Context, dealID string, score int, riskFlag string, scoredAt time.Time, event *domain.DealEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deals[dealID]
	if !ok || d.Status != domain.StatusScoring {
		return domain.ErrDealNotFound
	}
	d.Score = &score
	d.RiskFlag = &riskFlag
	d.Status = domain.StatusScored
	d.UpdatedAt = scoredAt
	r.events = append(r.events, event)
	return nil
}

func (r *fakeDealRepo) RescueStaleScoring(_ context.Context, maxAge time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().UTC().Add(-maxAge)
	var n int64
	for _, d := range r.deals {
		if d.Status == domain.StatusScoring && d.UpdatedAt.Before(cutoff) {
			d.Status = domain.StatusReceived
			n++
		}
	}
	return n, nil
}

func (r *fakeDealRepo) SearchByParty(_ context.Context, searchType domain.ExposureSearchType, name string, includeInactive bool) ([]*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(name)

	var out []*domain.Deal
	for _, d := range r.deals {
		var field *string
		if searchType == domain.SearchByCustomer {
			field = d.CustomerLegalName
		} else {
			field = d.PrimaryVendor
		}
		if field == nil || !strings.Contains(strings.ToLower(*field), needle) {
			continue
		}
		if !includeInactive && !d.IsActive {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsActive != out[j].IsActive {
			return out[i].IsActive
		}
		return out[i].NetInvest.GreaterThan(out[j].NetInvest)
	})
	return out, nil
}

func (r *fakeDealRepo) eventsOfType(eventType string) []*domain.DealEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.DealEvent
	for _, e := range r.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fakePublisher 记录所有发布的事件
type fakePublisher struct {
	mu        sync.Mutex
	published []publishedEvent
}

type publishedEvent struct {
	topic string
	key   string
	event any
}

func (p *fakePublisher) Publish(_ context.Context, topic string, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

func (p *fakePublisher) byTopic(topic string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.published {
		if e.topic == topic {
			out = append(out, e)
		}
	}
	return out
}

// fakeSender 记录通知投递，可注入失败
type fakeSender struct {
	mu    sync.Mutex
	sent  []string
	fail  error
	calls int
}

func (s *fakeSender) Send(_ context.Context, _ string, subject string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, subject)
	return nil
}
