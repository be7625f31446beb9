package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

var (
	// ErrInvalidSearchType searchType 不是 customer / vendor
	ErrInvalidSearchType = errors.New("searchType must be 'customer' or 'vendor'")
	// ErrMissingPartyName name 参数缺失
	ErrMissingPartyName = errors.New("name parameter is required")
)

// ExposureService 敞口查询应用服务，纯只读，不参与流水线
type ExposureService struct {
	repo   domain.DealRepository
	policy domain.DocumentPolicy
}

func NewExposureService(repo domain.DealRepository, policy domain.DocumentPolicy) *ExposureService {
	return &ExposureService{repo: repo, policy: policy}
}

// Lookup 按客户或供应商名称聚合敞口。
// 没有任何匹配时返回 (nil, nil)，与聚合为零的结果区分开。
func (s *ExposureService) Lookup(ctx context.Context, searchType, name string, includePastDeals bool) (*ExposureReport, error) {
	if name == "" {
		return nil, ErrMissingPartyName
	}

	st := domain.ExposureSearchType(searchType)
	if st != domain.SearchByCustomer && st != domain.SearchByVendor {
		return nil, ErrInvalidSearchType
	}

	deals, err := s.repo.SearchByParty(ctx, st, name, includePastDeals)
	if err != nil {
		return nil, fmt.Errorf("search deals by %s: %w", searchType, err)
	}

	if len(deals) == 0 {
		return nil, nil
	}

	summary := domain.SummarizeExposure(deals)

	partyName := name
	if st == domain.SearchByCustomer {
		if deals[0].CustomerLegalName != nil {
			partyName = *deals[0].CustomerLegalName
		}
	} else if deals[0].PrimaryVendor != nil {
		partyName = *deals[0].PrimaryVendor
	}

	return &ExposureReport{
		PartyName:            partyName,
		SearchType:           searchType,
		Summary:              summary,
		DocumentRequirements: s.policy.Evaluate(summary.TotalNetExposure),
		Deals:                deals,
	}, nil
}
