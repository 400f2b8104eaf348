package service

import (
	"context"
	"time"

	"github.com/courseforge/courseforge/internal/api/dto"
	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/sourcegraph/conc/pool"
)

const dashboardCacheExpiry = 60 * time.Second

// DashboardService aggregates the admin dashboard metrics. The
// sub-aggregations are independent reads; they run concurrently and join
// before responding.
type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{ServiceParams: params}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	cacheKey := cache.GenerateKey(cache.PrefixDashboard, "summary")
	if cached, ok := s.Cache.Get(ctx, cacheKey); ok {
		if resp, ok := cached.(*dto.DashboardResponse); ok {
			return resp, nil
		}
	}

	resp := &dto.DashboardResponse{}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		count, err := s.UserRepo.Count(ctx)
		if err != nil {
			return err
		}
		resp.TotalUsers = count
		return nil
	})
	p.Go(func(ctx context.Context) error {
		count, err := s.CourseRepo.Count(ctx)
		if err != nil {
			return err
		}
		resp.TotalCourses = count
		return nil
	})
	p.Go(func(ctx context.Context) error {
		count, err := s.PaymentRepo.Count(ctx, &types.PaymentFilter{})
		if err != nil {
			return err
		}
		resp.TotalPayments = count
		return nil
	})
	p.Go(func(ctx context.Context) error {
		total, err := s.PaymentRepo.SumAmount(ctx)
		if err != nil {
			return err
		}
		resp.TotalRevenue = total
		return nil
	})
	p.Go(func(ctx context.Context) error {
		counts, err := s.RefundRepo.CountByStatus(ctx)
		if err != nil {
			return err
		}
		resp.RefundCounts = counts
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, cacheKey, resp, dashboardCacheExpiry)
	return resp, nil
}
