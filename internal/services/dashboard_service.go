package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/NCHRD-2025/training-service/internal/cache"
	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/utils"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
	cache  *cache.CacheManager
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger, cm *cache.CacheManager) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
		cache:  cm,
	}
}

func (s *dashboardService) Overview(ctx context.Context, actor *models.Principal) (*DashboardOverview, error) {
	// The dashboard is a read over reports; the same read right gates it.
	if !policy.Check(actor, policy.ActionRead, policy.ResourceReports) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceReports), "read")
	}

	fetch := func() (interface{}, error) {
		return s.computeOverview(ctx)
	}

	if s.cache != nil {
		var overview DashboardOverview
		key := "overview:" + time.Now().UTC().Format(DailyPeriodLayout)
		err := s.cache.Dashboard.CacheOrExecute(ctx, key, &overview, cache.DashboardCacheConfig.TTL, fetch)
		if err != nil {
			return nil, err
		}
		return &overview, nil
	}

	return s.computeOverview(ctx)
}

func (s *dashboardService) computeOverview(ctx context.Context) (*DashboardOverview, error) {
	counts, err := s.repo.Dashboard().GetOverviewCounts(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	totals, err := s.repo.Dashboard().GetAttendanceTotalsForDate(ctx, time.Now().UTC())
	if err != nil {
		return nil, mapRepoError(err)
	}

	var rate float64
	if totals.TotalRecords > 0 {
		rate = utils.RoundFloat(float64(totals.Present)/float64(totals.TotalRecords)*100, 2)
	}

	return &DashboardOverview{
		Companies:          counts.Companies,
		Students:           counts.Students,
		Supervisors:        counts.Supervisors,
		PendingVisits:      counts.PendingVisits,
		PendingAssignments: counts.PendingAssignments,
		OpenRequests:       counts.OpenRequests,
		TodayPresent:       totals.Present,
		TodayAbsent:        totals.AbsentWithReason + totals.AbsentWithoutReason,
		TodayRate:          rate,
	}, nil
}
