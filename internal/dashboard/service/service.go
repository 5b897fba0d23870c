// Package service assembles the performance dashboard. The three
// aggregate queries are independent, so they run concurrently.
package service

import (
	"context"
	"time"

	"crm_leads_backend/internal/dashboard/repository"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Repository is the consumer-driven data access interface for the
// dashboard service.
type Repository interface {
	ListAdminPerformance(ctx context.Context, from, to time.Time) ([]repository.AdminPerformance, error)
	ListMonthlyTargets(ctx context.Context) ([]repository.TargetRow, error)
	CountFollowUpQueue(ctx context.Context) (repository.QueueCounts, error)
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

type AdminPerformanceResponse struct {
	AdminID       uuid.UUID `json:"adminId"`
	FullName      string    `json:"fullName"`
	Active        bool      `json:"active"`
	TotalLeads    int64     `json:"totalLeads"`
	ClosingLeads  int64     `json:"closingLeads"`
	LossLeads     int64     `json:"lossLeads"`
	Revenue       int64     `json:"revenue"`
	MonthlyTarget int64     `json:"monthlyTarget"`
}

type DashboardResponse struct {
	From             time.Time                  `json:"from"`
	To               time.Time                  `json:"to"`
	Admins           []AdminPerformanceResponse `json:"admins"`
	FollowUpsPending int64                      `json:"followUpsPending"`
	FollowUpsDone    int64                      `json:"followUpsDone"`
}

// Performance builds the dashboard for leads created in [from, to).
// When the range is zero it defaults to the current calendar month.
func (s *Service) Performance(ctx context.Context, from, to time.Time) (DashboardResponse, error) {
	if from.IsZero() || to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0)
	}
	if !to.After(from) {
		return DashboardResponse{}, apperr.Validation("period end must be after period start")
	}

	var (
		performance []repository.AdminPerformance
		targets     []repository.TargetRow
		queue       repository.QueueCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		performance, err = s.repo.ListAdminPerformance(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		targets, err = s.repo.ListMonthlyTargets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		queue, err = s.repo.CountFollowUpQueue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardResponse{}, err
	}

	targetByUser := make(map[uuid.UUID]int64, len(targets))
	for _, t := range targets {
		targetByUser[t.UserID] = t.MonthlyTarget
	}

	admins := make([]AdminPerformanceResponse, len(performance))
	for i, p := range performance {
		admins[i] = AdminPerformanceResponse{
			AdminID:       p.AdminID,
			FullName:      p.FullName,
			Active:        p.Active,
			TotalLeads:    p.TotalLeads,
			ClosingLeads:  p.ClosingLeads,
			LossLeads:     p.LossLeads,
			Revenue:       p.Revenue,
			MonthlyTarget: targetByUser[p.AdminID],
		}
	}

	return DashboardResponse{
		From:             from,
		To:               to,
		Admins:           admins,
		FollowUpsPending: queue.Pending,
		FollowUpsDone:    queue.Done,
	}, nil
}
