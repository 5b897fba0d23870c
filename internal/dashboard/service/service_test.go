package service

import (
	"context"
	"testing"
	"time"

	"crm_leads_backend/internal/dashboard/repository"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	performance []repository.AdminPerformance
	targets     []repository.TargetRow
	queue       repository.QueueCounts
}

func (f *fakeRepo) ListAdminPerformance(_ context.Context, _, _ time.Time) ([]repository.AdminPerformance, error) {
	return f.performance, nil
}

func (f *fakeRepo) ListMonthlyTargets(_ context.Context) ([]repository.TargetRow, error) {
	return f.targets, nil
}

func (f *fakeRepo) CountFollowUpQueue(_ context.Context) (repository.QueueCounts, error) {
	return f.queue, nil
}

func TestPerformanceJoinsTargets(t *testing.T) {
	adminID := uuid.New()
	repo := &fakeRepo{
		performance: []repository.AdminPerformance{{
			AdminID:      adminID,
			FullName:     "Siti Rahma",
			Active:       true,
			TotalLeads:   12,
			ClosingLeads: 4,
			Revenue:      8000000,
		}},
		targets: []repository.TargetRow{{UserID: adminID, MonthlyTarget: 25000000}},
		queue:   repository.QueueCounts{Pending: 3, Done: 7},
	}
	svc := New(repo)

	resp, err := svc.Performance(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Admins) != 1 {
		t.Fatalf("expected one admin row, got %d", len(resp.Admins))
	}
	if resp.Admins[0].MonthlyTarget != 25000000 {
		t.Fatalf("expected target joined in, got %d", resp.Admins[0].MonthlyTarget)
	}
	if resp.FollowUpsPending != 3 || resp.FollowUpsDone != 7 {
		t.Fatalf("expected queue counts surfaced, got %d/%d", resp.FollowUpsPending, resp.FollowUpsDone)
	}
}

func TestPerformanceDefaultsToCurrentMonth(t *testing.T) {
	svc := New(&fakeRepo{})

	resp, err := svc.Performance(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.From.Day() != 1 {
		t.Fatalf("default period must start on the first of the month, got day %d", resp.From.Day())
	}
	if !resp.To.Equal(resp.From.AddDate(0, 1, 0)) {
		t.Fatalf("default period must span one month")
	}
}

func TestPerformanceRejectsInvertedRange(t *testing.T) {
	svc := New(&fakeRepo{})

	now := time.Now()
	_, err := svc.Performance(context.Background(), now, now.Add(-time.Hour))
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
