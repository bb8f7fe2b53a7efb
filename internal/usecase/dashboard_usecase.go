package usecase

import (
	"context"
	"sync"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/logger"
	"jobboard/internal/repository"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type Stats struct {
	TotalPostedJobs      int `json:"totalPostedJobs"`
	TotalApplications    int `json:"totalApplications"`
	PendingApplications  int `json:"pendingApplications"`
	TotalJobApplications int `json:"totalJobApplications"`
}

type Dashboard struct {
	Stats        Stats                     `json:"stats"`
	Applications []application.Application `json:"applications"`
	PostedJobs   []job.Posted              `json:"postedJobs"`
}

type DashboardUsecase interface {
	Get(ctx context.Context, identity user.Identity) (Dashboard, error)
}

type DashboardAggregator struct {
	jobs repository.JobRepository
	apps repository.ApplicationRepository
}

func NewDashboardUsecase(jobs repository.JobRepository, apps repository.ApplicationRepository) *DashboardAggregator {
	return &DashboardAggregator{jobs: jobs, apps: apps}
}

// Get reads the identity's applications and posted jobs concurrently and
// derives the counters from them. Nothing is cached.
func (u *DashboardAggregator) Get(ctx context.Context, identity user.Identity) (Dashboard, error) {
	if identity.IsZero() {
		return Dashboard{}, ErrUnauthorized
	}

	var (
		apps   []application.Application
		posted []job.Posted

		errApps   error
		errPosted error
	)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		apps, errApps = u.apps.ListByUser(ctx, identity.UserID)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		posted, errPosted = u.jobs.ListPostedWithApplicationCount(ctx, identity.UserID)
	}()

	wg.Wait()

	if errApps != nil || errPosted != nil {
		log.WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeDB,
			"user_id":             identity.UserID,
			"applications_err":    errApps,
			"posted_jobs_err":     errPosted,
		}).Error("dashboard read failed")
		return Dashboard{}, ErrInternal
	}

	if apps == nil {
		apps = []application.Application{}
	}
	if posted == nil {
		posted = []job.Posted{}
	}

	return Dashboard{
		Stats:        ComputeStats(apps, posted),
		Applications: apps,
		PostedJobs:   posted,
	}, nil
}

func ComputeStats(apps []application.Application, posted []job.Posted) Stats {
	return Stats{
		TotalPostedJobs:   len(posted),
		TotalApplications: len(apps),
		PendingApplications: lo.CountBy(apps, func(a application.Application) bool {
			return a.Status == application.StatusPending
		}),
		TotalJobApplications: lo.SumBy(posted, func(p job.Posted) int {
			return p.ApplicationCount
		}),
	}
}
