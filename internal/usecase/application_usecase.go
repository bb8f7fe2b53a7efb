package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/logger"
	"jobboard/internal/metrics"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, identity user.Identity, jobID string) (application.Application, error)
	ListMine(ctx context.Context, identity user.Identity) ([]application.Application, error)
}

type Applications struct {
	jobs repository.JobRepository
	apps repository.ApplicationRepository
}

func NewApplicationUsecase(jobs repository.JobRepository, apps repository.ApplicationRepository) *Applications {
	return &Applications{jobs: jobs, apps: apps}
}

func (u *Applications) Apply(ctx context.Context, identity user.Identity, jobID string) (application.Application, error) {
	if identity.IsZero() {
		return application.Application{}, ErrUnauthorized
	}

	id, err := uuid.Parse(strings.TrimSpace(jobID))
	if err != nil {
		return application.Application{}, job.ErrNotFound
	}

	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, job.ErrNotFound
		}
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error("apply: load job failed")
		return application.Application{}, ErrInternal
	}
	if j.PostedByID == identity.UserID {
		return application.Application{}, fmt.Errorf("%w: cannot apply to your own job", ErrInvalidInput)
	}

	a, err := u.apps.Create(ctx, j.ID, identity.UserID)
	if err != nil {
		if errors.Is(err, application.ErrAlreadyApplied) {
			return application.Application{}, application.ErrAlreadyApplied
		}
		log.WithError(err).WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeDB,
			"job_id":              j.ID,
			"user_id":             identity.UserID,
		}).Error("apply failed")
		return application.Application{}, ErrInternal
	}

	a.Job = &j
	metrics.ApplicationsSubmitted.Inc()
	return a, nil
}

func (u *Applications) ListMine(ctx context.Context, identity user.Identity) ([]application.Application, error) {
	if identity.IsZero() {
		return nil, ErrUnauthorized
	}

	apps, err := u.apps.ListByUser(ctx, identity.UserID)
	if err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error("list applications failed")
		return nil, ErrInternal
	}
	return apps, nil
}
