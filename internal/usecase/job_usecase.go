package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/logger"
	"jobboard/internal/metrics"
	"jobboard/internal/repository"
	"jobboard/internal/search"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultRecentJobs = 3
	MaxRecentJobs     = 20
)

// CreateJobInput is the client payload for a new listing. It has no owner
// field: the owner always comes from the caller's identity.
type CreateJobInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Company     string  `json:"company" validate:"required,max=200"`
	Location    string  `json:"location" validate:"required,max=200"`
	Type        string  `json:"type" validate:"required,oneof=Full-time Part-time Contract Internship"`
	Description string  `json:"description" validate:"required,max=20000"`
	Salary      *string `json:"salary" validate:"omitempty,max=100"`
}

func (in CreateJobInput) normalize() CreateJobInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.Type = strings.TrimSpace(in.Type)
	in.Description = strings.TrimSpace(in.Description)
	if in.Salary != nil {
		s := strings.TrimSpace(*in.Salary)
		in.Salary = nil
		if s != "" {
			in.Salary = &s
		}
	}
	return in
}

type JobUsecase interface {
	ListJobs(ctx context.Context, f search.Filter) ([]job.Job, error)
	GetJob(ctx context.Context, id string) (job.Job, error)
	CreateJob(ctx context.Context, identity user.Identity, in CreateJobInput) (job.Job, error)
	RecentJobs(ctx context.Context, limit int) ([]job.Job, error)
}

type Jobs struct {
	repo     repository.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(repo repository.JobRepository) *Jobs {
	return &Jobs{repo: repo, validate: newValidator()}
}

func (u *Jobs) ListJobs(ctx context.Context, f search.Filter) ([]job.Job, error) {
	jobs, err := u.repo.ListJobs(ctx, f.Normalize())
	if err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error("list jobs failed")
		return nil, ErrInternal
	}
	return jobs, nil
}

func (u *Jobs) GetJob(ctx context.Context, id string) (job.Job, error) {
	jobID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return job.Job{}, job.ErrNotFound
	}

	j, err := u.repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, job.ErrNotFound
		}
		log.WithError(err).WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeDB,
			"job_id":              jobID,
		}).Error("get job failed")
		return job.Job{}, ErrInternal
	}
	return j, nil
}

// CreateJob validates in and inserts it exactly once, owned by identity.
func (u *Jobs) CreateJob(ctx context.Context, identity user.Identity, in CreateJobInput) (job.Job, error) {
	if identity.IsZero() {
		return job.Job{}, ErrUnauthorized
	}

	in = in.normalize()
	if err := u.validate.Struct(in); err != nil {
		return job.Job{}, validationError(err)
	}

	jobType, err := job.ParseType(in.Type)
	if err != nil {
		return job.Job{}, &ValidationError{Fields: map[string]string{"type": err.Error()}}
	}

	created, err := u.repo.Create(ctx, identity.UserID, job.NewJob{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Type:        jobType,
		Description: in.Description,
		Salary:      in.Salary,
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeDB,
			"user_id":             identity.UserID,
		}).Error("create job failed")
		return job.Job{}, ErrInternal
	}

	metrics.JobsPosted.Inc()
	log.WithFields(log.Fields{"job_id": created.ID, "user_id": identity.UserID}).Info("job posted")
	return created, nil
}

func (u *Jobs) RecentJobs(ctx context.Context, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = DefaultRecentJobs
	}
	if limit > MaxRecentJobs {
		limit = MaxRecentJobs
	}

	jobs, err := u.repo.Recent(ctx, limit)
	if err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeDB).Error("recent jobs failed")
		return nil, ErrInternal
	}
	return jobs, nil
}
