package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type ApplicationRepository interface {
	Create(ctx context.Context, jobID, userID uuid.UUID) (application.Application, error)
	// ListByUser returns the user's applications newest first, each joined
	// with its job and the job's owner.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, jobID, userID uuid.UUID) (application.Application, error) {
	a := application.Application{JobID: jobID, UserID: userID}

	var status string
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (job_id, user_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, status, applied_at`,
		jobID, userID, string(application.StatusPending),
	)
	if err := row.Scan(&a.ID, &status, &a.AppliedAt); err != nil {
		if postgres.IsUniqueViolation(err) {
			return application.Application{}, application.ErrAlreadyApplied
		}
		return application.Application{}, errors.Wrap(err, "insert application")
	}

	parsed, err := application.ParseStatus(status)
	if err != nil {
		return application.Application{}, err
	}
	a.Status = parsed
	return a, nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.user_id, a.status, a.applied_at, `+jobColumns+`, `+ownerColumns+`
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = j.posted_by_id
		 WHERE a.user_id = $1
		 ORDER BY a.applied_at DESC, a.id DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query applications")
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var (
			a       application.Application
			j       job.Job
			owner   user.User
			status  string
			jobType string
		)
		dest := []any{&a.ID, &a.JobID, &a.UserID, &status, &a.AppliedAt}
		dest = append(dest, jobDest(&j, &jobType)...)
		dest = append(dest, userDest(&owner)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "scan application")
		}

		parsed, err := application.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		a.Status = parsed
		j.Type = job.Type(jobType)
		j.PostedBy = &owner
		a.Job = &j
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate applications")
	}
	return out, nil
}
