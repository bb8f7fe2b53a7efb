package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/search"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type JobRepository interface {
	ListJobs(ctx context.Context, f search.Filter) ([]job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	Create(ctx context.Context, ownerID uuid.UUID, in job.NewJob) (job.Job, error)
	Recent(ctx context.Context, limit int) ([]job.Job, error)
	ListPostedWithApplicationCount(ctx context.Context, ownerID uuid.UUID) ([]job.Posted, error)
}

const jobColumns = `j.id, j.title, j.company, j.location, j.type, j.description, j.salary, j.posted_at, j.posted_by_id`

const ownerColumns = `u.id, u.name, u.email, u.image, u.created_at, u.updated_at`

const jobSelect = `SELECT ` + jobColumns + `, ` + ownerColumns + `
 FROM jobs j
 JOIN users u ON u.id = j.posted_by_id`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, f search.Filter) ([]job.Job, error) {
	q := search.Build(jobSelect, f)

	rows, err := r.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, errors.Wrap(err, "query jobs")
	}
	return collectJobsWithOwner(rows)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id)

	j, err := scanJobWithOwner(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, errors.Wrapf(err, "get job %s", id)
	}
	return j, nil
}

// Create inserts the job and returns it joined with its owner in one statement.
func (r *PostgresJobRepository) Create(ctx context.Context, ownerID uuid.UUID, in job.NewJob) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`WITH j AS (
			INSERT INTO jobs (title, company, location, type, description, salary, posted_by_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, title, company, location, type, description, salary, posted_at, posted_by_id
		)
		SELECT `+jobColumns+`, `+ownerColumns+`
		FROM j
		JOIN users u ON u.id = j.posted_by_id`,
		in.Title,
		in.Company,
		in.Location,
		string(in.Type),
		in.Description,
		in.Salary,
		ownerID,
	)

	j, err := scanJobWithOwner(row)
	if err != nil {
		return job.Job{}, errors.Wrap(err, "insert job")
	}
	return j, nil
}

func (r *PostgresJobRepository) Recent(ctx context.Context, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 3
	}

	rows, err := r.db.Query(ctx, jobSelect+` ORDER BY `+search.OrderNewestFirst+` LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query recent jobs")
	}
	return collectJobsWithOwner(rows)
}

func (r *PostgresJobRepository) ListPostedWithApplicationCount(ctx context.Context, ownerID uuid.UUID) ([]job.Posted, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`, COUNT(a.id)
		 FROM jobs j
		 LEFT JOIN applications a ON a.job_id = j.id
		 WHERE j.posted_by_id = $1
		 GROUP BY j.id
		 ORDER BY `+search.OrderNewestFirst,
		ownerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query posted jobs")
	}
	defer rows.Close()

	out := make([]job.Posted, 0)
	for rows.Next() {
		var (
			p       job.Posted
			jobType string
		)
		dest := append(jobDest(&p.Job, &jobType), &p.ApplicationCount)
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "scan posted job")
		}
		p.Type = job.Type(jobType)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate posted jobs")
	}
	return out, nil
}

func jobDest(j *job.Job, jobType *string) []any {
	return []any{
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Location,
		jobType,
		&j.Description,
		&j.Salary,
		&j.PostedAt,
		&j.PostedByID,
	}
}

func userDest(u *user.User) []any {
	return []any{&u.ID, &u.Name, &u.Email, &u.Image, &u.CreatedAt, &u.UpdatedAt}
}

func scanJobWithOwner(row database.Row) (job.Job, error) {
	var (
		j       job.Job
		owner   user.User
		jobType string
	)
	dest := append(jobDest(&j, &jobType), userDest(&owner)...)
	if err := row.Scan(dest...); err != nil {
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.PostedBy = &owner
	return j, nil
}

func collectJobsWithOwner(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJobWithOwner(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan job")
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate jobs")
	}
	return out, nil
}
