package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/search"

	"github.com/google/uuid"
)

// store is an in-memory stand-in for the relational store shared by the
// job and application repository doubles.
type store struct {
	mu sync.Mutex

	users map[uuid.UUID]user.User
	jobs  []job.Job
	apps  []application.Application

	failJobs bool
	failApps bool
	inserts  int
	clock    time.Time
}

func newStore() *store {
	return &store{
		users: map[uuid.UUID]user.User{},
		clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *store) addUser(name string) user.User {
	u := user.User{ID: uuid.New(), Name: name}
	s.users[u.ID] = u
	return u
}

func (s *store) addJob(j job.Job) job.Job {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	owner := s.users[j.PostedByID]
	j.PostedBy = &owner
	s.jobs = append(s.jobs, j)
	return j
}

type memJobRepo struct{ s *store }

func (r memJobRepo) sorted(keep func(job.Job) bool) []job.Job {
	out := make([]job.Job, 0)
	for _, j := range r.s.jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].PostedAt.Equal(out[b].PostedAt) {
			return out[a].PostedAt.After(out[b].PostedAt)
		}
		return out[a].ID.String() > out[b].ID.String()
	})
	return out
}

func (r memJobRepo) ListJobs(_ context.Context, f search.Filter) ([]job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failJobs {
		return nil, errBoom
	}
	return r.sorted(f.Matches), nil
}

func (r memJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failJobs {
		return job.Job{}, errBoom
	}
	for _, j := range r.s.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, job.ErrNotFound
}

func (r memJobRepo) Create(_ context.Context, ownerID uuid.UUID, in job.NewJob) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.inserts++
	if r.s.failJobs {
		return job.Job{}, errBoom
	}
	r.s.clock = r.s.clock.Add(time.Minute)
	return r.s.addJob(job.Job{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Type:        in.Type,
		Description: in.Description,
		Salary:      in.Salary,
		PostedAt:    r.s.clock,
		PostedByID:  ownerID,
	}), nil
}

func (r memJobRepo) Recent(_ context.Context, limit int) ([]job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failJobs {
		return nil, errBoom
	}
	out := r.sorted(func(job.Job) bool { return true })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memJobRepo) ListPostedWithApplicationCount(_ context.Context, ownerID uuid.UUID) ([]job.Posted, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failJobs {
		return nil, errBoom
	}
	out := make([]job.Posted, 0)
	for _, j := range r.sorted(func(j job.Job) bool { return j.PostedByID == ownerID }) {
		p := job.Posted{Job: j}
		p.PostedBy = nil
		for _, a := range r.s.apps {
			if a.JobID == j.ID {
				p.ApplicationCount++
			}
		}
		out = append(out, p)
	}
	return out, nil
}

type memAppRepo struct{ s *store }

func (r memAppRepo) Create(_ context.Context, jobID, userID uuid.UUID) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failApps {
		return application.Application{}, errBoom
	}
	for _, a := range r.s.apps {
		if a.JobID == jobID && a.UserID == userID {
			return application.Application{}, application.ErrAlreadyApplied
		}
	}
	r.s.clock = r.s.clock.Add(time.Minute)
	a := application.Application{
		ID:        uuid.New(),
		JobID:     jobID,
		UserID:    userID,
		Status:    application.StatusPending,
		AppliedAt: r.s.clock,
	}
	r.s.apps = append(r.s.apps, a)
	return a, nil
}

func (r memAppRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failApps {
		return nil, errBoom
	}
	out := make([]application.Application, 0)
	for _, a := range r.s.apps {
		if a.UserID != userID {
			continue
		}
		for _, j := range r.s.jobs {
			if j.ID == a.JobID {
				j := j
				a.Job = &j
			}
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].AppliedAt.After(out[k].AppliedAt) })
	return out, nil
}

type errString string

func (e errString) Error() string { return string(e) }

const errBoom = errString("store unavailable")

func identity(u user.User) user.Identity {
	return user.Identity{UserID: u.ID, Name: u.Name}
}

func oauthConfigNone() config.OAuthConfig {
	return config.OAuthConfig{}
}
