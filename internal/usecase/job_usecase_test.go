package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(t *testing.T) (*store, job.Job, job.Job) {
	t.Helper()
	s := newStore()
	owner := s.addUser("Owner")
	t1 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	b := s.addJob(job.Job{Title: "Designer", Company: "Acme", Location: "NYC", Type: job.TypeContract, Description: "Figma", PostedAt: t1, PostedByID: owner.ID})
	a := s.addJob(job.Job{Title: "Backend Engineer", Company: "Acme", Location: "Remote", Type: job.TypeFullTime, Description: "Go", PostedAt: t2, PostedByID: owner.ID})
	return s, a, b
}

func titles(jobs []job.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func TestJobs_ListJobs_Scenario(t *testing.T) {
	s, _, _ := scenario(t)
	uc := NewJobUsecase(memJobRepo{s})
	ctx := context.Background()

	cases := []struct {
		name   string
		filter search.Filter
		want   []string
	}{
		{"all newest first", search.Filter{}, []string{"Backend Engineer", "Designer"}},
		{"keyword", search.Filter{Keyword: "acme"}, []string{"Backend Engineer", "Designer"}},
		{"type", search.Filter{Type: "Contract"}, []string{"Designer"}},
		{"location", search.Filter{Location: "remote"}, []string{"Backend Engineer"}},
		{"keyword and type", search.Filter{Keyword: "acme", Type: "Contract"}, []string{"Designer"}},
		{"no match is empty", search.Filter{Keyword: "rust"}, []string{}},
		{"blank filters ignored", search.Filter{Keyword: "  ", Location: " "}, []string{"Backend Engineer", "Designer"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uc.ListJobs(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(got))
		})
	}
}

func TestJobs_ListJobs_IncludesOwner(t *testing.T) {
	s, _, _ := scenario(t)

	got, err := NewJobUsecase(memJobRepo{s}).ListJobs(context.Background(), search.Filter{})
	require.NoError(t, err)
	for _, j := range got {
		require.NotNil(t, j.PostedBy)
		assert.Equal(t, "Owner", j.PostedBy.Name)
	}
}

func TestJobs_ListJobs_StoreFailure(t *testing.T) {
	s, _, _ := scenario(t)
	s.failJobs = true

	_, err := NewJobUsecase(memJobRepo{s}).ListJobs(context.Background(), search.Filter{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestJobs_GetJob(t *testing.T) {
	s, a, _ := scenario(t)
	uc := NewJobUsecase(memJobRepo{s})
	ctx := context.Background()

	got, err := uc.GetJob(ctx, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.NotNil(t, got.PostedBy)

	_, err = uc.GetJob(ctx, uuid.NewString())
	assert.ErrorIs(t, err, job.ErrNotFound)

	_, err = uc.GetJob(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, job.ErrNotFound)

	s.failJobs = true
	_, err = uc.GetJob(ctx, a.ID.String())
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, errors.Is(err, job.ErrNotFound))
}

func validInput() CreateJobInput {
	salary := " 100k "
	return CreateJobInput{
		Title:       " Platform Engineer ",
		Company:     "Initech",
		Location:    "Austin",
		Type:        "Full-time",
		Description: "Kubernetes",
		Salary:      &salary,
	}
}

func TestJobs_CreateJob_OwnerIsIdentity(t *testing.T) {
	s := newStore()
	poster := s.addUser("Poster")
	uc := NewJobUsecase(memJobRepo{s})

	created, err := uc.CreateJob(context.Background(), identity(poster), validInput())
	require.NoError(t, err)

	assert.Equal(t, poster.ID, created.PostedByID)
	assert.Equal(t, "Platform Engineer", created.Title)
	require.NotNil(t, created.Salary)
	assert.Equal(t, "100k", *created.Salary)
	assert.Equal(t, 1, s.inserts)

	listed, err := uc.ListJobs(context.Background(), search.Filter{Keyword: "platform"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestJobs_CreateJob_BlankSalaryIsAbsent(t *testing.T) {
	s := newStore()
	poster := s.addUser("Poster")
	in := validInput()
	blank := "   "
	in.Salary = &blank

	created, err := NewJobUsecase(memJobRepo{s}).CreateJob(context.Background(), identity(poster), in)
	require.NoError(t, err)
	assert.Nil(t, created.Salary)
}

func TestJobs_CreateJob_RequiresIdentity(t *testing.T) {
	s := newStore()

	_, err := NewJobUsecase(memJobRepo{s}).CreateJob(context.Background(), user.Identity{}, validInput())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, s.inserts)
}

func TestJobs_CreateJob_Validation(t *testing.T) {
	s := newStore()
	poster := s.addUser("Poster")
	uc := NewJobUsecase(memJobRepo{s})

	in := validInput()
	in.Title = "  "
	in.Type = "Freelance"
	in.Description = ""

	_, err := uc.CreateJob(context.Background(), identity(poster), in)
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["title"])
	assert.Equal(t, "is required", verr.Fields["description"])
	assert.Contains(t, verr.Fields["type"], "Full-time, Part-time, Contract, Internship")
	assert.NotContains(t, verr.Fields, "company")
	assert.Zero(t, s.inserts)
}

func TestJobs_CreateJob_StoreFailureIsInternal(t *testing.T) {
	s := newStore()
	poster := s.addUser("Poster")
	s.failJobs = true

	_, err := NewJobUsecase(memJobRepo{s}).CreateJob(context.Background(), identity(poster), validInput())
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 1, s.inserts)
}

func TestJobs_RecentJobs(t *testing.T) {
	s := newStore()
	owner := s.addUser("Owner")
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		s.addJob(job.Job{Title: "Job", Type: job.TypeFullTime, PostedAt: base.Add(time.Duration(i) * time.Hour), PostedByID: owner.ID})
	}
	uc := NewJobUsecase(memJobRepo{s})
	ctx := context.Background()

	got, err := uc.RecentJobs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, DefaultRecentJobs)
	assert.Equal(t, base.Add(24*time.Hour), got[0].PostedAt)

	got, err = uc.RecentJobs(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, got, MaxRecentJobs)
}
