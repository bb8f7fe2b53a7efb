package application

import (
	"errors"
	"fmt"
	"time"

	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

var ErrAlreadyApplied = errors.New("already applied to job")

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid application status: %q", s)
	}
}

type Application struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"jobId"`
	UserID    uuid.UUID `json:"userId"`
	Status    Status    `json:"status"`
	AppliedAt time.Time `json:"appliedAt"`
	Job       *job.Job  `json:"job,omitempty"`
}
