package job

import (
	"errors"
	"fmt"
	"time"

	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Type string

const (
	TypeFullTime   Type = "Full-time"
	TypePartTime   Type = "Part-time"
	TypeContract   Type = "Contract"
	TypeInternship Type = "Internship"
)

var Types = []Type{TypeFullTime, TypePartTime, TypeContract, TypeInternship}

func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid job type: %q", s)
}

type Job struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Type        Type       `json:"type"`
	Description string     `json:"description"`
	Salary      *string    `json:"salary"`
	PostedAt    time.Time  `json:"postedAt"`
	PostedByID  uuid.UUID  `json:"postedById"`
	PostedBy    *user.User `json:"postedBy,omitempty"`
}

// NewJob holds the fields of a job about to be inserted. The owner is passed
// separately by the caller and is never part of client input.
type NewJob struct {
	Title       string
	Company     string
	Location    string
	Type        Type
	Description string
	Salary      *string
}

// Posted is a job of the dashboard owner annotated with its application count.
type Posted struct {
	Job
	ApplicationCount int `json:"applicationCount"`
}
