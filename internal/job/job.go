package job

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateTimeLayout is the textual timestamp format shared with existing data
// files ("YYYY-MM-DD HH:MM"). Changing it breaks the compatibility surface.
const DateTimeLayout = "2006-01-02 15:04"

var (
	// ErrInvalidDateTime indicates a scheduled datetime that does not parse
	// against DateTimeLayout.
	ErrInvalidDateTime = errors.New("invalid scheduled datetime")
	// ErrInvalidPrice indicates a negative or non-numeric quoted price.
	ErrInvalidPrice = errors.New("invalid quoted price")
	// ErrMalformedRecord indicates a persisted job record missing required fields.
	ErrMalformedRecord = errors.New("malformed job record")
)

// Job is a scheduled service for a customer's boat. CustomerID is a weak
// reference: a dangling value is rendered as "unknown", not treated as an
// error. Timestamps carry minute precision, matching the persisted format.
type Job struct {
	ID          string
	CustomerID  string
	ServiceType string
	ScheduledAt time.Time
	Origin      string
	Destination string
	QuotedPrice float64
	Status      Status
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Spec carries the raw inputs for constructing a Job.
type Spec struct {
	CustomerID  string
	ServiceType string
	ScheduledAt string // DateTimeLayout text, e.g. "2025-09-15 14:30"
	Origin      string
	Destination string // defaults to Origin when blank
	QuotedPrice float64
	Notes       string
	ID          string // generated when empty
	Status      Status // defaults to Scheduled; unknown values fall back to Scheduled
}

// New validates the spec and constructs a Job. The scheduled datetime is the
// one piece of input validation the entity enforces itself.
func New(s Spec, now time.Time) (*Job, error) {
	at, err := time.Parse(DateTimeLayout, strings.TrimSpace(s.ScheduledAt))
	if err != nil {
		return nil, fmt.Errorf("%w: %q does not match YYYY-MM-DD HH:MM", ErrInvalidDateTime, s.ScheduledAt)
	}
	if s.QuotedPrice < 0 {
		return nil, fmt.Errorf("%w: %v is negative", ErrInvalidPrice, s.QuotedPrice)
	}
	id := strings.TrimSpace(s.ID)
	if id == "" {
		id = uuid.NewString()
	}
	dest := s.Destination
	if strings.TrimSpace(dest) == "" {
		dest = s.Origin
	}
	status := s.Status
	if !DefaultStatuses().Contains(status) {
		status = StatusScheduled
	}
	created := now.UTC().Truncate(time.Minute)
	return &Job{
		ID:          id,
		CustomerID:  s.CustomerID,
		ServiceType: s.ServiceType,
		ScheduledAt: at,
		Origin:      s.Origin,
		Destination: dest,
		QuotedPrice: s.QuotedPrice,
		Status:      status,
		Notes:       s.Notes,
		CreatedAt:   created,
		UpdatedAt:   created,
	}, nil
}

// ParsePrice converts raw price input. Non-numeric or negative input is a
// caller error, not silently clamped.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPrice, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %v is negative", ErrInvalidPrice, v)
	}
	return v, nil
}

// UpdateStatus applies the loose rule: any status in the accepted set is
// reachable from any other. On acceptance UpdatedAt is refreshed; on
// rejection the job is unchanged.
func (j *Job) UpdateStatus(to Status, accepted StatusSet, now time.Time) bool {
	if !accepted.Contains(to) {
		return false
	}
	j.Status = to
	j.UpdatedAt = now.UTC().Truncate(time.Minute)
	return true
}

// UpdateStatusStrict additionally enforces the Transitions graph.
func (j *Job) UpdateStatusStrict(to Status, accepted StatusSet, now time.Time) bool {
	if !CanTransition(j.Status, to) {
		return false
	}
	return j.UpdateStatus(to, accepted, now)
}

// Record is the flat persisted form of a Job. Field names and the datetime
// text format are part of the on-disk compatibility surface.
type Record struct {
	ID          string  `json:"job_id"`
	CustomerID  string  `json:"customer_id"`
	ServiceType string  `json:"service_type"`
	ScheduledAt string  `json:"scheduled_datetime"`
	Origin      string  `json:"origin_location"`
	Destination string  `json:"destination_location"`
	QuotedPrice float64 `json:"quoted_price"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Record returns the persisted form of j.
func (j *Job) Record() Record {
	return Record{
		ID:          j.ID,
		CustomerID:  j.CustomerID,
		ServiceType: j.ServiceType,
		ScheduledAt: j.ScheduledAt.Format(DateTimeLayout),
		Origin:      j.Origin,
		Destination: j.Destination,
		QuotedPrice: j.QuotedPrice,
		Status:      string(j.Status),
		Notes:       j.Notes,
		CreatedAt:   j.CreatedAt.Format(DateTimeLayout),
		UpdatedAt:   j.UpdatedAt.Format(DateTimeLayout),
	}
}

// FromRecord rebuilds a Job from its persisted form. The status is taken
// verbatim so data written under a wider accepted set still loads.
func FromRecord(r Record) (*Job, error) {
	if strings.TrimSpace(r.ID) == "" {
		return nil, fmt.Errorf("%w: missing job_id", ErrMalformedRecord)
	}
	if strings.TrimSpace(r.CustomerID) == "" {
		return nil, fmt.Errorf("%w: job %s missing customer_id", ErrMalformedRecord, r.ID)
	}
	if strings.TrimSpace(r.Status) == "" {
		return nil, fmt.Errorf("%w: job %s missing status", ErrMalformedRecord, r.ID)
	}
	at, err := time.Parse(DateTimeLayout, r.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("%w: job %s scheduled_datetime %q", ErrMalformedRecord, r.ID, r.ScheduledAt)
	}
	created, err := parseOptionalTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: job %s created_at %q", ErrMalformedRecord, r.ID, r.CreatedAt)
	}
	updated, err := parseOptionalTime(r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: job %s updated_at %q", ErrMalformedRecord, r.ID, r.UpdatedAt)
	}
	return &Job{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		ServiceType: r.ServiceType,
		ScheduledAt: at,
		Origin:      r.Origin,
		Destination: r.Destination,
		QuotedPrice: r.QuotedPrice,
		Status:      Status(r.Status),
		Notes:       r.Notes,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

// parseOptionalTime tolerates a blank timestamp (older data files omitted
// created_at/updated_at) but rejects unparsable text.
func parseOptionalTime(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateTimeLayout, s)
}

func (j *Job) String() string {
	notes := j.Notes
	if notes == "" {
		notes = "N/A"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Job ID: %s\n", j.ID)
	fmt.Fprintf(&b, "  Customer ID: %s\n", j.CustomerID)
	fmt.Fprintf(&b, "  Service: %s\n", j.ServiceType)
	fmt.Fprintf(&b, "  Scheduled: %s\n", j.ScheduledAt.Format(DateTimeLayout))
	fmt.Fprintf(&b, "  Origin: %s\n", j.Origin)
	fmt.Fprintf(&b, "  Destination: %s\n", j.Destination)
	fmt.Fprintf(&b, "  Price: $%.2f\n", j.QuotedPrice)
	fmt.Fprintf(&b, "  Status: %s\n", j.Status)
	fmt.Fprintf(&b, "  Notes: %s\n", notes)
	fmt.Fprintf(&b, "  Last Updated: %s", j.UpdatedAt.Format(DateTimeLayout))
	return b.String()
}
