package job

import "fmt"

// Status is a job's lifecycle state (persisted as a string).
type Status string

const (
	StatusScheduled  Status = "Scheduled"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
	StatusInvoiced   Status = "Invoiced"
	StatusPaid       Status = "Paid"
)

// StatusSet is an ordered set of accepted statuses. The zero value accepts
// nothing; use DefaultStatuses or BasicStatuses for the two known variants.
type StatusSet []Status

// DefaultStatuses is the canonical 6-value enumeration.
func DefaultStatuses() StatusSet {
	return StatusSet{
		StatusScheduled, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusInvoiced, StatusPaid,
	}
}

// BasicStatuses is the reduced 4-value variant without the billing states.
func BasicStatuses() StatusSet {
	return StatusSet{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}
}

// Contains reports exact-match membership.
func (s StatusSet) Contains(v Status) bool {
	for _, m := range s {
		if m == v {
			return true
		}
	}
	return false
}

// Names returns the set as plain strings, preserving order.
func (s StatusSet) Names() []string {
	out := make([]string, 0, len(s))
	for _, m := range s {
		out = append(out, string(m))
	}
	return out
}

// ParseStatusSet builds a StatusSet from configured names. Names must belong
// to the canonical enumeration; an empty list yields DefaultStatuses.
func ParseStatusSet(names []string) (StatusSet, error) {
	if len(names) == 0 {
		return DefaultStatuses(), nil
	}
	all := DefaultStatuses()
	out := make(StatusSet, 0, len(names))
	for _, n := range names {
		st := Status(n)
		if !all.Contains(st) {
			return nil, fmt.Errorf("unknown job status %q (valid: %v)", n, all.Names())
		}
		out = append(out, st)
	}
	return out, nil
}

// Transitions is the status graph applied in strict mode. Cancelled and Paid
// are terminal.
var Transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusInvoiced},
	StatusInvoiced:   {StatusPaid},
	StatusCancelled:  {},
	StatusPaid:       {},
}

// CanTransition reports whether from -> to is allowed by the graph.
// A no-op transition (from == to) is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range Transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
