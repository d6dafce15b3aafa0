package model

import "time"

// State represents the lifecycle state of an issue.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"

	// StateAll is a filter-only value meaning "do not filter by state".
	StateAll State = "all"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsValid checks whether the state is a known value.
// StateAll is valid only in filters, not on stored issues.
func (s State) IsValid() bool {
	switch s {
	case StateOpen, StateClosed:
		return true
	}
	return false
}

// User identifies an issue author or assignee.
type User struct {
	Login string `json:"login"`
}

// Label is a named tag attached to an issue.
// Priority labels follow the "priority: <level>" naming convention.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Issue is the core tracked record.
type Issue struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	State     State      `json:"state"`
	User      User       `json:"user"`
	Assignees []User     `json:"assignees,omitempty"`
	Labels    []Label    `json:"labels,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// LabelNames returns the names of all labels on the issue.
func (i *Issue) LabelNames() []string {
	if len(i.Labels) == 0 {
		return nil
	}
	names := make([]string, len(i.Labels))
	for n, l := range i.Labels {
		names[n] = l.Name
	}
	return names
}

// HasLabel reports whether the issue carries a label with the given name.
func (i *Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}
