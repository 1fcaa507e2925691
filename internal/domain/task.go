package domain

import "time"

// Task is a unit of work with a required status and optional assignee and labels.
//
// On the wire the status is addressed by slug; StatusID is the resolved
// reference the store persists.
type Task struct {
	ID         int64     `json:"id"`
	Index      *int64    `json:"index"`
	Title      string    `json:"title" validate:"notblank,max=255"`
	Content    *string   `json:"content"`
	StatusSlug string    `json:"status" validate:"notblank"`
	StatusID   int64     `json:"-"`
	AssigneeID *int64    `json:"assignee_id"`
	LabelIDs   []int64   `json:"taskLabelIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// Validate checks field constraints.
func (t *Task) Validate() error {
	return ValidateStruct(t)
}
