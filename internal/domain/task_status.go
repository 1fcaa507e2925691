package domain

import "time"

// TaskStatus is a workflow state a task can be in, addressed by its slug.
type TaskStatus struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"notblank,max=255"`
	Slug      string    `json:"slug" validate:"notblank,max=255"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTaskStatus builds a validated task status.
func NewTaskStatus(name, slug string) (*TaskStatus, error) {
	s := &TaskStatus{Name: name, Slug: slug, CreatedAt: time.Now().UTC()}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks field constraints.
func (s *TaskStatus) Validate() error {
	return ValidateStruct(s)
}
