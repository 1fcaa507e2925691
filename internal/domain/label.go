package domain

import "time"

// Label tags tasks; a task may carry any number of labels.
type Label struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"notblank,min=3,max=1000"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewLabel builds a validated label.
func NewLabel(name string) (*Label, error) {
	l := &Label{Name: name, CreatedAt: time.Now().UTC()}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks field constraints.
func (l *Label) Validate() error {
	return ValidateStruct(l)
}
