package domain

import "time"

// User is an account that can log in and be assigned tasks.
type User struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	FirstName *string `json:"firstName" validate:"omitempty,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,max=255"`
	// Plaintext password, set only while creating or changing credentials.
	Password     string    `json:"-" validate:"omitempty,min=3,max=72"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser builds a validated user. The store hashes Password on insert.
func NewUser(email, password string, firstName, lastName *string) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks field constraints. A user must carry either a plaintext
// password or an existing hash.
func (u *User) Validate() error {
	ve := &ValidationError{}
	if err := ValidateStruct(u); err != nil {
		fe, ok := AsValidationError(err)
		if !ok {
			return err
		}
		ve.Merge(fe)
	}
	if u.Password == "" && u.PasswordHash == "" {
		ve.Add("password", "is required")
	}
	return ve.Err()
}
