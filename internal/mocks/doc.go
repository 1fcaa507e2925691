// Package mocks holds test doubles shared across packages.
//
// Store and auth mocks use function fields with in-memory defaults:
//
//	users := mocks.NewMockUserStore()
//	users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, store.ErrUserNotFound
//	}
//
// Resource service mocks embed testify's mock.Mock and are driven with On/Return.
package mocks
