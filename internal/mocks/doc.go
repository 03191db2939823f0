// Package mocks provides centralized mock implementations for testing.
//
// Mocks use function fields: set the Fn field for the behavior a test needs
// and leave the rest at their defaults.
//
//	tokens := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, id uuid.UUID) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
//
// MockUserStore wraps a real store.UserStore (usually the in-memory one) so a
// test overrides only the calls it wants to fail.
package mocks
