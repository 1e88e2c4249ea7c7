package auth

import (
	"context"

	"github.com/sitcouncil/councilreports/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// SSO, etc.) without changing the service layer code.
type Authenticator interface {
	// Register stores a new council user with the given credential.
	// The user's ID is assigned by storage when empty.
	Register(ctx context.Context, user *models.User, credential string) error

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
