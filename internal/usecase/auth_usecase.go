// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// SignInInput defines the credentials presented at sign-in.
type SignInInput struct {
	Email    string
	Password string
}

// SignUpInput defines the data required to register a new account.
// Roles may be empty, in which case CUSTOMER is granted.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Roles     []string
}

// --- Output DTOs ---

// SignInOutput carries the issued session token and the signed-in user.
type SignInOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// AuthUsecase authenticates callers with stateless bearer tokens.
type AuthUsecase interface {
	SignIn(ctx context.Context, input SignInInput) (*SignInOutput, error)
	SignUp(ctx context.Context, input SignUpInput) (*entity.User, error)

	// Authenticate turns a bearer token into the caller's principal.
	Authenticate(ctx context.Context, token string) (*entity.Principal, error)

	// Me returns the stored profile of the caller.
	Me(ctx context.Context, principal *entity.Principal) (*entity.User, error)
}
