// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	lenientRoles bool
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	lenient := false
	if params.Config != nil && params.Config.Auth != nil {
		lenient = params.Config.Auth.LenientRoles
	}

	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		lenientRoles: lenient,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignIn verifies credentials and issues a session token. Every failure looks
// the same to the caller so account existence is not disclosed.
func (srv *authService) SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.SignInOutput, error) {
	email := strings.TrimSpace(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !user.Active || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Sign-in rejected", slog.String("userID", user.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, expiresAt, err := srv.tokenService.IssueToken(user.ID, user.Email, user.Roles.ToStrings())
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("userID", user.ID.String()), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return &usecase.SignInOutput{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// SignUp registers a user with a fresh tenant. The password is stored only as a hash.
func (srv *authService) SignUp(ctx context.Context, input usecase.SignUpInput) (*entity.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}

	roles, err := srv.resolveRoles(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	_, err = srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrEmailAlreadyInUse
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Roles:        roles,
		TenantID:     uuid.New(),
		Active:       true,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domainerrors.ErrEmailAlreadyInUse
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered",
		slog.String("userID", user.ID.String()),
		slog.Any("roles", roles.ToStrings()),
	)

	return user, nil
}

// resolveRoles maps requested role names to a set. Unknown names fail unless
// lenient mode grants CUSTOMER in their place.
func (srv *authService) resolveRoles(ctx context.Context, requested []string) (entity.RoleSet, error) {
	if len(requested) == 0 {
		return entity.NewRoleSet(entity.RoleCustomer), nil
	}

	var roles entity.RoleSet
	for _, name := range requested {
		role, ok := entity.ParseRole(name)
		if !ok {
			if !srv.lenientRoles {
				return 0, domainerrors.ErrInvalidRole.WithDetails(name)
			}
			srv.log(ctx).Warn("Unrecognized role granted as CUSTOMER", slog.String("role", name))
			role = entity.RoleCustomer
		}
		roles = roles.Add(role)
	}

	return roles, nil
}

func (srv *authService) Authenticate(_ context.Context, token string) (*entity.Principal, error) {
	if token == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, err.Error())
	}

	return &entity.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Roles:  entity.RoleSetFromStrings(claims.Roles),
	}, nil
}

func (srv *authService) Me(ctx context.Context, principal *entity.Principal) (*entity.User, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	user, err := srv.userRepo.FindByID(ctx, principal.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
