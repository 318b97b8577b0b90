package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// policy describes who may perform an action.
type policy struct {
	public bool           // Anonymous callers are allowed.
	roles  entity.RoleSet // Caller must hold one of these; empty means any authenticated caller.
	owned  bool           // Caller must own the resource...
	bypass entity.RoleSet // ...unless holding one of these.
}

var (
	admin           = entity.NewRoleSet(entity.RoleAdmin)
	adminOrWorker   = entity.NewRoleSet(entity.RoleAdmin, entity.RoleWorker)
	adminOrCustomer = entity.NewRoleSet(entity.RoleAdmin, entity.RoleCustomer)
)

var policies = map[usecase.Action]policy{
	usecase.ActionBrowseCatalog:   {public: true},
	usecase.ActionMutateCatalog:   {roles: admin},
	usecase.ActionViewOwn:         {},
	usecase.ActionCreateAddress:   {roles: adminOrCustomer},
	usecase.ActionManageAddress:   {owned: true, bypass: admin},
	usecase.ActionCreateOrder:     {roles: adminOrCustomer},
	usecase.ActionViewOrder:       {owned: true, bypass: adminOrWorker},
	usecase.ActionListAllOrders:   {roles: admin},
	usecase.ActionTransitionOrder: {roles: adminOrWorker},
	usecase.ActionLookupTracking:  {roles: adminOrWorker},
	usecase.ActionRetryTracking:   {owned: true, bypass: adminOrWorker},
	usecase.ActionRequestPayment:  {roles: adminOrCustomer, owned: true, bypass: admin},
}

type authorizer struct {
	metrics service.Metrics
	logger  *slog.Logger
}

// AuthorizerParams holds dependencies for the Authorizer, injected by Fx.
type AuthorizerParams struct {
	fx.In

	Metrics service.Metrics
	Logger  *slog.Logger
}

// NewAuthorizer creates the role and ownership gate used by every usecase.
func NewAuthorizer(params AuthorizerParams) usecase.Authorizer {
	return &authorizer{
		metrics: params.Metrics,
		logger:  params.Logger,
	}
}

func (a *authorizer) Authorize(ctx context.Context, principal *entity.Principal, action usecase.Action) error {
	return a.check(ctx, principal, action, uuid.Nil)
}

func (a *authorizer) AuthorizeOwned(ctx context.Context, principal *entity.Principal, action usecase.Action, ownerID uuid.UUID) error {
	return a.check(ctx, principal, action, ownerID)
}

func (a *authorizer) check(ctx context.Context, principal *entity.Principal, action usecase.Action, ownerID uuid.UUID) error {
	p, known := policies[action]
	if !known {
		// Unknown actions are closed.
		return a.deny(ctx, principal, action, "unknown action")
	}
	if p.public {
		return nil
	}
	if principal == nil || principal.UserID == uuid.Nil {
		return domainerrors.ErrUnauthenticated
	}
	if !p.roles.IsEmpty() && principal.Roles&p.roles == 0 {
		return a.deny(ctx, principal, action, "missing role")
	}
	if p.owned && !principal.Owns(ownerID) && principal.Roles&p.bypass == 0 {
		return a.deny(ctx, principal, action, "not owner")
	}

	return nil
}

func (a *authorizer) deny(ctx context.Context, principal *entity.Principal, action usecase.Action, reason string) error {
	a.metrics.AuthorizationDenied(string(action))

	attrs := []slog.Attr{
		slog.String("action", string(action)),
		slog.String("reason", reason),
	}
	if principal != nil {
		attrs = append(attrs,
			slog.String("userID", principal.UserID.String()),
			slog.Any("roles", principal.Roles.ToStrings()),
		)
	}
	deliverycontext.GetLoggerOrDefault(ctx, a.logger).LogAttrs(ctx, slog.LevelInfo, "Authorization denied", attrs...)

	return domainerrors.ErrForbidden
}
