package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Action names an operation gated by the Authorizer.
type Action string

const (
	ActionBrowseCatalog   Action = "catalog.browse"
	ActionMutateCatalog   Action = "catalog.mutate"
	ActionViewOwn         Action = "account.view_own"
	ActionCreateAddress   Action = "address.create"
	ActionManageAddress   Action = "address.manage"
	ActionCreateOrder     Action = "order.create"
	ActionViewOrder       Action = "order.view"
	ActionListAllOrders   Action = "order.list_all"
	ActionTransitionOrder Action = "order.transition"
	ActionLookupTracking  Action = "order.tracking_lookup"
	ActionRetryTracking   Action = "order.tracking_retry"
	ActionRequestPayment  Action = "payment.create_intent"
)

// Authorizer evaluates an action against the caller's role claims and, for
// owned resources, the resource owner.
type Authorizer interface {
	// Authorize checks role capability only. A nil principal is anonymous.
	Authorize(ctx context.Context, principal *entity.Principal, action Action) error

	// AuthorizeOwned additionally requires the caller to own the resource
	// unless one of the action's bypass roles is held.
	AuthorizeOwned(ctx context.Context, principal *entity.Principal, action Action, ownerID uuid.UUID) error
}
