// Package rbac holds the single permission table every endpoint runs
// through: (role set, HTTP verb, resource kind) -> Allow | Deny.
package rbac

import "net/http"

// RoleSet is resolved once per request from persisted group membership
// and passed explicitly; no handler re-queries groups.
type RoleSet struct {
	Authenticated bool
	Manager       bool
	DeliveryCrew  bool
	Superuser     bool
}

// IsCustomer reports the implicit customer role: authenticated but in
// neither the Manager nor the Delivery Crew group.
func (r RoleSet) IsCustomer() bool {
	return r.Authenticated && !r.Manager && !r.DeliveryCrew
}

// Actor is the resolved identity a request acts as.
type Actor struct {
	ID       uint
	Username string
	Roles    RoleSet
}

// Resource kinds the table distinguishes.
type Resource int

const (
	Catalog Resource = iota // categories and menu items
	GroupMembership
	OrderCollection
	OrderDetail
	Cart
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool { return d == Allow }

// safe methods per RFC 7231; writes are everything else
func isSafe(verb string) bool {
	switch verb {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Authorize evaluates the permission table. Rules apply in order, first
// match wins, unmatched input is denied. ownsObject only matters for
// Cart: a cart is reachable by its owner alone, with no manager
// override below superuser.
func Authorize(roles RoleSet, verb string, res Resource, ownsObject bool) Decision {
	if roles.Superuser {
		return Allow
	}
	if !roles.Authenticated {
		return Deny
	}

	switch res {
	case Catalog:
		if isSafe(verb) {
			return Allow
		}
		if roles.Manager {
			return Allow
		}
		return Deny

	case GroupMembership:
		// no read-only carve-out: rosters are manager-exclusive
		if roles.Manager {
			return Allow
		}
		return Deny

	case OrderCollection:
		switch verb {
		case http.MethodGet, http.MethodHead:
			// which orders are visible is scoped by the order workflow
			return Allow
		case http.MethodPost:
			if roles.IsCustomer() {
				return Allow
			}
			return Deny
		}
		return Deny

	case OrderDetail:
		switch verb {
		case http.MethodGet, http.MethodHead:
			return Allow
		case http.MethodPut, http.MethodPatch:
			// any role may attempt an update; unwritable fields are
			// dropped by the order workflow, not rejected here
			return Allow
		case http.MethodDelete:
			if roles.Manager {
				return Allow
			}
			return Deny
		}
		return Deny

	case Cart:
		if ownsObject {
			return Allow
		}
		return Deny
	}

	return Deny
}
