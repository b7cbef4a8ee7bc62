// Package policy is the single authorization table gating every
// mutation: a pure function over role, action and resource, evaluated
// fresh per request. It never touches storage; callers load the target
// resource first and pass the relevant facts in.
package policy

import (
	"github.com/google/uuid"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/identity"
)

type Action string

const (
	CreateDonation      Action = "donation:create"
	DeleteDonation      Action = "donation:delete"
	ApproveOrganization Action = "organization:approve"
	DeleteOrganization  Action = "organization:delete"
	CreateStory         Action = "story:create"
	UpdateStory         Action = "story:update"
	DeleteStory         Action = "story:delete"
)

// Resource carries the facts the table conditions on. Zero values mean
// "not applicable" for the action being evaluated.
type Resource struct {
	OwnerID     uuid.UUID // owning user of the target (donations)
	OrgApproved bool      // approval state of the target organization
}

// Authorize returns nil on allow. Role and ownership failures surface as
// authz errors; an unapproved target organization surfaces as not-found,
// since unapproved organizations are invisible to donors.
func Authorize(id identity.Identity, action Action, res Resource) error {
	switch action {
	case CreateDonation, CreateStory:
		if !res.OrgApproved {
			return apperr.NotFound("organization not found or not approved")
		}
		return nil

	case DeleteDonation:
		if res.OwnerID != id.UserID {
			return apperr.Authz("donation does not belong to you")
		}
		return nil

	case ApproveOrganization, DeleteOrganization, UpdateStory, DeleteStory:
		if !id.IsAdmin() {
			return apperr.Authz("admin access required")
		}
		return nil

	default:
		return apperr.Authz("action not permitted")
	}
}
