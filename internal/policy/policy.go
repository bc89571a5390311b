package policy

import (
	"dochub/internal/domain/document"
	"dochub/internal/domain/role"
)

// Requester is the authenticated identity making a call.
type Requester struct {
	UserID int64
	RoleID int64
}

func (r Requester) IsAdmin() bool {
	return r.RoleID == role.AdminID
}

// CanView reports whether the requester may read the document.
// ownerRoleID is the role of the document's owner, needed for the
// role access level.
//
// Precedence: admin, then owner, then the document's access level.
func CanView(r Requester, doc document.Document, ownerRoleID int64) bool {
	if r.IsAdmin() {
		return true
	}
	if doc.OwnerID == r.UserID {
		return true
	}
	switch doc.Access {
	case document.AccessPublic:
		return true
	case document.AccessRole:
		return r.RoleID == ownerRoleID
	}
	return false
}

// CanMutate reports whether the requester may update or delete the
// document. Only the owner and admins qualify; access level never
// grants mutation.
func CanMutate(r Requester, doc document.Document) bool {
	return r.IsAdmin() || doc.OwnerID == r.UserID
}

// Visibility is the listing/search counterpart of CanView. Repos render
// it into a store predicate; All short-circuits any restriction.
type Visibility struct {
	All    bool
	UserID int64
	RoleID int64
}

func VisibilityFor(r Requester) Visibility {
	if r.IsAdmin() {
		return Visibility{All: true}
	}
	return Visibility{UserID: r.UserID, RoleID: r.RoleID}
}

// Matches applies the visibility predicate in memory. The postgres repo
// renders the same rule as SQL; both must agree.
func (v Visibility) Matches(doc document.Document, ownerRoleID int64) bool {
	if v.All {
		return true
	}
	if doc.OwnerID == v.UserID {
		return true
	}
	switch doc.Access {
	case document.AccessPublic:
		return true
	case document.AccessRole:
		return ownerRoleID == v.RoleID
	}
	return false
}
