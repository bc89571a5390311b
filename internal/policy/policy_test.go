package policy_test

import (
	"testing"

	"dochub/internal/domain/document"
	"dochub/internal/policy"
)

var (
	admin   = policy.Requester{UserID: 1, RoleID: 1}
	owner   = policy.Requester{UserID: 10, RoleID: 2}
	peer    = policy.Requester{UserID: 11, RoleID: 2} // same role as owner
	guest   = policy.Requester{UserID: 12, RoleID: 3} // different role
	ownerRL = int64(2)
)

func doc(access string) document.Document {
	return document.Document{ID: 5, Title: "t", Content: "c", Access: access, OwnerID: owner.UserID}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		name      string
		requester policy.Requester
		access    string
		want      bool
	}{
		{"owner sees own private", owner, document.AccessPrivate, true},
		{"owner sees own role", owner, document.AccessRole, true},
		{"owner sees own public", owner, document.AccessPublic, true},
		{"admin sees private", admin, document.AccessPrivate, true},
		{"admin sees role", admin, document.AccessRole, true},
		{"peer blocked from private", peer, document.AccessPrivate, false},
		{"guest blocked from private", guest, document.AccessPrivate, false},
		{"anyone sees public", guest, document.AccessPublic, true},
		{"peer sees role document", peer, document.AccessRole, true},
		{"guest blocked from role document", guest, document.AccessRole, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.CanView(tc.requester, doc(tc.access), ownerRL)

			if got != tc.want {
				t.Fatalf("CanView() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name      string
		requester policy.Requester
		access    string
		want      bool
	}{
		{"owner mutates own document", owner, document.AccessPrivate, true},
		{"admin mutates any document", admin, document.AccessPrivate, true},
		{"peer cannot mutate public", peer, document.AccessPublic, false},
		{"peer cannot mutate role", peer, document.AccessRole, false},
		{"guest cannot mutate", guest, document.AccessPublic, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.CanMutate(tc.requester, doc(tc.access))

			if got != tc.want {
				t.Fatalf("CanMutate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVisibilityFor(t *testing.T) {
	if v := policy.VisibilityFor(admin); !v.All {
		t.Fatalf("admin visibility should be unrestricted")
	}

	v := policy.VisibilityFor(peer)

	if v.All {
		t.Fatalf("non-admin visibility should be restricted")
	}

	if v.UserID != peer.UserID || v.RoleID != peer.RoleID {
		t.Fatalf("visibility should carry the requester identity, got %+v", v)
	}
}

// Matches must agree with CanView for every requester/access combination,
// since the SQL filter is derived from it.
func TestVisibilityMatchesAgreesWithCanView(t *testing.T) {
	requesters := []policy.Requester{admin, owner, peer, guest}
	accesses := []string{document.AccessPublic, document.AccessPrivate, document.AccessRole}

	for _, r := range requesters {
		for _, access := range accesses {
			d := doc(access)
			want := policy.CanView(r, d, ownerRL)
			got := policy.VisibilityFor(r).Matches(d, ownerRL)

			if got != want {
				t.Fatalf("Matches disagrees with CanView for requester %+v access %q: got %v want %v", r, access, got, want)
			}
		}
	}
}
