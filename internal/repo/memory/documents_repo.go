package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dochub/internal/domain/document"
	"dochub/internal/domain/role"
	"dochub/internal/policy"
)

// DocumentsRepo is an in-memory stand-in for the postgres repo. It
// applies the same visibility/search/sort/pagination semantics and
// backs the handler tests.
type DocumentsRepo struct {
	mu        sync.RWMutex
	nextID    int64
	items     map[int64]document.Document
	userRoles map[int64]int64 // ownerID -> roleID, needed for role access
}

func NewDocumentsRepo() *DocumentsRepo {
	return &DocumentsRepo{
		nextID:    1,
		items:     make(map[int64]document.Document),
		userRoles: make(map[int64]int64),
	}
}

// SetUserRole registers an owner's role so role-scoped visibility can
// be evaluated. Unknown owners default to the regular role.
func (r *DocumentsRepo) SetUserRole(userID, roleID int64) {
	r.mu.Lock()
	r.userRoles[userID] = roleID
	r.mu.Unlock()
}

func (r *DocumentsRepo) ownerRole(ownerID int64) int64 {
	if rid, ok := r.userRoles[ownerID]; ok {
		return rid
	}
	return role.RegularID
}

func (r *DocumentsRepo) Create(_ context.Context, ownerID int64, req document.CreateDocumentRequest) (document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	d := document.Document{
		ID:        r.nextID,
		Title:     req.Title,
		Content:   req.Content,
		Access:    req.Access,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.items[d.ID] = d

	return d, nil
}

func (r *DocumentsRepo) GetByID(_ context.Context, id int64) (document.Document, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[id]

	if !ok {
		return document.Document{}, 0, document.ErrNotFound
	}

	return d, r.ownerRole(d.OwnerID), nil
}

func matchesTerms(d document.Document, terms []string) bool {
	if len(terms) == 0 {
		return true
	}

	title := strings.ToLower(d.Title)
	content := strings.ToLower(d.Content)

	for _, term := range terms {
		t := strings.ToLower(term)
		if strings.Contains(title, t) || strings.Contains(content, t) {
			return true
		}
	}
	return false
}

func (r *DocumentsRepo) List(_ context.Context, vis policy.Visibility, f document.ListFilter) ([]document.Document, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]document.Document, 0, len(r.items))

	for _, d := range r.items {
		if f.OwnerID != nil && d.OwnerID != *f.OwnerID {
			continue
		}
		if !vis.Matches(d, r.ownerRole(d.OwnerID)) {
			continue
		}
		if !matchesTerms(d, f.Terms) {
			continue
		}
		matched = append(matched, d)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]

		if a.CreatedAt.Equal(b.CreatedAt) {
			if f.SortAsc {
				return a.ID < b.ID
			}
			return a.ID > b.ID
		}
		if f.SortAsc {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := len(matched)

	// slice after filtering so the count reflects visible rows only
	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[f.Offset:]
		}
	}

	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}

	out := make([]document.Document, len(matched))
	copy(out, matched)

	return out, total, nil
}

func (r *DocumentsRepo) Update(_ context.Context, id int64, req document.UpdateDocumentRequest) (document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[id]

	if !ok {
		return document.Document{}, document.ErrNotFound
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Content != nil {
		d.Content = *req.Content
	}
	if req.Access != nil {
		d.Access = *req.Access
	}
	d.UpdatedAt = time.Now().UTC()

	r.items[id] = d

	return d, nil
}

func (r *DocumentsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]

	if !ok {
		return document.ErrNotFound
	}

	delete(r.items, id)
	return nil
}
