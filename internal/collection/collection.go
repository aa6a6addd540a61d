// Package collection stores user and system book lists and materializes
// their members. A stored list holds only ordered title references; full
// book records are resolved on demand through exact-match search.
package collection

import (
	"errors"
	"time"

	"shelvd/internal/catalog"
)

// ErrNotFound is returned when no collection exists under a key.
var ErrNotFound = errors.New("collection not found")

// ErrForbidden is returned when an actor tries to modify a collection they
// do not own.
var ErrForbidden = errors.New("collection not owned by actor")

// Record is a stored collection: metadata plus the ordered titles of its
// member books. Titles, not keys: the backing sources expose lists as bare
// title references.
type Record struct {
	Key       string           `json:"key"`
	Name      string           `json:"name"`
	Source    catalog.Source   `json:"source"`
	Type      catalog.ListType `json:"type"`
	OwnerKey  string           `json:"ownerKey,omitempty"`
	Titles    []string         `json:"titles"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// SingleCollection is the wire shape collection clients consume.
type SingleCollection struct {
	Key    string         `json:"key"`
	Name   string         `json:"name"`
	Source catalog.Source `json:"source"`
	Books  []catalog.Book `json:"books"`
}

// Lists groups an owner's collections the way clients consume them:
// system-curated lists apart from the user's own.
type Lists struct {
	Core []SingleCollection `json:"core"`
	User []SingleCollection `json:"user"`
}
