package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Error taxonomy surfaced by every implementation. Callers classify with
// errors.Is; the wrapped message carries the underlying detail.
var (
	// ErrNotFound means the requested document id does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrConflict means a write presented a stale revision token.
	ErrConflict = errors.New("document revision conflict")
	// ErrMissingRevision means a delete was attempted without a revision token.
	ErrMissingRevision = errors.New("document revision missing")
	// ErrUnavailable means the store itself could not serve the call.
	ErrUnavailable = errors.New("document store unavailable")
)

// Doc is the minimal surface the store needs from a persisted document.
// models.Doc implements it.
type Doc interface {
	DocID() string
	DocRev() string
	DocType() string
	SetRev(rev string)
}

// In matches documents whose field equals any of the listed values.
type In []string

// Selector is a field-equality filter. Values are matched exactly, except
// In values which test membership. The selector fields used by this
// application (`type`, `recipeId`, `batchId`, `email`) are all strings.
type Selector map[string]any

// SortField orders Find results by one document field.
type SortField struct {
	Field string
	Desc  bool
}

// Store is the narrow document-database capability the repositories are
// written against: selector find, get, revision-guarded put/remove, and an
// all-or-nothing bulk remove for the cascading recipe delete.
type Store interface {
	Get(ctx context.Context, id string) (bson.Raw, error)
	Find(ctx context.Context, sel Selector, sort ...SortField) ([]bson.Raw, error)
	Put(ctx context.Context, doc Doc) (string, error)
	Remove(ctx context.Context, id, rev string) error
	BulkRemove(ctx context.Context, docs []Doc) error
}

// NextRev derives the successor revision token: a generation counter
// followed by a random suffix, e.g. "3-2f1a...".
func NextRev(rev string) string {
	gen := 0
	if head, _, ok := strings.Cut(rev, "-"); ok {
		if n, err := strconv.Atoi(head); err == nil {
			gen = n
		}
	}
	return fmt.Sprintf("%d-%s", gen+1, uuid.NewString())
}
