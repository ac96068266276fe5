package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Memory is an in-process Store with the same revision semantics as the
// Mongo implementation. It backs unit tests and the ephemeral run mode.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]memDoc
}

type memDoc struct {
	rev string
	raw bson.Raw
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]memDoc)}
}

// Get loads a single document by id.
func (m *Memory) Get(_ context.Context, id string) (bson.Raw, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return doc.raw, nil
}

// Find returns every document matching the equality selector.
func (m *Memory) Find(_ context.Context, sel Selector, sortBy ...SortField) ([]bson.Raw, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []bson.Raw
	for _, doc := range m.docs {
		if matches(doc.raw, sel) {
			out = append(out, doc.raw)
		}
	}

	if len(sortBy) > 0 {
		sort.Slice(out, func(i, j int) bool {
			for _, s := range sortBy {
				a := stringField(out[i], s.Field)
				b := stringField(out[j], s.Field)
				if a == b {
					continue
				}
				if s.Desc {
					return a > b
				}
				return a < b
			}
			return false
		})
	}
	return out, nil
}

// Put inserts or compare-and-swaps the document, mirroring Mongo.Put.
func (m *Memory) Put(_ context.Context, doc Doc) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldRev := doc.DocRev()
	current, exists := m.docs[doc.DocID()]
	if oldRev == "" && exists {
		return "", fmt.Errorf("put %s: %w", doc.DocID(), ErrConflict)
	}
	if oldRev != "" && (!exists || current.rev != oldRev) {
		return "", fmt.Errorf("put %s: %w", doc.DocID(), ErrConflict)
	}

	doc.SetRev(NextRev(oldRev))
	raw, err := bson.Marshal(doc)
	if err != nil {
		doc.SetRev(oldRev)
		return "", fmt.Errorf("put %s: encode: %w", doc.DocID(), err)
	}

	m.docs[doc.DocID()] = memDoc{rev: doc.DocRev(), raw: raw}
	return doc.DocRev(), nil
}

// Remove deletes a document, requiring its current revision token.
func (m *Memory) Remove(_ context.Context, id, rev string) error {
	if rev == "" {
		return fmt.Errorf("remove %s: %w", id, ErrMissingRevision)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.docs[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	if current.rev != rev {
		return fmt.Errorf("remove %s: %w", id, ErrConflict)
	}
	delete(m.docs, id)
	return nil
}

// BulkRemove deletes all documents or none: every revision is checked
// before the first delete happens.
func (m *Memory) BulkRemove(_ context.Context, docs []Doc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range docs {
		if doc.DocRev() == "" {
			return fmt.Errorf("bulk remove %s: %w", doc.DocID(), ErrMissingRevision)
		}
		current, ok := m.docs[doc.DocID()]
		if !ok {
			return fmt.Errorf("bulk remove %s: %w", doc.DocID(), ErrNotFound)
		}
		if current.rev != doc.DocRev() {
			return fmt.Errorf("bulk remove %s: %w", doc.DocID(), ErrConflict)
		}
	}

	for _, doc := range docs {
		delete(m.docs, doc.DocID())
	}
	return nil
}

func matches(raw bson.Raw, sel Selector) bool {
	for field, want := range sel {
		got := stringField(raw, field)
		switch v := want.(type) {
		case In:
			found := false
			for _, candidate := range v {
				if got == candidate {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case string:
			if got != v {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func stringField(raw bson.Raw, field string) string {
	value, err := raw.LookupErr(field)
	if err != nil {
		return ""
	}
	s, _ := value.StringValueOK()
	return s
}
