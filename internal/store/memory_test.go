package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

type testDoc struct {
	ID    string `bson:"_id"`
	Rev   string `bson:"_rev,omitempty"`
	Type  string `bson:"type"`
	Name  string `bson:"name"`
	Owner string `bson:"owner,omitempty"`
}

func (d *testDoc) DocID() string   { return d.ID }
func (d *testDoc) DocRev() string  { return d.Rev }
func (d *testDoc) DocType() string { return d.Type }
func (d *testDoc) SetRev(rev string) { d.Rev = rev }

func TestMemory_PutGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	doc := &testDoc{ID: "widget_1", Type: "widget", Name: "flour"}
	rev, err := mem.Put(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, rev, doc.Rev)

	raw, err := mem.Get(ctx, "widget_1")
	require.NoError(t, err)

	var loaded testDoc
	require.NoError(t, bson.Unmarshal(raw, &loaded))
	assert.Equal(t, *doc, loaded)
}

func TestMemory_GetMissing(t *testing.T) {
	_, err := NewMemory().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_PutStaleRevConflicts(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	doc := &testDoc{ID: "widget_1", Type: "widget", Name: "flour"}
	_, err := mem.Put(ctx, doc)
	require.NoError(t, err)
	staleRev := doc.Rev

	_, err = mem.Put(ctx, doc)
	require.NoError(t, err)

	stale := &testDoc{ID: "widget_1", Rev: staleRev, Type: "widget", Name: "sugar"}
	_, err = mem.Put(ctx, stale)
	assert.ErrorIs(t, err, ErrConflict)
	// The losing writer keeps the revision it presented.
	assert.Equal(t, staleRev, stale.Rev)
}

func TestMemory_PutDuplicateInsertConflicts(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, err := mem.Put(ctx, &testDoc{ID: "widget_1", Type: "widget"})
	require.NoError(t, err)

	_, err = mem.Put(ctx, &testDoc{ID: "widget_1", Type: "widget"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemory_RevGenerationAdvances(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	doc := &testDoc{ID: "widget_1", Type: "widget"}
	rev1, err := mem.Put(ctx, doc)
	require.NoError(t, err)
	rev2, err := mem.Put(ctx, doc)
	require.NoError(t, err)

	assert.Regexp(t, `^1-`, rev1)
	assert.Regexp(t, `^2-`, rev2)
}

func TestMemory_RemoveRequiresCurrentRev(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	doc := &testDoc{ID: "widget_1", Type: "widget"}
	_, err := mem.Put(ctx, doc)
	require.NoError(t, err)

	assert.ErrorIs(t, mem.Remove(ctx, "widget_1", ""), ErrMissingRevision)
	assert.ErrorIs(t, mem.Remove(ctx, "widget_1", "1-bogus"), ErrConflict)
	assert.ErrorIs(t, mem.Remove(ctx, "missing", "1-x"), ErrNotFound)

	require.NoError(t, mem.Remove(ctx, "widget_1", doc.Rev))
	_, err = mem.Get(ctx, "widget_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_FindBySelector(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	for _, doc := range []*testDoc{
		{ID: "widget_1", Type: "widget", Owner: "a"},
		{ID: "widget_2", Type: "widget", Owner: "b"},
		{ID: "gadget_1", Type: "gadget", Owner: "a"},
	} {
		_, err := mem.Put(ctx, doc)
		require.NoError(t, err)
	}

	raws, err := mem.Find(ctx, Selector{"type": "widget"})
	require.NoError(t, err)
	assert.Len(t, raws, 2)

	raws, err = mem.Find(ctx, Selector{"type": "widget", "owner": "a"})
	require.NoError(t, err)
	require.Len(t, raws, 1)

	raws, err = mem.Find(ctx, Selector{"owner": In{"a", "b"}})
	require.NoError(t, err)
	assert.Len(t, raws, 3)

	raws, err = mem.Find(ctx, Selector{"owner": In{"zz"}})
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestMemory_FindSorted(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	for _, id := range []string{"widget_b", "widget_c", "widget_a"} {
		_, err := mem.Put(ctx, &testDoc{ID: id, Type: "widget"})
		require.NoError(t, err)
	}

	raws, err := mem.Find(ctx, Selector{"type": "widget"}, SortField{Field: "_id", Desc: true})
	require.NoError(t, err)
	require.Len(t, raws, 3)

	var ids []string
	for _, raw := range raws {
		var d testDoc
		require.NoError(t, bson.Unmarshal(raw, &d))
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"widget_c", "widget_b", "widget_a"}, ids)
}

func TestMemory_BulkRemoveAllOrNothing(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	a := &testDoc{ID: "widget_a", Type: "widget"}
	b := &testDoc{ID: "widget_b", Type: "widget"}
	for _, doc := range []*testDoc{a, b} {
		_, err := mem.Put(ctx, doc)
		require.NoError(t, err)
	}

	stale := &testDoc{ID: "widget_b", Rev: "1-stale", Type: "widget"}
	err := mem.BulkRemove(ctx, []Doc{a, stale})
	assert.ErrorIs(t, err, ErrConflict)

	// Nothing was deleted.
	_, err = mem.Get(ctx, "widget_a")
	assert.NoError(t, err)
	_, err = mem.Get(ctx, "widget_b")
	assert.NoError(t, err)

	require.NoError(t, mem.BulkRemove(ctx, []Doc{a, b}))
	_, err = mem.Get(ctx, "widget_a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextRev(t *testing.T) {
	first := NextRev("")
	assert.Regexp(t, `^1-`, first)
	assert.Regexp(t, `^2-`, NextRev(first))
	assert.Regexp(t, `^10-`, NextRev("9-abc"))
}
