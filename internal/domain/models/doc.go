package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Document type discriminators. Every persisted document carries one of
// these in its `type` field, which is the primary query axis of the store.
const (
	TypeIngredient = "ingredient"
	TypeRecipe     = "recipe"
	TypeBatch      = "batch"
	TypeSale       = "sale"
	TypeFixedCost  = "fixed_cost"
	TypeUser       = "user"
)

// Doc is the header embedded in every persisted document: a type-prefixed
// id, the opaque revision token used for optimistic concurrency, and the
// type discriminator.
type Doc struct {
	ID   string `bson:"_id" json:"id"`
	Rev  string `bson:"_rev,omitempty" json:"rev,omitempty"`
	Type string `bson:"type" json:"type"`
}

func (d *Doc) DocID() string  { return d.ID }
func (d *Doc) DocRev() string { return d.Rev }

// DocType reports the document's type discriminator.
func (d *Doc) DocType() string { return d.Type }

// SetRev replaces the revision token after a successful write.
func (d *Doc) SetRev(rev string) { d.Rev = rev }

// NewDoc mints a document header with a fresh id of the form
// "<type>_<uuid>".
func NewDoc(docType string) Doc {
	return Doc{
		ID:   fmt.Sprintf("%s_%s", docType, uuid.NewString()),
		Type: docType,
	}
}
