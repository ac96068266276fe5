package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

// Users persists operator accounts.
type Users struct {
	store store.Store
	now   func() time.Time
}

// NewUsers wires a user repository over the document store.
func NewUsers(s store.Store) *Users {
	return &Users{store: s, now: time.Now}
}

// Create persists a new user, stamping createdAt.
func (r *Users) Create(ctx context.Context, user models.User) (*models.User, error) {
	user.Doc = models.NewDoc(models.TypeUser)
	user.CreatedAt = r.now().UTC()
	if _, err := r.store.Put(ctx, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Get loads one user by id.
func (r *Users) Get(ctx context.Context, id string) (*models.User, error) {
	raw, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.User](raw)
}

// GetByEmail resolves a user through the unique email selector.
func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	raws, err := r.store.Find(ctx, store.Selector{
		"type":  models.TypeUser,
		"email": email,
	})
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("user %s: %w", email, store.ErrNotFound)
	}
	return decodeOne[models.User](raws[0])
}
