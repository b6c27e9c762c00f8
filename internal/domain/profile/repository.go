package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	// GetByUserID returns the profile owned by the given user, with the
	// owner fields and both entry sequences populated.
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	// List returns every profile, owner fields and entries included.
	List(ctx context.Context) ([]Profile, error)

	Create(ctx context.Context, p Profile) error
	// UpdateFields persists the scalar fields, skills and social record of
	// an existing profile. Entry sequences are managed separately.
	UpdateFields(ctx context.Context, p Profile) error

	AddEducation(ctx context.Context, profileID uuid.UUID, e Education) error
	// RemoveEducation deletes at most one entry by id. A missing id is not
	// an error; it reports zero rows removed.
	RemoveEducation(ctx context.Context, profileID, entryID uuid.UUID) (int64, error)
	AddExperience(ctx context.Context, profileID uuid.UUID, e Experience) error
	RemoveExperience(ctx context.Context, profileID, entryID uuid.UUID) (int64, error)

	// DeleteWithUser removes the profile owned by userID and the user row
	// itself in a single transaction.
	DeleteWithUser(ctx context.Context, userID uuid.UUID) error
}
