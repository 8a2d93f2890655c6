package database

import (
	"context"

	"dev-grove/internal/models"

	"github.com/google/uuid"
)

// Adapter defines the common interface for database operations. The
// MongoDB implementation is the only production backend; handler tests
// substitute an in-memory fake.
type Adapter interface {
	// Connection
	Close(ctx context.Context) error

	// User methods
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Profile methods
	SaveProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	GetAllProfiles(ctx context.Context) ([]*models.Profile, error)
	DeleteProfileByUser(ctx context.Context, userID uuid.UUID) error
	UpdateProfileExperience(ctx context.Context, userID uuid.UUID, entries []models.Experience) error
	UpdateProfileEducation(ctx context.Context, userID uuid.UUID, entries []models.Education) error

	// Post methods
	SavePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	UpdatePostLikes(ctx context.Context, postID uuid.UUID, likes []models.Like) error
	UpdatePostComments(ctx context.Context, postID uuid.UUID, comments []models.Comment) error
}

var _ Adapter = (*MongoDB)(nil)
