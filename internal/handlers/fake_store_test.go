package handlers

import (
	"context"
	"sort"
	"sync"

	"dev-grove/internal/models"
	"dev-grove/internal/utils"

	"github.com/google/uuid"
)

// fakeStore is an in-memory database.Adapter for handler tests. It
// mirrors the Mongo adapter's error codes and copies values on the way
// in and out so handlers cannot share state through it.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	profiles map[uuid.UUID]*models.Profile // keyed by owning user ID
	posts    map[uuid.UUID]*models.Post
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*models.User),
		profiles: make(map[uuid.UUID]*models.Profile),
		posts:    make(map[uuid.UUID]*models.Post),
	}
}

func (f *fakeStore) Close(ctx context.Context) error { return nil }

func (f *fakeStore) SaveUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
}

func (f *fakeStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) SaveProfile(ctx context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[profile.UserID] = copyProfile(profile)
	return nil
}

func (f *fakeStore) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNoProfile, "There is no profile for this user", nil)
	}
	return copyProfile(profile), nil
}

func (f *fakeStore) GetAllProfiles(ctx context.Context) ([]*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Profile, 0, len(f.profiles))
	for _, profile := range f.profiles {
		out = append(out, copyProfile(profile))
	}
	return out, nil
}

func (f *fakeStore) DeleteProfileByUser(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, userID)
	return nil
}

func (f *fakeStore) UpdateProfileExperience(ctx context.Context, userID uuid.UUID, entries []models.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return utils.NewAppError(utils.ErrNoProfile, "There is no profile for this user", nil)
	}
	profile.Experience = append([]models.Experience(nil), entries...)
	return nil
}

func (f *fakeStore) UpdateProfileEducation(ctx context.Context, userID uuid.UUID, entries []models.Education) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return utils.NewAppError(utils.ErrNoProfile, "There is no profile for this user", nil)
	}
	profile.Education = append([]models.Education(nil), entries...)
	return nil
}

func (f *fakeStore) SavePost(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[post.ID] = copyPost(post)
	return nil
}

func (f *fakeStore) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	return copyPost(post), nil
}

func (f *fakeStore) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Post, 0, len(f.posts))
	for _, post := range f.posts {
		out = append(out, copyPost(post))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) UpdatePostLikes(ctx context.Context, postID uuid.UUID, likes []models.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	post.Likes = append([]models.Like(nil), likes...)
	return nil
}

func (f *fakeStore) UpdatePostComments(ctx context.Context, postID uuid.UUID, comments []models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	post.Comments = append([]models.Comment(nil), comments...)
	return nil
}

func copyProfile(profile *models.Profile) *models.Profile {
	copied := *profile
	copied.Skills = append([]string(nil), profile.Skills...)
	copied.Experience = append([]models.Experience(nil), profile.Experience...)
	copied.Education = append([]models.Education(nil), profile.Education...)
	return &copied
}

func copyPost(post *models.Post) *models.Post {
	copied := *post
	copied.Likes = append([]models.Like(nil), post.Likes...)
	copied.Comments = append([]models.Comment(nil), post.Comments...)
	return &copied
}
