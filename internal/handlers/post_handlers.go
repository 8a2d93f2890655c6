package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"dev-grove/internal/collection"
	"dev-grove/internal/middleware"
	"dev-grove/internal/models"
	"dev-grove/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// CreatePostRequest represents a request to create a post
type CreatePostRequest struct {
	Text string `json:"text"`
}

// CommentRequest represents a request to comment on a post
type CommentRequest struct {
	Text string `json:"text"`
}

// HandleCreatePost creates a post carrying a snapshot of the author's
// name and avatar.
func (s *Server) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	user, err := s.DB.GetUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	post := &models.Post{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      req.Text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now(),
	}

	if err := s.DB.SavePost(r.Context(), post); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleGetPosts returns all posts, newest first.
func (s *Server) HandleGetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.DB.GetAllPosts(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// HandleGetPost returns a single post by ID.
func (s *Server) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.lookupPost(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HandleDeletePost removes a post. Only the owner may delete.
func (s *Server) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	post, ok := s.lookupPost(w, r)
	if !ok {
		return
	}

	if post.UserID != userID {
		writeError(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	if err := s.DB.DeletePost(r.Context(), post.ID); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Post removed"})
}

// HandleLikePost prepends a like for the caller. A second like from
// the same caller is rejected; the sequence grows by exactly one.
func (s *Server) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	post, ok := s.lookupPost(w, r)
	if !ok {
		return
	}

	if collection.Has(post.Likes, likedBy(userID)) {
		s.respondError(w, r, utils.NewAppError(utils.ErrAlreadyLiked, "Post already liked", nil))
		return
	}

	likes := collection.Prepend(post.Likes, models.Like{UserID: userID})
	if err := s.DB.UpdatePostLikes(r.Context(), post.ID, likes); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

// HandleUnlikePost removes the caller's like. Unliking a post the
// caller never liked is a client error and changes nothing.
func (s *Server) HandleUnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	post, ok := s.lookupPost(w, r)
	if !ok {
		return
	}

	likes, _, removed := collection.Remove(post.Likes, likedBy(userID))
	if !removed {
		s.respondError(w, r, utils.NewAppError(utils.ErrNotLiked, "Post has not yet been liked", nil))
		return
	}

	if err := s.DB.UpdatePostLikes(r.Context(), post.ID, likes); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

// HandleAddComment prepends a comment with a fresh ID and an author
// snapshot.
func (s *Server) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	user, err := s.DB.GetUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	post, ok := s.lookupPost(w, r)
	if !ok {
		return
	}

	comment := models.Comment{
		ID:        shortuuid.New(),
		UserID:    userID,
		Text:      req.Text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: time.Now(),
	}

	comments := collection.Prepend(post.Comments, comment)
	if err := s.DB.UpdatePostComments(r.Context(), post.ID, comments); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// HandleDeleteComment removes exactly the named comment. The removal
// matches the comment's own ID, so a caller with several comments on
// the same post loses only the one they named; ownership is checked
// separately.
func (s *Server) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	commentID := chi.URLParam(r, "commentID")

	post, ok := s.lookupPost(w, r)
	if !ok {
		return
	}

	target, _, found := collection.Find(post.Comments, commentWithID(commentID))
	if !found {
		writeError(w, http.StatusNotFound, "Comment does not exist")
		return
	}

	if target.UserID != userID {
		writeError(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	comments, _, _ := collection.Remove(post.Comments, commentWithID(commentID))
	if err := s.DB.UpdatePostComments(r.Context(), post.ID, comments); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// lookupPost resolves the postID path parameter. A malformed ID reports
// the same "Post not found" as the original wire contract, but as a 400.
func (s *Server) lookupPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Post not found")
		return nil, false
	}

	post, err := s.DB.GetPost(r.Context(), postID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			return nil, false
		}
		s.respondError(w, r, err)
		return nil, false
	}

	return post, true
}

func likedBy(userID uuid.UUID) collection.MatchFunc[models.Like] {
	return func(like models.Like) bool { return like.UserID == userID }
}

func commentWithID(id string) collection.MatchFunc[models.Comment] {
	return func(comment models.Comment) bool { return comment.ID == id }
}
