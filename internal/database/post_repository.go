// internal/database/post_repository.go
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dev-grove/internal/models"
	"dev-grove/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostDocument represents the MongoDB schema for a post. Likes and
// comments are embedded, newest-first.
type PostDocument struct {
	ID        string            `bson:"_id"`
	UserID    string            `bson:"user"`
	Text      string            `bson:"text"`
	Name      string            `bson:"name"`
	Avatar    string            `bson:"avatar"`
	Likes     []LikeDocument    `bson:"likes"`
	Comments  []CommentDocument `bson:"comments"`
	CreatedAt time.Time         `bson:"createdAt"`
}

type LikeDocument struct {
	UserID string `bson:"user"`
}

type CommentDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user"`
	Text      string    `bson:"text"`
	Name      string    `bson:"name"`
	Avatar    string    `bson:"avatar"`
	CreatedAt time.Time `bson:"createdAt"`
}

func postToDocument(post *models.Post) *PostDocument {
	doc := &PostDocument{
		ID:        post.ID.String(),
		UserID:    post.UserID.String(),
		Text:      post.Text,
		Name:      post.Name,
		Avatar:    post.Avatar,
		Likes:     likesToDocuments(post.Likes),
		Comments:  commentsToDocuments(post.Comments),
		CreatedAt: post.CreatedAt,
	}
	return doc
}

func documentToPost(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID in database: %v", err)
	}

	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid post author ID in database: %v", err)
	}

	likes := make([]models.Like, len(doc.Likes))
	for i, like := range doc.Likes {
		likerID, err := uuid.Parse(like.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid liker ID in database: %v", err)
		}
		likes[i] = models.Like{UserID: likerID}
	}

	comments := make([]models.Comment, len(doc.Comments))
	for i, comment := range doc.Comments {
		authorID, err := uuid.Parse(comment.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid comment author ID in database: %v", err)
		}
		comments[i] = models.Comment{
			ID:        comment.ID,
			UserID:    authorID,
			Text:      comment.Text,
			Name:      comment.Name,
			Avatar:    comment.Avatar,
			CreatedAt: comment.CreatedAt,
		}
	}

	return &models.Post{
		ID:        id,
		UserID:    userID,
		Text:      doc.Text,
		Name:      doc.Name,
		Avatar:    doc.Avatar,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func likesToDocuments(likes []models.Like) []LikeDocument {
	docs := make([]LikeDocument, len(likes))
	for i, like := range likes {
		docs[i] = LikeDocument{UserID: like.UserID.String()}
	}
	return docs
}

func commentsToDocuments(comments []models.Comment) []CommentDocument {
	docs := make([]CommentDocument, len(comments))
	for i, comment := range comments {
		docs[i] = CommentDocument{
			ID:        comment.ID,
			UserID:    comment.UserID.String(),
			Text:      comment.Text,
			Name:      comment.Name,
			Avatar:    comment.Avatar,
			CreatedAt: comment.CreatedAt,
		}
	}
	return docs
}

// SavePost creates or updates a post in MongoDB.
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) error {
	doc := postToDocument(post)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": post.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Posts.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetPost retrieves a post by its ID.
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToPost(&doc)
}

// GetAllPosts retrieves every post, newest first.
func (m *MongoDB) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			slog.Warn("skipping undecodable post document", "error", err)
			continue
		}

		post, err := documentToPost(&doc)
		if err != nil {
			slog.Warn("skipping malformed post document", "error", err)
			continue
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, nil
}

// DeletePost removes a post document entirely.
func (m *MongoDB) DeletePost(ctx context.Context, id uuid.UUID) error {
	result, err := m.Posts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	return nil
}

// UpdatePostLikes replaces a post's like sequence. Only the likes field
// is written; concurrent writers to the same field are last-write-wins.
func (m *MongoDB) UpdatePostLikes(ctx context.Context, postID uuid.UUID, likes []models.Like) error {
	filter := bson.M{"_id": postID.String()}
	update := bson.M{"$set": bson.M{"likes": likesToDocuments(likes)}}

	result, err := m.Posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	return nil
}

// UpdatePostComments replaces a post's comment sequence.
func (m *MongoDB) UpdatePostComments(ctx context.Context, postID uuid.UUID, comments []models.Comment) error {
	filter := bson.M{"_id": postID.String()}
	update := bson.M{"$set": bson.M{"comments": commentsToDocuments(comments)}}

	result, err := m.Posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	return nil
}
