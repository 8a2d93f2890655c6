// internal/database/profile_repository.go
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

// ProfileDocument represents the MongoDB schema for a profile. The
// owning user ID is indexed unique; experience and education entries
// are embedded, newest-first.
type ProfileDocument struct {
	ID             string               `bson:"_id"`
	UserID         string               `bson:"user"`
	Company        string               `bson:"company,omitempty"`
	Website        string               `bson:"website,omitempty"`
	Location       string               `bson:"location,omitempty"`
	Status         string               `bson:"status"`
	Skills         []string             `bson:"skills"`
	Bio            string               `bson:"bio,omitempty"`
	GithubUsername string               `bson:"githubUsername,omitempty"`
	Social         SocialDocument       `bson:"social"`
	Experience     []ExperienceDocument `bson:"experience"`
	Education      []EducationDocument  `bson:"education"`
	UpdatedAt      time.Time            `bson:"updatedAt"`
}

type SocialDocument struct {
	Youtube   string `bson:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

type ExperienceDocument struct {
	ID          string `bson:"_id"`
	Title       string `bson:"title"`
	Company     string `bson:"company"`
	Location    string `bson:"location,omitempty"`
	From        string `bson:"from"`
	To          string `bson:"to,omitempty"`
	Current     bool   `bson:"current"`
	Description string `bson:"description,omitempty"`
}

type EducationDocument struct {
	ID           string `bson:"_id"`
	School       string `bson:"school"`
	Degree       string `bson:"degree"`
	FieldOfStudy string `bson:"fieldOfStudy"`
	From         string `bson:"from"`
	To           string `bson:"to,omitempty"`
	Current      bool   `bson:"current"`
	Description  string `bson:"description,omitempty"`
}

func profileToDocument(profile *models.Profile) *ProfileDocument {
	return &ProfileDocument{
		ID:             profile.ID.String(),
		UserID:         profile.UserID.String(),
		Company:        profile.Company,
		Website:        profile.Website,
		Location:       profile.Location,
		Status:         profile.Status,
		Skills:         profile.Skills,
		Bio:            profile.Bio,
		GithubUsername: profile.GithubUsername,
		Social:         SocialDocument(profile.Social),
		Experience:     experienceToDocuments(profile.Experience),
		Education:      educationToDocuments(profile.Education),
		UpdatedAt:      profile.UpdatedAt,
	}
}

func documentToProfile(doc *ProfileDocument) (*models.Profile, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid profile ID in database: %v", err)
	}

	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid profile owner ID in database: %v", err)
	}

	experience := make([]models.Experience, len(doc.Experience))
	for i, entry := range doc.Experience {
		experience[i] = models.Experience(entry)
	}

	education := make([]models.Education, len(doc.Education))
	for i, entry := range doc.Education {
		education[i] = models.Education(entry)
	}

	return &models.Profile{
		ID:             id,
		UserID:         userID,
		Company:        doc.Company,
		Website:        doc.Website,
		Location:       doc.Location,
		Status:         doc.Status,
		Skills:         doc.Skills,
		Bio:            doc.Bio,
		GithubUsername: doc.GithubUsername,
		Social:         models.SocialLinks(doc.Social),
		Experience:     experience,
		Education:      education,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

func experienceToDocuments(entries []models.Experience) []ExperienceDocument {
	docs := make([]ExperienceDocument, len(entries))
	for i, entry := range entries {
		docs[i] = ExperienceDocument(entry)
	}
	return docs
}

func educationToDocuments(entries []models.Education) []EducationDocument {
	docs := make([]EducationDocument, len(entries))
	for i, entry := range entries {
		docs[i] = EducationDocument(entry)
	}
	return docs
}

// SaveProfile creates or updates a profile, upserting on the owning
// user ID so each user keeps exactly one profile.
func (m *MongoDB) SaveProfile(ctx context.Context, profile *models.Profile) error {
	doc := profileToDocument(profile)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"user": profile.UserID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Profiles.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetProfileByUser retrieves the profile owned by the given user.
func (m *MongoDB) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var doc ProfileDocument

	err := m.Profiles.FindOne(ctx, bson.M{"user": userID.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNoProfile, "There is no profile for this user", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToProfile(&doc)
}

// GetAllProfiles retrieves every profile.
func (m *MongoDB) GetAllProfiles(ctx context.Context) ([]*models.Profile, error) {
	cursor, err := m.Profiles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.Profile
	for cursor.Next(ctx) {
		var doc ProfileDocument
		if err := cursor.Decode(&doc); err != nil {
			slog.Warn("skipping undecodable profile document", "error", err)
			continue
		}

		profile, err := documentToProfile(&doc)
		if err != nil {
			slog.Warn("skipping malformed profile document", "error", err)
			continue
		}
		profiles = append(profiles, profile)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return profiles, nil
}

// DeleteProfileByUser removes the profile owned by the given user.
// Missing profiles are not an error: deleting an account that never
// created a profile is fine.
func (m *MongoDB) DeleteProfileByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := m.Profiles.DeleteOne(ctx, bson.M{"user": userID.String()})
	return err
}

// UpdateProfileExperience replaces the experience sequence of the
// user's profile. Only the one embedded field is written.
func (m *MongoDB) UpdateProfileExperience(ctx context.Context, userID uuid.UUID, entries []models.Experience) error {
	filter := bson.M{"user": userID.String()}
	update := bson.M{"$set": bson.M{"experience": experienceToDocuments(entries)}}

	result, err := m.Profiles.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNoProfile, "There is no profile for this user", nil)
	}
	return nil
}

// UpdateProfileEducation replaces the education sequence of the user's
// profile.
func (m *MongoDB) UpdateProfileEducation(ctx context.Context, userID uuid.UUID, entries []models.Education) error {
	filter := bson.M{"user": userID.String()}
	update := bson.M{"$set": bson.M{"education": educationToDocuments(entries)}}

	result, err := m.Profiles.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNoProfile, "There is no profile for this user", nil)
	}
	return nil
}
