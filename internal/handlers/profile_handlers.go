package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"dev-grove/internal/collection"
	"dev-grove/internal/middleware"
	"dev-grove/internal/models"
	"dev-grove/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// UpsertProfileRequest carries the profile form. Skills arrive as one
// comma-delimited string, split and trimmed server-side.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubUsername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// ExperienceRequest represents an experience entry to add
type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationRequest represents an education entry to add
type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// HandleUpsertProfile creates or updates the caller's profile. Updates
// only overwrite fields the request actually provides.
func (s *Server) HandleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	var msgs []string
	if req.Status == "" {
		msgs = append(msgs, "Status is required")
	}
	if req.Skills == "" {
		msgs = append(msgs, "Skills is required")
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs...)
		return
	}

	profile, err := s.DB.GetProfileByUser(r.Context(), userID)
	if err != nil {
		if !utils.IsErrorCode(err, utils.ErrNoProfile) {
			s.respondError(w, r, err)
			return
		}
		profile = &models.Profile{
			ID:         uuid.New(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
	}

	profile.Status = req.Status
	profile.Skills = splitSkills(req.Skills)
	if req.Company != "" {
		profile.Company = req.Company
	}
	if req.Website != "" {
		profile.Website = req.Website
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.GithubUsername != "" {
		profile.GithubUsername = req.GithubUsername
	}
	if req.Youtube != "" {
		profile.Social.Youtube = req.Youtube
	}
	if req.Twitter != "" {
		profile.Social.Twitter = req.Twitter
	}
	if req.Facebook != "" {
		profile.Social.Facebook = req.Facebook
	}
	if req.Linkedin != "" {
		profile.Social.Linkedin = req.Linkedin
	}
	if req.Instagram != "" {
		profile.Social.Instagram = req.Instagram
	}
	profile.UpdatedAt = time.Now()

	if err := s.DB.SaveProfile(r.Context(), profile); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleMyProfile returns the caller's own profile.
func (s *Server) HandleMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	profile, err := s.DB.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleGetProfiles returns every profile.
func (s *Server) HandleGetProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.DB.GetAllProfiles(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

// HandleGetProfileByUser returns the profile owned by an arbitrary
// user. Public.
func (s *Server) HandleGetProfileByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Profile not found")
		return
	}

	profile, err := s.DB.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleDeleteProfile removes the caller's profile and account. Posts
// are intentionally left in place; their author snapshot keeps them
// renderable.
func (s *Server) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := s.DB.DeleteProfileByUser(r.Context(), userID); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.DB.DeleteUser(r.Context(), userID); err != nil && !utils.IsErrorCode(err, utils.ErrUserNotFound) {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "User deleted"})
}

// HandleAddExperience prepends an experience entry to the caller's own
// profile; the target profile is never chosen by the request.
func (s *Server) HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	var msgs []string
	if req.Title == "" {
		msgs = append(msgs, "Title is required")
	}
	if req.Company == "" {
		msgs = append(msgs, "Company is required")
	}
	if req.From == "" {
		msgs = append(msgs, "From is required")
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs...)
		return
	}

	profile, err := s.DB.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	entry := models.Experience{
		ID:          shortuuid.New(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	profile.Experience = collection.Prepend(profile.Experience, entry)
	if err := s.DB.UpdateProfileExperience(r.Context(), userID, profile.Experience); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleDeleteExperience removes one experience entry by ID from the
// caller's own profile.
func (s *Server) HandleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	entryID := chi.URLParam(r, "entryID")

	profile, err := s.DB.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	entries, _, removed := collection.Remove(profile.Experience,
		func(e models.Experience) bool { return e.ID == entryID })
	if !removed {
		s.respondError(w, r, utils.NewAppError(utils.ErrInvalidEntry, "Invalid experience id", nil))
		return
	}

	profile.Experience = entries
	if err := s.DB.UpdateProfileExperience(r.Context(), userID, entries); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleAddEducation prepends an education entry to the caller's own
// profile.
func (s *Server) HandleAddEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	var msgs []string
	if req.School == "" {
		msgs = append(msgs, "School is required")
	}
	if req.Degree == "" {
		msgs = append(msgs, "Degree is required")
	}
	if req.FieldOfStudy == "" {
		msgs = append(msgs, "Field of Study is required")
	}
	if req.From == "" {
		msgs = append(msgs, "From is required")
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs...)
		return
	}

	profile, err := s.DB.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	entry := models.Education{
		ID:           shortuuid.New(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile.Education = collection.Prepend(profile.Education, entry)
	if err := s.DB.UpdateProfileEducation(r.Context(), userID, profile.Education); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleDeleteEducation removes one education entry by ID from the
// caller's own profile.
func (s *Server) HandleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	entryID := chi.URLParam(r, "entryID")

	profile, err := s.DB.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	entries, _, removed := collection.Remove(profile.Education,
		func(e models.Education) bool { return e.ID == entryID })
	if !removed {
		s.respondError(w, r, utils.NewAppError(utils.ErrInvalidEntry, "Invalid education id", nil))
		return
	}

	profile.Education = entries
	if err := s.DB.UpdateProfileEducation(r.Context(), userID, entries); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleGithubRepos proxies the user's five most recent public
// repositories.
func (s *Server) HandleGithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	repos, err := s.Github.ListRepos(r.Context(), username)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}

// splitSkills turns "Go, docker ,k8s" into {"Go","docker","k8s"}.
func splitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
