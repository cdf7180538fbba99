package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"careerpath/internal/domain"
	"careerpath/internal/middleware"
	"careerpath/internal/sqlinline"
)

const bcryptCost = 10

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Image            string     `json:"image,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	Industry         string     `json:"industry,omitempty"`
	Experience       string     `json:"experience,omitempty"`
	Skills           []string   `json:"skills"`
	LinkedIn         string     `json:"linkedin,omitempty"`
	GitHub           string     `json:"github,omitempty"`
	Plan             string     `json:"plan"`
	Credits          int        `json:"credits"`
	RoadmapCompleted int        `json:"roadmap_completed"`
	CurrentStreak    int        `json:"current_streak"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func userToDTO(u *domain.User) userDTO {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return userDTO{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Image:            u.Image,
		Bio:              u.Bio,
		Industry:         u.Industry,
		Experience:       u.Experience,
		Skills:           skills,
		LinkedIn:         u.LinkedIn,
		GitHub:           u.GitHub,
		Plan:             string(u.Plan),
		Credits:          u.Credits,
		RoadmapCompleted: u.RoadmapCompleted,
		CurrentStreak:    u.CurrentStreak,
		LastLogin:        u.LastLogin,
		CreatedAt:        u.CreatedAt,
	}
}

// Signup creates an account, hashes the password and starts a session.
func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name, email and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid email address")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	var u domain.User
	u.Name = req.Name
	u.Email = strings.ToLower(req.Email)
	u.Image = req.Image
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUser, req.Name, req.Email, string(hash), req.Image)
	var plan string
	if err := row.Scan(&u.ID, &plan, &u.Credits, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			a.error(w, http.StatusConflict, "already_exists", "an account with this email already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("insert user")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}
	u.Plan = domain.UserPlan(plan)

	if err := a.startSession(w, u.ID); err != nil {
		a.Logger.Error().Err(err).Msg("sign session token")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create session")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"user": userToDTO(&u)})
}

// Login verifies credentials, refreshes last_login and starts a session.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password are required")
		return
	}

	u, err := scanUser(a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByEmail, req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		a.Logger.Error().Err(err).Msg("select user by email")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QUpdateLastLogin, u.ID); err != nil {
		a.Logger.Warn().Err(err).Str("user_id", u.ID).Msg("update last_login")
	}
	if err := a.startSession(w, u.ID); err != nil {
		a.Logger.Error().Err(err).Msg("sign session token")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create session")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": userToDTO(u)})
}

// Logout clears the session cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, middleware.ExpiredSessionCookie(a.Cfg.CookieDomain, a.secureCookies()))
	a.json(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the authenticated user's profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	u, err := a.loadUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "account no longer exists")
			return
		}
		a.Logger.Error().Err(err).Msg("select user by id")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": userToDTO(u)})
}

func (a *App) startSession(w http.ResponseWriter, userID string) error {
	token, err := middleware.SignSession(a.Cfg.JWTSecret, userID, a.Cfg.SessionTTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, middleware.SessionCookie(token, a.Cfg.CookieDomain, a.Cfg.SessionTTL, a.secureCookies()))
	return nil
}
