package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomhunt/room_rental_system/backend/models"
	"github.com/roomhunt/room_rental_system/backend/store"
	"github.com/roomhunt/room_rental_system/backend/utils"
)

// AuthController owns the session lifecycle: signup and login mint sessions,
// logout destroys them, GetSession resolves a bearer token back to its user.
type AuthController struct {
	Users    store.UserStore
	Sessions store.SessionStore
	Logger   zerolog.Logger
}

type signupRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	LastName   string `json:"lastName"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	IsLandlord bool   `json:"isLandlord"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type sessionResponse struct {
	ID        string       `json:"_id"`
	User      *models.User `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

// GetSession is a soft introspection endpoint: no token returns a plain null
// so anonymous clients can probe without tripping an error, while a token
// that no longer resolves is a 404.
func (c *AuthController) GetSession(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	session, err := c.Sessions.Get(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session does not exist")
		return
	}

	user, err := c.Users.FindByID(r.Context(), session.User)
	if err != nil {
		c.Logger.Warn().Str("session", token).Msg("session references missing user")
		writeError(w, http.StatusNotFound, "Session does not exist")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		ID:        session.Token(),
		User:      user,
		CreatedAt: session.CreatedAt,
	})
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if body.Email == "" || body.Name == "" || body.LastName == "" || body.Password == "" || body.Phone == "" {
		writeError(w, http.StatusBadRequest, "Please provide all the data.")
		return
	}

	// The length check is redundant with ValidPassword but gives the
	// shorter message priority.
	if len(body.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Your password needs to be at least 8 characters long.")
		return
	}

	if !utils.ValidPassword(body.Password) {
		writeError(w, http.StatusBadRequest, "Password needs to have at least 8 chars and must contain at least one number, one lowercase and one uppercase letter.")
		return
	}

	if _, err := c.Users.FindByEmail(r.Context(), body.Email); err == nil {
		writeError(w, http.StatusBadRequest, "email already in use.")
		return
	}

	digest, err := utils.HashPassword(body.Password)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to hash password")
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := c.Users.Create(r.Context(), &models.User{
		Email:      body.Email,
		Password:   digest,
		Name:       body.Name,
		LastName:   body.LastName,
		Phone:      body.Phone,
		IsLandlord: body.IsLandlord,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			// Lost the race against a concurrent signup for the same email.
			writeError(w, http.StatusBadRequest, "email already in use.")
			return
		}
		c.Logger.Error().Err(err).Str("email", body.Email).Msg("failed to create user")
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	session, err := c.Sessions.Create(r.Context(), user.ID)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to create session")
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	c.Logger.Info().Str("email", user.Email).Msg("user signed up")
	writeJSON(w, http.StatusCreated, authResponse{User: user, AccessToken: session.Token()})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if body.Email == "" {
		writeError(w, http.StatusBadRequest, "Please provide your email.")
		return
	}

	if len(body.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Your password needs to be at least 8 characters long.")
		return
	}

	user, err := c.Users.FindByEmail(r.Context(), body.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same message as a bad password so callers cannot enumerate
			// registered emails.
			writeError(w, http.StatusBadRequest, "Wrong credentials.")
			return
		}
		c.Logger.Error().Err(err).Msg("failed to look up user")
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !utils.CheckPasswordHash(body.Password, user.Password) {
		writeError(w, http.StatusBadRequest, "Wrong credentials.")
		return
	}

	session, err := c.Sessions.Create(r.Context(), user.ID)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to create session")
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.Logger.Info().Str("email", user.Email).Msg("user logged in")
	writeJSON(w, http.StatusOK, authResponse{User: user, AccessToken: session.Token()})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)

	if err := c.Sessions.Delete(r.Context(), token); err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		c.Logger.Error().Err(err).Msg("failed to delete session")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User was logged out"})
}
