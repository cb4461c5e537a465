package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"agentdeck/internal/auth"
	"agentdeck/internal/database"
	"agentdeck/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// signup handles POST /api/auth/signup
func (h *Handlers) signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	switch {
	case req.Name == "":
		return fail(c, http.StatusBadRequest, "Name is required")
	case req.Username == "":
		return fail(c, http.StatusBadRequest, "Username is required")
	case len(req.Username) < 3:
		return fail(c, http.StatusBadRequest, "Username must be at least 3 characters")
	case req.Email == "":
		return fail(c, http.StatusBadRequest, "Email is required")
	case !emailPattern.MatchString(req.Email):
		return fail(c, http.StatusBadRequest, "Invalid email format")
	case len(req.Password) < 6:
		return fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
	}

	user, err := h.Auth.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrUsernameTaken):
			return fail(c, http.StatusBadRequest, "Username already taken")
		case errors.Is(err, database.ErrEmailTaken):
			return fail(c, http.StatusBadRequest, "Email already registered")
		default:
			h.Log.Error().Err(err).Msg("signup failed")
			return fail(c, http.StatusInternalServerError, "Registration failed")
		}
	}

	return ok(c, http.StatusOK, map[string]any{
		"message": "Account created successfully",
		"user":    user.Public(),
	})
}

// login handles POST /api/auth/login
func (h *Handlers) login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	req.UsernameOrEmail = strings.TrimSpace(req.UsernameOrEmail)
	if req.UsernameOrEmail == "" {
		return fail(c, http.StatusBadRequest, "Username or email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return fail(c, http.StatusBadRequest, "Password is required")
	}

	ctx := c.Request().Context()
	user, err := h.Auth.Login(ctx, req.UsernameOrEmail, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		h.Log.Error().Err(err).Msg("login failed")
		return fail(c, http.StatusInternalServerError, "Login failed")
	}

	session, err := h.Auth.CreateSession(ctx, user.ID)
	if err != nil {
		h.Log.Error().Err(err).Msg("session creation failed")
		return fail(c, http.StatusInternalServerError, "Login failed")
	}

	return ok(c, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   session.Token,
		"user":    user.Public(),
	})
}

// logout handles POST /api/auth/logout. Revocation is best-effort and
// the response is a success either way.
func (h *Handlers) logout(c echo.Context) error {
	if token := auth.BearerToken(c.Request()); token != "" {
		if err := h.Auth.DeleteSession(c.Request().Context(), token); err != nil {
			h.Log.Warn().Err(err).Msg("logout delete failed")
		}
	}
	return ok(c, http.StatusOK, map[string]any{"message": "Logged out successfully"})
}

// validate handles GET /api/auth/validate
func (h *Handlers) validate(c echo.Context) error {
	token := auth.BearerToken(c.Request())
	if token == "" {
		return fail(c, http.StatusUnauthorized, "No token provided")
	}

	user := h.Auth.UserFromSession(c.Request().Context(), token)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	return ok(c, http.StatusOK, map[string]any{"user": user.Public()})
}
