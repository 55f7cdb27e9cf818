package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v5"

	"findyourseat/models"
)

// Authenticator is the session surface the auth endpoints need.
type Authenticator interface {
	Authenticate(ctx context.Context, creds models.Credentials, signup bool) (*models.User, error)
	AdminLogin(ctx context.Context, creds models.Credentials) (*models.AdminAuthResponse, error)
	Current(ctx context.Context) (models.Session, error)
	Logout(ctx context.Context) error
}

type SessionHandler struct {
	session Authenticator
}

func NewSessionHandler(session Authenticator) *SessionHandler {
	return &SessionHandler{session: session}
}

// Signup - Create an account and log in
func (h *SessionHandler) Signup(c echo.Context) error {
	return h.authenticate(c, true)
}

// Login - Log an existing user in
func (h *SessionHandler) Login(c echo.Context) error {
	return h.authenticate(c, false)
}

func (h *SessionHandler) authenticate(c echo.Context, signup bool) error {
	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return badRequest(c, "Invalid request")
	}
	if creds.Email == "" || creds.Password == "" || (signup && creds.Name == "") {
		return badRequest(c, "Please fill in all fields.")
	}

	user, err := h.session.Authenticate(c.Request().Context(), creds, signup)
	if err != nil {
		return respondError(c, err)
	}

	status := http.StatusOK
	if signup {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]any{
		"user":    user,
		"message": "Authentication complete",
	})
}

// AdminLogin - Log an admin in; nothing is stored locally
func (h *SessionHandler) AdminLogin(c echo.Context) error {
	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return badRequest(c, "Invalid request")
	}

	resp, err := h.session.AdminLogin(c.Request().Context(), creds)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout - Forget the user and the last viewed movie
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSession - Current user id and movie title
func (h *SessionHandler) GetSession(c echo.Context) error {
	s, err := h.session.Current(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"userId":     s.UserID,
		"movieTitle": s.MovieTitle,
		"loggedIn":   s.LoggedIn(),
	})
}
