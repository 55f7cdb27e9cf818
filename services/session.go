package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"findyourseat/models"
	"findyourseat/utils"
)

// Durable state keys.
const (
	KeyUserID         = "userId"
	KeyMovieTitle     = "movieTitle"
	KeyBookingDetails = "bookingDetails"
)

// SessionGateway is the part of the backend the session needs.
type SessionGateway interface {
	SendUserAuthRequest(ctx context.Context, creds models.Credentials, signup bool) *models.AuthResponse
	SendAdminAuthRequest(ctx context.Context, creds models.Credentials) *models.AdminAuthResponse
	GetMovieDetails(ctx context.Context, id string) *models.MovieResponse
}

// SessionService owns the logged-in user id and the last viewed movie title.
type SessionService struct {
	gateway SessionGateway
	store   utils.Store
	logger  *slog.Logger
}

func NewSessionService(gateway SessionGateway, store utils.Store, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{gateway: gateway, store: store, logger: logger}
}

// Authenticate signs up or logs in and remembers the user id.
func (s *SessionService) Authenticate(ctx context.Context, creds models.Credentials, signup bool) (*models.User, error) {
	resp := s.gateway.SendUserAuthRequest(ctx, creds, signup)
	if resp == nil || resp.User == nil || resp.User.ID == "" {
		s.logger.Error("user id not found in auth response", "email", creds.Email, "signup", signup)
		return nil, ErrAuthFailed
	}

	if err := s.store.Set(ctx, KeyUserID, resp.User.ID); err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}

	s.logger.Info("user authenticated", "userId", resp.User.ID, "signup", signup)
	return resp.User, nil
}

// AdminLogin is a pass-through; the admin payload is not persisted.
func (s *SessionService) AdminLogin(ctx context.Context, creds models.Credentials) (*models.AdminAuthResponse, error) {
	resp := s.gateway.SendAdminAuthRequest(ctx, creds)
	if resp == nil {
		return nil, ErrAuthFailed
	}
	return resp, nil
}

// ViewMovie loads a movie and remembers its title for the booking flow.
func (s *SessionService) ViewMovie(ctx context.Context, id string) (*models.Movie, error) {
	resp := s.gateway.GetMovieDetails(ctx, id)
	if resp == nil || resp.Movie == nil {
		return nil, ErrMovieNotFound
	}

	if err := s.store.Set(ctx, KeyMovieTitle, resp.Movie.Title); err != nil {
		return nil, fmt.Errorf("ViewMovie: %w", err)
	}
	return resp.Movie, nil
}

// UserID returns "" when nobody is logged in.
func (s *SessionService) UserID(ctx context.Context) (string, error) {
	return s.get(ctx, KeyUserID)
}

// MovieTitle returns "" when no movie was viewed.
func (s *SessionService) MovieTitle(ctx context.Context) (string, error) {
	return s.get(ctx, KeyMovieTitle)
}

func (s *SessionService) Current(ctx context.Context) (models.Session, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return models.Session{}, err
	}
	title, err := s.MovieTitle(ctx)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{UserID: userID, MovieTitle: title}, nil
}

// Logout forgets the user and the last viewed movie. A stored booking is kept.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, KeyUserID, KeyMovieTitle); err != nil {
		return fmt.Errorf("Logout: %w", err)
	}
	return nil
}

func (s *SessionService) get(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, key)
	if errors.Is(err, utils.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read %s: %w", key, err)
	}
	return v, nil
}
