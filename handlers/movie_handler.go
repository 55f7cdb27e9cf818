package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v5"

	"findyourseat/models"
	"findyourseat/services"
)

type MovieCatalog interface {
	GetAllMovies(ctx context.Context) *models.MoviesResponse
}

type MovieViewer interface {
	ViewMovie(ctx context.Context, id string) (*models.Movie, error)
}

type MovieHandler struct {
	catalog MovieCatalog
	viewer  MovieViewer
	layout  *services.SeatLayout
}

func NewMovieHandler(catalog MovieCatalog, viewer MovieViewer, layout *services.SeatLayout) *MovieHandler {
	return &MovieHandler{catalog: catalog, viewer: viewer, layout: layout}
}

// ListMovies - All movies from the backend
func (h *MovieHandler) ListMovies(c echo.Context) error {
	resp := h.catalog.GetAllMovies(c.Request().Context())
	if resp == nil {
		return c.JSON(http.StatusBadGateway, errorBody{Error: "Unable to load movies right now."})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetMovie - One movie; its title is remembered for booking
func (h *MovieHandler) GetMovie(c echo.Context) error {
	movie, err := h.viewer.ViewMovie(c.Request().Context(), c.PathParam("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"movie": movie})
}

// GetLayout - Seat grid, showtimes and venues
func (h *MovieHandler) GetLayout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"categories": h.layout.Categories(),
		"rows":       h.layout.Rows(),
		"showtimes":  services.Showtimes,
		"places":     services.Places,
	})
}
