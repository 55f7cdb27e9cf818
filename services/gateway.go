package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"findyourseat/models"
	"findyourseat/monitoring"
)

// Operation names used in logs and metrics.
const (
	OpGetAllMovies    = "get_all_movies"
	OpGetMovieDetails = "get_movie_details"
	OpUserAuth        = "user_auth"
	OpAdminAuth       = "admin_auth"
	OpBookSeats       = "book_seats"
	OpGenerateInvoice = "generate_invoice"
	OpGetInvoice      = "get_invoice"
)

// APIError is a non-2xx reply from the backend.
type APIError struct {
	Operation  string
	StatusCode int
	// Message is the server's message/error field, else the raw body.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// GatewayClient talks to the remote booking backend. Every operation except
// BookSeats swallows failures: it logs them and returns nil.
type GatewayClient struct {
	// baseURL is the backend root, without a trailing slash.
	baseURL string

	// hc is the http client. No timeout is set; callers bound requests via ctx.
	hc *http.Client

	logger  *slog.Logger
	monitor *monitoring.Monitor
}

func NewGatewayClient(baseURL string, hc *http.Client, logger *slog.Logger, monitor *monitoring.Monitor) *GatewayClient {
	if hc == nil {
		hc = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GatewayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		logger:  logger,
		monitor: monitor,
	}
}

// GetAllMovies fetches the movie catalogue. Returns nil on any failure.
func (c *GatewayClient) GetAllMovies(ctx context.Context) *models.MoviesResponse {
	start := time.Now()

	body, err := c.do(ctx, http.MethodGet, "/movie", nil)
	if err != nil {
		c.fail(OpGetAllMovies, start, err)
		return nil
	}

	var reply struct {
		Movies *[]models.Movie `json:"movies"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		c.fail(OpGetAllMovies, start, fmt.Errorf("%w: json.Unmarshal: %v", ErrMalformedResponse, err))
		return nil
	}
	if reply.Movies == nil {
		c.fail(OpGetAllMovies, start, fmt.Errorf("%w: movies missing", ErrMalformedResponse))
		return nil
	}

	c.ok(OpGetAllMovies, start)
	return &models.MoviesResponse{Movies: *reply.Movies}
}

// GetMovieDetails fetches one movie. A reply without a title counts as a failure.
func (c *GatewayClient) GetMovieDetails(ctx context.Context, id string) *models.MovieResponse {
	start := time.Now()

	body, err := c.do(ctx, http.MethodGet, "/movie/"+url.PathEscape(id), nil)
	if err != nil {
		c.fail(OpGetMovieDetails, start, err)
		return nil
	}

	var reply models.MovieResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		c.fail(OpGetMovieDetails, start, fmt.Errorf("%w: json.Unmarshal: %v", ErrMalformedResponse, err))
		return nil
	}
	if reply.Movie == nil || reply.Movie.Title == "" {
		c.fail(OpGetMovieDetails, start, fmt.Errorf("%w: movie.title missing", ErrMalformedResponse))
		return nil
	}

	c.ok(OpGetMovieDetails, start)
	return &reply
}

// SendUserAuthRequest signs a user up or logs them in. The name is only sent
// on signup; login sends an empty name.
func (c *GatewayClient) SendUserAuthRequest(ctx context.Context, creds models.Credentials, signup bool) *models.AuthResponse {
	start := time.Now()

	path := "/user/login"
	req := models.AuthRequest{Email: creds.Email, Password: creds.Password}
	if signup {
		path = "/user/signup"
		req.Name = creds.Name
	}

	body, err := c.do(ctx, http.MethodPost, path, req)
	if err != nil {
		c.fail(OpUserAuth, start, err)
		return nil
	}

	var reply models.AuthResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		c.fail(OpUserAuth, start, fmt.Errorf("%w: json.Unmarshal: %v", ErrMalformedResponse, err))
		return nil
	}
	if reply.User == nil || reply.User.ID == "" {
		c.fail(OpUserAuth, start, fmt.Errorf("%w: user._id missing", ErrMalformedResponse))
		return nil
	}

	c.ok(OpUserAuth, start)
	return &reply
}

// SendAdminAuthRequest logs an admin in. Any JSON object is accepted.
func (c *GatewayClient) SendAdminAuthRequest(ctx context.Context, creds models.Credentials) *models.AdminAuthResponse {
	start := time.Now()

	body, err := c.do(ctx, http.MethodPost, "/admin/login", models.AdminAuthRequest{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		c.fail(OpAdminAuth, start, err)
		return nil
	}

	var reply *models.AdminAuthResponse
	if err := json.Unmarshal(body, &reply); err != nil || reply == nil {
		c.fail(OpAdminAuth, start, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse))
		return nil
	}

	c.ok(OpAdminAuth, start)
	return reply
}

// BookSeats submits a booking. Unlike the other operations failures are
// returned: *APIError for non-2xx replies, ErrMalformedResponse for replies
// without a booking id. An empty, null or false body yields (nil, nil),
// meaning no booking was created.
func (c *GatewayClient) BookSeats(ctx context.Context, movieID string, req models.BookingRequest) (*models.BookingResponse, error) {
	start := time.Now()

	body, err := c.do(ctx, http.MethodPost, "/booking/"+url.PathEscape(movieID), req)
	if err != nil {
		c.fail(OpBookSeats, start, err)
		return nil, fmt.Errorf("BookSeats: %w", err)
	}

	// a falsy reply means the backend declined to create a booking
	switch strings.TrimSpace(string(body)) {
	case "", "null", "false", `""`, "0":
		c.track(OpBookSeats, "empty", start)
		return nil, nil
	}

	var reply models.BookingResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		err = fmt.Errorf("%w: json.Unmarshal: %v", ErrMalformedResponse, err)
		c.fail(OpBookSeats, start, err)
		return nil, fmt.Errorf("BookSeats: %w", err)
	}
	if reply.BookingID == "" {
		err := fmt.Errorf("%w: bookingId missing", ErrMalformedResponse)
		c.fail(OpBookSeats, start, err)
		return nil, fmt.Errorf("BookSeats: %w", err)
	}

	c.ok(OpBookSeats, start)
	return &reply, nil
}

// GenerateInvoice asks the backend to issue an invoice for a booking.
func (c *GatewayClient) GenerateInvoice(ctx context.Context, req models.InvoiceRequest) *models.InvoiceResponse {
	start := time.Now()

	body, err := c.do(ctx, http.MethodPost, "/api/invoices/generate/"+url.PathEscape(req.BookingID), req)
	if err != nil {
		c.fail(OpGenerateInvoice, start, err)
		return nil
	}

	var reply *models.InvoiceResponse
	if err := json.Unmarshal(body, &reply); err != nil || reply == nil {
		c.fail(OpGenerateInvoice, start, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse))
		return nil
	}

	c.ok(OpGenerateInvoice, start)
	return reply
}

// GetInvoiceByID returns the invoice field of the reply.
func (c *GatewayClient) GetInvoiceByID(ctx context.Context, id string) *models.Invoice {
	start := time.Now()

	body, err := c.do(ctx, http.MethodGet, "/api/invoices/"+url.PathEscape(id), nil)
	if err != nil {
		c.fail(OpGetInvoice, start, err)
		return nil
	}

	var reply models.InvoiceResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		c.fail(OpGetInvoice, start, fmt.Errorf("%w: json.Unmarshal: %v", ErrMalformedResponse, err))
		return nil
	}
	if reply.Invoice == nil {
		c.fail(OpGetInvoice, start, fmt.Errorf("%w: invoice missing", ErrMalformedResponse))
		return nil
	}

	c.ok(OpGetInvoice, start)
	return reply.Invoice
}

// do sends one request and returns the body of a 2xx reply.
func (c *GatewayClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("http.NewReq: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorDetail(body),
		}
	}
	return body, nil
}

// errorDetail pulls message or error out of an error body, else returns it raw.
func errorDetail(body []byte) string {
	var reply struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &reply); err == nil {
		if reply.Message != "" {
			return reply.Message
		}
		if reply.Error != "" {
			return reply.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func (c *GatewayClient) ok(op string, start time.Time) {
	c.track(op, "success", start)
}

func (c *GatewayClient) fail(op string, start time.Time, err error) {
	status := "error"

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		apiErr.Operation = op
		status = fmt.Sprintf("%d", apiErr.StatusCode)
		c.logger.Error("backend request failed",
			"operation", op, "status", apiErr.StatusCode, "error", apiErr.Message)
	case errors.Is(err, ErrMalformedResponse):
		status = "malformed"
		c.logger.Error("backend reply malformed", "operation", op, "error", err)
	default:
		c.logger.Error("backend unreachable", "operation", op, "error", err)
	}

	c.track(op, status, start)
}

func (c *GatewayClient) track(op, status string, start time.Time) {
	c.monitor.TrackGatewayRequest(op, status, time.Since(start))
}
