package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findyourseat/services"
	"findyourseat/utils"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type testCLI struct {
	backend   *httptest.Server
	stateFile string
	booked    []string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	t.Setenv("PUBNUB_PUBLISH_KEY", "")
	t.Setenv("LOG_LEVEL", "error")

	tc := &testCLI{stateFile: filepath.Join(t.TempDir(), "state.json")}

	mux := http.NewServeMux()
	mux.HandleFunc("/movie", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"movies":[{"_id":"m1","title":"Dune","featured":true},{"_id":"m2","title":"Up"}]}`)
	})
	mux.HandleFunc("/movie/m1", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"movie":{"_id":"m1","title":"Dune","actors":["Timothee","Zendaya"]}}`)
	})
	mux.HandleFunc("/user/login", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"Login Successfull","user":{"_id":"u1","name":"Asha"}}`)
	})
	mux.HandleFunc("/user/signup", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"User already exists"}`)
	})
	mux.HandleFunc("/booking/m1", func(w http.ResponseWriter, r *http.Request) {
		tc.booked = append(tc.booked, r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"bookingId":"B1"}`)
	})
	mux.HandleFunc("/api/invoices/generate/B1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"message":"Invoice generated","invoice":{"_id":"inv1","bookingId":"B1","totalAmount":500}}`)
	})

	tc.backend = httptest.NewServer(mux)
	t.Cleanup(tc.backend.Close)
	return tc
}

func (tc *testCLI) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	full := append([]string{"--backend-url", tc.backend.URL, "--state", "file", "--state-file", tc.stateFile}, args...)
	err := run(context.Background(), full, &stdout, &stderr)
	return stdout.String(), err
}

func (tc *testCLI) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := tc.run(t, args...)
	require.NoError(t, err)
	return out
}

func TestLoginWhoamiLogout(t *testing.T) {
	tc := newTestCLI(t)

	out := tc.mustRun(t, "whoami")
	assert.Contains(t, out, "Not logged in")

	out = tc.mustRun(t, "login", "--email", "a@b.c", "--password", "pw")
	assert.Contains(t, out, "Logged in as Asha")
	assert.Contains(t, out, "User ID: u1")

	out = tc.mustRun(t, "whoami")
	assert.Contains(t, out, "User ID: u1")

	tc.mustRun(t, "logout")
	out = tc.mustRun(t, "whoami")
	assert.Contains(t, out, "Not logged in")
}

func TestLogin_RequiresFields(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run(t, "login", "--email", "a@b.c")
	assert.EqualError(t, err, "all fields are required")

	_, err = tc.run(t, "signup", "--email", "a@b.c", "--password", "pw")
	assert.EqualError(t, err, "all fields are required")
}

func TestSignup_Rejected(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run(t, "signup", "--name", "Asha", "--email", "a@b.c", "--password", "pw")
	assert.ErrorIs(t, err, services.ErrAuthFailed)
}

func TestMovies(t *testing.T) {
	tc := newTestCLI(t)

	out := tc.mustRun(t, "movies")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Up")

	out = tc.mustRun(t, "movie", "m1")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Cast: Timothee, Zendaya")

	out = tc.mustRun(t, "whoami")
	assert.Contains(t, out, "Last viewed movie: Dune")

	_, err := tc.run(t, "movie", "missing")
	assert.ErrorIs(t, err, services.ErrMovieNotFound)
}

func TestSeats(t *testing.T) {
	tc := newTestCLI(t)

	out := tc.mustRun(t, "seats", "--select", "A1,K2")
	assert.Contains(t, out, "PREMIUM - INR 250.00")
	assert.Contains(t, out, "EXECUTIVE - INR 500.00")
	assert.Contains(t, out, "K18")
	assert.Contains(t, out, "Selected: A1, K2")
	assert.Contains(t, out, "Total: INR 750.00")

	_, err := tc.run(t, "seats", "--select", "Z9")
	assert.ErrorIs(t, err, services.ErrUnknownSeat)
}

func TestBook_RequiresLogin(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run(t, "book", "m1", "--seats", "A1", "--place", "PVR Kurla", "--date", "2099-01-01", "--time", "4:00 PM")

	assert.ErrorIs(t, err, services.ErrNotLoggedIn)
	assert.Empty(t, tc.booked)
}

func TestBook_Validation(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun(t, "login", "--email", "a@b.c", "--password", "pw")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown seat", []string{"--seats", "A11", "--place", "PVR Kurla", "--date", "2099-01-01", "--time", "4:00 PM"}, services.ErrUnknownSeat},
		{"unknown place", []string{"--seats", "A1", "--place", "Nowhere", "--date", "2099-01-01", "--time", "4:00 PM"}, services.ErrUnknownPlace},
		{"past date", []string{"--seats", "A1", "--place", "PVR Kurla", "--date", "2000-01-01", "--time", "4:00 PM"}, services.ErrPastDate},
		{"unknown time", []string{"--seats", "A1", "--place", "PVR Kurla", "--date", "2099-01-01", "--time", "3:00 AM"}, services.ErrUnknownTime},
		{"missing seats", []string{"--place", "PVR Kurla", "--date", "2099-01-01", "--time", "4:00 PM"}, services.ErrIncompleteSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tc.run(t, append([]string{"book", "m1"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, tc.booked)
}

func TestBookingFlow(t *testing.T) {
	tc := newTestCLI(t)
	ticketDir := t.TempDir()

	out := tc.mustRun(t, "booking")
	assert.Contains(t, out, "No Booking Found")

	tc.mustRun(t, "login", "--email", "a@b.c", "--password", "pw")
	tc.mustRun(t, "movie", "m1")

	out = tc.mustRun(t, "book", "m1", "--seats", "a1,K1,A1", "--place", "PVR Kurla", "--date", "2099-01-01", "--time", "4:00 PM")
	assert.Contains(t, out, "Booking confirmed!")
	assert.Contains(t, out, "Booking ID:   B1")
	assert.Contains(t, out, "Movie:        Dune")
	assert.Contains(t, out, "Seats:        A1, K1")
	assert.Contains(t, out, "Total Amount: INR 750.00")
	assert.Len(t, tc.booked, 1)

	out = tc.mustRun(t, "booking")
	assert.Contains(t, out, "Booking ID:   B1")
	assert.Contains(t, out, "Date:         Thu, January 1, 2099")

	_, err := tc.run(t, "pay", "--card", "1234")
	assert.ErrorIs(t, err, services.ErrInvalidCardNumber)

	out = tc.mustRun(t, "pay", "--card", "1234-5678-9012")
	assert.Contains(t, out, "Payment successful")
	assert.Contains(t, out, "Amount:     INR 750.00")

	out = tc.mustRun(t, "ticket", "--dir", ticketDir)
	path := filepath.Join(ticketDir, services.TicketFilename("B1"))
	assert.Contains(t, out, "Ticket saved to "+path)
	assert.Contains(t, out, "Dune, Thursday, January 1, 2099 - 4:00 PM")

	pdf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	out = tc.mustRun(t, "invoice", "generate")
	assert.Contains(t, out, "Invoice generated")
	assert.Contains(t, out, "Invoice ID:   inv1")

	out = tc.mustRun(t, "booking", "--clear")
	assert.Contains(t, out, "Booking cleared")
	out = tc.mustRun(t, "booking")
	assert.Contains(t, out, "No Booking Found")
}

func TestPay_UPI(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun(t, "login", "--email", "a@b.c", "--password", "pw")
	tc.mustRun(t, "book", "m1", "--seats", "A1", "--place", "PVR Kurla", "--date", "2099-01-01", "--time", "4:00 PM", "--title", "Dune")

	_, err := tc.run(t, "pay", "--method", "upi", "--upi-id", "nope")
	assert.ErrorIs(t, err, services.ErrInvalidUPIID)

	_, err = tc.run(t, "pay", "--method", "cash")
	assert.ErrorIs(t, err, services.ErrInvalidPaymentMethod)

	out := tc.mustRun(t, "pay", "--method", "UPI", "--upi-app", "phonepe", "--upi-id", "asha@upi")
	assert.Contains(t, out, "Amount:     INR 250.00")
}

func TestTicket_NoBooking(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run(t, "ticket", "--dir", t.TempDir())
	assert.ErrorIs(t, err, services.ErrNoBooking)
}

func TestUnknownStateBackend(t *testing.T) {
	tc := newTestCLI(t)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--backend-url", tc.backend.URL, "--state", "etcd", "whoami"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown STATE_BACKEND "etcd"`)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer

	printError(&buf, fmt.Errorf("Load: %w", services.ErrNoBooking))

	assert.Contains(t, buf.String(), "Error: No Booking Found. Please start a new booking process.")
	assert.Contains(t, buf.String(), services.ErrNoBooking.Error())
}

func TestServeRouter(t *testing.T) {
	tc := newTestCLI(t)

	c := &cli{backendURL: tc.backend.URL, stateBackend: "memory"}
	root := newRootCommand(c)
	root.SetErr(io.Discard)
	require.NoError(t, c.init(root))
	defer c.close()

	h := c.newRouter()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")
}

type pingStore struct {
	utils.Store
	err error
}

func (p pingStore) Ping(context.Context) error { return p.err }

func TestAppHealth(t *testing.T) {
	ctx := context.Background()

	a := &App{store: utils.NewMemoryStore()}
	assert.NoError(t, a.Health(ctx))

	a = &App{store: pingStore{Store: utils.NewMemoryStore()}}
	assert.NoError(t, a.Health(ctx))

	a = &App{store: pingStore{Store: utils.NewMemoryStore(), err: errors.New("redis health check failed")}}
	assert.EqualError(t, a.Health(ctx), "redis health check failed")
}
