package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/app"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/config"
)

type cliFixture struct {
	server    *app.Server
	apiURL    string
	socketURL string
	dir       string
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	cfg := &config.Config{
		GinMode:          gin.TestMode,
		DSN:              ":memory:",
		JWTSecret:        "cli-secret",
		JWTIssuer:        "messmilega",
		AccessTTL:        time.Hour,
		OTP_TTL:          10 * time.Minute,
		OTP_Length:       6,
		OTP_MaxAttempts:  5,
		OTP_ResendWindow: time.Minute,
	}
	srv, err := app.NewServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return &cliFixture{
		server:    srv,
		apiURL:    ts.URL,
		socketURL: "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws",
		dir:       t.TempDir(),
	}
}

// run invokes the CLI as user, whose token lives in its own file
func (f *cliFixture) run(t *testing.T, user, input string, args ...string) (string, string, error) {
	t.Helper()
	full := append([]string{
		"--api-url", f.apiURL,
		"--socket-url", f.socketURL,
		"--token-store", "file",
		"--token-path", filepath.Join(f.dir, user+".token"),
	}, args...)
	var out, errOut bytes.Buffer
	err := Run(context.Background(), full, strings.NewReader(input), &out, &errOut)
	return out.String(), errOut.String(), err
}

func (f *cliFixture) mustRun(t *testing.T, user string, args ...string) string {
	t.Helper()
	out, errOut, err := f.run(t, user, "", args...)
	require.NoError(t, err, "stderr: %s", errOut)
	return out
}

func (f *cliFixture) signUp(t *testing.T, user, name, role string) {
	t.Helper()
	email := user + "@example.com"
	out := f.mustRun(t, user, "register", "--name", name, "--email", email, "--phone", "9876543210", "--password", "secret1", "--role", role)
	assert.Contains(t, out, "messmilega verify --email "+email)

	code, err := f.server.Redis.Get(context.Background(), "otp:"+email).Result()
	require.NoError(t, err)
	f.mustRun(t, user, "verify", "--email", email, "--otp", code)

	out = f.mustRun(t, user, "login", "--email", email, "--password", "secret1")
	assert.Contains(t, out, "Signed in as "+name)
}

func TestCLI_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"help"}, strings.NewReader(""), &out, &out))
	for _, name := range []string{"login", "search", "decide <booking-id> approve|reject", "dashboard", "chat"} {
		assert.Contains(t, out.String(), name)
	}

	err := Run(context.Background(), []string{"fly"}, strings.NewReader(""), &out, &out)
	assert.ErrorContains(t, err, `unknown command "fly"`)
}

func TestCLI_SessionPersistsAcrossInvocations(t *testing.T) {
	f := newCLIFixture(t)

	_, _, err := f.run(t, "ravi", "", "whoami")
	assert.ErrorIs(t, err, ErrNotSignedIn)

	f.signUp(t, "ravi", "Ravi Kumar", "owner")

	out := f.mustRun(t, "ravi", "whoami")
	assert.Contains(t, out, "Ravi Kumar")
	assert.Contains(t, out, string(domain.RolePGOwner))

	assert.Contains(t, f.mustRun(t, "ravi", "logout"), "Signed out")
	assert.Contains(t, f.mustRun(t, "ravi", "logout"), "Signed out", "logout is idempotent")

	_, _, err = f.run(t, "ravi", "", "whoami")
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestCLI_LoginFailureShowsServerMessage(t *testing.T) {
	f := newCLIFixture(t)
	f.signUp(t, "ravi", "Ravi Kumar", "owner")

	_, _, err := f.run(t, "ravi", "", "login", "--email", "ravi@example.com", "--password", "wrong-password")
	assert.EqualError(t, err, "Invalid email or password")
}

func TestCLI_PasswordPrompt(t *testing.T) {
	f := newCLIFixture(t)
	f.signUp(t, "ravi", "Ravi Kumar", "owner")
	f.mustRun(t, "ravi", "logout")

	out, errOut, err := f.run(t, "ravi", "secret1\n", "login", "--email", "ravi@example.com")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Password:")
	assert.Contains(t, out, "Signed in as Ravi Kumar")
}

func TestCLI_BookingWorkflow(t *testing.T) {
	f := newCLIFixture(t)
	f.signUp(t, "ravi", "Ravi Kumar", "owner")
	f.signUp(t, "asha", "Asha Rao", "student")

	out := f.mustRun(t, "ravi", "add-property",
		"--name", "Sunrise PG", "--address", "12 MG Road", "--city", "Pune", "--pincode", "411001",
		"--room-type", "double", "--rent", "6500", "--rooms", "10", "--available", "4", "--amenities", "wifi,food")
	assert.Contains(t, out, "Listed Sunrise PG with id 1")

	_, _, err := f.run(t, "asha", "", "add-property", "--name", "Nope")
	assert.ErrorContains(t, err, "only available to PG_OWNER")

	out = f.mustRun(t, "asha", "search", "--city", "Pune", "--max-price", "7000")
	assert.Contains(t, out, "Sunrise PG")
	assert.Contains(t, out, "₹6,500")

	out = f.mustRun(t, "asha", "property", "1")
	assert.Contains(t, out, "wifi, food")
	assert.Contains(t, out, "4 of 10 available")

	checkIn := time.Now().AddDate(0, 0, 10).Format(domain.CheckInDateLayout)
	out = f.mustRun(t, "asha", "book", "--property", "1", "--check-in", checkIn, "--months", "3")
	assert.Contains(t, out, "3 months at ₹6,500 = ₹19,500")
	assert.Contains(t, out, "is PENDING")

	_, _, err = f.run(t, "asha", "", "book", "--property", "1", "--check-in", "2001-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out = f.mustRun(t, "ravi", "bookings")
	assert.Contains(t, out, "Asha Rao")

	out = f.mustRun(t, "ravi", "decide", "1", "approve")
	assert.Contains(t, out, "Booking 1 is APPROVED")

	_, _, err = f.run(t, "ravi", "", "decide", "1", "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out = f.mustRun(t, "asha", "bookings")
	assert.Contains(t, out, "APPROVED")

	out = f.mustRun(t, "ravi", "dashboard")
	assert.Contains(t, out, "70.0%")
	assert.Contains(t, out, "₹19,500")

	f.mustRun(t, "asha", "inquire", "--property", "1", "-m", "Is food included?")
	out = f.mustRun(t, "ravi", "inquiries")
	assert.Contains(t, out, "Is food included?")
}

func TestCLI_ForgedTokenIsDiscardedSilently(t *testing.T) {
	f := newCLIFixture(t)
	f.signUp(t, "asha", "Asha Rao", "student")

	path := filepath.Join(f.dir, "asha.token")
	require.NoError(t, writeToken(path, "forged"))
	_, errOut, err := f.run(t, "asha", "", "whoami")
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.NotContains(t, errOut, "session has expired")
	assert.NoFileExists(t, path)
}

func TestCLI_Chat(t *testing.T) {
	f := newCLIFixture(t)
	f.signUp(t, "ravi", "Ravi Kumar", "owner")

	cfg := &config.Config{
		APIURL:     f.apiURL,
		SocketURL:  f.socketURL,
		Timeout:    5 * time.Second,
		RetryMax:   1,
		TokenStore: app.TokenStoreMemory,
	}
	asha, err := app.NewContainer(cfg, nil)
	require.NoError(t, err)
	defer asha.Close()
	f.signUp(t, "asha", "Asha Rao", "student")
	require.True(t, asha.Session.Login(context.Background(), "asha@example.com", "secret1").Success)
	asha.Connect()
	ashaID := asha.Session.User().ID

	out, errOut, err := f.run(t, "ravi", "Yes, a room is free\n", "chat", "--to", itoa(ashaID))
	require.NoError(t, err, "stderr: %s", errOut)
	assert.Contains(t, out, "me: Yes, a room is free")

	require.Eventually(t, func() bool { return len(asha.Channel.Messages()) == 1 }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, "Yes, a room is free", asha.Channel.Messages()[0].Message)
}
