package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ghaggin/tourpal/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, h http.Handler) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	t.Setenv("TOURPAL_CONFIG", "")
	t.Setenv("TOURPAL_API_BASE_URL", srv.URL)
	t.Setenv("TOURPAL_STORAGE", "json")
	t.Setenv("TOURPAL_STORAGE_PATH", filepath.Join(t.TempDir(), "session.json"))
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := RootCmd(out)
	cmd.SetArgs(args)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	return out.String(), err
}

func backend(profileStatus int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(api.LoginPath, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"token":"tok","user":{"id":"3","fullName":"Provider Demo","email":"provider@demo.com","userType":"provider"}}`))
	})
	mux.HandleFunc("/api/Users/profile", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(profileStatus)
		_, _ = w.Write([]byte(`{"id":"3"}`))
	})
	return mux
}

func TestLoginWhoamiLogout(t *testing.T) {
	require := require.New(t)
	setup(t, backend(http.StatusOK))

	out, err := run(t, "password123\n", "login", "--email", "provider@demo.com")
	require.NoError(err)
	require.Contains(out, "Signed in as Provider Demo (provider)")

	out, err = run(t, "", "whoami", "--check")
	require.NoError(err)
	require.Contains(out, "Provider Demo <provider@demo.com>")
	require.Contains(out, "role: provider")

	out, err = run(t, "", "logout")
	require.NoError(err)
	require.Contains(out, "Signed out.")

	out, err = run(t, "", "whoami")
	require.NoError(err)
	require.Contains(out, "Not signed in.")
}

func TestLogin_BadPassword(t *testing.T) {
	setup(t, backend(http.StatusOK))

	_, err := run(t, "", "login", "-e", "provider@demo.com", "-p", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")

	out, err := run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")
}

func TestWhoami_ExpiredSession(t *testing.T) {
	require := require.New(t)
	setup(t, backend(http.StatusUnauthorized))

	_, err := run(t, "", "login", "-e", "provider@demo.com", "-p", "password123")
	require.NoError(err)

	out, err := run(t, "", "whoami", "--check")
	require.NoError(err)
	require.Contains(out, "tourpal login")

	out, err = run(t, "", "whoami")
	require.NoError(err)
	require.Contains(out, "Not signed in.")
}
