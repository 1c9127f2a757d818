package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home, serverURL = "", ""
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":1,"email":"admin@netzone.me","name":"Admin User","role":"admin"},"token":"tok"}`))
	})
	mux.HandleFunc("GET /profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":1,"email":"admin@netzone.me","name":"Admin User","role":"admin"}}`))
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /admin/inquiries/export", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Date,Domain,Name,Email,Budget,Reseller,Status,Message"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginWhoamiLogout(t *testing.T) {
	srv := fakeServer(t)
	dir := t.TempDir()

	out, err := run(t, "--home", dir, "--server", srv.URL, "login", "admin@netzone.me", "-p", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin@netzone.me (admin)")
	assert.FileExists(t, filepath.Join(dir, "session.json"))

	out, err = run(t, "--home", dir, "--server", srv.URL, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin User <admin@netzone.me> role=admin")

	_, err = run(t, "--home", dir, "--server", srv.URL, "logout")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "session.json"))

	_, err = run(t, "--home", dir, "--server", srv.URL, "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestInquiriesExport_WritesFile(t *testing.T) {
	srv := fakeServer(t)
	dir := t.TempDir()
	_, err := run(t, "--home", dir, "--server", srv.URL, "login", "admin@netzone.me", "-p", "admin123")
	require.NoError(t, err)

	dest := filepath.Join(dir, "out.csv")
	_, err = run(t, "--home", dir, "--server", srv.URL, "inquiries", "export", "-o", dest)
	require.NoError(t, err)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "Date,Domain,Name,Email,Budget,Reseller,Status,Message", string(b))
}

func TestDomainsStatus_RejectsUnknownStatus(t *testing.T) {
	_, err := run(t, "--home", t.TempDir(), "domains", "status", "1", "bogus")
	assert.ErrorContains(t, err, `invalid status "bogus"`)
}

func TestAnalyticsExport_RejectsRange(t *testing.T) {
	_, err := run(t, "--home", t.TempDir(), "analytics", "export", "--range", "14")
	assert.ErrorContains(t, err, "--range must be 7, 30 or 90")
}
