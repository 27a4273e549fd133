package kenpom

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cbbsync/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const loginForm = `<html><body><form>
<input name="email"/><input name="password" type="password"/>
</form></body></html>`

func ratingsServer(t *testing.T, password string) *httptest.Server {
	loggedIn := false
	mux := http.NewServeMux()
	mux.HandleFunc("/index.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, loginForm)
	})
	mux.HandleFunc("/handlers/login_handler.php", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != password {
			fmt.Fprint(w, loginForm)
			return
		}
		loggedIn = true
		fmt.Fprint(w, "<html><body>Welcome back</body></html>")
	})
	mux.HandleFunc("/summary.php", func(w http.ResponseWriter, r *http.Request) {
		if !loggedIn {
			fmt.Fprint(w, loginForm)
			return
		}
		require.Equal(t, "2025", r.URL.Query().Get("y"))
		fmt.Fprint(w, summaryPage)
	})
	return httptest.NewServer(mux)
}

func TestLoginAndFetchEfficiency(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "kenpom")
	defer cleanup()

	server := ratingsServer(t, "hunter2")
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Login(context.Background(), "subscriber@example.com", "hunter2")
	require.NoError(t, err)

	table, err := client.FetchEfficiency(context.Background(), 2025)
	require.NoError(t, err)
	require.Equal(t, []string{"Rk", "Team", "AdjO", "AdjD"}, table.Header)
	require.Len(t, table.Rows, 3)
}

func TestLoginRejected(t *testing.T) {
	server := ratingsServer(t, "hunter2")
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Login(context.Background(), "subscriber@example.com", "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestFetchEfficiencyEmpty(t *testing.T) {
	// a logged-out session gets the login page instead of the table
	server := ratingsServer(t, "hunter2")
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.FetchEfficiency(context.Background(), 2025)
	require.Error(t, err)
}
