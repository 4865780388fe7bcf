package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"roomsplit/internal/api"
	"roomsplit/internal/core"
	"roomsplit/internal/session"
)

func newTestApp(t *testing.T, handler http.Handler, input string) (*App, *session.Store, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	client := api.New(srv.URL, store, nil)
	var out bytes.Buffer
	app := NewWithIO(client, store, nil, strings.NewReader(input), &out)
	return app, store, &out
}

func backendMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/households", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]core.Household{{ID: 1, Name: "1BHK Room"}})
	})
	mux.HandleFunc("/expenses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]core.Expense{
			{ID: 1, Amount: 100, Description: "Groceries", Category: "Food", PaidBy: 1, PayerName: "A"},
			{ID: 2, Amount: 50, Category: "Food", PaidBy: 2, PayerName: "B"},
		})
	})
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(core.Summary{
			Balances: []core.Balance{
				{User: core.User{ID: 1, Name: "A"}, Net: 25},
				{User: core.User{ID: 2, Name: "B"}, Net: -25},
			},
			Settlements: []core.Settlement{
				{From: core.User{Name: "B"}, To: core.User{Name: "A"}, Amount: 25},
			},
		})
	})
	return mux
}

func TestRouteGateWithoutTokenShowsAuthSurface(t *testing.T) {
	app, _, out := newTestApp(t, backendMux(t), "q\n")

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "[1] Sign in") {
		t.Fatalf("expected auth landing, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Monthly summary") {
		t.Fatalf("unauthenticated run must not reach the dashboard")
	}
}

func TestRouteGateWithTokenShowsDashboard(t *testing.T) {
	app, store, out := newTestApp(t, backendMux(t), "q\n")
	if err := store.SetToken(context.Background(), "tok"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	output := out.String()
	for _, want := range []string{"1BHK Room", "Groceries", "(paid 100.00)", "B -> A  25.00", "Food"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected dashboard to contain %q, got:\n%s", want, output)
		}
	}
}

func TestLoginFailureShowsServerMessageAndStays(t *testing.T) {
	mux := backendMux(t)
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	})

	app, store, out := newTestApp(t, mux, "1\nroom@mate.io\nwrong\nq\n")
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out.String(), "Invalid credentials") {
		t.Fatalf("expected the server's error text, got:\n%s", out.String())
	}
	if _, ok := store.Token(); ok {
		t.Fatalf("failed login must not store a token")
	}
}

func TestLoginSuccessEntersDashboard(t *testing.T) {
	mux := backendMux(t)
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "room@mate.io" || body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(api.Credentials{Token: "tok-login"})
	})

	app, store, out := newTestApp(t, mux, "1\nroom@mate.io\npw\nq\n")
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if tok, ok := store.Token(); !ok || tok != "tok-login" {
		t.Fatalf("expected stored token, got %q (present=%v)", tok, ok)
	}
	if !strings.Contains(out.String(), "Monthly summary") {
		t.Fatalf("expected dashboard after login, got:\n%s", out.String())
	}
}

func TestLogoutClearsTokenAndReturnsToAuth(t *testing.T) {
	app, store, out := newTestApp(t, backendMux(t), "o\nq\n")
	if err := store.SetToken(context.Background(), "tok"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatalf("logout must clear the token")
	}
	if !strings.Contains(out.String(), "[1] Sign in") {
		t.Fatalf("expected auth landing after logout, got:\n%s", out.String())
	}
}

func TestDashboardFetchFailureShowsInlineError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/households", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]core.Household{{ID: 1, Name: "1BHK Room"}})
	})
	mux.HandleFunc("/expenses", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "database is down"})
	})
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(core.Summary{})
	})

	app, store, out := newTestApp(t, mux, "q\n")
	if err := store.SetToken(context.Background(), "tok"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "database is down") {
		t.Fatalf("expected inline fetch error, got:\n%s", out.String())
	}
}

func TestJoinFailureShowsFixedMessage(t *testing.T) {
	mux := backendMux(t)
	mux.HandleFunc("/households/join", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no such household"})
	})

	app, store, out := newTestApp(t, mux, "j\n999\nq\n")
	if err := store.SetToken(context.Background(), "tok"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Failed to join. Check ID.") {
		t.Fatalf("expected join failure message, got:\n%s", out.String())
	}
}
