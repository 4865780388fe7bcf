package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomsplit/internal/core"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func newTestClient(t *testing.T, tokens TokenSource, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, tokens, nil)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, staticTokens{token: "tok-123"}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]core.Household{})
	})

	if _, err := client.Households(context.Background()); err != nil {
		t.Fatalf("Households failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Credentials{Token: "fresh"})
	})

	if _, err := client.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClientSetsRequestID(t *testing.T) {
	var gotID string
	client := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode([]core.Household{})
	})

	if _, err := client.Households(context.Background()); err != nil {
		t.Fatalf("Households failed: %v", err)
	}
	if gotID == "" {
		t.Fatalf("expected X-Request-Id header")
	}
}

func TestLoginSurfacesServerError(t *testing.T) {
	client := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	})

	_, err := client.Login(context.Background(), "a@b.c", "bad")
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	if got := Message(err, "Login failed"); got != "Invalid credentials" {
		t.Fatalf("Message should prefer the server text, got %q", got)
	}
}

func TestMessageFallsBackWithoutServerText(t *testing.T) {
	client := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.Households(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := Message(err, "Failed to load data"); got != "Failed to load data" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestMessageFallsBackForTransportErrors(t *testing.T) {
	client := New("http://127.0.0.1:1", staticTokens{}, nil)
	_, err := client.Households(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if got := Message(err, "generic"); got != "generic" {
		t.Fatalf("expected fallback for transport error, got %q", got)
	}
}

func TestExpensesQueryScope(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, staticTokens{token: "t"}, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"household_id": r.URL.Query().Get("household_id"),
			"month":        r.URL.Query().Get("month"),
			"year":         r.URL.Query().Get("year"),
		}
		json.NewEncoder(w).Encode([]core.Expense{})
	})

	_, err := client.Expenses(context.Background(), 7, core.Period{Month: 8, Year: 2026})
	if err != nil {
		t.Fatalf("Expenses failed: %v", err)
	}
	want := map[string]string{"household_id": "7", "month": "8", "year": "2026"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query %s: got %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestExpensesRejectsInvalidPeriod(t *testing.T) {
	client := New("http://localhost:0", staticTokens{}, nil)
	if _, err := client.Expenses(context.Background(), 1, core.Period{Month: 13, Year: 2026}); err != core.ErrInvalidMonth {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestJoinHouseholdPayload(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, staticTokens{token: "t"}, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusOK)
	})

	if err := client.JoinHousehold(context.Background(), 42); err != nil {
		t.Fatalf("JoinHousehold failed: %v", err)
	}
	// One field, camel-cased, matching the server's contract.
	if v, ok := payload["householdId"]; !ok || v != float64(42) {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestSummaryDecodeAndValidate(t *testing.T) {
	client := newTestClient(t, staticTokens{token: "t"}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"balances": [
				{"user": {"id": 1, "name": "A"}, "net": 25},
				{"user": {"id": 2, "name": "B"}, "net": "-25.00"}
			],
			"settlements": [
				{"from": {"name": "B"}, "to": {"name": "A"}, "amount": 25}
			]
		}`))
	})

	s, err := client.Summary(context.Background(), 1, core.Period{Month: 8, Year: 2026})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(s.Balances) != 2 || len(s.Settlements) != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Balances[1].Net != -25 {
		t.Fatalf("string-encoded net not decoded: %+v", s.Balances[1])
	}
}

func TestSummaryRejectsBalanceWithoutUser(t *testing.T) {
	client := newTestClient(t, staticTokens{token: "t"}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balances": [{"net": 10}], "settlements": []}`))
	})

	if _, err := client.Summary(context.Background(), 1, core.Period{Month: 8, Year: 2026}); err == nil {
		t.Fatalf("expected validation error for balance without user id")
	}
}

func TestLoginRejectsMissingToken(t *testing.T) {
	client := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	if _, err := client.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Fatalf("expected error for response without token")
	}
}
