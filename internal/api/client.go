// Package api is the outbound gateway to the expense tracker backend.
// One configured client attaches the session token to every request;
// failures surface immediately with the server's error message when it
// provides one. No retries, no backoff, no client-enforced timeout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"roomsplit/internal/core"
	"roomsplit/internal/log"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// TokenSource supplies the current session token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Error is a server-reported failure: a non-2xx status with the message
// from the response's "error" field when present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Message extracts a displayable message from err: the server's own
// message for server-reported failures, fallback for everything else
// (transport failures, unparsable bodies).
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Credentials is the auth endpoints' response payload.
type Credentials struct {
	Token string `json:"token"`
}

// NewExpense is the creation payload for POST /expenses.
type NewExpense struct {
	HouseholdID int64       `json:"household_id"`
	Amount      core.Amount `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        time.Time   `json:"date"`
}

// Client is the configured HTTP gateway. Construct it with New.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *log.Logger
}

// New builds a client for the API rooted at baseURL. tokens may be nil
// for a client that never authenticates (not useful beyond tests).
func New(baseURL string, tokens TokenSource, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentAPI)

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Transport: newTracingTransport(http.DefaultTransport, logger),
		},
		tokens: tokens,
		logger: logger,
	}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &creds); err != nil {
		return Credentials{}, err
	}
	if creds.Token == "" {
		return Credentials{}, fmt.Errorf("login response: missing token")
	}
	return creds, nil
}

// Register creates an account and exchanges it for a session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (Credentials, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &creds); err != nil {
		return Credentials{}, err
	}
	if creds.Token == "" {
		return Credentials{}, fmt.Errorf("register response: missing token")
	}
	return creds, nil
}

// Households lists the households the current user belongs to.
func (c *Client) Households(ctx context.Context) ([]core.Household, error) {
	var households []core.Household
	if err := c.do(ctx, http.MethodGet, "/households", nil, nil, &households); err != nil {
		return nil, err
	}
	for _, h := range households {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("households response: %w", err)
		}
	}
	return households, nil
}

// CreateHousehold creates a household owned by the current user.
func (c *Client) CreateHousehold(ctx context.Context, name string) (core.Household, error) {
	body := map[string]string{"name": name}
	var h core.Household
	if err := c.do(ctx, http.MethodPost, "/households", nil, body, &h); err != nil {
		return core.Household{}, err
	}
	return h, nil
}

// JoinHousehold joins an existing household by its numeric id.
func (c *Client) JoinHousehold(ctx context.Context, id int64) error {
	// The server expects this one field camel-cased.
	body := map[string]int64{"householdId": id}
	return c.do(ctx, http.MethodPost, "/households/join", nil, body, nil)
}

// Expenses lists the expenses of a household for one month.
func (c *Client) Expenses(ctx context.Context, householdID int64, p core.Period) ([]core.Expense, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var expenses []core.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", scopeQuery(householdID, p), nil, &expenses); err != nil {
		return nil, err
	}
	for _, e := range expenses {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("expenses response: %w", err)
		}
	}
	return expenses, nil
}

// CreateExpense logs a new expense.
func (c *Client) CreateExpense(ctx context.Context, e NewExpense) (core.Expense, error) {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	var created core.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, e, &created); err != nil {
		return core.Expense{}, err
	}
	return created, nil
}

// Summary fetches the server-computed balances and settlements of a
// household for one month.
func (c *Client) Summary(ctx context.Context, householdID int64, p core.Period) (core.Summary, error) {
	if err := p.Validate(); err != nil {
		return core.Summary{}, err
	}
	var s core.Summary
	if err := c.do(ctx, http.MethodGet, "/summary", scopeQuery(householdID, p), nil, &s); err != nil {
		return core.Summary{}, err
	}
	for _, b := range s.Balances {
		if err := b.Validate(); err != nil {
			return core.Summary{}, fmt.Errorf("summary response: %w", err)
		}
	}
	return s, nil
}

func scopeQuery(householdID int64, p core.Period) url.Values {
	q := url.Values{}
	q.Set("household_id", strconv.FormatInt(householdID, 10))
	q.Set("month", strconv.Itoa(p.Month))
	q.Set("year", strconv.Itoa(p.Year))
	return q
}

// do performs one request/response cycle against the API.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

// serverError turns a non-2xx response into an *Error carrying the
// server's message when the body has the conventional {"error": "..."}
// shape.
func serverError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &Error{Status: status, Message: payload.Error}
	}
	return &Error{Status: status, Message: ""}
}
