package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is how often WaitForApproval re-checks the account.
const DefaultPollInterval = 5 * time.Second

var ErrNotLoggedIn = errors.New("not logged in")

// APIError carries the status and error text of a failed envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type Client struct {
	http  *resty.Client
	store *SessionStore
	log   *logrus.Logger

	mu      sync.RWMutex
	session *Session
}

// New restores any saved session from store.
func New(baseURL string, store *SessionStore, log *logrus.Logger) (*Client, error) {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	session, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Client{
		http:    httpClient,
		store:   store,
		log:     log,
		session: session,
	}, nil
}

// Session returns a copy of the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Client) token() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return "", ErrNotLoggedIn
	}
	return c.session.Token, nil
}

func (c *Client) setSession(session *Session) error {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	return c.store.Save(session)
}

// call performs the request and decodes the envelope's data into out.
func (c *Client) call(req *resty.Request, method, path string, out interface{}) error {
	var env envelope
	resp, err := req.SetResult(&env).SetError(&env).Execute(method, path)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}

	if resp.IsError() || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*Session, error) {
	var session Session
	if err := c.call(c.http.R().SetContext(ctx).SetBody(body), http.MethodPost, path, &session); err != nil {
		return nil, err
	}
	if err := c.setSession(&session); err != nil {
		return nil, err
	}
	return c.Session(), nil
}

func (c *Client) Register(ctx context.Context, email, password string, name *string) (*Session, error) {
	body := map[string]interface{}{"email": email, "password": password}
	if name != nil {
		body["name"] = *name
	}
	return c.authenticate(ctx, "/api/auth/register", body)
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{"email": email, "password": password})
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.call(c.http.R().SetContext(ctx).SetAuthToken(token), http.MethodGet, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the local session. Revoking the token on the server is best effort.
func (c *Client) Logout(ctx context.Context) error {
	if token, err := c.token(); err == nil {
		if err := c.call(c.http.R().SetContext(ctx).SetAuthToken(token), http.MethodPost, "/api/auth/logout", nil); err != nil {
			c.log.Warnf("Failed to revoke token on server: %+v", err)
		}
	}

	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	return c.store.Clear()
}

// WaitForApproval polls /api/auth/me until the account is approved or ctx is
// done. Failed polls are skipped. The saved session is updated on approval.
func (c *Client) WaitForApproval(ctx context.Context, interval time.Duration) (*User, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if _, err := c.token(); err != nil {
		return nil, err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			user, err := c.Me(ctx)
			if err != nil {
				c.log.Debugf("Approval poll failed: %v", err)
				continue
			}
			if !user.Approved {
				continue
			}

			c.mu.Lock()
			if c.session == nil {
				c.mu.Unlock()
				return nil, ErrNotLoggedIn
			}
			c.session.User.Approved = true
			session := *c.session
			c.mu.Unlock()

			if err := c.store.Save(&session); err != nil {
				return nil, err
			}
			return user, nil
		}
	}
}

// SavePrescription submits the draft as a new patient visit and returns its id.
func (c *Client) SavePrescription(ctx context.Context, draft *Draft) (uuid.UUID, error) {
	if err := draft.Validate(); err != nil {
		return uuid.Nil, err
	}
	token, err := c.token()
	if err != nil {
		return uuid.Nil, err
	}

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	req := c.http.R().SetContext(ctx).SetAuthToken(token).SetBody(draft)
	if err := c.call(req, http.MethodPost, "/api/patients", &created); err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}
