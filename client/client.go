// Package client is the storefront's HTTP collaborator. It talks to the
// backend REST API and feeds every response into the state container
// through the same dispatch path the UI uses, so the container stays the
// single source of truth.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kasmetics/storefront/client/session"
	"github.com/kasmetics/storefront/client/state"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx backend response decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client drives the backend API on behalf of the state container.
type Client struct {
	baseURL  string
	http     *http.Client
	store    *state.Store
	sessions session.Store

	mu    sync.Mutex
	token string
}

// New builds a gateway bound to one container and one session store.
// httpClient may be nil; a default with a request timeout is used.
func New(baseURL string, store *state.Store, sessions session.Store, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if store == nil {
		return nil, fmt.Errorf("state store is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		store:    store,
		sessions: sessions,
	}, nil
}

// Hydrate restores a persisted session into the container and loads the
// access token for subsequent authenticated calls.
func (c *Client) Hydrate() (bool, error) {
	restored, err := session.Hydrate(c.sessions, c.store)
	if err != nil || !restored {
		return false, err
	}

	token, _, err := session.Token(c.sessions)
	if err != nil {
		return false, err
	}
	c.setToken(token)
	return true, nil
}

type loginPayload struct {
	Token string     `json:"token"`
	User  state.User `json:"user"`
}

// Login authenticates the storefront user, persists the session pair,
// and dispatches the profile into the container.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// AdminLogin authenticates against the admin login endpoint.
func (c *Client) AdminLogin(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/admin-login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account; the backend logs it in immediately.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.authenticate(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) error {
	var payload loginPayload
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		if _, dispatchErr := c.store.Dispatch(state.SetError{Message: err.Error()}); dispatchErr != nil {
			return dispatchErr
		}
		return err
	}

	if err := session.Persist(c.sessions, payload.Token, payload.User); err != nil {
		return err
	}
	c.setToken(payload.Token)
	_, err := c.store.Dispatch(state.SetUser{User: payload.User})
	return err
}

// Logout revokes the server-side session, then clears the persisted pair
// and the container regardless of whether revocation succeeded. The
// local session never outlives a logout attempt.
func (c *Client) Logout(ctx context.Context) error {
	revokeErr := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)

	c.setToken("")
	if err := session.Clear(c.sessions); err != nil {
		return err
	}
	if _, err := c.store.Dispatch(state.Logout{}); err != nil {
		return err
	}
	return revokeErr
}

type productsPayload struct {
	Products []state.Product `json:"products"`
}

// FetchProducts refreshes the catalog cache. The generation token issued
// before the request lets the store drop this response if a newer fetch
// lands first.
func (c *Client) FetchProducts(ctx context.Context) error {
	generation := c.store.BeginFetch(state.CacheProducts)
	if _, err := c.store.Dispatch(state.SetLoading{Loading: true}); err != nil {
		return err
	}

	var payload productsPayload
	if err := c.do(ctx, http.MethodGet, "/products", nil, &payload); err != nil {
		return c.dispatchFetchError(err)
	}

	_, err := c.store.Dispatch(state.SetProducts{Products: payload.Products, Generation: generation})
	return err
}

// FetchFeaturedProducts refreshes the featured cache.
func (c *Client) FetchFeaturedProducts(ctx context.Context) error {
	generation := c.store.BeginFetch(state.CacheFeatured)
	if _, err := c.store.Dispatch(state.SetLoading{Loading: true}); err != nil {
		return err
	}

	var payload productsPayload
	if err := c.do(ctx, http.MethodGet, "/products?featured=true", nil, &payload); err != nil {
		return c.dispatchFetchError(err)
	}

	_, err := c.store.Dispatch(state.SetFeaturedProducts{Products: payload.Products, Generation: generation})
	return err
}

// FetchBestSeller refreshes the best-seller snapshot. An empty result
// clears it.
func (c *Client) FetchBestSeller(ctx context.Context) error {
	generation := c.store.BeginFetch(state.CacheBestSeller)
	if _, err := c.store.Dispatch(state.SetLoading{Loading: true}); err != nil {
		return err
	}

	var payload productsPayload
	if err := c.do(ctx, http.MethodGet, "/products?bestseller=true&limit=1", nil, &payload); err != nil {
		return c.dispatchFetchError(err)
	}

	var best *state.Product
	if len(payload.Products) > 0 {
		best = &payload.Products[0]
	}
	_, err := c.store.Dispatch(state.SetBestSeller{Product: best, Generation: generation})
	return err
}

// SubmitContact sends a contact-form message. It does not touch the
// container beyond surfacing a failure.
func (c *Client) SubmitContact(ctx context.Context, name, email, phone, message string) error {
	body := map[string]string{
		"name":    name,
		"email":   email,
		"phone":   phone,
		"message": message,
	}
	if err := c.do(ctx, http.MethodPost, "/contact", body, nil); err != nil {
		return c.dispatchFetchError(err)
	}
	return nil
}

func (c *Client) dispatchFetchError(err error) error {
	if _, dispatchErr := c.store.Dispatch(state.SetError{Message: err.Error()}); dispatchErr != nil {
		return dispatchErr
	}
	return err
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	var envelope successEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response payload: %w", err)
	}
	return nil
}
