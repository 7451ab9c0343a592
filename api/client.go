// Package api is the REST client for the GetSet backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/getset-tui/logging"
	"github.com/getset-tui/models"
)

// ErrUnauthenticated is returned when an authenticated endpoint is called
// without an access token. Callers should direct the user to login instead
// of retrying.
var ErrUnauthenticated = errors.New("not authenticated: no access token")

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.Component("api"),
	}
}

// Authenticated reports whether the client carries an access token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) ([]byte, error) {
	if authed && c.token == "" {
		return nil, ErrUnauthenticated
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("request failed")
		return nil, errors.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, apiMessage(respBody))
	}

	return respBody, nil
}

// apiMessage pulls the backend's error message out of an error body,
// falling back to the raw payload.
func apiMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "message"); msg.Exists() {
		return msg.String()
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}

// collection normalizes the backend's two list shapes, `{"content": [...]}`
// and a bare array, into raw array JSON.
func collection(body []byte) []byte {
	if content := gjson.GetBytes(body, "content"); content.IsArray() {
		return []byte(content.Raw)
	}
	if gjson.ParseBytes(body).IsArray() {
		return body
	}
	return []byte("[]")
}

func (c *Client) getList(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(collection(body), out); err != nil {
		return errors.Wrapf(err, "parse %s response", path)
	}
	return nil
}

// Messages

// ReceivedMessages lists messages addressed to the current user.
func (c *Client) ReceivedMessages(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	if err := c.getList(ctx, "/api/v1/messages/received", &msgs); err != nil {
		return nil, errors.Wrap(err, "fetch received messages")
	}
	return msgs, nil
}

// SentMessages lists messages the current user sent.
func (c *Client) SentMessages(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	if err := c.getList(ctx, "/api/v1/messages/sent", &msgs); err != nil {
		return nil, errors.Wrap(err, "fetch sent messages")
	}
	return msgs, nil
}

// MarkMessageRead flags a received message as read. The response body is
// irrelevant; only success matters.
func (c *Client) MarkMessageRead(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/v1/messages/"+url.PathEscape(id)+"/read", struct{}{}, true)
	return errors.Wrapf(err, "mark message %s read", id)
}

// SendMessage posts a new message.
func (c *Client) SendMessage(ctx context.Context, out models.Outgoing) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/messages", out, true)
	return errors.Wrap(err, "send message")
}

// UnreadCount returns the number of unread messages for the badge.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/messages/unread-count", nil, true)
	if err != nil {
		return 0, err
	}
	return int(gjson.GetBytes(body, "count").Int()), nil
}

// Auth

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return "", errors.Wrap(err, "login")
	}
	token := gjson.GetBytes(body, "accessToken").String()
	if token == "" {
		return "", errors.New("login response missing accessToken")
	}
	return token, nil
}

// Register creates an account and returns the issued access token.
func (c *Client) Register(ctx context.Context, email, password, name, role string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
		"role":     role,
	}, false)
	if err != nil {
		return "", errors.Wrap(err, "register")
	}
	return gjson.GetBytes(body, "accessToken").String(), nil
}

// Properties

func (c *Client) Properties(ctx context.Context) ([]models.Property, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/properties", nil, false)
	if err != nil {
		return nil, errors.Wrap(err, "fetch properties")
	}
	var props []models.Property
	if err := json.Unmarshal(collection(body), &props); err != nil {
		return nil, errors.Wrap(err, "parse properties")
	}
	return props, nil
}

// MyProperties lists the listings owned by the current user.
func (c *Client) MyProperties(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := c.getList(ctx, "/api/v1/properties/owner/my-properties", &props); err != nil {
		return nil, errors.Wrap(err, "fetch own properties")
	}
	return props, nil
}

// Favorites

func (c *Client) Favorites(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := c.getList(ctx, "/api/v1/favorites", &props); err != nil {
		return nil, errors.Wrap(err, "fetch favorites")
	}
	return props, nil
}

func (c *Client) AddFavorite(ctx context.Context, propertyID string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/favorites/"+url.PathEscape(propertyID), struct{}{}, true)
	return errors.Wrapf(err, "add favorite %s", propertyID)
}

func (c *Client) RemoveFavorite(ctx context.Context, propertyID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/favorites/"+url.PathEscape(propertyID), nil, true)
	return errors.Wrapf(err, "remove favorite %s", propertyID)
}

func (c *Client) IsFavorite(ctx context.Context, propertyID string) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/favorites/check/"+url.PathEscape(propertyID), nil, true)
	if err != nil {
		return false, err
	}
	return gjson.GetBytes(body, "favorite").Bool() || gjson.ParseBytes(body).Bool(), nil
}

// Enquiries

// Enquiries lists enquiries for the current user; owners see received
// enquiries, renters see their own.
func (c *Client) Enquiries(ctx context.Context, identity models.Identity) ([]models.Enquiry, error) {
	path := "/api/v1/enquiries/my"
	if identity.IsOwner() {
		path = "/api/v1/enquiries/received"
	}
	var enquiries []models.Enquiry
	if err := c.getList(ctx, path, &enquiries); err != nil {
		return nil, errors.Wrap(err, "fetch enquiries")
	}
	return enquiries, nil
}

func (c *Client) UpdateEnquiryStatus(ctx context.Context, id, status string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/v1/enquiries/"+url.PathEscape(id)+"/status",
		map[string]string{"status": status}, true)
	return errors.Wrapf(err, "update enquiry %s", id)
}

// Ping checks backend connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Properties(ctx); err != nil {
		return fmt.Errorf("backend unreachable: %v", err)
	}
	return nil
}
