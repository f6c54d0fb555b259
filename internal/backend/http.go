package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/eventora/backoffice/internal/common"
	"github.com/eventora/backoffice/internal/logging"
	"github.com/eventora/backoffice/internal/models"
)

// TokenSource supplies the current access token for outbound requests.
// An empty string means no Authorization header is attached.
type TokenSource func(ctx context.Context) string

// HTTPClient is the REST implementation of Client. Every response uses the
// backend's JSON envelope {success, data, message}.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if c.token != nil {
		if tok := c.token(ctx); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request rejected"
		}
		return fmt.Errorf("%s", msg)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return LoginResult{}, fmt.Errorf("login error: %w", err)
	}
	return result, nil
}

func (c *HTTPClient) Cities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := c.do(ctx, http.MethodGet, "/api/cities", nil, &cities); err != nil {
		return nil, fmt.Errorf("cities error: %w", err)
	}
	return cities, nil
}

func (c *HTTPClient) Districts(ctx context.Context, cityID int64) ([]models.District, error) {
	var districts []models.District
	path := fmt.Sprintf("/api/cities/%d/districts", cityID)
	if err := c.do(ctx, http.MethodGet, path, nil, &districts); err != nil {
		return nil, fmt.Errorf("districts error: %w", err)
	}
	return districts, nil
}

func (c *HTTPClient) Organizations(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := c.do(ctx, http.MethodGet, "/api/organizations", nil, &orgs); err != nil {
		return nil, fmt.Errorf("organizations error: %w", err)
	}
	return orgs, nil
}

func (c *HTTPClient) Organization(ctx context.Context, id int64) (models.Organization, error) {
	var org models.Organization
	path := fmt.Sprintf("/api/organizations/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &org); err != nil {
		return models.Organization{}, fmt.Errorf("organization error: %w", err)
	}
	return org, nil
}

func (c *HTTPClient) CreateOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	var created models.Organization
	if err := c.do(ctx, http.MethodPost, "/api/organizations", org, &created); err != nil {
		return models.Organization{}, fmt.Errorf("create organization error: %w", err)
	}
	return created, nil
}

func (c *HTTPClient) UpdateOrganization(ctx context.Context, org models.Organization) error {
	path := fmt.Sprintf("/api/organizations/%d", org.ID)
	if err := c.do(ctx, http.MethodPut, path, org, nil); err != nil {
		return fmt.Errorf("update organization error: %w", err)
	}
	return nil
}

func (c *HTTPClient) DeleteOrganization(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/organizations/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete organization error: %w", err)
	}
	return nil
}

func (c *HTTPClient) Company(ctx context.Context) (models.Company, error) {
	var company models.Company
	if err := c.do(ctx, http.MethodGet, "/api/company", nil, &company); err != nil {
		return models.Company{}, fmt.Errorf("company error: %w", err)
	}
	return company, nil
}

func (c *HTTPClient) UpdateCompany(ctx context.Context, company models.Company) error {
	if err := c.do(ctx, http.MethodPut, "/api/company", company, nil); err != nil {
		return fmt.Errorf("update company error: %w", err)
	}
	return nil
}

func (c *HTTPClient) Messages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, &messages); err != nil {
		return nil, fmt.Errorf("messages error: %w", err)
	}
	return messages, nil
}

func (c *HTTPClient) MarkMessageRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/messages/%d/read", id)
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("mark message read error: %w", err)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
