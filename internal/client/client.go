// Package client talks to the Netzone HTTP API on behalf of netzonectl.
package client

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
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/session"
)

// APIError carries the status and the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type HTTPClient struct {
	Base  string
	HTTP  *http.Client
	Token string
}

func NewHTTP(base, token string) *HTTPClient {
	return &HTTPClient{
		Base:  base,
		HTTP:  &http.Client{Timeout: 30 * time.Second},
		Token: token,
	}
}

type Domain struct {
	ID           int64               `json:"id"`
	DomainName   string              `json:"domain_name"`
	Nameservers  []string            `json:"nameservers"`
	Status       domain.DomainStatus `json:"status"`
	Price        float64             `json:"price"`
	Tagline      string              `json:"tagline"`
	ThemeVariant int                 `json:"theme_variant"`
	CreatedAt    time.Time           `json:"created_at"`
}

type Inquiry struct {
	ID         int64                `json:"id"`
	DomainID   int64                `json:"domain_id"`
	DomainName string               `json:"domain_name"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Message    string               `json:"message"`
	Budget     string               `json:"budget"`
	Reseller   bool                 `json:"reseller"`
	Status     domain.InquiryStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

type Counts struct {
	All      int            `json:"all"`
	ByStatus map[string]int `json:"by_status"`
}

type AddDomain struct {
	DomainName   string   `json:"domain_name"`
	Nameservers  []string `json:"nameservers,omitempty"`
	Price        float64  `json:"price"`
	Tagline      string   `json:"tagline,omitempty"`
	ThemeVariant int      `json:"theme_variant,omitempty"`
}

// Login returns the session record to persist: the user plus the bearer token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*session.Record, error) {
	var rec session.Record
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) Profile(ctx context.Context) (*session.UserRecord, error) {
	var out struct {
		User session.UserRecord `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) Domains(ctx context.Context, status domain.DomainStatus) ([]Domain, Counts, error) {
	var out struct {
		Domains []Domain `json:"domains"`
		Counts  Counts   `json:"counts"`
	}
	if err := c.do(ctx, http.MethodGet, withStatus("/admin/domains", string(status)), nil, &out); err != nil {
		return nil, Counts{}, err
	}
	return out.Domains, out.Counts, nil
}

func (c *HTTPClient) AddDomain(ctx context.Context, in AddDomain) (*Domain, error) {
	var out Domain
	if err := c.do(ctx, http.MethodPost, "/admin/domains", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetDomainStatus(ctx context.Context, id int64, status domain.DomainStatus) (*Domain, error) {
	var out Domain
	path := "/admin/domains/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPatch, path, map[string]domain.DomainStatus{"status": status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteDomain(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/admin/domains/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) Inquiries(ctx context.Context, status domain.InquiryStatus) ([]Inquiry, Counts, error) {
	var out struct {
		Inquiries []Inquiry `json:"inquiries"`
		Counts    Counts    `json:"counts"`
	}
	if err := c.do(ctx, http.MethodGet, withStatus("/admin/inquiries", string(status)), nil, &out); err != nil {
		return nil, Counts{}, err
	}
	return out.Inquiries, out.Counts, nil
}

// ExportInquiries returns the CSV body.
func (c *HTTPClient) ExportInquiries(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/admin/inquiries/export")
}

// ExportAnalytics returns the JSON report for the last rangeDays days.
func (c *HTTPClient) ExportAnalytics(ctx context.Context, rangeDays int) ([]byte, error) {
	return c.raw(ctx, "/admin/analytics/export?range="+strconv.Itoa(rangeDays))
}

func withStatus(path, status string) string {
	if status == "" {
		return path
	}
	return path + "?status=" + url.QueryEscape(status)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) raw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
