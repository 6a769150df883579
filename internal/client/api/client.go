// Package api is the CLI's client for the Lockbox HTTP API. Tokens obtained
// by Login are held in memory for the lifetime of the process, never written
// to disk.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/grouping"
	"github.com/dmitrijs2005/lockbox/internal/records"
	"github.com/dmitrijs2005/lockbox/internal/client/config"
)

// Client talks to one Lockbox server on behalf of one signed-in user.
type Client struct {
	baseURL string
	http    *http.Client

	accessToken  string
	refreshToken string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.ServerEndpointAddr, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// IsLoggedIn reports whether the client holds an access token.
func (c *Client) IsLoggedIn() bool {
	return c.accessToken != ""
}

type errorResponse struct {
	Error string `json:"error"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Collection mirrors the server's record listing response.
type Collection struct {
	Accounts  []records.Record `json:"accounts"`
	Banks     []records.Record `json:"banks"`
	Insurance []records.Record `json:"insurance"`
	Extras    []records.Record `json:"extras"`
	Wifi      []records.Record `json:"wifi"`
	Total     int              `json:"total"`
}

// ImportSummary mirrors the server's bulk import response.
type ImportSummary struct {
	Added   int      `json:"added"`
	Failed  int      `json:"failed"`
	Reasons []string `json:"reasons,omitempty"`
}

// Register creates a new account on the server.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/register",
		credentialsRequest{Email: email, Password: password}, nil)
}

// Login signs in and caches the token pair for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var pair tokenPairResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login",
		credentialsRequest{Email: email, Password: password}, &pair); err != nil {
		return err
	}
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

// Logout revokes the refresh token and drops the cached pair.
func (c *Client) Logout(ctx context.Context) error {
	if c.refreshToken != "" {
		if err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout",
			map[string]string{"refreshToken": c.refreshToken}, nil); err != nil {
			return err
		}
	}
	c.accessToken = ""
	c.refreshToken = ""
	return nil
}

// List fetches the vault, filtered by keyword when one is given.
func (c *Client) List(ctx context.Context, keyword string) (*Collection, error) {
	path := "/api/records"
	if keyword != "" {
		path += "?q=" + url.QueryEscape(keyword)
	}

	var col Collection
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

// Save creates a record (empty id) or updates an existing one.
func (c *Client) Save(ctx context.Context, id string, kind records.Kind, in records.Input) (*records.Record, error) {
	body := map[string]any{
		"kind":             kind,
		"serviceName":      in.ServiceName,
		"username":         in.Username,
		"password":         in.Password,
		"notes":            in.Notes,
		"siteUrl":          in.SiteURL,
		"insuranceCompany": in.InsuranceCompany,
		"insuranceNumber":  in.InsuranceNumber,
	}

	method, path := http.MethodPost, "/api/records"
	if id != "" {
		method, path = http.MethodPut, "/api/records/"+url.PathEscape(id)
	}

	var rec records.Record
	if err := c.doJSON(ctx, method, path, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/records/"+url.PathEscape(id), nil, nil)
}

// Groups fetches the grouped account view.
func (c *Client) Groups(ctx context.Context) ([]grouping.Group, error) {
	var groups []grouping.Group
	if err := c.doJSON(ctx, http.MethodGet, "/api/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Export downloads the vault workbook and returns the server-chosen file
// name along with the bytes.
func (c *Client) Export(ctx context.Context) (string, []byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/export", "", nil)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	name := "lockbox.xlsx"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if fn := params["filename"]; fn != "" {
			name = fn
		}
	}
	return name, data, nil
}

// ExportLink asks the server for a short-lived download URL.
func (c *Client) ExportLink(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/export?link=1", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// Import uploads an xlsx workbook and returns the row-level outcome.
func (c *Client) Import(ctx context.Context, filename string, workbook []byte) (*ImportSummary, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(workbook); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/import", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var summary ImportSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return &summary, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	return c.http.Do(req)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	resp, err := c.do(ctx, method, path, "application/json", reader)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
		return fmt.Errorf("server: %s", e.Error)
	}
	return fmt.Errorf("server: %s", resp.Status)
}
