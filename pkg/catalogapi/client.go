package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/types"
)

const (
	DefaultBaseURL             = "https://fakestoreapi.com"
	defaultTimeout             = 10 * time.Second
	errorBodyReadLimit   int64 = 1024
	successBodyReadLimit int64 = 8 << 20
)

// Client talks to a fakestoreapi-compatible catalog over JSON. It never retries; each
// failure is returned to the caller as a typed error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.CatalogAPIMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.CatalogAPIMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a catalog client rooted at baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	if client.baseURL == "" {
		client.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// ListProducts returns every product in server order.
func (c *Client) ListProducts(ctx context.Context) ([]types.Product, error) {
	var products []types.Product
	if err := c.do(ctx, "list_products", http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []types.Product{}
	}
	return products, nil
}

// GetProduct fetches one product. The upstream answers unknown ids with an empty 200,
// which is reported as NOT_FOUND just like a 404.
func (c *Client) GetProduct(ctx context.Context, id int) (*types.Product, error) {
	var product *types.Product
	if err := c.do(ctx, "get_product", http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
		}
		return nil, err
	}
	if product == nil || product.ID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
	}
	return product, nil
}

// ListCategories returns the category labels known to the catalog.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, "list_categories", http.MethodGet, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// CreateProduct submits a draft and returns the product echoed back with its assigned id.
func (c *Client) CreateProduct(ctx context.Context, draft types.ProductDraft) (*types.Product, error) {
	var created types.Product
	if err := c.do(ctx, "create_product", http.MethodPost, "/products", draft, &created); err != nil {
		return nil, err
	}
	// Some deployments only echo the id; fill the rest from the draft.
	if created.Title == "" {
		created.Title = draft.Title
		created.Description = draft.Description
		created.Price = draft.Price
		created.Category = draft.Category
		created.Image = draft.Image
	}
	return &created, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "login response did not include a token")
	}
	return resp.Token, nil
}

// RegisteredUser is the subset of the user record returned on sign-up.
type RegisteredUser struct {
	ID       int         `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Name     *types.Name `json:"name,omitempty"`
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*RegisteredUser, error) {
	var user RegisteredUser
	if err := c.do(ctx, "register", http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	if user.Username == "" {
		user.Username = req.Username
	}
	if user.Email == "" {
		user.Email = req.Email
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, dest any) (err error) {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}
	start := time.Now()
	defer func() { c.metrics.Observe(operation, time.Since(start), err) }()

	var reader io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, marshalErr, "marshal "+operation+" request")
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build "+operation+" request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+operation+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		switch resp.StatusCode {
		case http.StatusNotFound:
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, cause, operation+" target not found")
		case http.StatusUnauthorized:
			if operation == "login" {
				return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, cause, "invalid username or password")
			}
			return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, cause, operation+" rejected by catalog API")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, operation+" request failed")
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, successBodyReadLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read "+operation+" response")
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+operation+" response")
	}
	return nil
}
