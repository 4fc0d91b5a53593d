package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.uber.org/zap"
)

// maxResponseSize caps the body read from the commerce API (10MB).
const maxResponseSize = 10 * 1024 * 1024

const tokenHeader = "X-Shopify-Storefront-Access-Token"

var (
	// ErrCartNotFound is returned when the remote cart id is unknown or has expired.
	ErrCartNotFound = errors.New("commerce: cart not found")
	// ErrInvalidResponse indicates a response body that could not be decoded.
	ErrInvalidResponse = errors.New("commerce: invalid response")
)

// APIError reports a transport-level or GraphQL-level failure.
type APIError struct {
	Operation  string
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("commerce: %s failed with status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("commerce: %s: %s", e.Operation, strings.Join(e.Messages, "; "))
}

// UserError is a mutation-level validation error (userErrors / customerUserErrors).
type UserError struct {
	Operation string
	Code      string
	Field     []string
	Message   string
}

func (e *UserError) Error() string {
	return e.Message
}

// Config holds the connection settings for the storefront API.
type Config struct {
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
}

// Client is the single configured handle to the commerce platform's GraphQL endpoint.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger

	mu     sync.RWMutex
	parsed map[string]string
}

// New validates the configuration and parses every query document the client sends.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("commerce endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, errors.New("commerce access token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		endpoint:    cfg.Endpoint,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger.Named("commerce"),
		parsed:      make(map[string]string, len(documents)),
	}
	for _, doc := range documents {
		if _, err := c.operationName(doc); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// operationName parses a query document once and caches its first operation name.
func (c *Client) operationName(query string) (string, error) {
	c.mu.RLock()
	name, ok := c.parsed[query]
	c.mu.RUnlock()
	if ok {
		return name, nil
	}
	doc, err := parser.ParseQuery(&ast.Source{Name: "storefront", Input: query})
	if err != nil {
		return "", fmt.Errorf("parse graphql document: %w", err)
	}
	if len(doc.Operations) == 0 {
		return "", errors.New("graphql document has no operation")
	}
	name = doc.Operations[0].Name
	c.mu.Lock()
	c.parsed[query] = name
	c.mu.Unlock()
	return name, nil
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do executes one query/mutation and decodes its data object into out.
func (c *Client) do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	op, err := c.operationName(query)
	if err != nil {
		return err
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(tokenHeader, c.accessToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("operation", op), zap.Error(err))
		return fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read %s response: %w", op, err)
	}
	c.logger.Debug("request completed",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Operation: op, StatusCode: resp.StatusCode}
		var gr graphQLResponse
		if json.Unmarshal(raw, &gr) == nil {
			for _, e := range gr.Errors {
				apiErr.Messages = append(apiErr.Messages, e.Message)
			}
		}
		return apiErr
	}

	var gr graphQLResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, op, err)
	}
	if len(gr.Errors) > 0 {
		apiErr := &APIError{Operation: op, StatusCode: resp.StatusCode}
		for _, e := range gr.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return fmt.Errorf("%w: %s: empty data", ErrInvalidResponse, op)
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, op, err)
	}
	return nil
}

type userErrorPayload struct {
	Code    string   `json:"code"`
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func firstUserError(op string, errs []userErrorPayload) error {
	if len(errs) == 0 {
		return nil
	}
	e := errs[0]
	return &UserError{Operation: op, Code: e.Code, Field: e.Field, Message: e.Message}
}
