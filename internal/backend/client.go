package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"stash/internal/models"
	"stash/internal/providers"
	"stash/internal/structures"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const maxResponseBodySize = 4 << 20 // 4 MB

var (
	// ErrNetwork marks transport failures: the backend could not be reached or
	// its reply could not be read.
	ErrNetwork = errors.New("network error")
	// ErrRejected marks replies whose envelope reports success=false.
	ErrRejected = errors.New("backend rejected request")
)

// Response is the uniform envelope every backend call is normalised into.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (r *Response) Err() error {
	if r.Success {
		return nil
	}
	msg := r.Error
	if msg == "" {
		msg = r.Message
	}
	if msg == "" {
		msg = "Request failed"
	}
	return fmt.Errorf("%w: %s", ErrRejected, msg)
}

type ClientInterface interface {
	ClearManualTransactions(ctx context.Context, userID string) error
	ClearSalary(ctx context.Context, userID string) error
	UpdateSpendingPersonality(ctx context.Context, userID string, personality models.SpendingPersonality) error
	GetUserProfile(ctx context.Context, username string) (*models.UserProfile, error)
	GetBudgetOverview(ctx context.Context, userID string) ([]models.BudgetCategory, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) ClientInterface {
	return &Client{
		baseURL: strings.TrimRight(conf.Backend.BaseURL, "/"),
		http:    &http.Client{Timeout: conf.Backend.Timeout},
		logger:  logger,
	}
}

func (c *Client) request(ctx context.Context, method, endpoint string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debugf(providers.TypeBackend, "%s %s request_id=%s", method, endpoint, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorf(providers.TypeBackend, "%s %s request_id=%s failed: %s", method, endpoint, requestID, err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", ErrNetwork, method, endpoint, err)
	}
	c.logger.Debugf(providers.TypeBackend, "%s %s request_id=%s status=%d", method, endpoint, requestID, resp.StatusCode)

	return decodeEnvelope(resp.StatusCode, raw)
}

// decodeEnvelope normalises a backend reply: non-2xx becomes a failure
// carrying the body's "error"; a body with its own "success" field is taken
// as-is; anything else is wrapped as successful data.
func decodeEnvelope(status int, raw []byte) (*Response, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !json.Valid(trimmed) {
		if status < 200 || status >= 300 {
			return &Response{Success: false, Error: "Request failed"}, nil
		}
		return nil, fmt.Errorf("%w: invalid JSON response", ErrNetwork)
	}

	if status < 200 || status >= 300 {
		var body struct {
			Error string `json:"error"`
		}
		if len(trimmed) > 0 {
			_ = json.Unmarshal(trimmed, &body)
		}
		if body.Error == "" {
			body.Error = "Request failed"
		}
		return &Response{Success: false, Error: body.Error}, nil
	}

	if len(trimmed) == 0 {
		return &Response{Success: true}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err == nil {
		if _, ok := probe["success"]; ok {
			var envelope Response
			if err := json.Unmarshal(trimmed, &envelope); err != nil {
				return nil, fmt.Errorf("%w: decode envelope: %v", ErrNetwork, err)
			}
			return &envelope, nil
		}
	}

	return &Response{Success: true, Data: json.RawMessage(trimmed)}, nil
}

func (c *Client) call(ctx context.Context, method, endpoint string, body any) (*Response, error) {
	resp, err := c.request(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) ClearManualTransactions(ctx context.Context, userID string) error {
	_, err := c.call(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(userID)+"/manual", nil)
	return err
}

func (c *Client) ClearSalary(ctx context.Context, userID string) error {
	_, err := c.call(ctx, http.MethodDelete, "/salary/"+url.PathEscape(userID), nil)
	return err
}

func (c *Client) UpdateSpendingPersonality(ctx context.Context, userID string, personality models.SpendingPersonality) error {
	body := map[string]string{"spendingPersonality": personality.String()}
	_, err := c.call(ctx, http.MethodPut, "/auth/profile/"+url.PathEscape(userID)+"/personality", body)
	return err
}

// GetUserProfile accepts both {"user": {...}} and a bare profile as data.
func (c *Client) GetUserProfile(ctx context.Context, username string) (*models.UserProfile, error) {
	resp, err := c.call(ctx, http.MethodGet, "/auth/profile/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty profile for %s", ErrRejected, username)
	}

	var wrapped struct {
		User *models.UserProfile `json:"user"`
	}
	if err := json.Unmarshal(resp.Data, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal(resp.Data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile for %s: %w", username, err)
	}
	return &profile, nil
}

func (c *Client) GetBudgetOverview(ctx context.Context, userID string) ([]models.BudgetCategory, error) {
	resp, err := c.call(ctx, http.MethodGet, "/financial/budget/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}
	var rows []models.BudgetCategory
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &rows); err != nil {
			return nil, fmt.Errorf("decode budget overview for %s: %w", userID, err)
		}
	}
	return rows, nil
}
