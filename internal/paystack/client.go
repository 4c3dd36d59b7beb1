package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
)

const defaultBaseURL = "https://api.paystack.co"

// Client is a thin HTTP client for the hosted payment gateway. Every call
// is bounded by the http.Client timeout in addition to the caller's context.
type Client struct {
	secretKey   string
	callbackURL string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(secretKey, callbackURL string) *Client {
	return &Client{
		secretKey:   secretKey,
		callbackURL: callbackURL,
		baseURL:     defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is the common {status, message, data} wrapper on gateway replies.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type txData struct {
	Status  string `json:"status"`
	Amount  int64  `json:"amount"`
	Channel string `json:"channel"`
}

func (c *Client) Initialize(
	ctx context.Context,
	email string,
	amountMinor int64,
	reference string,
	metadata map[string]string,
) (*domain.InitResult, error) {

	payload := map[string]any{
		"email":     email,
		"amount":    amountMinor,
		"reference": reference,
	}
	if c.callbackURL != "" {
		payload["callback_url"] = c.callbackURL
	}
	if len(metadata) > 0 {
		payload["metadata"] = metadata
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/transaction/initialize",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	var data initData
	if err := c.do(req, &data); err != nil {
		return nil, err
	}

	return &domain.InitResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (c *Client) Verify(
	ctx context.Context,
	reference string,
) (*domain.Transaction, error) {

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/transaction/verify/"+reference,
		nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	var data txData
	if err := c.do(req, &data); err != nil {
		return nil, err
	}

	return &domain.Transaction{
		Status:  data.Status,
		Amount:  data.Amount,
		Channel: data.Channel,
	}, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("gateway returned invalid response: %w", err)
	}

	if !env.Status {
		if env.Message == "" {
			env.Message = "gateway request rejected"
		}
		return fmt.Errorf("gateway error: %s", env.Message)
	}

	return json.Unmarshal(env.Data, out)
}
