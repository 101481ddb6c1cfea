package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	billingdomain "github.com/neighborhq/memberdesk/internal/billing/domain"
)

const defaultAPIBase = "https://api.stripe.com"

type stripeCustomer struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

type stripePrice struct {
	ID       string            `json:"id"`
	Nickname string            `json:"nickname"`
	Product  string            `json:"product"`
	Metadata map[string]string `json:"metadata"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client performs upstream lookups against the Stripe REST API.
type Client struct {
	apiKey  string
	apiBase string
	client  *http.Client
}

func NewClient(apiKey string, apiBase string) *Client {
	base := strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if base == "" {
		base = defaultAPIBase
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		apiBase: base,
		client:  &http.Client{Timeout: 12 * time.Second},
	}
}

func (c *Client) RetrieveCustomer(ctx context.Context, customerID string) (*billingdomain.Customer, error) {
	var customer stripeCustomer
	if err := c.doGet(ctx, "/v1/customers/"+strings.TrimSpace(customerID), &customer); err != nil {
		return nil, err
	}
	if customer.ID == "" {
		return nil, errors.New("stripe_response_invalid")
	}
	return &billingdomain.Customer{
		ID:      customer.ID,
		Email:   strings.TrimSpace(customer.Email),
		Name:    strings.TrimSpace(customer.Name),
		Deleted: customer.Deleted,
	}, nil
}

func (c *Client) RetrievePrice(ctx context.Context, priceID string) (*billingdomain.Price, error) {
	var price stripePrice
	if err := c.doGet(ctx, "/v1/prices/"+strings.TrimSpace(priceID), &price); err != nil {
		return nil, err
	}
	if price.ID == "" {
		return nil, errors.New("stripe_response_invalid")
	}
	return &billingdomain.Price{
		ID:        price.ID,
		ProductID: strings.TrimSpace(price.Product),
		Nickname:  strings.TrimSpace(price.Nickname),
		Metadata:  price.Metadata,
	}, nil
}

func (c *Client) doGet(ctx context.Context, path string, out any) error {
	if c.apiKey == "" {
		return errors.New("stripe_api_key_missing")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, strings.NewReader(""))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var stripeErr stripeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&stripeErr); err != nil {
			return errors.New("stripe_request_failed")
		}
		message := strings.TrimSpace(stripeErr.Error.Message)
		if message == "" {
			message = "stripe_request_failed"
		}
		return errors.New(message)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
