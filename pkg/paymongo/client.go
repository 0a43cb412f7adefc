// Package paymongo is a minimal client for the PayMongo checkout-session API,
// covering only what the contribution flow needs.
package paymongo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.paymongo.com/v1"

// Client talks to the PayMongo API
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a PayMongo client. An empty baseURL uses the production API.
func NewClient(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		secretKey:  secretKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckoutParams describes one contribution checkout
type CheckoutParams struct {
	Name       string
	Email      string
	MemberID   string
	Amount     int64 // minor units (centavos)
	Currency   string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the created gateway session
type CheckoutSession struct {
	ID          string
	CheckoutURL string
}

type lineItem struct {
	Currency string `json:"currency"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
}

type checkoutRequest struct {
	Data struct {
		Attributes struct {
			Billing struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"billing"`
			SendEmailReceipt   bool              `json:"send_email_receipt"`
			ShowDescription    bool              `json:"show_description"`
			ShowLineItems      bool              `json:"show_line_items"`
			LineItems          []lineItem        `json:"line_items"`
			PaymentMethodTypes []string          `json:"payment_method_types"`
			Description        string            `json:"description"`
			SuccessURL         string            `json:"success_url"`
			CancelURL          string            `json:"cancel_url"`
			Metadata           map[string]string `json:"metadata"`
		} `json:"attributes"`
	} `json:"data"`
}

type checkoutResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			CheckoutURL string `json:"checkout_url"`
		} `json:"attributes"`
	} `json:"data"`
}

// CreateCheckoutSession creates a checkout session for one monthly
// contribution and returns the session id and redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	currency := params.Currency
	if currency == "" {
		currency = "PHP"
	}

	var reqBody checkoutRequest
	attrs := &reqBody.Data.Attributes
	attrs.Billing.Name = params.Name
	attrs.Billing.Email = params.Email
	attrs.ShowDescription = true
	attrs.ShowLineItems = true
	attrs.LineItems = []lineItem{{
		Currency: currency,
		Quantity: 1,
		Name:     "Paluwagan",
		Amount:   params.Amount,
	}}
	attrs.PaymentMethodTypes = []string{"gcash", "grab_pay", "paymaya", "card"}
	attrs.Description = "Paluwagan monthly contribution"
	attrs.SuccessURL = params.SuccessURL
	attrs.CancelURL = params.CancelURL
	attrs.Metadata = map[string]string{"memberId": params.MemberID}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout_sessions", bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.New("paymongo error: " + string(body))
	}

	var result checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Data.Attributes.CheckoutURL == "" {
		return nil, errors.New("checkout URL missing in paymongo response")
	}

	return &CheckoutSession{
		ID:          result.Data.ID,
		CheckoutURL: result.Data.Attributes.CheckoutURL,
	}, nil
}
