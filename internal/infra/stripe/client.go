package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront-api/internal/config"
)

// CheckoutSession is the subset of the gateway session this service reads:
// identity, redirect URL, total in minor units, the customer contact and the
// expanded payment intent plus line items.
type CheckoutSession struct {
	ID            string
	URL           string
	AmountTotal   int64
	CustomerEmail string
	PaymentIntent PaymentIntent
	LineItems     []SessionLineItem
}

type PaymentIntent struct {
	ID     string
	Status string
}

type SessionLineItem struct {
	ProductID string
	Quantity  int64
}

// LineItem is one cart entry expressed the way the gateway wants it:
// UnitAmount in minor currency units.
type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int64
}

type Client struct {
	apiBase    string
	secretKey  string
	successURL string
	cancelURL  string
	httpClient *http.Client
}

func NewClient(cfg config.StripeConfig, timeout time.Duration) *Client {
	return &Client{
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
		secretKey:  cfg.SecretKey,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// sessionPayload mirrors the gateway's JSON for a checkout session retrieved
// with line_items and payment_intent expanded.
type sessionPayload struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	AmountTotal     int64  `json:"amount_total"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
	PaymentIntent struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment_intent"`
	LineItems struct {
		Data []struct {
			Quantity int64 `json:"quantity"`
			Price    struct {
				Product string `json:"product"`
			} `json:"price"`
		} `json:"data"`
	} `json:"line_items"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, items []LineItem) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Add("payment_method_types[]", "card")
	for i, item := range items {
		p := fmt.Sprintf("line_items[%d]", i)
		form.Set(p+"[price_data][currency]", "usd")
		form.Set(p+"[price_data][product_data][name]", item.Name)
		if item.Image != "" {
			form.Set(p+"[price_data][product_data][images][]", item.Image)
		}
		form.Set(p+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(p+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}

	payload, err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}
	return payload.toSession(), nil
}

func (c *Client) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	q := url.Values{}
	q.Add("expand[]", "line_items")
	q.Add("expand[]", "payment_intent")

	payload, err := c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return payload.toSession(), nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) (*sessionPayload, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var payload sessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (p *sessionPayload) toSession() *CheckoutSession {
	s := &CheckoutSession{
		ID:            p.ID,
		URL:           p.URL,
		AmountTotal:   p.AmountTotal,
		CustomerEmail: p.CustomerDetails.Email,
		PaymentIntent: PaymentIntent{ID: p.PaymentIntent.ID, Status: p.PaymentIntent.Status},
	}
	for _, li := range p.LineItems.Data {
		s.LineItems = append(s.LineItems, SessionLineItem{
			ProductID: li.Price.Product,
			Quantity:  li.Quantity,
		})
	}
	return s
}
