// Package client talks to the remote order backend.
//
// Every call takes a context. The request itself runs on its own goroutine so
// that a cancelled context returns immediately; the late response is dropped.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"orderdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ErrUnexpectedStatus is returned when the backend answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("unexpected status from backend")

// Client is an HTTP client for the order backend.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &fiber.Client{},
	}
}

// ListProducts fetches the product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, c.http.Get(c.baseURL+"/products"), fiber.StatusOK, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListOrders fetches every order.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, c.http.Get(c.baseURL+"/orders"), fiber.StatusOK, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListOrdersByEmail fetches the orders whose email matches exactly.
func (c *Client) ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	agent := c.http.Get(c.baseURL + "/orders?email=" + url.QueryEscape(email))

	var orders []models.Order
	if err := c.do(ctx, agent, fiber.StatusOK, &orders); err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", email, err)
	}
	return orders, nil
}

// CreateOrder posts a new order and returns the backend's representation of it.
func (c *Client) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	order.ID = ""
	agent := c.http.Post(c.baseURL + "/orders").JSON(order)

	var created models.Order
	if err := c.do(ctx, agent, fiber.StatusCreated, &created); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &created, nil
}

type response struct {
	code int
	body []byte
	err  error
}

// do sends the request and decodes a successful body into out. Any 2xx status
// is accepted; want is only used in the error text.
func (c *Client) do(ctx context.Context, agent *fiber.Agent, want int, out interface{}) error {
	agent.Timeout(c.timeout)

	done := make(chan response, 1)
	go func() {
		code, body, errs := agent.Bytes()
		done <- response{code: code, body: body, err: errors.Join(errs...)}
	}()

	var res response
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		return fmt.Errorf("do request: %w", res.err)
	}
	if res.code < 200 || res.code > 299 {
		return fmt.Errorf("%w: got %d, want %d", ErrUnexpectedStatus, res.code, want)
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
