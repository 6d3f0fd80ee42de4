// Package client is a typed REST client for the inventory API.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"inventory/internal/apperrors"
	"inventory/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Client talks to the inventory HTTP API.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New creates a client for the API served at baseURL, e.g. "http://localhost:3000".
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// List fetches the products matching filter, newest first.
func (c *Client) List(filter models.ProductFilter) ([]models.Product, error) {
	agent := fiber.Get(c.url("/api/products"))
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if len(query) > 0 {
		agent.QueryString(query.Encode())
	}

	var out struct {
		Products []models.Product `json:"products"`
	}
	if err := c.do(agent, 0, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// Get fetches a single product.
func (c *Client) Get(id uint) (*models.Product, error) {
	var out struct {
		Product models.Product `json:"product"`
	}
	if err := c.do(fiber.Get(c.productURL(id)), id, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// Create submits a new product and returns the ID the server assigned.
func (c *Client) Create(payload models.ProductPayload) (uint, error) {
	var out struct {
		ID uint `json:"id"`
	}
	if err := c.do(fiber.Post(c.url("/api/products")).JSON(payload), 0, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Update replaces every field of product id.
func (c *Client) Update(id uint, payload models.ProductPayload) error {
	return c.do(fiber.Put(c.productURL(id)).JSON(payload), id, nil)
}

// Delete removes product id.
func (c *Client) Delete(id uint) error {
	return c.do(fiber.Delete(c.productURL(id)), id, nil)
}

// Categories fetches the distinct product categories.
func (c *Client) Categories() ([]string, error) {
	var out struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(fiber.Get(c.url("/api/categories")), 0, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Stats fetches the inventory totals computed by the server.
func (c *Client) Stats() (models.InventoryStats, error) {
	var out struct {
		Stats models.InventoryStats `json:"stats"`
	}
	if err := c.do(fiber.Get(c.url("/api/stats")), 0, &out); err != nil {
		return models.InventoryStats{}, err
	}
	return out.Stats, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) productURL(id uint) string {
	return fmt.Sprintf("%s/api/products/%d", c.baseURL, id)
}

// do sends the request and decodes a successful response into out. id names
// the product a 404 refers to.
func (c *Client) do(agent *fiber.Agent, id uint, out any) error {
	code, body, errs := agent.Timeout(c.timeout).Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("inventory request failed: %w", errors.Join(errs...))
	}

	if code >= fiber.StatusBadRequest {
		return decodeError(code, body, id)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode inventory response: %w", err)
	}
	return nil
}

// decodeError maps an error response back onto the error taxonomy.
func decodeError(code int, body []byte, id uint) error {
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		e.Error = fmt.Sprintf("unexpected status %d", code)
	}

	switch {
	case code == fiber.StatusNotFound:
		return apperrors.NotFound(id)
	case code == fiber.StatusBadRequest && e.Field != "":
		if strings.HasSuffix(e.Error, " is required") {
			return apperrors.MissingField(e.Field)
		}
		return apperrors.InvalidField(e.Field, strings.TrimPrefix(e.Error, e.Field+" "))
	case code < fiber.StatusInternalServerError:
		return fmt.Errorf("inventory request rejected (%d): %s", code, e.Error)
	default:
		return apperrors.Storage("complete inventory request", errors.New(e.Error))
	}
}
