// Package apiclient cliente HTTP de la API de inventario usado por el dashboard.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
)

// APIError respuesta no-2xx de la API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d - %s", e.Status, e.Message)
}

// Client adaptador REST sobre net/http. No contiene lógica de negocio.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New construye el cliente. token vacío = peticiones sin Authorization.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListItems GET /api/items.
func (c *Client) ListItems(ctx context.Context) ([]dto.ItemResponse, error) {
	var out []dto.ItemResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetItem GET /api/items/{id}.
func (c *Client) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/items/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateItem POST /api/items.
func (c *Client) CreateItem(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/items", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem PUT /api/items/{id}. Solo se envían los campos no nil.
func (c *Client) UpdateItem(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/items/"+url.PathEscape(id), updatePayload(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem DELETE /api/items/{id}. Devuelve el item eliminado.
func (c *Client) DeleteItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMovements GET /api/movements/{item_id}.
func (c *Client) ListMovements(ctx context.Context, itemID string) ([]dto.MovementResponse, error) {
	var out []dto.MovementResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/movements/"+url.PathEscape(itemID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary GET /api/dashboard/summary.
func (c *Client) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var out dto.DashboardSummaryDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/dashboard/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InventoryReport GET /api/reports/inventory.pdf. Devuelve los bytes del PDF.
func (c *Client) InventoryReport(ctx context.Context) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/reports/inventory.pdf", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// IssueToken POST /api/auth/token.
func (c *Client) IssueToken(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	in := dto.TokenRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/token", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// updatePayload omite las claves nil: la API interpreta ausencia como "sin cambios".
func updatePayload(in dto.UpdateItemRequest) map[string]any {
	m := make(map[string]any, 5)
	if in.ProductName != nil {
		m["product_name"] = *in.ProductName
	}
	if in.UnitOfMeasure != nil {
		m["unit_of_measure"] = *in.UnitOfMeasure
	}
	if in.AverageCost != nil {
		m["average_cost"] = *in.AverageCost
	}
	if in.SaleValue != nil {
		m["sale_value"] = *in.SaleValue
	}
	if in.StockQuantity != nil {
		m["stock_quantity"] = *in.StockQuantity
	}
	return m
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}

// do ejecuta la petición. Para status no-2xx devuelve *APIError y cierra el body.
func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("apiclient: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: construir request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var er dto.ErrorResponse
	if json.Unmarshal(raw, &er) == nil && er.Message != "" {
		apiErr.Code, apiErr.Message = er.Code, er.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return nil, apiErr
}
