package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/stock-tracker/internal/application/analytics"
	"github.com/jhoicas/stock-tracker/internal/application/auth"
	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/application/inventory"
	apphttp "github.com/jhoicas/stock-tracker/internal/interfaces/http"
	"github.com/jhoicas/stock-tracker/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakePDF struct{}

func (fakePDF) GenerateInventoryReport(context.Context, appanalytics.InventoryReport) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

func newTestApp(t *testing.T, authUC *auth.AuthUseCase) (*fiber.App, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:      inventory.NewItemUseCase(store, store.Items(), nil),
		MovementUC:  inventory.NewMovementUseCase(store.Items(), store.Movements()),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Items()),
		ReportUC:    appanalytics.NewReportUseCase(store.Items(), fakePDF{}, "Stock Tracker"),
		AuthUC:      authUC,
	})
	return app, store
}

func send(t *testing.T, app *fiber.App, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

const cementoJSON = `{"product_name":"Cemento gris","unit_of_measure":"kilogram","average_cost":800,"sale_value":1200,"stock_quantity":10}`

func createItem(t *testing.T, app *fiber.App, body string) dto.ItemResponse {
	t.Helper()
	resp := send(t, app, http.MethodPost, "/api/items", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ItemResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestListItems_SinItems_Retorna404(t *testing.T) {
	app, _ := newTestApp(t, nil)
	resp := send(t, app, http.MethodGet, "/api/items", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCreateItem_RegistraEntradaInicial(t *testing.T) {
	app, store := newTestApp(t, nil)
	item := createItem(t, app, cementoJSON)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Cemento gris", item.ProductName)
	assert.Equal(t, "10", item.StockQuantity.String())

	resp := send(t, app, http.MethodGet, "/api/items", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ItemResponse](t, resp), 1)

	resp = send(t, app, http.MethodGet, "/api/movements/"+item.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	movs := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, movs, 1)
	assert.Equal(t, "inbound", movs[0].MovementType)
	assert.Equal(t, "10", movs[0].Quantity.String())
	assert.Equal(t, "10", movs[0].ResultingStock.String())
	assert.Equal(t, 1, store.MovementCount())
}

func TestCreateItem_CuerpoInvalido_Retorna400(t *testing.T) {
	app, _ := newTestApp(t, nil)
	resp := send(t, app, http.MethodPost, "/api/items", `{"product_name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCreateItem_Validacion_Retorna400SinPersistir(t *testing.T) {
	cases := map[string]string{
		"stock negativo":  `{"product_name":"A","unit_of_measure":"count","average_cost":1,"sale_value":1,"stock_quantity":-1}`,
		"unidad inválida": `{"product_name":"A","unit_of_measure":"gallon","average_cost":1,"sale_value":1,"stock_quantity":1}`,
		"nombre vacío":    `{"product_name":"   ","unit_of_measure":"count","average_cost":1,"sale_value":1,"stock_quantity":1}`,
		"falta costo":     `{"product_name":"A","unit_of_measure":"count","sale_value":1,"stock_quantity":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			app, store := newTestApp(t, nil)
			resp := send(t, app, http.MethodPost, "/api/items", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
			assert.Equal(t, 0, store.ItemCount())
			assert.Equal(t, 0, store.MovementCount())
		})
	}
}

func TestGetItem_Inexistente_Retorna404(t *testing.T) {
	app, _ := newTestApp(t, nil)
	for _, id := range []string{"00000000-0000-0000-0000-000000000099", "no-es-uuid"} {
		resp := send(t, app, http.MethodGet, "/api/items/"+id, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
	}
}

func TestUpdateItem_BajaDeStockRegistraSalida(t *testing.T) {
	app, _ := newTestApp(t, nil)
	item := createItem(t, app, cementoJSON)

	resp := send(t, app, http.MethodPut, "/api/items/"+item.ID, `{"stock_quantity":4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "4", updated.StockQuantity.String())
	assert.Equal(t, "Cemento gris", updated.ProductName)

	resp = send(t, app, http.MethodGet, "/api/movements/"+item.ID, "")
	movs := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, movs, 2)
	assert.Equal(t, "outbound", movs[1].MovementType)
	assert.Equal(t, "6", movs[1].Quantity.String())
	assert.Equal(t, "4", movs[1].ResultingStock.String())
}

func TestUpdateItem_SinCambioDeStock_NoRegistraMovimiento(t *testing.T) {
	app, store := newTestApp(t, nil)
	item := createItem(t, app, cementoJSON)

	resp := send(t, app, http.MethodPut, "/api/items/"+item.ID, `{"sale_value":1500}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, store.MovementCount())
}

func TestUpdateItem_Inexistente_Retorna404(t *testing.T) {
	app, _ := newTestApp(t, nil)
	resp := send(t, app, http.MethodPut, "/api/items/00000000-0000-0000-0000-000000000099", `{"stock_quantity":4}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteItem_BorraHistorialYDevuelveSnapshot(t *testing.T) {
	app, store := newTestApp(t, nil)
	item := createItem(t, app, cementoJSON)
	send(t, app, http.MethodPut, "/api/items/"+item.ID, `{"stock_quantity":25}`)

	resp := send(t, app, http.MethodDelete, "/api/items/"+item.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snapshot := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, item.ID, snapshot.ID)
	assert.Equal(t, "25", snapshot.StockQuantity.String())
	assert.Equal(t, 0, store.MovementCount())

	assert.Equal(t, http.StatusNotFound, send(t, app, http.MethodGet, "/api/items/"+item.ID, "").StatusCode)
	assert.Equal(t, http.StatusNotFound, send(t, app, http.MethodGet, "/api/movements/"+item.ID, "").StatusCode)
	assert.Equal(t, http.StatusNotFound, send(t, app, http.MethodDelete, "/api/items/"+item.ID, "").StatusCode)
}

func TestMovements_ItemSinHistorial_Retorna404(t *testing.T) {
	app, _ := newTestApp(t, nil)
	item := createItem(t, app,
		`{"product_name":"Cable","unit_of_measure":"meter","average_cost":1,"sale_value":2,"stock_quantity":0}`)

	resp := send(t, app, http.MethodGet, "/api/movements/"+item.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Message, "sin historial")
}

func TestCreateItem_FalloDePersistencia_Retorna500YRevierte(t *testing.T) {
	app, store := newTestApp(t, nil)
	store.FailMovementCreate = errors.New("disco lleno")

	resp := send(t, app, http.MethodPost, "/api/items", cementoJSON)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, 0, store.ItemCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardSummary(t *testing.T) {
	app, _ := newTestApp(t, nil)
	createItem(t, app, cementoJSON)

	resp := send(t, app, http.MethodGet, "/api/dashboard/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 1, summary.ItemCount)
	assert.Equal(t, "8000", summary.InventoryCost.String())
	assert.Equal(t, "12000", summary.InventoryValue.String())
}

func TestInventoryPDF(t *testing.T) {
	app, _ := newTestApp(t, nil)
	resp := send(t, app, http.MethodGet, "/api/reports/inventory.pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario_")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth opcional
// ──────────────────────────────────────────────────────────────────────────────

func newAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3creta"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		auth.Credentials{Username: "admin", PasswordHash: string(hash)},
	)
}

func TestAuthHabilitada_EscriturasRequierenToken(t *testing.T) {
	app, _ := newTestApp(t, newAuthUC(t))

	resp := send(t, app, http.MethodPost, "/api/items", cementoJSON)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Las lecturas siguen siendo públicas.
	assert.Equal(t, http.StatusNotFound, send(t, app, http.MethodGet, "/api/items", "").StatusCode)

	resp = send(t, app, http.MethodPost, "/api/auth/token", `{"username":"admin","password":"mala"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/auth/token", `{"username":"admin","password":"s3creta"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[dto.TokenResponse](t, resp)

	resp = send(t, app, http.MethodPost, "/api/items", cementoJSON, "Authorization", "Bearer "+token.AccessToken)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
