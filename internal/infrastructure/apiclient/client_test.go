package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/infrastructure/apiclient"
)

func TestListItems_DecodificaRespuesta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]dto.ItemResponse{{
			ID: "abc", ProductName: "Cemento", UnitOfMeasure: "kilogram",
			StockQuantity: decimal.NewFromInt(10),
		}})
	}))
	defer srv.Close()

	items, err := apiclient.New(srv.URL+"/", "").ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cemento", items[0].ProductName)
	assert.True(t, items[0].StockQuantity.Equal(decimal.NewFromInt(10)))
}

func TestErrorDeAPI_ConservaStatusYMensaje(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL, "").GetItem(context.Background(), "x")
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "404 - item no encontrado", apiErr.Error())
}

func TestUpdateItem_EnviaSoloCamposPresentes(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/items/abc", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &got))
		_ = json.NewEncoder(w).Encode(dto.ItemResponse{ID: "abc"})
	}))
	defer srv.Close()

	stock := decimal.NewFromInt(4)
	_, err := apiclient.New(srv.URL, "tok").UpdateItem(context.Background(), "abc", dto.UpdateItemRequest{StockQuantity: &stock})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, "stock_quantity")
}

func TestInventoryReport_DevuelveBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	out, err := apiclient.New(srv.URL, "").InventoryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(out))
}

func TestListMovements_DecodificaYPropagaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/movements/sin-historial" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin historial"})
			return
		}
		assert.Equal(t, "/api/movements/abc", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]dto.MovementResponse{
			{ID: "m1", ItemID: "abc", MovementType: "inbound", Quantity: decimal.NewFromInt(10), ResultingStock: decimal.NewFromInt(10)},
			{ID: "m2", ItemID: "abc", MovementType: "outbound", Quantity: decimal.NewFromInt(6), ResultingStock: decimal.NewFromInt(4)},
		})
	}))
	defer srv.Close()
	client := apiclient.New(srv.URL, "")

	movs, err := client.ListMovements(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "outbound", movs[1].MovementType)
	assert.True(t, movs[1].ResultingStock.Equal(decimal.NewFromInt(4)))

	movs, err = client.ListMovements(context.Background(), "sin-historial")
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Nil(t, movs)
}
