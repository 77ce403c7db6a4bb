package handler

import (
	"net/http"

	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 在庫操作（販売・入荷・発注）のAPI
type StockHandler struct {
	uc *usecase.StockUsecase
}

// DI
func NewStockHandler(uc *usecase.StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

func (h *StockHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/products/:id/sale", h.sale)
	e.POST("/products/:id/sale/one", h.saleOne)
	e.POST("/products/:id/shipment", h.shipment)
	e.POST("/products/:id/reorder", h.reorder)
}

type CountRequest struct {
	Count int64 `json:"count"`
}

type QuantityResponse struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

func (h *StockHandler) sale(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	quantity, err := h.uc.Sale(c.Request().Context(), id, req.Count)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, QuantityResponse{ID: id, Quantity: quantity})
}

// 一覧のワンタップ販売
func (h *StockHandler) saleOne(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	quantity, err := h.uc.RecordOneSale(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, QuantityResponse{ID: id, Quantity: quantity})
}

func (h *StockHandler) shipment(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	quantity, err := h.uc.ShipmentReceived(c.Request().Context(), id, req.Count)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, QuantityResponse{ID: id, Quantity: quantity})
}

type ReorderRequest struct {
	Count int64  `json:"count"`
	To    string `json:"to"`
}

func (h *StockHandler) reorder(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	if err := h.uc.Reorder(c.Request().Context(), id, req.Count, req.To); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}
