package handler

import (
	"net/http"
	"strconv"
	"strings"

	"inventory/internal/contract"
	"inventory/internal/usecase"
	"inventory/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			logger.FromContext(c).Error("request failed", zap.Error(err))
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	logger.FromContext(c).Error("request failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// /products のCRUD API
type ProductHandler struct {
	uc       *usecase.ProductUsecase
	contract contract.Contract
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, ct contract.Contract) *ProductHandler {
	return &ProductHandler{uc: uc, contract: ct}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
	e.POST("/products", h.create)
	e.PUT("/products/:id", h.update)
	e.DELETE("/products/:id", h.delete)
	e.DELETE("/products", h.deleteAll)
	e.GET("/products/:id/adjustments", h.adjustments)
}

func (h *ProductHandler) list(c echo.Context) error {
	// limit（default 0 = 全件）
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		offset = o
	}

	var projection []string
	if v := c.QueryParam("columns"); v != "" {
		projection = strings.Split(v, ",")
	}

	products, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Name:       c.QueryParam("name"),
		Limit:      limit,
		Offset:     offset,
		Projection: projection,
	})
	if err != nil {
		return writeError(c, err)
	}

	// コレクションの形タグ
	c.Response().Header().Set("Content-Description", h.contract.DirType())
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	// 単一行の形タグ
	c.Response().Header().Set("Content-Description", h.contract.ItemType())
	return c.JSON(http.StatusOK, p)
}

type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Supplier string          `json:"supplier"`
	Image    *string         `json:"image"`
}

type CreateProductResponse struct {
	ID  int64  `json:"id"`
	URI string `json:"uri"`
}

func (h *ProductHandler) create(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	id, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Supplier: req.Supplier,
		Image:    req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateProductResponse{
		ID:  id,
		URI: h.contract.ItemURI(id),
	})
}

type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int64           `json:"quantity"`
	Supplier *string          `json:"supplier"`
	Image    *string          `json:"image"`
}

type AffectedResponse struct {
	Affected int64 `json:"affected"`
}

func (h *ProductHandler) update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	err := h.uc.UpdateProduct(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Supplier: req.Supplier,
		Image:    req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AffectedResponse{Affected: 1})
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AffectedResponse{Affected: 1})
}

// 全件削除。確認はUI側で済ませてから呼ぶ
func (h *ProductHandler) deleteAll(c echo.Context) error {
	affected, err := h.uc.DeleteAllProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AffectedResponse{Affected: affected})
}

func (h *ProductHandler) adjustments(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adjustments, err := h.uc.ListAdjustments(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, adjustments)
}
