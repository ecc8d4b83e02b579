package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopledger/backend/internal/application/catalog"
	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
)

// ProductHandler handles product catalog API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest represents a request to create or update a product
type ProductRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=200"`
	Category     string  `json:"category" binding:"max=100"`
	Brand        string  `json:"brand" binding:"max=100"`
	SellingPrice float64 `json:"selling_price" binding:"required,gt=0"`
}

// ProductListResponse is the product list payload with catalog-wide totals
type ProductListResponse struct {
	Products      []catalog.Product `json:"products"`
	StockQuantity int64             `json:"total_stock_quantity"`
	StockValue    valueobject.Money `json:"total_stock_value"`
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.Name, req.Category, req.Brand, toDecimal(req.SellingPrice))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req.Name, req.Category, req.Brand, toDecimal(req.SellingPrice))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := catalog.ProductFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
	}

	products, total, totals, err := h.productService.ListProducts(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, ProductListResponse{
		Products:      products,
		StockQuantity: totals.StockQuantity,
		StockValue:    valueobject.NewMoneyPKR(totals.StockValue),
	}, total, page.Page, page.PageSize)
}
