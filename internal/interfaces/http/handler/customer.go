package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/shopledger/backend/internal/application/partner"
	"github.com/shopledger/backend/internal/domain/partner"
)

// CustomerHandler handles customer registry API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CustomerRequest represents a request to create or update a customer
type CustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	CNIC    string `json:"cnic" binding:"max=20"`
	Phone   string `json:"phone" binding:"max=30"`
	Address string `json:"address" binding:"max=500"`
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req.Name, req.CNIC, req.Phone, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, req.Name, req.CNIC, req.Phone, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := partner.CustomerFilter{
		Name:  c.Query("name"),
		CNIC:  c.Query("cnic"),
		Phone: c.Query("phone"),
	}

	customers, total, err := h.customerService.ListCustomers(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, customers, total, page.Page, page.PageSize)
}
