package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/api/metrics"
	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product listings.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns the caller's listings, newest first. Admins may pass
// ?owner=<id> to list another account's products.
//
// @Summary      List product listings
// @Tags         products
// @Produce      json
// @Param        owner  query     string  false  "Owner account ID (admin only)"
// @Success      200    {array}   domain.Product
// @Failure      401    {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	accountID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ownerID := accountID
	if owner := c.QueryParam("owner"); owner != "" && role == domain.RoleAdmin {
		ownerID = owner
	}

	products, err := h.service.List(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}

	return c.JSON(http.StatusOK, products)
}

// Create adds a new listing owned by the calling entrepreneur.
//
// @Summary      Create a product listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Listing details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		OwnerID:     accountID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(string(product.Status)).Inc()
	return c.JSON(http.StatusCreated, product)
}

// Update applies a partial update to a listing the caller owns.
//
// @Summary      Update a product listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	accountID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), ports.UpdateProductInput{
		ID:          c.Param("id"),
		Role:        role,
		OwnerID:     accountID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// Delete removes a listing the caller owns.
//
// @Summary      Delete a product listing
// @Tags         products
// @Produce      json
// @Param        id  path      string  true  "Product ID"
// @Success      200 {object}  deleteProductResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	accountID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), role, accountID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteProductResponse{Message: "product deleted"})
}
