package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// OrderHandler handles order placement and history.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity"   validate:"required,gt=0"`
	Price     float64 `json:"price"      validate:"gte=0"`
}

type shippingAddressRequest struct {
	Street  string `json:"street"  validate:"required"`
	City    string `json:"city"    validate:"required"`
	State   string `json:"state"   validate:"required"`
	Zip     string `json:"zip"     validate:"required"`
	Country string `json:"country" validate:"required"`
}

type placeOrderRequest struct {
	Items           []orderItemRequest     `json:"items"            validate:"required,min=1,dive"`
	ShippingAddress shippingAddressRequest `json:"shipping_address" validate:"required"`
	PaymentMethod   string                 `json:"payment_method"   validate:"required"`
}

// Place creates a pending order for the calling user.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.service.Place(c.Request().Context(), ports.PlaceOrderInput{
		UserID: accountID,
		Items:  items,
		ShippingAddress: domain.ShippingAddress{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			Zip:     req.ShippingAddress.Zip,
			Country: req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// List returns the caller's orders, newest first.
//
// @Summary      List the current account's orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListForUser(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	return c.JSON(http.StatusOK, orders)
}
