package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// DashboardHandler serves the sales dashboard summary.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary returns the caller's sales dashboard figures. Admins may pass
// ?owner=<id> to inspect another account.
//
// @Summary      Get the sales dashboard summary
// @Tags         dashboard
// @Produce      json
// @Param        owner  query     string  false  "Owner account ID (admin only)"
// @Success      200    {object}  ports.DashboardSummary
// @Failure      401    {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	accountID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ownerID := accountID
	if owner := c.QueryParam("owner"); owner != "" && role == domain.RoleAdmin {
		ownerID = owner
	}

	summary, err := h.service.Summary(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
