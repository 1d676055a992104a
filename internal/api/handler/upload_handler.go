package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/api/metrics"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// UploadHandler signs direct-to-CDN upload parameters.
type UploadHandler struct {
	signer ports.UploadSigner
}

func NewUploadHandler(signer ports.UploadSigner) *UploadHandler {
	return &UploadHandler{signer: signer}
}

type signUploadRequest struct {
	ParamsToSign map[string]string `json:"params_to_sign" validate:"required"`
}

// Sign returns an upload signature for the given widget parameters.
//
// @Summary      Sign an image upload request
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        body  body      signUploadRequest  true  "Parameters to sign"
// @Success      200   {object}  ports.UploadSignature
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /uploads/sign [post]
func (h *UploadHandler) Sign(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req signUploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.ParamsToSign) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "params_to_sign is required")
	}

	signature, err := h.signer.Sign(req.ParamsToSign)
	if err != nil {
		return err
	}

	metrics.UploadSignaturesTotal.Inc()
	return c.JSON(http.StatusOK, signature)
}
