package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nwtech/license-orderflow/internal/apperr"
)

// writeError renders err as {"error": code, "detail": message} plus any
// field errors. Uncoded errors become a generic 500.
func (a *api) writeError(c *gin.Context, err error) {
	typed := apperr.As(err)
	if typed == nil {
		typed = apperr.Wrap(apperr.CodeInternal, err, "Internal server error")
	}
	status := apperr.HTTPStatus(typed.Code())

	body := gin.H{
		"error":  string(typed.Code()),
		"detail": typed.Message(),
	}
	if details := typed.Details(); details != nil {
		if fields, ok := details["fields"]; ok {
			body["fields"] = fields
		}
		if sku, ok := details["sku"]; ok {
			body["sku"] = sku
		}
	}

	ctx := c.Request.Context()
	if status >= 500 {
		a.log.Error(a.log.WithField(ctx, "error_code", string(typed.Code())), "request.error", err)
	} else {
		a.log.Warn(a.log.WithField(ctx, "error_code", string(typed.Code())), "request.rejected", err)
	}
	c.AbortWithStatusJSON(status, body)
}
