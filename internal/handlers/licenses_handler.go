package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwtech/license-orderflow/internal/validation"
)

func (a *api) listLicenses(c *gin.Context) {
	products, err := a.catalog.Search(c.Request.Context(), c.Query("q"), c.Query("vendor"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (a *api) createLicense(c *gin.Context) {
	var req validation.CreateProductRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		a.writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	id, err := a.catalog.Create(ctx, req.Product())
	if err != nil {
		a.writeError(c, err)
		return
	}
	a.metrics.ProductCreated(ctx)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (a *api) seedLicenses(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := a.catalog.Seed(ctx)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if res.Inserted != nil {
		a.metrics.CatalogSeeded(ctx, *res.Inserted)
	}
	c.JSON(http.StatusOK, res)
}
