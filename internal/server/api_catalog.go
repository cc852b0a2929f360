package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	voucherhttpmapper "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/http/mapper"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

// CatalogAPI serves the module catalog and wizard quotes.
type CatalogAPI struct {
	catalog voucherports.Catalog
}

func NewCatalogAPI(catalog voucherports.Catalog) CatalogAPI {
	return CatalogAPI{catalog: catalog}
}

// Get /api/v1/catalog/modules
func (api *CatalogAPI) ListModules(c *gin.Context) {
	modules, err := api.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voucherhttpmapper.FromDomainModules(modules))
}

// Post /api/v1/quotes
// Prices a module selection
func (api *CatalogAPI) CreateQuote(c *gin.Context) {
	var payload voucherhttpmapper.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	quote, err := api.catalog.Quote(c.Request.Context(), voucherhttpmapper.ToQuoteLines(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voucherhttpmapper.FromQuote(quote))
}
