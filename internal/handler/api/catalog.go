package api

import (
	"net/http"

	"petcare-hub/internal/domain/appointment"
	resdto "petcare-hub/internal/handler/dto/response"
	"petcare-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only package and service price lists.
type CatalogHandler struct {
	catalog queries.CatalogQueries
}

func NewCatalogHandler(catalog queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// @Summary Service catalog
// @Description Packages or visit types offered by one service
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.PackageResponse
// @Router /{service}/packages [get]
func (h *CatalogHandler) List(service appointment.ServiceType) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := h.catalog.ListPackages(c.Request.Context(), service)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resdto.FromPackageViews(views))
	}
}
