//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/handler/api"
	resdto "petcare-hub/internal/handler/dto/response"
	"petcare-hub/internal/usecase/queries"
	"petcare-hub/tests/common/httptest"
	queriesmock "petcare-hub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCatalog *queriesmock.MockCatalogQueries
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = queriesmock.NewMockCatalogQueries(s.mockCtrl)

	handler := api.NewCatalogHandler(s.mockCatalog)
	s.router.GET("/api/vet/services", handler.List(appointment.ServiceVet))
	s.router.GET("/api/grooming/packages", handler.List(appointment.ServiceGrooming))
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestList() {
	duration := int32(60)
	groomingPackages := []*queries.PackageView{
		{Service: "grooming", ID: "basic-bath", Name: "Basic Bath", PriceCents: 4500, DurationMinutes: &duration},
		{Service: "grooming", ID: "full-groom", Name: "Full Groom", PriceCents: 8500, DurationMinutes: &duration},
	}

	s.Run("success: returns the bound service's packages", func() {
		s.mockCatalog.EXPECT().ListPackages(gomock.Any(), appointment.ServiceGrooming).
			Return(groomingPackages, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/grooming/packages", nil)

		var response []resdto.PackageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal("basic-bath", response[0].ID)
		s.Equal(int32(4500), response[0].PriceCents)
	})

	s.Run("success: vet visit types have no duration", func() {
		s.mockCatalog.EXPECT().ListPackages(gomock.Any(), appointment.ServiceVet).
			Return([]*queries.PackageView{
				{Service: "vet", ID: "wellness-exam", Name: "Wellness Exam", PriceCents: 6000},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/vet/services", nil)

		var response []resdto.PackageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Nil(response[0].DurationMinutes)
	})

	s.Run("error: 500 Internal Server Error on store failure", func() {
		s.mockCatalog.EXPECT().ListPackages(gomock.Any(), appointment.ServiceVet).
			Return(nil, errors.New("connection refused")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/vet/services", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
