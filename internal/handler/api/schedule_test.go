//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"petcare-hub/internal/handler/api"
	"petcare-hub/internal/pkg/config"
	"petcare-hub/internal/usecase/queries"
	"petcare-hub/tests/common/httptest"
	queriesmock "petcare-hub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScheduleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockSchedule *queriesmock.MockScheduleQueries
}

func (s *ScheduleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSchedule = queriesmock.NewMockScheduleQueries(s.mockCtrl)

	handler := api.NewScheduleHandler(queries.NewRangeLoader(s.mockSchedule), config.ScheduleConfig{BatchDays: 7})
	s.router.GET("/api/schedule/events", handler.RangeEvents)
}

func (s *ScheduleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScheduleHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}

func (s *ScheduleHandlerTestSuite) TestRangeEvents() {
	url := "/api/schedule/events"

	result := &queries.RangeResult{
		Events: []*queries.EventView{
			{ID: uuid.New(), Date: "2026-09-15", Start: "10:00 AM", End: "10:30 AM", Title: "dog • checkup", Service: "vet", Status: "pending"},
		},
	}

	s.Run("success: returns merged events for the range", func() {
		s.mockSchedule.EXPECT().RangeEvents(gomock.Any(), "2026-09-15", "2026-09-21", false).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2026-09-15&to=2026-09-21", nil)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		events, ok := body["events"].([]any)
		s.Require().True(ok)
		s.Len(events, 1)
	})

	s.Run("success: to defaults to from", func() {
		s.mockSchedule.EXPECT().RangeEvents(gomock.Any(), "2026-09-15", "2026-09-15", false).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2026-09-15", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: include_past is passed through", func() {
		s.mockSchedule.EXPECT().RangeEvents(gomock.Any(), "2026-09-01", "2026-09-05", true).
			Return(&queries.RangeResult{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2026-09-01&to=2026-09-05&include_past=true", nil)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		// Nil events render as an empty array, never null.
		events, ok := body["events"].([]any)
		s.Require().True(ok)
		s.Empty(events)
	})

	s.Run("success: failed days surface next to the events", func() {
		partial := &queries.RangeResult{
			Events:     result.Events,
			FailedDays: []string{"2026-09-16"},
		}
		s.mockSchedule.EXPECT().RangeEvents(gomock.Any(), "2026-09-15", "2026-09-16", false).
			Return(partial, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2026-09-15&to=2026-09-16", nil)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]any{"2026-09-16"}, body["failedDays"])
	})

	s.Run("error: 400 Bad Request when from is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "'from' is required")
	})

	s.Run("error: 400 Bad Request for unparseable include_past", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2026-09-15&include_past=maybe", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid include_past")
	})

	s.Run("error: 400 Bad Request for an invalid range", func() {
		s.mockSchedule.EXPECT().RangeEvents(gomock.Any(), "2026-09-21", "2026-09-15", false).
			Return(nil, queries.ErrInvalidRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2026-09-21&to=2026-09-15", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date range")
	})
}
