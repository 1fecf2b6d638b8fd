//go:build e2e

package schedule_test

import (
	"net/http"
	"testing"
	"time"

	"petcare-hub/tests/common/dbtest"
	"petcare-hub/tests/common/httptest"
	"petcare-hub/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const scheduleEventsURL = "/api/schedule/events"

type ScheduleSuite struct {
	e2e.SharedSuite
}

func (s *ScheduleSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestScheduleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ScheduleSuite))
}

func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

// =============================================================================
// TestRangeEvents - three-service aggregation over a date range
// =============================================================================

func (s *ScheduleSuite) TestRangeEvents() {
	s.Run("Normal case: merges all three services over the range", func() {
		t := s.T()

		dbtest.CreateTestAppointment(t, s.DB, "vet", day(10), 600, 630, "pending")
		dbtest.CreateTestAppointment(t, s.DB, "grooming", day(10), 660, 720, "accepted")
		dbtest.CreateTestAppointment(t, s.DB, "daycare", day(11), 480, 720, "pending")

		url := scheduleEventsURL + "?from=" + day(10) + "&to=" + day(12)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			Events []struct {
				Date    string `json:"date"`
				Service string `json:"service"`
				Start   string `json:"start"`
				End     string `json:"end"`
				Title   string `json:"title"`
			} `json:"events"`
			FailedDays []string `json:"failedDays"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Empty(t, body.FailedDays)
		require.Len(t, body.Events, 3)

		services := map[string]int{}
		for _, e := range body.Events {
			services[e.Service]++
		}
		require.Equal(t, map[string]int{"vet": 1, "grooming": 1, "daycare": 1}, services)
	})

	s.Run("Normal case: days before today are discarded by default", func() {
		t := s.T()

		dbtest.CreateTestAppointment(t, s.DB, "vet", day(-3), 600, 630, "pending")
		dbtest.CreateTestAppointment(t, s.DB, "vet", day(2), 660, 690, "pending")

		url := scheduleEventsURL + "?from=" + day(-5) + "&to=" + day(5)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Events []struct {
				Date string `json:"date"`
			} `json:"events"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Events, 1)
		require.Equal(t, day(2), body.Events[0].Date)
	})

	s.Run("Normal case: include_past brings past days back", func() {
		t := s.T()

		dbtest.CreateTestAppointment(t, s.DB, "vet", day(-3), 600, 630, "pending")
		dbtest.CreateTestAppointment(t, s.DB, "vet", day(2), 660, 690, "pending")

		url := scheduleEventsURL + "?from=" + day(-5) + "&to=" + day(5) + "&include_past=true"
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Events []struct {
				Date string `json:"date"`
			} `json:"events"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Events, 2)
	})

	s.Run("Normal case: rejected bookings never reach the calendar", func() {
		t := s.T()

		dbtest.CreateTestAppointment(t, s.DB, "grooming", day(10), 600, 660, "rejected")

		url := scheduleEventsURL + "?from=" + day(10) + "&to=" + day(10)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, w.Code)

		require.JSONEq(t, `{"events":[]}`, w.Body.String())
	})

	s.Run("Error case: missing from is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, scheduleEventsURL, nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "'from' is required")
	})

	s.Run("Error case: inverted range is rejected", func() {
		t := s.T()

		url := scheduleEventsURL + "?from=" + day(5) + "&to=" + day(1)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid date range")
	})
}
