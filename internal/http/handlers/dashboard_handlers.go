package handlers

import (
	"net/http"
	"strconv"
	"time"
)

// GetDashboardStatsHandler godoc
// @Summary Monthly dashboard figures
// @Description Aggregates revenue, expenses, appointments and client activity
// @Description for the requested month, with percentage deltas against the
// @Description previous month. Defaults to the current month.
// @Tags dashboard
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {object} dataEnvelope
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/dashboard/stats [get]
func GetDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	month := now.Month()
	year := now.Year()

	q := r.URL.Query()
	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
			return
		}
		month = time.Month(m)
	}
	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2200 {
			writeError(w, http.StatusBadRequest, "year is out of range")
			return
		}
		year = y
	}

	dashboard, err := dashboardRepo.GetDashboardStats(month, year)
	if err != nil {
		logger.Error("could not compute dashboard stats", "month", month, "year", year, "err", err)
		writeError(w, http.StatusInternalServerError, "could not compute dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, dataEnvelope{Data: dashboard})
}
