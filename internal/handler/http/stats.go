package http

import (
	"net/http"
	"time"

	"github.com/ammarbari/attendance-app/internal/domain/stats"
	"github.com/ammarbari/attendance-app/internal/handler/http/response"
)

type StatsHandler interface {
	MonthlySummary(w http.ResponseWriter, r *http.Request)
	WeeklySummary(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService stats.Service
}

func NewStatsHandler(statsService stats.Service) StatsHandler {
	return &statsHandlerImpl{statsService: statsService}
}

// MonthlySummary implements StatsHandler. Year and month default to the
// current calendar month.
func (h *statsHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	req := stats.MonthlySummaryRequest{
		Year:  getIntQueryParam(r, "year", now.Year()),
		Month: getIntQueryParam(r, "month", int(now.Month())),
	}

	result, err := h.statsService.MonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WeeklySummary implements StatsHandler.
func (h *statsHandlerImpl) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.statsService.WeeklySummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
