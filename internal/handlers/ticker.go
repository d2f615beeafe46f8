package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/darvasboard/darvas-portal/internal/common"
	"github.com/darvasboard/darvas-portal/internal/darvas"
	"github.com/darvasboard/darvas-portal/internal/market"
	"github.com/darvasboard/darvas-portal/internal/view"
)

// TickerHandler serves the ticker report as JSON.
// GET /api/ticker/{symbol} -> view.Dashboard
type TickerHandler struct {
	logger  *common.Logger
	service *darvas.Service
}

// NewTickerHandler creates a new ticker API handler.
func NewTickerHandler(logger *common.Logger, service *darvas.Service) *TickerHandler {
	return &TickerHandler{logger: logger, service: service}
}

// ServeHTTP handles GET /api/ticker/{symbol}.
func (h *TickerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	symbol := strings.TrimPrefix(r.URL.Path, "/api/ticker/")
	symbol = strings.Trim(symbol, "/")
	if symbol == "" || strings.Contains(symbol, "/") {
		WriteError(w, http.StatusBadRequest, "ticker symbol required")
		return
	}

	report, err := h.service.TickerReport(r.Context(), symbol)
	if err != nil {
		h.writeFailure(w, symbol, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   view.Build(report),
	})
}

// writeFailure maps pipeline errors to API statuses: an empty series is a
// 404, an upstream failure is a 502, anything else a 500. The body carries
// the same banner content the page shows.
func (h *TickerHandler) writeFailure(w http.ResponseWriter, symbol string, err error) {
	if h.logger != nil {
		h.logger.Warn().Str("ticker", symbol).Str("error", err.Error()).Msg("ticker report failed")
	}

	status := http.StatusInternalServerError
	var re *market.RetrievalError
	switch {
	case errors.Is(err, darvas.ErrEmptySeries):
		status = http.StatusNotFound
	case errors.As(err, &re):
		status = http.StatusBadGateway
	}

	banner := view.BuildError(symbol, err).Error
	WriteJSON(w, status, map[string]interface{}{
		"status": "error",
		"error":  banner.Message,
		"hint":   banner.Hint,
	})
}
