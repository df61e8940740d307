package handlers

import (
	"RGFlow/internal/middleware"
	"RGFlow/internal/report"
	"RGFlow/internal/service"
	"RGFlow/internal/view"
	"bytes"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// DashboardHandler — показатели и страницы с графиками.
type DashboardHandler struct {
	DashboardService *service.DashboardService
	Logger           *zap.SugaredLogger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{DashboardService: dashboardService, Logger: logger}
}

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.DashboardService.Metrics(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "Metrics", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Dashboard — GET /dashboard: три графика главной панели.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, view.PageDashboard, report.DashboardCharts)
}

// Reports — GET /reports: графики панели плюс распределения.
func (h *DashboardHandler) Reports(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, view.PageRelatorios, report.ReportCharts)
}

func (h *DashboardHandler) renderPage(w http.ResponseWriter, r *http.Request, page view.Page, draw func(*report.Board, report.Metrics)) {
	_, logged := middleware.GetUserEmailFromContext(r.Context())
	if err := view.NewRouter().Show(page, logged); err != nil {
		if errors.Is(err, view.ErrLoginRequired) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	m, err := h.DashboardService.Metrics(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "Render "+string(page), err)
		return
	}
	board := report.NewBoard("RGFlow · " + view.Title(page))
	draw(board, m)

	var buf bytes.Buffer
	if err := board.WriteHTML(&buf); err != nil {
		h.Logger.Errorw("Render: charts failed", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
