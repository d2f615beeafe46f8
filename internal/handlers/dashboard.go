package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/darvasboard/darvas-portal/internal/common"
	"github.com/darvasboard/darvas-portal/internal/config"
	"github.com/darvasboard/darvas-portal/internal/darvas"
	"github.com/darvasboard/darvas-portal/internal/view"
)

// DashboardHandler serves the single dashboard page. A GET with a ticker
// query parameter runs the fetch/compute/render pipeline; without one it
// renders the bare page.
type DashboardHandler struct {
	logger    *common.Logger
	templates *template.Template
	service   *darvas.Service
	devMode   bool
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(logger *common.Logger, devMode bool, service *darvas.Service) *DashboardHandler {
	pagesDir := FindPagesDir()
	templates := template.Must(template.ParseGlob(filepath.Join(pagesDir, "*.html")))

	return &DashboardHandler{
		logger:    logger,
		templates: templates,
		service:   service,
		devMode:   devMode,
	}
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
		".",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// ServeHTTP renders the dashboard page.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := r.URL.Query().Get("ticker")

	data := map[string]interface{}{
		"Page":          "dashboard",
		"DevMode":       h.devMode,
		"Ticker":        ticker,
		"PortalVersion": config.GetVersion(),
	}

	// Empty input suppresses the whole pipeline
	if ticker != "" {
		data["Dashboard"] = h.buildDashboard(r, ticker)
	}

	if err := h.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "dashboard.html").Str("error", err.Error()).Msg("failed to render dashboard")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// buildDashboard is the top-level interaction handler: any failure in fetch
// or compute collapses to the single error banner, never a partial page.
func (h *DashboardHandler) buildDashboard(r *http.Request, ticker string) *view.Dashboard {
	report, err := h.service.TickerReport(r.Context(), ticker)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn().Str("ticker", ticker).Str("error", err.Error()).Msg("ticker report failed")
		}
		return view.BuildError(ticker, err)
	}
	return view.Build(report)
}

// StaticFileHandler serves static files (CSS, JS, images).
func (h *DashboardHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	pagesDir := FindPagesDir()
	staticDir := filepath.Join(pagesDir, "static")

	// Remove /static/ prefix from URL path
	path := r.URL.Path[len("/static/"):]
	fullPath := filepath.Join(staticDir, path)

	// Security: prevent directory traversal
	absStaticDir, _ := filepath.Abs(staticDir)
	absFullPath, _ := filepath.Abs(fullPath)
	if len(absFullPath) < len(absStaticDir) || absFullPath[:len(absStaticDir)] != absStaticDir {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
