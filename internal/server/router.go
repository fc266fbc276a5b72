package server

import (
	"net/http"

	"github.com/jhbridge/billing/internal/config"
	"github.com/jhbridge/billing/internal/gate"
	"github.com/jhbridge/billing/internal/handlers"
	"github.com/jhbridge/billing/internal/httpx"
	"github.com/jhbridge/billing/internal/models"
	"github.com/jhbridge/billing/internal/pdf"
	"github.com/jhbridge/billing/internal/services"
	"gorm.io/gorm"
)

// New constructs the root http.Handler: home, gate, the two gated
// editors, and health checks.
func New(dbConn *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbConn.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	g := gate.New(gate.NewSettingStore(dbConn), cfg.App.AccessCode)
	gateHandler := handlers.NewGateHandler(g)
	gateHandler.Register(mux)

	editors := services.NewEditorService(pdf.NewGenerator(cfg.App.LogoPath))
	handlers.NewDocumentHandler(models.DocumentTypeQuote, editors).Register(mux, gateHandler.Protect)
	handlers.NewDocumentHandler(models.DocumentTypeInvoice, editors).Register(mux, gateHandler.Protect)

	mux.HandleFunc("/", handlers.Home)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	return mux
}
