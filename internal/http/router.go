package http

import (
	"net/http"
	"time"

	"backoffice/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps JSON request bodies when RouterOptions leaves
// MaxBodyBytes unset.
const DefaultMaxBodyBytes = 4 << 20

type RouterOptions struct {
	Logger         *zap.Logger
	Timeout        time.Duration
	AllowedOrigins []string
	MaxBodyBytes   int64
}

func NewRouter(handler *Handler, opts RouterOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(Timeout(opts.Timeout))
	r.Use(CORS(opts.AllowedOrigins))

	r.Get("/healthz", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Workbook uploads get their own cap on top of the multipart overhead.
		r.With(LimitBodyBytes(maxUploadBytes+1<<20)).Post("/reports/import-file", handler.ImportReportsFile)

		r.Group(func(r chi.Router) {
			r.Use(LimitBodyBytes(maxBody))

			r.Get("/reports", handler.ListReports)
			r.Post("/reports", handler.CreateReport)
			r.Get("/reports/export", handler.ExportReports)
			r.Post("/reports/bulk", handler.BulkCreateReports)
			r.Get("/reports/{id}", handler.GetReport)
			r.Put("/reports/{id}", handler.UpdateReport)
			r.Delete("/reports/{id}", handler.DeleteReport)

			r.Get("/whitelabels", handler.ListWhitelabels)
			r.Post("/whitelabels", handler.CreateWhitelabel)
			r.Get("/whitelabels/{id}", handler.GetWhitelabel)
			r.Put("/whitelabels/{id}", handler.UpdateWhitelabel)
			r.Delete("/whitelabels/{id}", handler.DeleteWhitelabel)

			r.Get("/proof-types", handler.ListProofTypes)
			r.Post("/proof-types", handler.CreateProofType)
			r.Get("/proof-types/{id}", handler.GetProofType)
			r.Put("/proof-types/{id}", handler.UpdateProofType)
			r.Delete("/proof-types/{id}", handler.DeleteProofType)

			handler.namedResource(repository.SportsTable, "sport not found").mount(r, "/sports")
			handler.namedResource(repository.MarketsTable, "market not found").mount(r, "/markets")

			r.Get("/clients", handler.ListClients)
			r.Post("/clients", handler.CreateClient)
			r.Get("/clients/{id}", handler.GetClient)
			r.Put("/clients/{id}", handler.UpdateClient)
			r.Delete("/clients/{id}", handler.DeleteClient)

			r.Get("/roles", handler.ListRoles)
			r.Post("/roles", handler.CreateRole)
			r.Get("/roles/{id}", handler.GetRole)
			r.Put("/roles/{id}", handler.UpdateRole)
			r.Delete("/roles/{id}", handler.DeleteRole)

			r.Post("/admins/authenticate", handler.AuthenticateAdmin)
			r.Get("/admins", handler.ListAdmins)
			r.Post("/admins", handler.CreateAdmin)
			r.Get("/admins/{id}", handler.GetAdmin)
			r.Patch("/admins/{id}/password", handler.UpdateAdminPassword)
			r.Patch("/admins/{id}/role", handler.UpdateAdminRole)
			r.Delete("/admins/{id}", handler.DeleteAdmin)
		})
	})

	return r
}
