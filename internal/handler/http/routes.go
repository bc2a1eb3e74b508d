package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
//
//	GET    /api/version/
//	GET    /api/limits/
//	GET    /api/scopes/{scopeID}/images
//	POST   /api/scopes/{scopeID}/images
//	GET    /api/scopes/{scopeID}/images/{objectName}
//	DELETE /api/scopes/{scopeID}/images/{objectName}
//	GET    /api/scopes/{scopeID}/usage
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	// routes without authorization
	router.Get("/api/version/", h.getServerVersion)
	router.Get("/api/limits/", h.getLimits)

	router.Route("/api/scopes/{scopeID}", func(r chi.Router) {
		r.Use(h.auth)

		r.With(middleware.Compress(5, "application/json")).Get("/images", h.listImages)
		r.Post("/images", h.uploadImage)
		r.Get("/images/{objectName}", h.downloadImage)
		r.Delete("/images/{objectName}", h.deleteImage)
		r.With(middleware.Compress(5, "application/json")).Get("/usage", h.scopeUsage)
	})

	return router
}
