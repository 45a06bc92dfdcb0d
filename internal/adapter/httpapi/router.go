package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/renohome/listing-service/internal/adapter/httpapi/middleware"
	"go.uber.org/zap"
)

// NewRouter mounts the public storefront routes and the JWT-protected admin
// console routes.
func NewRouter(h *Handler, jwtSecret string, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))

	r.Get("/healthz", h.HandleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/listings", h.HandleSearchListings)
	r.Get("/api/listings/{id}", h.HandleGetListingByID)
	r.Post("/api/listings/{id}/views", h.HandleRecordView)
	r.Post("/api/listings/{id}/enquiries", h.HandleCreateEnquiry)

	r.Get("/api/regions/provinces", h.HandleListProvinces)
	r.Get("/api/regions/districts", h.HandleListDistricts)
	r.Get("/api/regions/subdistricts", h.HandleListSubDistricts)
	r.Get("/api/regions/zipcode", h.HandleResolveZipCode)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.JWTAuth(jwtSecret))
		admin.Use(middleware.RequireRole("admin"))

		admin.Post("/api/admin/listings", h.HandleCreateListing)
		admin.Put("/api/admin/listings/{id}", h.HandleUpdateListing)
		admin.Patch("/api/admin/listings/{id}/status", h.HandleUpdateListingStatus)
		admin.Delete("/api/admin/listings/{id}", h.HandleDeleteListing)
		admin.Post("/api/admin/listings/{id}/photos", h.HandleUploadPhoto)
	})

	return r
}
