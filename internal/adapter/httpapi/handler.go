package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/renohome/listing-service/internal/entity"
	"github.com/renohome/listing-service/internal/geo"
	"github.com/renohome/listing-service/internal/region"
	"github.com/renohome/listing-service/internal/search"
	"github.com/renohome/listing-service/internal/usecase"
	"go.uber.org/zap"
)

const maxPhotoUploadBytes = 10 << 20

type Handler struct {
	listingUC *usecase.ListingUseCase
	searchUC  *usecase.SearchUseCase
	logger    *zap.Logger
}

func NewHandler(listingUC *usecase.ListingUseCase, searchUC *usecase.SearchUseCase, logger *zap.Logger) *Handler {
	return &Handler{
		listingUC: listingUC,
		searchUC:  searchUC,
		logger:    logger,
	}
}

type searchResponse struct {
	Listings []entity.Listing `json:"listings"`
	Total    int              `json:"total"`
}

// HandleSearchListings serves the storefront grid. All filtering and sorting
// happens in memory over the snapshot; query parameters map one-to-one onto
// search.Criteria.
func (h *Handler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	c, key := criteriaFromQuery(r)

	listings, err := h.searchUC.Search(r.Context(), c, key)
	if err != nil {
		h.writeError(w, err)
		return
	}
	searchesTotal.Inc()
	h.writeJSON(w, http.StatusOK, searchResponse{Listings: listings, Total: len(listings)})
}

func criteriaFromQuery(r *http.Request) (search.Criteria, search.SortKey) {
	q := r.URL.Query()

	c := search.NewCriteria()
	c.Text = q.Get("q")
	for _, t := range multiValue(q["type"]) {
		c.Types = append(c.Types, entity.PropertyType(t))
	}
	if cat := q.Get("category"); cat != "" {
		c.Category = entity.Category(cat)
	}
	c.Provinces = multiValue(q["province"])
	c.Districts = multiValue(q["district"])

	return c, search.ParseSortKey(q.Get("sort"))
}

// multiValue accepts both repeated parameters and comma-separated lists.
func multiValue(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

type listingDetailResponse struct {
	entity.Listing
	Coordinate *geo.Coordinate `json:"coordinate,omitempty"`
}

func (h *Handler) HandleGetListingByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.listingUC.GetListingByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := listingDetailResponse{Listing: *listing}
	if coord, ok := geo.FromMapURL(listing.MapURL); ok {
		resp.Coordinate = &coord
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleRecordView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.listingUC.RecordView(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	viewsRecordedTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

type enquiryRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *Handler) HandleCreateEnquiry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req enquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.listingUC.SendEnquiry(r.Context(), usecase.EnquiryInput{
		ListingID: id,
		Name:      req.Name,
		Phone:     req.Phone,
		Message:   req.Message,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	enquiriesTotal.Inc()
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) HandleListProvinces(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.searchUC.ProvinceOptions(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if provinces == nil {
		provinces = []string{}
	}
	h.writeJSON(w, http.StatusOK, provinces)
}

func (h *Handler) HandleListDistricts(w http.ResponseWriter, r *http.Request) {
	provinces := multiValue(r.URL.Query()["province"])

	districts, err := h.searchUC.DistrictOptions(r.Context(), provinces)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if districts == nil {
		districts = []region.DistrictOption{}
	}
	h.writeJSON(w, http.StatusOK, districts)
}

func (h *Handler) HandleListSubDistricts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	subDistricts, err := h.searchUC.SubDistrictOptions(r.Context(), q.Get("province"), q.Get("district"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if subDistricts == nil {
		subDistricts = []entity.SubDistrict{}
	}
	h.writeJSON(w, http.StatusOK, subDistricts)
}

// HandleResolveZipCode backs the listing form's zip auto-fill. An unknown
// sub-district answers 404 so the form leaves the field editable.
func (h *Handler) HandleResolveZipCode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	zip, ok, err := h.searchUC.ZipCode(r.Context(), q.Get("province"), q.Get("district"), q.Get("subdistrict"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		http.Error(w, "zip code not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"zipCode": zip})
}

type listingRequest struct {
	Title       string        `json:"title"`
	Price       int64         `json:"price"`
	Location    string        `json:"location"`
	Province    string        `json:"province"`
	District    string        `json:"district"`
	SubDistrict string        `json:"subDistrict"`
	ZipCode     string        `json:"zipCode"`
	Type        string        `json:"type"`
	Category    string        `json:"category"`
	Status      string        `json:"status"`
	Date        string        `json:"date"`
	Beds        int           `json:"beds"`
	Baths       int           `json:"baths"`
	Area        int           `json:"area"`
	Description string        `json:"desc"`
	MapURL      string        `json:"mapUrl"`
	Images      []string      `json:"images"`
	Zones       []entity.Zone `json:"zones"`
}

func (req listingRequest) toInput() usecase.ListingInput {
	return usecase.ListingInput{
		Title:       req.Title,
		Price:       req.Price,
		Location:    req.Location,
		Province:    req.Province,
		District:    req.District,
		SubDistrict: req.SubDistrict,
		ZipCode:     req.ZipCode,
		Type:        entity.PropertyType(req.Type),
		Category:    entity.Category(req.Category),
		Status:      entity.ListingStatus(req.Status),
		Date:        req.Date,
		Beds:        req.Beds,
		Baths:       req.Baths,
		Area:        req.Area,
		Description: req.Description,
		MapURL:      req.MapURL,
		Images:      req.Images,
		Zones:       req.Zones,
	}
}

func (h *Handler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	listing, err := h.listingUC.CreateListing(r.Context(), req.toInput())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, listing)
}

func (h *Handler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	listing, err := h.listingUC.UpdateListing(r.Context(), id, req.toInput())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listing)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) HandleUpdateListingStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.listingUC.UpdateListingStatus(r.Context(), id, entity.ListingStatus(req.Status)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.listingUC.DeleteListing(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "missing photo file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoUploadBytes))
	if err != nil {
		http.Error(w, "failed to read photo", http.StatusBadRequest)
		return
	}

	url, err := h.listingUC.UploadPhoto(r.Context(), id, header.Filename, data)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrListingNotFound):
		http.Error(w, "listing not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidListingData):
		http.Error(w, "invalid listing data", http.StatusBadRequest)
	default:
		h.logger.Error("Request failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
