package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"examsched/internal/reservations/service"
	"examsched/internal/venues"
	apperrors "examsched/pkg/errors"
	httputil "examsched/pkg/http"
	"examsched/pkg/logger"
	"examsched/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	catalog *venues.Catalog
	log     *logger.Logger
}

// ClashReport is the 409 payload for a rejected single submission.
type ClashReport struct {
	Clashes []model.Clash `json:"clashes"`
}

type ClearResponse struct {
	RemovedCount int64 `json:"removed_count"`
}

func NewReservationHandler(service service.ReservationService, catalog *venues.Catalog, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		catalog: catalog,
		log:     log,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.List)
	router.DELETE("/api/v1/reservations/:id", h.Delete)
	router.DELETE("/api/v1/reservations", h.Clear)

	router.POST("/api/v1/reservations/batch/validate", h.ValidateBatch)
	router.POST("/api/v1/reservations/batch", h.CommitBatch)

	router.GET("/api/v1/availability", h.Availability)
	router.GET("/api/v1/venues", h.Venues)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cand model.Candidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	created, clashes, err := h.service.Submit(r.Context(), &cand)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(clashes) > 0 {
		httputil.WriteJSON(w, http.StatusConflict, ClashReport{Clashes: clashes})
		return
	}

	httputil.WriteCreated(w, created)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, h.service.List(r.Context()))
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Reservation id must be an integer"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	removed, err := h.service.Clear(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, ClearResponse{RemovedCount: removed})
}

func (h *ReservationHandler) ValidateBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var rows []model.BatchRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Request body must be a JSON array of batch rows",
		})
		return
	}

	httputil.WriteSuccess(w, h.service.ValidateBatch(r.Context(), rows))
}

func (h *ReservationHandler) CommitBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var rows []model.BatchRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Request body must be a JSON array of batch rows",
		})
		return
	}

	result, err := h.service.CommitBatch(r.Context(), rows)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, result)
}

func (h *ReservationHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	req := model.AvailabilityRequest{
		Date:      query.Get("date"),
		StartTime: query.Get("start_time"),
		EndTime:   query.Get("end_time"),
	}

	seatsStr := query.Get("seats")
	if seatsStr != "" {
		seats, err := strconv.Atoi(seatsStr)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput("seats must be an integer"))
			return
		}
		req.SeatsRequired = seats
	}

	report, err := h.service.Availability(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, report)
}

func (h *ReservationHandler) Venues(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, h.catalog.Venues())
}
