package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cashroute/cashroute/internal/application/dto"
	"github.com/cashroute/cashroute/internal/application/usecase"
	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/port"
)

// PlanHandler exposes the routing operations over REST.
type PlanHandler struct {
	planRoutes *usecase.PlanRoutes
	getPlan    *usecase.GetPlan
	listPlans  *usecase.ListPlans
	logger     *slog.Logger
}

func NewPlanHandler(
	planRoutes *usecase.PlanRoutes,
	getPlan *usecase.GetPlan,
	listPlans *usecase.ListPlans,
	logger *slog.Logger,
) *PlanHandler {
	return &PlanHandler{
		planRoutes: planRoutes,
		getPlan:    getPlan,
		listPlans:  listPlans,
		logger:     logger,
	}
}

// NewRouter assembles the REST surface: the plan endpoints behind auth and
// rate limiting, the probes and metrics endpoint open.
func NewRouter(handler *PlanHandler, health *HealthHandler, metrics http.Handler, authMW, rateMW, logMW func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(logMW, rateMW, authMW)

	r.HandleFunc("/healthz", health.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Readiness).Methods(http.MethodGet)
	r.Handle("/metrics", metrics).Methods(http.MethodGet)

	r.HandleFunc("/v1/route-plans", handler.PlanRoutes).Methods(http.MethodPost)
	r.HandleFunc("/v1/route-plans", handler.ListPlans).Methods(http.MethodGet)
	r.HandleFunc("/v1/route-plans/{id}", handler.GetPlan).Methods(http.MethodGet)

	return r
}

// PlanRoutes handles POST /v1/route-plans. A computed plan answers 200 with
// routes; a business refusal answers 422 with the flat error fields and no
// routes key; a malformed request answers 400.
func (h *PlanHandler) PlanRoutes(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRoutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.planRoutes.Execute(r.Context(), req)
	if err != nil {
		if ve, ok := model.AsValidationError(err); ok {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.logger.Error("plan routes failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute route plan")
		return
	}

	code := http.StatusOK
	if resp.Error != "" {
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, code, resp)
}

// GetPlan handles GET /v1/route-plans/{id}.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	resp, err := h.getPlan.Execute(r.Context(), dto.GetPlanRequest{PlanID: id})
	if err != nil {
		if errors.Is(err, port.ErrPlanNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		h.logger.Error("get plan failed", "plan_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load plan")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListPlans handles GET /v1/route-plans with pageSize/offset query params.
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	req := dto.ListPlansRequest{
		PageSize: queryInt(r, "pageSize"),
		Offset:   queryInt(r, "offset"),
	}

	resp, err := h.listPlans.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("list plans failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list plans")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
