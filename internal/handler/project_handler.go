package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"servicapp/internal/middleware"
	"servicapp/internal/models"
	"servicapp/internal/service"
)

type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=started in_progress completed"`
}

type StagePhotoRequest struct {
	Photo string `json:"photo" validate:"required"`
}

type SetProgressRequest struct {
	Percentage int `json:"percentage" validate:"gte=0,lte=100"`
}

type ProjectResponse struct {
	models.ActiveProject
	CurrentStage int `json:"currentStage"`
}

func projectResponse(p *models.ActiveProject) ProjectResponse {
	return ProjectResponse{ActiveProject: *p, CurrentStage: p.CurrentStage()}
}

func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	userType, _ := middleware.UserType(r.Context())

	projects, err := h.Project.ListForUser(r.Context(), &models.User{UserID: userID, UserType: userType})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, projectResponse(&projects[i]))
	}
	WriteSuccess(w, resp, http.StatusOK)
}

func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	projectID := mux.Vars(r)["id"]

	project, err := h.Project.Get(r.Context(), projectID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, projectResponse(project), http.StatusOK)
}

// UpdateProjectStatus advances the project's worker-driven states.
func (h *Handlers) UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	projectID := mux.Vars(r)["id"]

	var req UpdateProjectStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Datos inválidos", http.StatusBadRequest)
		return
	}

	project, err := h.Project.AdvanceStatus(r.Context(), projectID, workerID, models.NormalizeProjectStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, projectResponse(project), http.StatusOK)
}

// UploadStagePhoto stores the evidence photo for one milestone.
func (h *Handlers) UploadStagePhoto(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	projectID := vars["id"]

	stage, err := strconv.Atoi(vars["stage"])
	if err != nil || stage < 1 || stage > models.NumStages {
		WriteError(w, "Etapa inválida", http.StatusBadRequest)
		return
	}

	var req StagePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Datos inválidos", http.StatusBadRequest)
		return
	}

	if int64(len(req.Photo)) > h.Cfg.MaxUploadSize {
		WriteError(w, "La imagen supera el tamaño máximo permitido", http.StatusRequestEntityTooLarge)
		return
	}

	project, err := h.Project.UploadStagePhoto(r.Context(), projectID, workerID, stage, req.Photo)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, projectResponse(project), http.StatusOK)
}

func (h *Handlers) SetProgress(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	projectID := mux.Vars(r)["id"]

	var req SetProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Datos inválidos", http.StatusBadRequest)
		return
	}

	if err := h.Project.SetProgress(r.Context(), projectID, workerID, req.Percentage); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// SubmitReview closes a completed project with the contractor's rating.
func (h *Handlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	projectID := mux.Vars(r)["id"]

	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Datos inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	review, newRating, err := h.Review.SubmitReview(r.Context(), projectID, contractorID, service.SubmitReviewRequest{
		Rating:              req.Rating,
		Comment:             req.Comment,
		PunctualityRating:   req.PunctualityRating,
		QualityRating:       req.QualityRating,
		PriceRating:         req.PriceRating,
		CommunicationRating: req.CommunicationRating,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, SubmitReviewResponse{Review: review, WorkerRating: newRating}, http.StatusCreated)
}

type SubmitReviewRequest struct {
	Rating              int    `json:"rating" validate:"required,min=1,max=5"`
	Comment             string `json:"comment"`
	PunctualityRating   int    `json:"punctualityRating" validate:"gte=0,lte=5"`
	QualityRating       int    `json:"qualityRating" validate:"gte=0,lte=5"`
	PriceRating         int    `json:"priceRating" validate:"gte=0,lte=5"`
	CommunicationRating int    `json:"communicationRating" validate:"gte=0,lte=5"`
}

type SubmitReviewResponse struct {
	Review       *models.WorkerReview `json:"review"`
	WorkerRating float64              `json:"workerRating"`
}
