package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"servicapp/internal/middleware"
	"servicapp/internal/models"
	"servicapp/internal/service"
)

type ApplyRequest struct {
	Message                 string  `json:"message"`
	ProposedCost            float64 `json:"proposedCost" validate:"gte=0"`
	EstimatedCompletionTime string  `json:"estimatedCompletionTime"`
}

type RespondRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

type RespondResponse struct {
	Application models.PostApplication  `json:"application"`
	Post        models.Post             `json:"post"`
	Project     *models.ActiveProject   `json:"project,omitempty"`
	Rejected    []models.PostApplication `json:"rejected,omitempty"`
}

// Apply registers the caller's bid on a post.
func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Datos inválidos", http.StatusBadRequest)
		return
	}

	app, err := h.Application.Apply(r.Context(), postID, workerID, service.ApplyRequest{
		Message:                 req.Message,
		ProposedCost:            req.ProposedCost,
		EstimatedCompletionTime: req.EstimatedCompletionTime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, app, http.StatusCreated)
}

// ListApplications shows a post's applicants to its owner, accepted
// first, then pending by rating.
func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	apps, err := h.Application.ListForPost(r.Context(), postID, contractorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if apps == nil {
		apps = []models.PostApplication{}
	}
	WriteSuccess(w, apps, http.StatusOK)
}

func (h *Handlers) MyApplications(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	apps, err := h.Application.ListForWorker(r.Context(), workerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if apps == nil {
		apps = []models.PostApplication{}
	}
	WriteSuccess(w, apps, http.StatusOK)
}

// Respond accepts or rejects an application on behalf of the post's
// owner.
func (h *Handlers) Respond(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	applicationID := mux.Vars(r)["id"]

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Datos inválidos", http.StatusBadRequest)
		return
	}

	result, err := h.Application.Respond(r.Context(), applicationID, contractorID, req.Action)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := RespondResponse{
		Application: result.Application,
		Post:        result.Post,
		Rejected:    result.Rejected,
	}
	if result.Project.ProjectID != "" {
		project := result.Project
		resp.Project = &project
	}

	WriteSuccess(w, resp, http.StatusOK)
}
