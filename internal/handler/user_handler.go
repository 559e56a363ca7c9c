package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"servicapp/internal/middleware"
	"servicapp/internal/models"
	"servicapp/internal/service"
)

type WorkerProfileRequest struct {
	Name        string   `json:"name" validate:"required"`
	Phone       string   `json:"phone" validate:"required"`
	Professions []string `json:"professions" validate:"required,min=1"`
	Specialties []string `json:"specialties"`
}

type ContractorProfileRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	CompanyName string `json:"companyName"`
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	user, err := h.User.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

// UpdateProfile applies the profile-completion wizard for the caller's
// role.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	userType, _ := middleware.UserType(r.Context())

	switch userType {
	case models.UserTypeWorker:
		var req WorkerProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
			return
		}
		if err := h.Validate.Struct(req); err != nil {
			WriteError(w, "Datos inválidos: "+err.Error(), http.StatusBadRequest)
			return
		}

		user, err := h.User.CompleteWorkerProfile(r.Context(), userID, service.WorkerProfileRequest{
			Name:        req.Name,
			Phone:       req.Phone,
			Professions: req.Professions,
			Specialties: req.Specialties,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteSuccess(w, user, http.StatusOK)

	case models.UserTypeContractor:
		var req ContractorProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
			return
		}
		if err := h.Validate.Struct(req); err != nil {
			WriteError(w, "Datos inválidos: "+err.Error(), http.StatusBadRequest)
			return
		}

		user, err := h.User.CompleteContractorProfile(r.Context(), userID, service.ContractorProfileRequest{
			Name:        req.Name,
			Phone:       req.Phone,
			CompanyName: req.CompanyName,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteSuccess(w, user, http.StatusOK)

	default:
		WriteError(w, "Tipo de usuario desconocido", http.StatusForbidden)
	}
}

// GetUser shows a public profile. A contractor viewing a worker leaves
// a profile-viewed notification behind.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]
	viewerID, _ := middleware.UserID(r.Context())

	user, err := h.User.ViewProfile(r.Context(), targetID, viewerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

// GetWorkerReviews lists the review history behind a worker's rating.
func (h *Handlers) GetWorkerReviews(w http.ResponseWriter, r *http.Request) {
	workerID := mux.Vars(r)["id"]

	reviews, err := h.Review.WorkerReviews(r.Context(), workerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if reviews == nil {
		reviews = []models.WorkerReview{}
	}
	WriteSuccess(w, reviews, http.StatusOK)
}
