package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"servicapp/internal/middleware"
	"servicapp/internal/models"
	"servicapp/internal/service"
)

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	Specialty   string   `json:"specialty" validate:"required,max=100"`
	Location    string   `json:"location"`
	BudgetMin   float64  `json:"budgetMin" validate:"gte=0"`
	BudgetMax   float64  `json:"budgetMax" validate:"gte=0"`
	Images      []string `json:"images"`
}

type CreatePostResponse struct {
	Post            *models.Post `json:"post"`
	NotifiedWorkers int          `json:"notifiedWorkers"`
}

type AddImageRequest struct {
	Image      string `json:"image" validate:"required"`
	OrderIndex int    `json:"orderIndex"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Datos inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, notified, err := h.Post.CreatePost(r.Context(), contractorID, service.CreatePostRequest{
		Title:       req.Title,
		Description: req.Description,
		Specialty:   req.Specialty,
		Location:    req.Location,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Images:      req.Images,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, CreatePostResponse{Post: post, NotifiedWorkers: notified}, http.StatusCreated)
}

// Feed lists the open posts matching the worker's professions.
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	posts, err := h.Post.WorkerFeed(r.Context(), workerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}
	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) MyPosts(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	posts, err := h.Post.ContractorPosts(r.Context(), contractorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}
	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.Post.GetPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := h.Post.DeletePost(r.Context(), postID, contractorID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	var req AddImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Formato de solicitud inválido", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Datos inválidos", http.StatusBadRequest)
		return
	}

	image, err := h.Post.AddImage(r.Context(), postID, contractorID, req.Image, req.OrderIndex)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, image, http.StatusCreated)
}
