package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"servicapp/internal/events"
	"servicapp/internal/models"
	"servicapp/internal/repository"
	"servicapp/internal/storage"
)

type CreatePostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Specialty   string   `json:"specialty"`
	Location    string   `json:"location"`
	BudgetMin   float64  `json:"budgetMin"`
	BudgetMax   float64  `json:"budgetMax"`
	Images      []string `json:"images"`
}

type PostService interface {
	// CreatePost publishes a contractor's listing and returns it along
	// with the number of matching workers that were notified.
	CreatePost(ctx context.Context, contractorID string, req CreatePostRequest) (*models.Post, int, error)
	WorkerFeed(ctx context.Context, workerID string) ([]models.Post, error)
	ContractorPosts(ctx context.Context, contractorID string) ([]models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	DeletePost(ctx context.Context, postID, contractorID string) error
	AddImage(ctx context.Context, postID, contractorID, dataURI string, orderIndex int) (*models.PostImage, error)
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	userRepo  repository.UserRepository
	storage   storage.Storage
	bus       *events.Bus
	logger    *slog.Logger
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, userRepo repository.UserRepository, store storage.Storage, bus *events.Bus, logger *slog.Logger) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		userRepo:  userRepo,
		storage:   store,
		bus:       bus,
		logger:    logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, contractorID string, req CreatePostRequest) (*models.Post, int, error) {
	post := &models.Post{
		ContractorID: contractorID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Specialty:    strings.TrimSpace(req.Specialty),
		Location:     strings.TrimSpace(req.Location),
		BudgetMin:    req.BudgetMin,
		BudgetMax:    req.BudgetMax,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, 0, err
	}

	for i, dataURI := range req.Images {
		if _, err := s.storeImage(ctx, post.PostID, dataURI, i); err != nil {
			s.logger.Warn("no se pudo guardar una imagen de la publicación",
				"postId", post.PostID, "error", err)
		}
	}

	// Matching is best effort: a failure here never undoes the post.
	matched := s.matchingWorkers(ctx, post.Specialty)
	s.bus.Publish(ctx, events.PostCreated{Post: *post, MatchedWorkers: matched})

	return post, len(matched), nil
}

// matchingWorkers returns every completed worker profile whose declared
// professions include the post's specialty, compared case-insensitively.
func (s *postService) matchingWorkers(ctx context.Context, specialty string) []models.User {
	workers, err := s.userRepo.GetCompletedWorkers(ctx)
	if err != nil {
		s.logger.Warn("no se pudieron buscar trabajadores para notificar", "error", err)
		return nil
	}

	var matched []models.User
	for _, w := range workers {
		if w.HasProfession(specialty) {
			matched = append(matched, w)
		}
	}
	return matched
}

// WorkerFeed lists the open posts visible to a worker: those whose
// specialty matches one of the worker's professions. A worker with no
// declared professions sees every open post.
func (s *postService) WorkerFeed(ctx context.Context, workerID string) ([]models.Post, error) {
	worker, err := s.userRepo.GetUserByID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetOpenPosts(ctx)
	if err != nil {
		return nil, err
	}

	return filterPostsForWorker(posts, worker), nil
}

func filterPostsForWorker(posts []models.Post, worker *models.User) []models.Post {
	if len(worker.Professions) == 0 {
		return posts
	}

	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if worker.HasProfession(p.Specialty) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (s *postService) ContractorPosts(ctx context.Context, contractorID string) ([]models.Post, error) {
	return s.postRepo.GetByContractorID(ctx, contractorID)
}

func (s *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		s.logger.Warn("no se pudieron cargar las imágenes de la publicación",
			"postId", postID, "error", err)
	}
	post.Images = images

	return post, nil
}

// DeletePost removes a post along with its images. The image cascade is
// driven here, not by the database.
func (s *postService) DeletePost(ctx context.Context, postID, contractorID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.ContractorID != contractorID {
		return ErrForbidden
	}

	if err := s.imageRepo.DeleteByPostID(ctx, postID); err != nil {
		s.logger.Warn("no se pudieron eliminar las imágenes de la publicación",
			"postId", postID, "error", err)
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.PostsUpdated{ContractorID: contractorID, PostID: postID})
	return nil
}

func (s *postService) AddImage(ctx context.Context, postID, contractorID, dataURI string, orderIndex int) (*models.PostImage, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.ContractorID != contractorID {
		return nil, ErrForbidden
	}

	return s.storeImage(ctx, postID, dataURI, orderIndex)
}

func (s *postService) storeImage(ctx context.Context, postID, dataURI string, orderIndex int) (*models.PostImage, error) {
	objectName, imageURL, err := s.storage.UploadDataURI(ctx, fmt.Sprintf("posts/%s", postID), dataURI)
	if err != nil {
		return nil, fmt.Errorf("error al subir la imagen: %w", err)
	}

	image := &models.PostImage{
		PostID:     postID,
		ImageURL:   imageURL,
		OrderIndex: orderIndex,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			s.logger.Warn("no se pudo limpiar la imagen huérfana", "object", objectName, "error", delErr)
		}
		return nil, fmt.Errorf("error al registrar la imagen: %w", err)
	}

	return image, nil
}
