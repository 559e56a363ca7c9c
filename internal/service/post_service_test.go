package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"servicapp/internal/events"
	"servicapp/internal/models"
)

func newTestPostService(postRepo *MockPostRepository, imageRepo *MockImageRepository, userRepo *MockUserRepository, store *MockStorage, bus *events.Bus) PostService {
	return NewPostService(postRepo, imageRepo, userRepo, store, bus, slog.Default())
}

func TestCreatePostNotifiesMatchingWorkers(t *testing.T) {
	postRepo := new(MockPostRepository)
	imageRepo := new(MockImageRepository)
	userRepo := new(MockUserRepository)
	store := new(MockStorage)
	bus := events.NewBus()

	var published *events.PostCreated
	bus.Subscribe(events.TopicPostCreated, func(ctx context.Context, e events.Event) {
		ev := e.(events.PostCreated)
		published = &ev
	})

	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Post).PostID = "p1"
		}).
		Return(nil)

	// Three completed workers; only the two plumbers match, and the match
	// is case-insensitive.
	userRepo.On("GetCompletedWorkers", mock.Anything).Return([]models.User{
		{UserID: "w1", Professions: []string{"Plomería"}},
		{UserID: "w2", Professions: []string{"plomería", "electricidad"}},
		{UserID: "w3", Professions: []string{"carpintería"}},
	}, nil)

	svc := newTestPostService(postRepo, imageRepo, userRepo, store, bus)

	post, notified, err := svc.CreatePost(context.Background(), "c1", CreatePostRequest{
		Title:     "Fuga en la cocina",
		Specialty: "plomería",
	})

	assert.NoError(t, err)
	assert.Equal(t, "p1", post.PostID)
	assert.Equal(t, 2, notified)

	assert.NotNil(t, published)
	assert.Len(t, published.MatchedWorkers, 2)
	assert.Equal(t, "w1", published.MatchedWorkers[0].UserID)
	assert.Equal(t, "w2", published.MatchedWorkers[1].UserID)
}

func TestCreatePostMatchingFailureDoesNotUndoPost(t *testing.T) {
	postRepo := new(MockPostRepository)
	imageRepo := new(MockImageRepository)
	userRepo := new(MockUserRepository)
	store := new(MockStorage)
	bus := events.NewBus()

	postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetCompletedWorkers", mock.Anything).Return(nil, errors.New("db caída"))

	svc := newTestPostService(postRepo, imageRepo, userRepo, store, bus)

	post, notified, err := svc.CreatePost(context.Background(), "c1", CreatePostRequest{
		Title:     "Pintar fachada",
		Specialty: "pintura",
	})

	assert.NoError(t, err)
	assert.NotNil(t, post)
	assert.Equal(t, 0, notified)
}

func TestWorkerFeedFiltersBySpecialty(t *testing.T) {
	postRepo := new(MockPostRepository)
	imageRepo := new(MockImageRepository)
	userRepo := new(MockUserRepository)
	store := new(MockStorage)
	bus := events.NewBus()

	userRepo.On("GetUserByID", mock.Anything, "w1").Return(&models.User{
		UserID:      "w1",
		Professions: []string{"Plomería"},
	}, nil)
	postRepo.On("GetOpenPosts", mock.Anything).Return([]models.Post{
		{PostID: "p1", Specialty: "plomería"},
		{PostID: "p2", Specialty: "electricidad"},
		{PostID: "p3", Specialty: "PLOMERÍA"},
	}, nil)

	svc := newTestPostService(postRepo, imageRepo, userRepo, store, bus)

	posts, err := svc.WorkerFeed(context.Background(), "w1")

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].PostID)
	assert.Equal(t, "p3", posts[1].PostID)
}

func TestWorkerFeedWithoutProfessionsSeesEverything(t *testing.T) {
	// A worker who hasn't completed the professions step falls open: the
	// feed shows every open post rather than none.
	posts := []models.Post{
		{PostID: "p1", Specialty: "plomería"},
		{PostID: "p2", Specialty: "electricidad"},
	}

	filtered := filterPostsForWorker(posts, &models.User{UserID: "w1"})

	assert.Equal(t, posts, filtered)
}

func TestDeletePostRequiresOwnership(t *testing.T) {
	postRepo := new(MockPostRepository)
	imageRepo := new(MockImageRepository)
	userRepo := new(MockUserRepository)
	store := new(MockStorage)
	bus := events.NewBus()

	postRepo.On("GetByID", mock.Anything, "p1").Return(&models.Post{
		PostID:       "p1",
		ContractorID: "c1",
	}, nil)

	svc := newTestPostService(postRepo, imageRepo, userRepo, store, bus)

	err := svc.DeletePost(context.Background(), "p1", "otro")

	assert.ErrorIs(t, err, ErrForbidden)
	postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddImageCleansUpOrphanOnDBFailure(t *testing.T) {
	postRepo := new(MockPostRepository)
	imageRepo := new(MockImageRepository)
	userRepo := new(MockUserRepository)
	store := new(MockStorage)
	bus := events.NewBus()

	postRepo.On("GetByID", mock.Anything, "p1").Return(&models.Post{
		PostID:       "p1",
		ContractorID: "c1",
	}, nil)
	store.On("UploadDataURI", mock.Anything, "posts/p1", mock.Anything).
		Return("posts/p1/obj1.jpg", "https://cdn/obj1.jpg", nil)
	imageRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert falló"))
	store.On("DeleteImage", mock.Anything, "posts/p1/obj1.jpg").Return(nil)

	svc := newTestPostService(postRepo, imageRepo, userRepo, store, bus)

	_, err := svc.AddImage(context.Background(), "p1", "c1", "data:image/jpeg;base64,xxxx", 0)

	assert.Error(t, err)
	store.AssertCalled(t, "DeleteImage", mock.Anything, "posts/p1/obj1.jpg")
}
