package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"servicapp/internal/events"
	"servicapp/internal/models"
	"servicapp/internal/repository"
)

type NotificationService interface {
	List(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) List(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.notifRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	return s.notifRepo.MarkRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

// Dispatcher turns workflow events into notification rows, one insert
// per recipient. Delivery is write-and-forget: a failed insert is
// logged and dropped, never retried and never surfaced to the user who
// triggered it. Inserts happen on a background worker so publishers
// don't wait on the notifications table.
type Dispatcher struct {
	notifRepo repository.NotificationRepository
	logger    *slog.Logger
	queue     chan events.Event
	wg        sync.WaitGroup
	started   bool
	mu        sync.Mutex
}

func NewDispatcher(notifRepo repository.NotificationRepository, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		notifRepo: notifRepo,
		logger:    logger,
		queue:     make(chan events.Event, 256),
	}
}

// Register subscribes the dispatcher to every workflow topic that has a
// notification recipient.
func (d *Dispatcher) Register(bus *events.Bus) {
	enqueue := func(ctx context.Context, e events.Event) {
		select {
		case d.queue <- e:
		default:
			d.logger.Warn("cola de notificaciones llena, evento descartado", "topic", e.Topic())
		}
	}

	bus.Subscribe(events.TopicPostCreated, enqueue)
	bus.Subscribe(events.TopicApplicationReceived, enqueue)
	bus.Subscribe(events.TopicApplicationResolved, enqueue)
	bus.Subscribe(events.TopicReviewSubmitted, enqueue)
	bus.Subscribe(events.TopicProfileViewed, enqueue)
}

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for e := range d.queue {
			d.handle(e)
		}
	}()
}

// Stop drains the queue and waits for the worker to exit. Publishing
// after Stop is a programming error.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return
	}
	d.started = false

	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) handle(e events.Event) {
	ctx := context.Background()

	switch ev := e.(type) {
	case events.PostCreated:
		for _, worker := range ev.MatchedWorkers {
			d.create(ctx, &models.Notification{
				UserID:    worker.UserID,
				Type:      models.NotificationNewJob,
				Title:     "Nuevo trabajo disponible",
				Message:   fmt.Sprintf("Se publicó un nuevo trabajo de %s: «%s»", ev.Post.Specialty, ev.Post.Title),
				RelatedID: ev.Post.PostID,
			})
		}

	case events.ApplicationReceived:
		d.create(ctx, &models.Notification{
			UserID:    ev.Post.ContractorID,
			Type:      models.NotificationApplicationReceived,
			Title:     "Nueva postulación",
			Message:   fmt.Sprintf("%s se postuló a tu publicación «%s»", ev.WorkerName, ev.Post.Title),
			RelatedID: ev.Application.ApplicationID,
		})

	case events.ApplicationResolved:
		n := &models.Notification{
			UserID:    ev.Application.WorkerID,
			RelatedID: ev.Application.ApplicationID,
		}
		if ev.Accepted {
			n.Type = models.NotificationApplicationAccepted
			n.Title = "¡Postulación aceptada!"
			n.Message = fmt.Sprintf("Tu postulación para «%s» fue aceptada", ev.Post.Title)
		} else {
			n.Type = models.NotificationApplicationRejected
			n.Title = "Postulación rechazada"
			n.Message = fmt.Sprintf("Tu postulación para «%s» fue rechazada", ev.Post.Title)
		}
		d.create(ctx, n)

	case events.ReviewSubmitted:
		d.create(ctx, &models.Notification{
			UserID:    ev.Review.WorkerID,
			Type:      models.NotificationReviewReceived,
			Title:     "Nueva calificación",
			Message:   fmt.Sprintf("Recibiste una calificación de %d estrellas", ev.Review.Rating),
			RelatedID: ev.Review.ReviewID,
		})

	case events.ProfileViewed:
		d.create(ctx, &models.Notification{
			UserID:    ev.WorkerID,
			Type:      models.NotificationProfileViewed,
			Title:     "Visitaron tu perfil",
			Message:   fmt.Sprintf("%s vio tu perfil", ev.ViewerName),
			RelatedID: ev.ViewerID,
		})
	}
}

func (d *Dispatcher) create(ctx context.Context, n *models.Notification) {
	if err := d.notifRepo.Create(ctx, n); err != nil {
		d.logger.Warn("no se pudo crear la notificación",
			"type", n.Type, "userId", n.UserID, "error", err)
	}
}
