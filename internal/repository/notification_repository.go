package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"

	"servicapp/internal/models"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.NotificationID == "" {
		n.NotificationID = xid.New().String()
	}
	n.CreatedAt = time.Now()

	query := `
		INSERT INTO notifications (notification_id, user_id, type, title, message, related_id, created_at)
		VALUES (:notification_id, :user_id, :type, :title, :message, :related_id, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, n)
	if err != nil {
		return fmt.Errorf("error al crear la notificación: %w", err)
	}

	return nil
}

// GetByUserID lists notifications, unread ones first, newest first.
func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY (read_at IS NULL) DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las notificaciones: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("error al contar las notificaciones sin leer: %w", err)
	}

	return count, nil
}

// MarkRead is a soft mutation: the row is kept, read_at is stamped.
func (r *notificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	query := `
		UPDATE notifications
		SET read_at = CURRENT_TIMESTAMP
		WHERE notification_id = $1 AND user_id = $2 AND read_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("error al marcar la notificación como leída: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar las filas actualizadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("notificación %s: %w", notificationID, ErrNotFound)
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `
		UPDATE notifications
		SET read_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND read_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("error al marcar las notificaciones como leídas: %w", err)
	}

	return nil
}
