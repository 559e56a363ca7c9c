package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"servicapp/internal/models"
)

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.PostImage) error {
	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO post_images (image_id, post_id, image_url, order_index, created_at)
		VALUES (:image_id, :post_id, :image_url, :order_index, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("error al guardar la imagen: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByPostID(ctx context.Context, postID string) ([]models.PostImage, error) {
	query := `SELECT * FROM post_images WHERE post_id = $1 ORDER BY order_index, created_at`

	var images []models.PostImage
	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las imágenes: %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, imageID string) error {
	query := `DELETE FROM post_images WHERE image_id = $1`

	result, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("error al eliminar la imagen: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar las filas eliminadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("imagen %s: %w", imageID, ErrNotFound)
	}

	return nil
}

func (r *imageRepository) DeleteByPostID(ctx context.Context, postID string) error {
	query := `DELETE FROM post_images WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("error al eliminar las imágenes de la publicación: %w", err)
	}

	return nil
}
