package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lexmx/internal/domain"
)

const pgUniqueViolation = "23505"

type ReviewRepo struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepo {
	return &ReviewRepo{
		db: db,
	}
}

// Create inserta la reseña; la restricción UNIQUE (lawyer_id, author_id)
// rechaza una segunda reseña del mismo autor aunque dos peticiones lleguen
// a la vez.
func (r *ReviewRepo) Create(ctx context.Context, authorID, authorName string, dto domain.CreateReviewDTO) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO reviews (id, lawyer_id, author_id, author_name, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`

	_, err := r.db.Exec(ctx, query,
		id,
		dto.LawyerID,
		authorID,
		authorName,
		dto.Rating,
		dto.Comment,
		now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", domain.ErrAlreadyReviewed
		}
		return "", fmt.Errorf("error al crear la reseña: %w", err)
	}

	return id, nil
}

func (r *ReviewRepo) ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, lawyer_id, author_id, author_name, rating, comment, created_at, updated_at
		FROM reviews
		WHERE lawyer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, lawyerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error al consultar las reseñas: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.LawyerID,
			&review.AuthorID,
			&review.AuthorName,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error al escanear la reseña: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al procesar los resultados: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepo) GetByLawyerAndAuthor(ctx context.Context, lawyerID, authorID string) (*domain.Review, error) {
	query := `
		SELECT id, lawyer_id, author_id, author_name, rating, comment, created_at, updated_at
		FROM reviews
		WHERE lawyer_id = $1 AND author_id = $2
	`

	var review domain.Review
	err := r.db.QueryRow(ctx, query, lawyerID, authorID).Scan(
		&review.ID,
		&review.LawyerID,
		&review.AuthorID,
		&review.AuthorName,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error al obtener la reseña: %w", err)
	}

	return &review, nil
}

// ListRatingsByLawyer devuelve solo las calificaciones, para el recálculo
// del agregado.
func (r *ReviewRepo) ListRatingsByLawyer(ctx context.Context, lawyerID string) ([]int, error) {
	query := `
		SELECT rating
		FROM reviews
		WHERE lawyer_id = $1
	`

	rows, err := r.db.Query(ctx, query, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("error al consultar las calificaciones: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("error al escanear la calificación: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al procesar los resultados: %w", err)
	}

	return ratings, nil
}
