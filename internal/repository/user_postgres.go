package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lexmx/internal/domain"
)

const userColumns = `id, email, display_name, password_hash, role, photo_url,
	specialty, bio, price_per_hour, location, address, city, country,
	availability, rating, review_count, created_at, updated_at`

type UserRepo struct {
	db DB
}

func NewUserRepository(db DB) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) Create(ctx context.Context, user domain.User) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	availability := user.Availability
	if availability == nil {
		availability = []domain.AvailabilitySlot{}
	}

	query := `
		INSERT INTO users (id, email, display_name, password_hash, role, photo_url,
		                   specialty, bio, price_per_hour, location, address, city, country,
		                   availability, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 0, 0, $15, $15)
	`

	_, err := r.db.Exec(ctx, query,
		id,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.Role,
		user.PhotoURL,
		user.Specialty,
		user.Bio,
		user.PricePerHour,
		user.Location,
		user.Address,
		user.City,
		user.Country,
		availability,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("error al crear el usuario: %w", err)
	}

	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.Role,
		&user.PhotoURL,
		&user.Specialty,
		&user.Bio,
		&user.PricePerHour,
		&user.Location,
		&user.Address,
		&user.City,
		&user.Country,
		&user.Availability,
		&user.Rating,
		&user.ReviewCount,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error al obtener el usuario: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	var updateFields []string
	var args []interface{}

	argCount := 1

	if dto.DisplayName != nil {
		updateFields = append(updateFields, fmt.Sprintf("display_name = $%d", argCount))
		args = append(args, *dto.DisplayName)
		argCount++
	}

	if dto.Email != nil {
		updateFields = append(updateFields, fmt.Sprintf("email = $%d", argCount))
		args = append(args, *dto.Email)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error al actualizar el usuario: %w", err)
	}

	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error al actualizar la contraseña: %w", err)
	}

	return nil
}

func (r *UserRepo) UpdateLawyerProfile(ctx context.Context, id string, dto domain.UpdateLawyerProfileDTO) error {
	var updateFields []string
	var args []interface{}

	argCount := 1

	appendField := func(column string, value interface{}) {
		updateFields = append(updateFields, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if dto.DisplayName != nil {
		appendField("display_name", *dto.DisplayName)
	}
	if dto.Specialty != nil {
		appendField("specialty", *dto.Specialty)
	}
	if dto.Bio != nil {
		appendField("bio", *dto.Bio)
	}
	if dto.PricePerHour != nil {
		appendField("price_per_hour", *dto.PricePerHour)
	}
	if dto.Location != nil {
		appendField("location", *dto.Location)
	}
	if dto.Address != nil {
		appendField("address", *dto.Address)
	}
	if dto.City != nil {
		appendField("city", *dto.City)
	}
	if dto.Country != nil {
		appendField("country", *dto.Country)
	}
	if dto.Availability != nil {
		appendField("availability", *dto.Availability)
	}

	if len(updateFields) == 0 {
		return nil
	}

	appendField("updated_at", time.Now())

	args = append(args, id, domain.UserRoleLawyer)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d AND role = $%d`,
		strings.Join(updateFields, ", "), argCount, argCount+1)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error al actualizar el perfil del abogado: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *UserRepo) UpdatePhotoURL(ctx context.Context, id string, photoURL string) error {
	query := `
		UPDATE users
		SET photo_url = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error al actualizar la foto de perfil: %w", err)
	}

	return nil
}

// UpdateRating escribe el agregado desnormalizado del abogado; solo el
// agregador de reseñas llama a este método.
func (r *UserRepo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	query := `
		UPDATE users
		SET rating = $1, review_count = $2, updated_at = $3
		WHERE id = $4
	`

	_, err := r.db.Exec(ctx, query, rating, reviewCount, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error al actualizar la calificación: %w", err)
	}

	return nil
}

func (r *UserRepo) SearchLawyers(ctx context.Context, filter domain.LawyerFilter) ([]domain.User, error) {
	conditions := []string{"role = $1"}
	args := []interface{}{domain.UserRoleLawyer}
	argCount := 2

	if filter.Specialty != "" {
		conditions = append(conditions, fmt.Sprintf("specialty = $%d", argCount))
		args = append(args, filter.Specialty)
		argCount++
	}

	if filter.MinRating > 0 {
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", argCount))
		args = append(args, filter.MinRating)
		argCount++
	}

	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(display_name ILIKE $%d OR specialty ILIKE $%d OR bio ILIKE $%d OR location ILIKE $%d)",
			argCount, argCount, argCount, argCount))
		args = append(args, "%"+term+"%")
		argCount++
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY rating DESC, review_count DESC
		LIMIT $%d
	`, userColumns, strings.Join(conditions, " AND "), argCount)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al buscar abogados: %w", err)
	}
	defer rows.Close()

	lawyers := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.DisplayName,
			&user.PasswordHash,
			&user.Role,
			&user.PhotoURL,
			&user.Specialty,
			&user.Bio,
			&user.PricePerHour,
			&user.Location,
			&user.Address,
			&user.City,
			&user.Country,
			&user.Availability,
			&user.Rating,
			&user.ReviewCount,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error al escanear el abogado: %w", err)
		}
		lawyers = append(lawyers, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al procesar los resultados: %w", err)
	}

	return lawyers, nil
}

// GetDisplayNames resuelve en una sola consulta los nombres de un conjunto
// de usuarios, deduplicando los ids.
func (r *UserRepo) GetDisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string)
	if len(ids) == 0 {
		return names, nil
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	query := `
		SELECT id, display_name
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, unique)
	if err != nil {
		return nil, fmt.Errorf("error al consultar los nombres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error al escanear el nombre: %w", err)
		}
		names[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al procesar los resultados: %w", err)
	}

	return names, nil
}
