package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lexmx/internal/domain"
	"lexmx/internal/repository"
	"lexmx/pkg/auth"
	"lexmx/pkg/validator"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("error al obtener el usuario", zap.String("userId", id), zap.Error(err))
		return nil, errors.New("error al obtener el usuario")
	}

	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	if dto.DisplayName != nil {
		if !validator.ValidateDisplayName(*dto.DisplayName) {
			return errors.New("nombre no válido")
		}
		formatted := validator.FormatName(*dto.DisplayName)
		dto.DisplayName = &formatted
	}

	if dto.Email != nil {
		if !validator.ValidateEmail(*dto.Email) {
			return errors.New("correo no válido")
		}
		existing, err := s.repo.GetByEmail(ctx, *dto.Email)
		if err == nil && existing != nil && existing.ID != id {
			return errors.New("ya existe un usuario con ese correo")
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("error al actualizar el usuario", zap.String("userId", id), zap.Error(err))
		return errors.New("error al actualizar el usuario")
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ErrNotFound
	}

	ok, err := auth.VerifyPassword(dto.OldPassword, user.PasswordHash)
	if err != nil || !ok {
		return errors.New("la contraseña actual no es correcta")
	}

	if !validator.ValidatePassword(dto.NewPassword) {
		return errors.New("la nueva contraseña no cumple los requisitos")
	}

	hashedPassword, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("error al cifrar la contraseña", zap.Error(err))
		return errors.New("error al actualizar la contraseña")
	}

	if err := s.repo.UpdatePassword(ctx, id, hashedPassword); err != nil {
		s.logger.Error("error al guardar la contraseña", zap.String("userId", id), zap.Error(err))
		return errors.New("error al actualizar la contraseña")
	}

	return nil
}
