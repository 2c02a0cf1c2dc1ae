package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"lexmx/internal/domain"
	"lexmx/internal/repository"
	"lexmx/internal/storage"
	"lexmx/pkg/sanitize"
)

const (
	maxBioLength      = 2000
	maxLocationLength = 200
)

type LawyerServiceImpl struct {
	userRepo    repository.UserRepository
	slotRepo    repository.SlotLedgerRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewLawyerService(userRepo repository.UserRepository, slotRepo repository.SlotLedgerRepository, fileStorage storage.FileStorage, logger *zap.Logger) *LawyerServiceImpl {
	return &LawyerServiceImpl{
		userRepo:    userRepo,
		slotRepo:    slotRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Search degrada a lista vacía ante cualquier fallo: el buscador es la
// portada del sitio y preferimos mostrarlo vacío antes que romperlo.
func (s *LawyerServiceImpl) Search(ctx context.Context, filter domain.LawyerFilter) []domain.User {
	if filter.Specialty != "" && !domain.IsValidSpecialty(filter.Specialty) {
		return []domain.User{}
	}

	lawyers, err := s.userRepo.SearchLawyers(ctx, filter)
	if err != nil {
		s.logger.Error("error al buscar abogados", zap.Error(err))
		return []domain.User{}
	}

	for i := range lawyers {
		lawyers[i].PasswordHash = ""
		lawyers[i].Email = ""
	}

	return lawyers
}

func (s *LawyerServiceImpl) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("error al obtener el perfil", zap.String("lawyerId", id), zap.Error(err))
		return nil, errors.New("error al obtener el perfil")
	}

	if !user.IsLawyer() {
		return nil, domain.ErrNotFound
	}

	user.PasswordHash = ""
	user.Email = ""

	return user, nil
}

func (s *LawyerServiceImpl) UpdateProfile(ctx context.Context, id string, dto domain.UpdateLawyerProfileDTO) error {
	if dto.Specialty != nil && !domain.IsValidSpecialty(*dto.Specialty) {
		return errors.New("especialidad no reconocida")
	}

	if dto.Bio != nil {
		clean := sanitize.Text(*dto.Bio, maxBioLength)
		dto.Bio = &clean
	}
	if dto.Location != nil {
		clean := sanitize.Text(*dto.Location, maxLocationLength)
		dto.Location = &clean
	}
	if dto.Address != nil {
		clean := sanitize.Text(*dto.Address, maxLocationLength)
		dto.Address = &clean
	}
	if dto.City != nil {
		clean := sanitize.Text(*dto.City, maxLocationLength)
		dto.City = &clean
	}
	if dto.Country != nil {
		clean := sanitize.Text(*dto.Country, maxLocationLength)
		dto.Country = &clean
	}

	if dto.Availability != nil {
		if err := domain.ValidateSlots(*dto.Availability); err != nil {
			return err
		}
	}

	if err := s.userRepo.UpdateLawyerProfile(ctx, id, dto); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		s.logger.Error("error al actualizar el perfil", zap.String("lawyerId", id), zap.Error(err))
		return errors.New("error al actualizar el perfil")
	}

	return nil
}

func (s *LawyerServiceImpl) UploadProfilePhoto(ctx context.Context, id string, photo []byte, filename string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", domain.ErrNotFound
	}

	if s.fileStorage == nil {
		return "", errors.New("el almacenamiento de archivos no está configurado")
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("error al subir la foto", zap.String("lawyerId", id), zap.Error(err))
		return "", errors.New("error al subir la foto de perfil")
	}

	if user.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, user.PhotoURL); err != nil {
			s.logger.Warn("error al eliminar la foto anterior", zap.Error(err))
		}
	}

	if err := s.userRepo.UpdatePhotoURL(ctx, id, url); err != nil {
		s.logger.Error("error al guardar la foto", zap.String("lawyerId", id), zap.Error(err))
		return "", errors.New("error al guardar la foto de perfil")
	}

	return url, nil
}

func (s *LawyerServiceImpl) DeleteProfilePhoto(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.ErrNotFound
	}

	if user.PhotoURL == "" {
		return nil
	}

	if s.fileStorage != nil {
		if err := s.fileStorage.DeleteFile(ctx, user.PhotoURL); err != nil {
			s.logger.Warn("error al eliminar la foto del almacenamiento", zap.Error(err))
		}
	}

	if err := s.userRepo.UpdatePhotoURL(ctx, id, ""); err != nil {
		s.logger.Error("error al desvincular la foto", zap.String("lawyerId", id), zap.Error(err))
		return errors.New("error al eliminar la foto de perfil")
	}

	return nil
}

// BookableTimes cruza la disponibilidad semanal con el libro de reservas:
// horas generadas por las franjas del día menos las ya reservadas.
func (s *LawyerServiceImpl) BookableTimes(ctx context.Context, lawyerID, date string) ([]string, error) {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, errors.New("fecha no válida, se espera AAAA-MM-DD")
	}

	user, err := s.userRepo.GetByID(ctx, lawyerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if !user.IsLawyer() {
		return nil, domain.ErrNotFound
	}

	options := domain.TimeOptions(user.Availability, day)
	if len(options) == 0 {
		return []string{}, nil
	}

	bookedTimes, err := s.slotRepo.ListBookedTimes(ctx, lawyerID, date)
	if err != nil {
		s.logger.Error("error al consultar los horarios ocupados", zap.String("lawyerId", lawyerID), zap.Error(err))
		return nil, errors.New("error al consultar la disponibilidad")
	}

	booked := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = true
	}

	free := make([]string, 0, len(options))
	for _, option := range options {
		if !booked[option] {
			free = append(free, option)
		}
	}

	return free, nil
}
