package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"lexmx/internal/domain"
	"lexmx/internal/repository"
	"lexmx/pkg/sanitize"
)

const (
	maxNotesLength = 1000

	// Tope de filas que se traen para filtrar en memoria las próximas citas.
	listFetchLimit = 500
)

type BookingServiceImpl struct {
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	logger          *zap.Logger

	// now es inyectable para poder fijar "hoy" en los tests.
	now func() time.Time
}

func NewBookingService(appointmentRepo repository.AppointmentRepository, userRepo repository.UserRepository, logger *zap.Logger) *BookingServiceImpl {
	return &BookingServiceImpl{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// Book valida la solicitud contra la disponibilidad publicada del abogado y
// delega en el repositorio, que reclama el horario y crea la cita en una
// única transacción. Si el horario ya está ocupado devuelve
// domain.ErrSlotTaken sin reintentar.
func (s *BookingServiceImpl) Book(ctx context.Context, clientID string, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	if clientID == dto.LawyerID {
		return nil, errors.New("no puedes reservar una cita contigo mismo")
	}

	day, err := time.Parse(domain.DateLayout, dto.Date)
	if err != nil {
		return nil, errors.New("fecha no válida, se espera AAAA-MM-DD")
	}

	// Comparación sobre las cadenas naif: time.Parse devuelve medianoche UTC
	// y mezclarla con la zona del proceso descartaría reservas de hoy mismo.
	if dto.Date < s.today().Format(domain.DateLayout) {
		return nil, errors.New("la fecha de la cita ya pasó")
	}

	if _, err := time.Parse(domain.TimeLayout, dto.Time); err != nil {
		return nil, errors.New("hora no válida, se espera HH:MM")
	}

	lawyer, err := s.userRepo.GetByID(ctx, dto.LawyerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if !lawyer.IsLawyer() {
		return nil, domain.ErrNotFound
	}

	if !containsTime(domain.TimeOptions(lawyer.Availability, day), dto.Time) {
		return nil, errors.New("el abogado no atiende en ese horario")
	}

	dto.Notes = sanitize.Text(dto.Notes, maxNotesLength)

	appointment, err := s.appointmentRepo.Create(ctx, clientID, dto)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.ErrSlotTaken
		}
		s.logger.Error("error al crear la cita",
			zap.String("clientId", clientID),
			zap.String("lawyerId", dto.LawyerID),
			zap.Error(err),
		)
		return nil, errors.New("error al reservar la cita")
	}

	s.logger.Info("cita reservada",
		zap.String("appointmentId", appointment.ID),
		zap.String("lawyerId", dto.LawyerID),
		zap.String("date", dto.Date),
		zap.String("time", dto.Time),
	)

	return appointment, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("error al obtener la cita", zap.String("appointmentId", id), zap.Error(err))
		return nil, errors.New("error al obtener la cita")
	}

	return appointment, nil
}

// Transition aplica el grafo de estados con reglas por rol: el abogado
// confirma y completa sus citas, y tanto el cliente como el abogado pueden
// cancelar las suyas. Cancelar libera el horario en la misma transacción.
func (s *BookingServiceImpl) Transition(ctx context.Context, actorID string, role domain.UserRole, id string, status domain.AppointmentStatus) error {
	if !status.IsValid() {
		return errors.New("estado no válido")
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return errors.New("error al obtener la cita")
	}

	if appointment.ClientID != actorID && appointment.LawyerID != actorID {
		return domain.ErrNotFound
	}

	if !appointment.Status.CanTransitionTo(status) {
		return domain.ErrInvalidTransition
	}

	switch status {
	case domain.AppointmentStatusCancelled:
		// Cualquiera de las dos partes puede cancelar.
	case domain.AppointmentStatusConfirmed, domain.AppointmentStatusCompleted:
		if appointment.LawyerID != actorID || role != domain.UserRoleLawyer {
			return errors.New("solo el abogado puede confirmar o completar la cita")
		}
	default:
		return domain.ErrInvalidTransition
	}

	if status == domain.AppointmentStatusCancelled {
		err = s.appointmentRepo.Cancel(ctx, id, appointment.Status)
	} else {
		err = s.appointmentRepo.UpdateStatus(ctx, id, appointment.Status, status)
	}

	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return domain.ErrInvalidTransition
		}
		s.logger.Error("error al cambiar el estado de la cita",
			zap.String("appointmentId", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return errors.New("error al actualizar la cita")
	}

	s.logger.Info("estado de cita actualizado",
		zap.String("appointmentId", id),
		zap.String("from", string(appointment.Status)),
		zap.String("to", string(status)),
	)

	return nil
}

// ListUpcoming devuelve las citas activas (ni canceladas ni completadas) de
// hoy en adelante, ordenadas de la más próxima a la más lejana.
func (s *BookingServiceImpl) ListUpcoming(ctx context.Context, uid string, role domain.UserRole, limit int) ([]domain.Appointment, error) {
	appointments, err := s.listByRole(ctx, uid, role, listFetchLimit)
	if err != nil {
		return nil, err
	}

	today := s.today().Format(domain.DateLayout)

	upcoming := make([]domain.Appointment, 0)
	for _, a := range appointments {
		if a.Status.IsTerminal() {
			continue
		}
		if a.Date < today {
			continue
		}
		upcoming = append(upcoming, a)
	}

	// Las cadenas de fecha y hora son lexicográficamente cronológicas.
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	return s.resolveCounterpartNames(ctx, uid, upcoming)
}

// ListAll devuelve el historial completo, de la más reciente a la más
// antigua.
func (s *BookingServiceImpl) ListAll(ctx context.Context, uid string, role domain.UserRole, limit int) ([]domain.Appointment, error) {
	if limit <= 0 || limit > listFetchLimit {
		limit = listFetchLimit
	}

	appointments, err := s.listByRole(ctx, uid, role, limit)
	if err != nil {
		return nil, err
	}

	return s.resolveCounterpartNames(ctx, uid, appointments)
}

func (s *BookingServiceImpl) listByRole(ctx context.Context, uid string, role domain.UserRole, limit int) ([]domain.Appointment, error) {
	asClient := role != domain.UserRoleLawyer

	appointments, err := s.appointmentRepo.ListByUser(ctx, uid, asClient, limit)
	if err != nil {
		s.logger.Error("error al listar las citas", zap.String("userId", uid), zap.Error(err))
		return nil, errors.New("error al listar las citas")
	}

	return appointments, nil
}

// resolveCounterpartNames resuelve en una sola consulta el nombre de la otra
// parte de cada cita.
func (s *BookingServiceImpl) resolveCounterpartNames(ctx context.Context, uid string, appointments []domain.Appointment) ([]domain.Appointment, error) {
	if len(appointments) == 0 {
		return appointments, nil
	}

	ids := make([]string, 0, len(appointments))
	for _, a := range appointments {
		ids = append(ids, counterpartID(uid, a))
	}

	names, err := s.userRepo.GetDisplayNames(ctx, ids)
	if err != nil {
		s.logger.Warn("error al resolver los nombres", zap.Error(err))
		return appointments, nil
	}

	for i := range appointments {
		appointments[i].CounterpartName = names[counterpartID(uid, appointments[i])]
	}

	return appointments, nil
}

func counterpartID(uid string, a domain.Appointment) string {
	if a.ClientID == uid {
		return a.LawyerID
	}
	return a.ClientID
}

func (s *BookingServiceImpl) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func containsTime(options []string, t string) bool {
	for _, option := range options {
		if option == t {
			return true
		}
	}
	return false
}
