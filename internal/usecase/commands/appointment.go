package commands

import (
	"context"
	"encoding/json"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/infra"
	"petcare-hub/internal/pkg/clock"
	"petcare-hub/internal/pkg/errs"
	"petcare-hub/internal/pkg/patch"
	"petcare-hub/internal/usecase/queries"
	"petcare-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateAppointmentParams carries one booking request. Vet and grooming
// supply StartMinutes and get the service's default duration; daycare
// supplies both window ends explicitly.
type CreateAppointmentParams struct {
	Service        appointment.ServiceType
	Date           string
	StartMinutes   *int
	DropOffMinutes *int
	PickUpMinutes  *int
	OwnerName      string
	OwnerPhone     string
	OwnerEmail     string
	EmergencyPhone string
	PetType        string
	PetSize        string
	PetName        string
	PackageID      string
	Reason         string
	Notes          string
}

// UpdateAppointmentParams is a PUT-style partial update: nil leaves the
// stored value untouched. Any window/date change re-runs the conflict check.
type UpdateAppointmentParams struct {
	Date           *string
	StartMinutes   *int
	DropOffMinutes *int
	PickUpMinutes  *int
	OwnerName      *string
	OwnerPhone     *string
	OwnerEmail     *string
	EmergencyPhone *string
	PetType        *string
	PetSize        *string
	PetName        *string
	PackageID      *string
	Reason         *string
	Notes          *string
	Status         *string
	PaymentStatus  *string
}

type RescheduleParams struct {
	Date           string
	StartMinutes   *int
	DropOffMinutes *int
	PickUpMinutes  *int
}

type AppointmentCommands interface {
	Create(ctx context.Context, params CreateAppointmentParams) (*queries.AppointmentView, error)
	Update(ctx context.Context, service appointment.ServiceType, id uuid.UUID, params UpdateAppointmentParams) (*queries.AppointmentView, error)
	Reschedule(ctx context.Context, service appointment.ServiceType, id uuid.UUID, params RescheduleParams) (*queries.AppointmentView, error)
	UpdateStatus(ctx context.Context, service appointment.ServiceType, id uuid.UUID, status string) (*queries.AppointmentView, error)
	Delete(ctx context.Context, service appointment.ServiceType, id uuid.UUID) error
}

type appointmentCommandsImpl struct {
	repo             AppointmentRepository
	notificationRepo NotificationRepository
	appointmentQs    queries.AppointmentQueries
	uow              shared.UnitOfWork
	clock            clock.Clock
}

func NewAppointmentCommands(
	repo AppointmentRepository,
	notificationRepo NotificationRepository,
	appointmentQs queries.AppointmentQueries,
	uow shared.UnitOfWork,
	clk clock.Clock,
) AppointmentCommands {
	return &appointmentCommandsImpl{
		repo:             repo,
		notificationRepo: notificationRepo,
		appointmentQs:    appointmentQs,
		uow:              uow,
		clock:            clk,
	}
}

func (c *appointmentCommandsImpl) Create(ctx context.Context, params CreateAppointmentParams) (*queries.AppointmentView, error) {
	if missing := missingCreateFields(params); len(missing) > 0 {
		return nil, validationErr(missing...)
	}

	date, err := appointment.NewDateISO(params.Date)
	if err != nil {
		return nil, validationErr("date")
	}

	window, err := resolveWindow(params.Service, params.StartMinutes, params.DropOffMinutes, params.PickUpMinutes)
	if err != nil {
		return nil, err
	}

	owner, err := appointment.NewOwnerContact(params.OwnerName, params.OwnerPhone, params.OwnerEmail, params.EmergencyPhone)
	if err != nil {
		return nil, validationErr("ownerName", "ownerPhone", "ownerEmail")
	}

	pet, err := appointment.NewPetDescriptor(params.PetType, params.PetSize, params.PetName)
	if err != nil {
		return nil, validationErr("petType")
	}

	appt, err := appointment.NewAppointment(
		c.clock, params.Service, date, window, owner, pet,
		params.PackageID, params.Reason, params.Notes,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	if err := c.insertGuarded(ctx, appt); err != nil {
		return nil, err
	}

	return c.readAfterWrite(ctx, params.Service, appt.ID())
}

// insertGuarded runs the conflict pre-check and the insert in one
// transaction. The pre-check supplies the colliding id for the 409 body;
// the exclusion constraint closes the remaining race window.
func (c *appointmentCommandsImpl) insertGuarded(ctx context.Context, appt *appointment.Appointment) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		existing, err := c.repo.ListBlocking(ctx, tx, appt.Service(), appt.Date())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if collidingID, found := appointment.FindConflict(existing, appt.Window(), uuid.Nil); found {
			return conflictErr(collidingID)
		}

		if err := c.repo.Insert(ctx, tx, appt); err != nil {
			if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
				return conflictErr(uuid.Nil)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return c.enqueueNotification(ctx, tx, appt, "appointment_requested")
	})
}

func (c *appointmentCommandsImpl) Reschedule(ctx context.Context, service appointment.ServiceType, id uuid.UUID, params RescheduleParams) (*queries.AppointmentView, error) {
	date, err := appointment.NewDateISO(params.Date)
	if err != nil {
		return nil, validationErr("date")
	}
	window, err := resolveWindow(service, params.StartMinutes, params.DropOffMinutes, params.PickUpMinutes)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		appt, err := c.findForWrite(ctx, tx, service, id)
		if err != nil {
			return err
		}
		return c.moveWindow(ctx, tx, appt, date, window)
	})
	if err != nil {
		return nil, err
	}

	return c.readAfterWrite(ctx, service, id)
}

func (c *appointmentCommandsImpl) Update(ctx context.Context, service appointment.ServiceType, id uuid.UUID, params UpdateAppointmentParams) (*queries.AppointmentView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		appt, err := c.findForWrite(ctx, tx, service, id)
		if err != nil {
			return err
		}

		if err := applyDetailPatch(appt, params); err != nil {
			return err
		}

		if windowTouched(params) {
			date, window, err := patchedWindow(appt, params)
			if err != nil {
				return err
			}
			return c.moveWindow(ctx, tx, appt, date, window)
		}

		return c.updateGuarded(ctx, tx, appt)
	})
	if err != nil {
		return nil, err
	}

	return c.readAfterWrite(ctx, service, id)
}

func (c *appointmentCommandsImpl) UpdateStatus(ctx context.Context, service appointment.ServiceType, id uuid.UUID, status string) (*queries.AppointmentView, error) {
	next := appointment.Status(status)
	if !next.IsValid() {
		return nil, validationErr("status")
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		appt, err := c.findForWrite(ctx, tx, service, id)
		if err != nil {
			return err
		}
		if err := appt.ChangeStatus(next); err != nil {
			return errs.Mark(err, ErrValidation)
		}
		if err := c.updateGuarded(ctx, tx, appt); err != nil {
			return err
		}
		return c.enqueueNotification(ctx, tx, appt, "appointment_status_changed")
	})
	if err != nil {
		return nil, err
	}

	return c.readAfterWrite(ctx, service, id)
}

func (c *appointmentCommandsImpl) Delete(ctx context.Context, service appointment.ServiceType, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := c.repo.Delete(ctx, tx, service, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAppointmentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// moveWindow re-runs the conflict scan excluding the appointment itself, so
// rescheduling onto its own current window always succeeds.
func (c *appointmentCommandsImpl) moveWindow(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment, date appointment.DateISO, window appointment.TimeWindow) error {
	existing, err := c.repo.ListBlocking(ctx, tx, appt.Service(), date)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if collidingID, found := appointment.FindConflict(existing, window, appt.ID()); found {
		return conflictErr(collidingID)
	}

	appt.Reschedule(date, window)
	return c.updateGuarded(ctx, tx, appt)
}

// updateGuarded maps exclusion-constraint losses on repo.Update to the
// conflict error. A status change can reactivate a cancelled booking into a
// window someone else has since taken; the constraint is the last word.
func (c *appointmentCommandsImpl) updateGuarded(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment) error {
	if err := c.repo.Update(ctx, tx, appt); err != nil {
		if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
			return conflictErr(uuid.Nil)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *appointmentCommandsImpl) findForWrite(ctx context.Context, tx pgx.Tx, service appointment.ServiceType, id uuid.UUID) (*appointment.Appointment, error) {
	appt, err := c.repo.FindByID(ctx, tx, service, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return appt, nil
}

func (c *appointmentCommandsImpl) readAfterWrite(ctx context.Context, service appointment.ServiceType, id uuid.UUID) (*queries.AppointmentView, error) {
	view, err := c.appointmentQs.GetByID(ctx, service, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *appointmentCommandsImpl) enqueueNotification(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"appointment_id": appt.ID(),
		"service":        appt.Service().String(),
		"date":           appt.Date().String(),
		"status":         appt.Status().String(),
		"owner_email":    appt.Owner().Email,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := c.notificationRepo.CreateJob(ctx, tx, "email", topic, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func missingCreateFields(params CreateAppointmentParams) []string {
	var missing []string
	require := func(value, field string) {
		if value == "" {
			missing = append(missing, field)
		}
	}

	require(params.OwnerName, "ownerName")
	require(params.OwnerPhone, "ownerPhone")
	require(params.OwnerEmail, "ownerEmail")
	require(params.PetType, "petType")
	require(params.Date, "date")

	switch params.Service {
	case appointment.ServiceVet:
		require(params.PetSize, "petSize")
		require(params.Reason, "reason")
		if params.StartMinutes == nil {
			missing = append(missing, "timeSlotMinutes")
		}
	case appointment.ServiceGrooming:
		require(params.PackageID, "packageId")
		if params.StartMinutes == nil {
			missing = append(missing, "timeSlotMinutes")
		}
	case appointment.ServiceDaycare:
		require(params.PetName, "petName")
		require(params.PackageID, "packageId")
		if params.DropOffMinutes == nil {
			missing = append(missing, "dropOffMinutes")
		}
		if params.PickUpMinutes == nil {
			missing = append(missing, "pickUpMinutes")
		}
	}
	return missing
}

func resolveWindow(service appointment.ServiceType, start, dropOff, pickUp *int) (appointment.TimeWindow, error) {
	if service == appointment.ServiceDaycare {
		if dropOff == nil || pickUp == nil {
			return appointment.TimeWindow{}, validationErr("dropOffMinutes", "pickUpMinutes")
		}
		window, err := appointment.NewTimeWindow(*dropOff, *pickUp)
		if err != nil {
			return appointment.TimeWindow{}, validationErr("dropOffMinutes", "pickUpMinutes")
		}
		return window, nil
	}

	if start == nil {
		return appointment.TimeWindow{}, validationErr("timeSlotMinutes")
	}
	window, err := appointment.WindowFromStart(service, *start)
	if err != nil {
		return appointment.TimeWindow{}, validationErr("timeSlotMinutes")
	}
	return window, nil
}

func windowTouched(params UpdateAppointmentParams) bool {
	return params.Date != nil ||
		params.StartMinutes != nil ||
		params.DropOffMinutes != nil ||
		params.PickUpMinutes != nil
}

// patchedWindow merges the requested date/window over the stored one, the
// way the original PUT handlers fell back to current values.
func patchedWindow(appt *appointment.Appointment, params UpdateAppointmentParams) (appointment.DateISO, appointment.TimeWindow, error) {
	date := appt.Date()
	if params.Date != nil {
		parsed, err := appointment.NewDateISO(*params.Date)
		if err != nil {
			return "", appointment.TimeWindow{}, validationErr("date")
		}
		date = parsed
	}

	if appt.Service() == appointment.ServiceDaycare {
		dropOff := patch.Coalesce(params.DropOffMinutes, appt.Window().StartMinutes())
		pickUp := patch.Coalesce(params.PickUpMinutes, appt.Window().EndMinutes())
		window, err := appointment.NewTimeWindow(dropOff, pickUp)
		if err != nil {
			return "", appointment.TimeWindow{}, validationErr("dropOffMinutes", "pickUpMinutes")
		}
		return date, window, nil
	}

	start := patch.Coalesce(params.StartMinutes, appt.Window().StartMinutes())
	window, err := appointment.WindowFromStart(appt.Service(), start)
	if err != nil {
		return "", appointment.TimeWindow{}, validationErr("timeSlotMinutes")
	}
	return date, window, nil
}

func applyDetailPatch(appt *appointment.Appointment, params UpdateAppointmentParams) error {
	owner := appt.Owner()
	patch.Set(&owner.Name, params.OwnerName)
	patch.Set(&owner.Phone, params.OwnerPhone)
	patch.Set(&owner.Email, params.OwnerEmail)
	patch.Set(&owner.EmergencyPhone, params.EmergencyPhone)

	pet := appt.Pet()
	patch.Set(&pet.Type, params.PetType)
	patch.Set(&pet.Size, params.PetSize)
	patch.Set(&pet.Name, params.PetName)

	packageID := patch.Coalesce(params.PackageID, appt.PackageID())
	reason := patch.Coalesce(params.Reason, appt.Reason())
	notes := patch.Coalesce(params.Notes, appt.Notes())

	if err := appt.UpdateDetails(owner, pet, packageID, reason, notes); err != nil {
		return errs.Mark(err, ErrValidation)
	}

	if params.Status != nil {
		if err := appt.ChangeStatus(appointment.Status(*params.Status)); err != nil {
			return validationErr("status")
		}
	}
	if params.PaymentStatus != nil {
		if err := appt.ChangePaymentStatus(appointment.PaymentStatus(*params.PaymentStatus)); err != nil {
			return validationErr("paymentStatus")
		}
	}
	return nil
}
