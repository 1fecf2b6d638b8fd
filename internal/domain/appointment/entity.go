package appointment

import (
	"time"

	"petcare-hub/internal/pkg/clock"
	"petcare-hub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errs.New("invalid appointment status")
	ErrInvalidPaymentStatus = errs.New("invalid payment status")
	ErrMissingPackage       = errs.New("package is required")
	ErrMissingReason        = errs.New("visit reason is required")
)

// Appointment is one booked slot in a single service's collection.
// The window invariant (no two blocking appointments of one service may
// overlap on the same date) is enforced by the store, not the entity.
type Appointment struct {
	id            uuid.UUID
	service       ServiceType
	date          DateISO
	window        TimeWindow
	status        Status
	owner         OwnerContact
	pet           PetDescriptor
	packageID     string
	reason        string
	notes         string
	paymentStatus PaymentStatus
	createdAt     time.Time
	updatedAt     time.Time
}

// NewAppointment builds a pending, unpaid appointment. Per-service required
// fields mirror the booking forms: vet needs a visit reason and pet size,
// grooming a package, daycare a package and the pet's name.
func NewAppointment(
	clk clock.Clock,
	service ServiceType,
	date DateISO,
	window TimeWindow,
	owner OwnerContact,
	pet PetDescriptor,
	packageID string,
	reason string,
	notes string,
) (*Appointment, error) {
	switch service {
	case ServiceVet:
		if reason == "" {
			return nil, ErrMissingReason
		}
		if pet.Size == "" {
			return nil, ErrMissingPet
		}
	case ServiceGrooming:
		if packageID == "" {
			return nil, ErrMissingPackage
		}
	case ServiceDaycare:
		if packageID == "" {
			return nil, ErrMissingPackage
		}
		if pet.Name == "" {
			return nil, ErrMissingPet
		}
	}

	now := clk.Now()
	return &Appointment{
		id:            uuid.New(),
		service:       service,
		date:          date,
		window:        window,
		status:        StatusPending,
		owner:         owner,
		pet:           pet,
		packageID:     packageID,
		reason:        reason,
		notes:         notes,
		paymentStatus: PaymentUnpaid,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	service ServiceType,
	date DateISO,
	window TimeWindow,
	status Status,
	owner OwnerContact,
	pet PetDescriptor,
	packageID, reason, notes string,
	paymentStatus PaymentStatus,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:            id,
		service:       service,
		date:          date,
		window:        window,
		status:        status,
		owner:         owner,
		pet:           pet,
		packageID:     packageID,
		reason:        reason,
		notes:         notes,
		paymentStatus: paymentStatus,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Reschedule replaces only the date/window pair. The caller re-runs the
// conflict check (excluding this appointment's id) before persisting.
func (a *Appointment) Reschedule(date DateISO, window TimeWindow) {
	a.date = date
	a.window = window
}

// UpdateDetails replaces the descriptive fields while re-checking the same
// per-service requirements NewAppointment enforces.
func (a *Appointment) UpdateDetails(owner OwnerContact, pet PetDescriptor, packageID, reason, notes string) error {
	if owner.Name == "" || owner.Phone == "" || owner.Email == "" {
		return ErrMissingContact
	}
	if pet.Type == "" {
		return ErrMissingPet
	}
	switch a.service {
	case ServiceVet:
		if reason == "" {
			return ErrMissingReason
		}
		if pet.Size == "" {
			return ErrMissingPet
		}
	case ServiceGrooming:
		if packageID == "" {
			return ErrMissingPackage
		}
	case ServiceDaycare:
		if packageID == "" {
			return ErrMissingPackage
		}
		if pet.Name == "" {
			return ErrMissingPet
		}
	}

	a.owner = owner
	a.pet = pet
	a.packageID = packageID
	a.reason = reason
	a.notes = notes
	return nil
}

// ChangeStatus validates membership only; any status may follow any other.
func (a *Appointment) ChangeStatus(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	a.status = next
	return nil
}

func (a *Appointment) ChangePaymentStatus(next PaymentStatus) error {
	if !next.IsValid() {
		return ErrInvalidPaymentStatus
	}
	a.paymentStatus = next
	return nil
}

// BlocksSlot reports whether this appointment currently holds its window.
func (a *Appointment) BlocksSlot() bool {
	return a.status.BlocksSlot()
}

func (a *Appointment) ID() uuid.UUID                { return a.id }
func (a *Appointment) Service() ServiceType         { return a.service }
func (a *Appointment) Date() DateISO                { return a.date }
func (a *Appointment) Window() TimeWindow           { return a.window }
func (a *Appointment) Status() Status               { return a.status }
func (a *Appointment) Owner() OwnerContact          { return a.owner }
func (a *Appointment) Pet() PetDescriptor           { return a.pet }
func (a *Appointment) PackageID() string            { return a.packageID }
func (a *Appointment) Reason() string               { return a.reason }
func (a *Appointment) Notes() string                { return a.notes }
func (a *Appointment) PaymentStatus() PaymentStatus { return a.paymentStatus }
func (a *Appointment) CreatedAt() time.Time         { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time         { return a.updatedAt }
