//go:build unit || e2e

package builder

import (
	"time"

	domappt "petcare-hub/internal/domain/appointment"
	reqdto "petcare-hub/internal/handler/dto/request"
	"petcare-hub/internal/pkg/clock"
	"petcare-hub/internal/usecase/commands"
	"petcare-hub/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	Service        domappt.ServiceType
	Date           string
	StartMinutes   int
	EndMinutes     int
	Status         string
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
	CreatedAt      time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		Service:      domappt.ServiceVet,
		Date:         "2026-09-15",
		StartMinutes: 600, // 10:00 AM
		EndMinutes:   630,
		Status:       "pending",
		OwnerName:    "Maya Chen",
		OwnerPhone:   "555-0142",
		OwnerEmail:   "maya@example.com",
		PetType:      "dog",
		PetSize:      "medium",
		PetName:      "Biscuit",
		Reason:       "Annual vaccination",
		CreatedAt:    time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

// Fluent builder methods
func (b *AppointmentBuilder) AsGrooming() *AppointmentBuilder {
	b.Service = domappt.ServiceGrooming
	b.EndMinutes = b.StartMinutes + 60
	b.PackageID = "basic-bath"
	b.Reason = ""
	return b
}

func (b *AppointmentBuilder) AsDaycare() *AppointmentBuilder {
	b.Service = domappt.ServiceDaycare
	b.StartMinutes = 480 // 8:00 AM drop-off
	b.EndMinutes = 720   // 12:00 PM pick-up
	b.PackageID = "half-day"
	b.Reason = ""
	return b
}

func (b *AppointmentBuilder) WithDate(date string) *AppointmentBuilder {
	b.Date = date
	return b
}

func (b *AppointmentBuilder) WithWindow(start, end int) *AppointmentBuilder {
	b.StartMinutes = start
	b.EndMinutes = end
	return b
}

func (b *AppointmentBuilder) WithStatus(status string) *AppointmentBuilder {
	b.Status = status
	return b
}

func (b *AppointmentBuilder) WithPackage(packageID string) *AppointmentBuilder {
	b.PackageID = packageID
	return b
}

func (b *AppointmentBuilder) WithReason(reason string) *AppointmentBuilder {
	b.Reason = reason
	return b
}

func (b *AppointmentBuilder) WithPetName(name string) *AppointmentBuilder {
	b.PetName = name
	return b
}

// Build methods
func (b *AppointmentBuilder) BuildDomain(clk clock.Clock) (*domappt.Appointment, error) {
	window, err := domappt.NewTimeWindow(b.StartMinutes, b.EndMinutes)
	if err != nil {
		return nil, err
	}
	date, err := domappt.NewDateISO(b.Date)
	if err != nil {
		return nil, err
	}
	owner, err := domappt.NewOwnerContact(b.OwnerName, b.OwnerPhone, b.OwnerEmail, b.EmergencyPhone)
	if err != nil {
		return nil, err
	}
	pet := domappt.PetDescriptor{Type: b.PetType, Size: b.PetSize, Name: b.PetName}

	return domappt.NewAppointment(clk, b.Service, date, window, owner, pet, b.PackageID, b.Reason, b.Notes)
}

func (b *AppointmentBuilder) BuildCreateParams() commands.CreateAppointmentParams {
	params := commands.CreateAppointmentParams{
		Service:        b.Service,
		Date:           b.Date,
		OwnerName:      b.OwnerName,
		OwnerPhone:     b.OwnerPhone,
		OwnerEmail:     b.OwnerEmail,
		EmergencyPhone: b.EmergencyPhone,
		PetType:        b.PetType,
		PetSize:        b.PetSize,
		PetName:        b.PetName,
		PackageID:      b.PackageID,
		Reason:         b.Reason,
		Notes:          b.Notes,
	}
	if b.Service == domappt.ServiceDaycare {
		dropOff := b.StartMinutes
		pickUp := b.EndMinutes
		params.DropOffMinutes = &dropOff
		params.PickUpMinutes = &pickUp
	} else {
		start := b.StartMinutes
		params.StartMinutes = &start
	}
	return params
}

func (b *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	req := reqdto.CreateAppointmentRequest{
		Date:           b.Date,
		OwnerName:      b.OwnerName,
		OwnerPhone:     b.OwnerPhone,
		OwnerEmail:     b.OwnerEmail,
		EmergencyPhone: b.EmergencyPhone,
		PetType:        b.PetType,
		PetSize:        b.PetSize,
		PetName:        b.PetName,
		PackageID:      b.PackageID,
		Reason:         b.Reason,
		Notes:          b.Notes,
	}
	if b.Service == domappt.ServiceDaycare {
		dropOff := b.StartMinutes
		pickUp := b.EndMinutes
		req.DropOffMinutes = &dropOff
		req.PickUpMinutes = &pickUp
	} else {
		start := b.StartMinutes
		req.TimeSlotMinutes = &start
	}
	return req
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:             uuid.New(),
		Service:        b.Service.String(),
		Date:           b.Date,
		StartMinutes:   b.StartMinutes,
		EndMinutes:     b.EndMinutes,
		Status:         b.Status,
		OwnerName:      b.OwnerName,
		OwnerPhone:     b.OwnerPhone,
		OwnerEmail:     b.OwnerEmail,
		EmergencyPhone: b.EmergencyPhone,
		PetType:        b.PetType,
		PetSize:        b.PetSize,
		PetName:        b.PetName,
		PackageID:      b.PackageID,
		Reason:         b.Reason,
		Notes:          b.Notes,
		PaymentStatus:  "unpaid",
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
}
