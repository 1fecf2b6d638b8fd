package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// AppointmentView is the full record as the dashboards consume it.
type AppointmentView struct {
	ID             uuid.UUID
	Service        string
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
	PaymentStatus  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EventView is the uniform calendar event shape merged across services.
type EventView struct {
	ID      uuid.UUID `json:"id"`
	Date    string    `json:"date"`
	Start   string    `json:"start"`
	End     string    `json:"end"`
	Title   string    `json:"title"`
	Service string    `json:"service"`
	Status  string    `json:"status"`
}

// PackageView is one row of the read-only service catalog.
type PackageView struct {
	Service         string
	ID              string
	Name            string
	PriceCents      int32
	DurationMinutes *int32
}
