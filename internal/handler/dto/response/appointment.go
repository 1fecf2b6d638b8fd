package response

import (
	"time"

	"petcare-hub/internal/pkg/timeofday"
	"petcare-hub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AppointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	Service        string    `json:"service"`
	Date           string    `json:"date"`
	StartMinutes   int       `json:"startMinutes"`
	EndMinutes     int       `json:"endMinutes"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Status         string    `json:"status"`
	OwnerName      string    `json:"ownerName"`
	OwnerPhone     string    `json:"ownerPhone"`
	OwnerEmail     string    `json:"ownerEmail"`
	EmergencyPhone string    `json:"emergencyPhone,omitempty"`
	PetType        string    `json:"petType"`
	PetSize        string    `json:"petSize,omitempty"`
	PetName        string    `json:"petName,omitempty"`
	PackageID      string    `json:"packageId,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	PaymentStatus  string    `json:"paymentStatus"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromAppointmentView(v *queries.AppointmentView) *AppointmentResponse {
	var resp AppointmentResponse
	// Field names match; copier carries everything but the display labels.
	_ = copier.Copy(&resp, v)
	resp.StartTime = timeofday.ToLabel(v.StartMinutes)
	resp.EndTime = timeofday.ToLabel(v.EndMinutes)
	return &resp
}

func FromAppointmentViews(views []*queries.AppointmentView) []*AppointmentResponse {
	out := make([]*AppointmentResponse, len(views))
	for i, v := range views {
		out[i] = FromAppointmentView(v)
	}
	return out
}

type PackageResponse struct {
	ID              string `json:"id"`
	Service         string `json:"service"`
	Name            string `json:"name"`
	PriceCents      int32  `json:"priceCents"`
	DurationMinutes *int32 `json:"durationMinutes,omitempty"`
}

func FromPackageViews(views []*queries.PackageView) []*PackageResponse {
	out := make([]*PackageResponse, len(views))
	for i, v := range views {
		out[i] = &PackageResponse{
			ID:              v.ID,
			Service:         v.Service,
			Name:            v.Name,
			PriceCents:      v.PriceCents,
			DurationMinutes: v.DurationMinutes,
		}
	}
	return out
}
