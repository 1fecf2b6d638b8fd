package request

import (
	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/usecase/commands"
)

// CreateAppointmentRequest is the shared booking form body. Vet and grooming
// send timeSlotMinutes; daycare sends dropOffMinutes and pickUpMinutes.
// Presence rules per service are enforced downstream so validation errors
// list every missing field at once.
type CreateAppointmentRequest struct {
	Date            string `json:"date"`
	TimeSlotMinutes *int   `json:"timeSlotMinutes,omitempty"`
	DropOffMinutes  *int   `json:"dropOffMinutes,omitempty"`
	PickUpMinutes   *int   `json:"pickUpMinutes,omitempty"`
	OwnerName       string `json:"ownerName"`
	OwnerPhone      string `json:"ownerPhone"`
	OwnerEmail      string `json:"ownerEmail"`
	EmergencyPhone  string `json:"emergencyPhone,omitempty"`
	PetType         string `json:"petType"`
	PetSize         string `json:"petSize,omitempty"`
	PetName         string `json:"petName,omitempty"`
	PackageID       string `json:"packageId,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func (r CreateAppointmentRequest) ToParams(service appointment.ServiceType) commands.CreateAppointmentParams {
	return commands.CreateAppointmentParams{
		Service:        service,
		Date:           r.Date,
		StartMinutes:   r.TimeSlotMinutes,
		DropOffMinutes: r.DropOffMinutes,
		PickUpMinutes:  r.PickUpMinutes,
		OwnerName:      r.OwnerName,
		OwnerPhone:     r.OwnerPhone,
		OwnerEmail:     r.OwnerEmail,
		EmergencyPhone: r.EmergencyPhone,
		PetType:        r.PetType,
		PetSize:        r.PetSize,
		PetName:        r.PetName,
		PackageID:      r.PackageID,
		Reason:         r.Reason,
		Notes:          r.Notes,
	}
}

// UpdateAppointmentRequest carries a partial update; absent fields keep
// their stored values.
type UpdateAppointmentRequest struct {
	Date            *string `json:"date,omitempty"`
	TimeSlotMinutes *int    `json:"timeSlotMinutes,omitempty"`
	DropOffMinutes  *int    `json:"dropOffMinutes,omitempty"`
	PickUpMinutes   *int    `json:"pickUpMinutes,omitempty"`
	OwnerName       *string `json:"ownerName,omitempty"`
	OwnerPhone      *string `json:"ownerPhone,omitempty"`
	OwnerEmail      *string `json:"ownerEmail,omitempty"`
	EmergencyPhone  *string `json:"emergencyPhone,omitempty"`
	PetType         *string `json:"petType,omitempty"`
	PetSize         *string `json:"petSize,omitempty"`
	PetName         *string `json:"petName,omitempty"`
	PackageID       *string `json:"packageId,omitempty"`
	Reason          *string `json:"reason,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          *string `json:"status,omitempty"`
	PaymentStatus   *string `json:"paymentStatus,omitempty"`
}

func (r UpdateAppointmentRequest) ToParams() commands.UpdateAppointmentParams {
	return commands.UpdateAppointmentParams{
		Date:           r.Date,
		StartMinutes:   r.TimeSlotMinutes,
		DropOffMinutes: r.DropOffMinutes,
		PickUpMinutes:  r.PickUpMinutes,
		OwnerName:      r.OwnerName,
		OwnerPhone:     r.OwnerPhone,
		OwnerEmail:     r.OwnerEmail,
		EmergencyPhone: r.EmergencyPhone,
		PetType:        r.PetType,
		PetSize:        r.PetSize,
		PetName:        r.PetName,
		PackageID:      r.PackageID,
		Reason:         r.Reason,
		Notes:          r.Notes,
		Status:         r.Status,
		PaymentStatus:  r.PaymentStatus,
	}
}

type RescheduleRequest struct {
	Date            string `json:"date" binding:"required"`
	TimeSlotMinutes *int   `json:"timeSlotMinutes,omitempty"`
	DropOffMinutes  *int   `json:"dropOffMinutes,omitempty"`
	PickUpMinutes   *int   `json:"pickUpMinutes,omitempty"`
}

func (r RescheduleRequest) ToParams() commands.RescheduleParams {
	return commands.RescheduleParams{
		Date:           r.Date,
		StartMinutes:   r.TimeSlotMinutes,
		DropOffMinutes: r.DropOffMinutes,
		PickUpMinutes:  r.PickUpMinutes,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
