package commands

import (
	"context"
	"time"

	"petcare-hub/internal/domain/appointment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Write-side ports. Implementations live in internal/infra.

type AppointmentRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment) error
	FindByID(ctx context.Context, tx pgx.Tx, service appointment.ServiceType, id uuid.UUID) (*appointment.Appointment, error)
	Update(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment) error
	Delete(ctx context.Context, tx pgx.Tx, service appointment.ServiceType, id uuid.UUID) error
	// ListBlocking returns the day's slot-holding appointments (everything
	// not rejected/cancelled) for the conflict scan.
	ListBlocking(ctx context.Context, tx pgx.Tx, service appointment.ServiceType, date appointment.DateISO) ([]*appointment.Appointment, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx pgx.Tx, kind, topic string, payload []byte, runAt time.Time) error
}
