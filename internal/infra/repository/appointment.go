package repository

import (
	"context"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/infra"
	"petcare-hub/internal/pkg/pgconv"
	"petcare-hub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type AppointmentRepository struct{}

func NewAppointmentRepository() commands.AppointmentRepository {
	return &AppointmentRepository{}
}

const appointmentColumns = `
	id, service, date_iso, start_minutes, end_minutes, status,
	owner_name, owner_phone, owner_email, emergency_phone,
	pet_type, pet_size, pet_name,
	package_id, reason, notes, payment_status,
	created_at, updated_at`

func (r *AppointmentRepository) Insert(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO appointments (
			id, service, date_iso, start_minutes, end_minutes, status,
			owner_name, owner_phone, owner_email, emergency_phone,
			pet_type, pet_size, pet_name,
			package_id, reason, notes, payment_status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, $16, $17,
			$18, $19
		)`,
		appt.ID(),
		appt.Service().String(),
		appt.Date().String(),
		appt.Window().StartMinutes(),
		appt.Window().EndMinutes(),
		appt.Status().String(),
		appt.Owner().Name,
		appt.Owner().Phone,
		appt.Owner().Email,
		appt.Owner().EmergencyPhone,
		appt.Pet().Type,
		appt.Pet().Size,
		appt.Pet().Name,
		appt.PackageID(),
		appt.Reason(),
		appt.Notes(),
		appt.PaymentStatus().String(),
		pgconv.TimeToPgtype(appt.CreatedAt()),
		pgconv.TimeToPgtype(appt.UpdatedAt()),
	)
	if err != nil {
		if kind, ok := infra.KindFromPgError(err); ok {
			return infra.WrapRepoErr("insert appointment", err, kind)
		}
		return infra.WrapRepoErr("insert appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, tx pgx.Tx, service appointment.ServiceType, id uuid.UUID) (*appointment.Appointment, error) {
	row := tx.QueryRow(ctx, `
		SELECT`+appointmentColumns+`
		FROM appointments
		WHERE service = $1 AND id = $2
		FOR UPDATE`,
		service.String(), id,
	)
	appt, err := scanAppointment(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("find appointment", err)
	}
	return appt, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments SET
			date_iso = $3, start_minutes = $4, end_minutes = $5, status = $6,
			owner_name = $7, owner_phone = $8, owner_email = $9, emergency_phone = $10,
			pet_type = $11, pet_size = $12, pet_name = $13,
			package_id = $14, reason = $15, notes = $16, payment_status = $17,
			updated_at = now()
		WHERE service = $1 AND id = $2`,
		appt.Service().String(),
		appt.ID(),
		appt.Date().String(),
		appt.Window().StartMinutes(),
		appt.Window().EndMinutes(),
		appt.Status().String(),
		appt.Owner().Name,
		appt.Owner().Phone,
		appt.Owner().Email,
		appt.Owner().EmergencyPhone,
		appt.Pet().Type,
		appt.Pet().Size,
		appt.Pet().Name,
		appt.PackageID(),
		appt.Reason(),
		appt.Notes(),
		appt.PaymentStatus().String(),
	)
	if err != nil {
		if kind, ok := infra.KindFromPgError(err); ok {
			return infra.WrapRepoErr("update appointment", err, kind)
		}
		return infra.WrapRepoErr("update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, tx pgx.Tx, service appointment.ServiceType, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		DELETE FROM appointments
		WHERE service = $1 AND id = $2`,
		service.String(), id,
	)
	if err != nil {
		return infra.WrapRepoErr("delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) ListBlocking(ctx context.Context, tx pgx.Tx, service appointment.ServiceType, date appointment.DateISO) ([]*appointment.Appointment, error) {
	rows, err := tx.Query(ctx, `
		SELECT`+appointmentColumns+`
		FROM appointments
		WHERE service = $1
		  AND date_iso = $2
		  AND status NOT IN ('rejected', 'cancelled')
		ORDER BY start_minutes`,
		service.String(), date.String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("list blocking appointments", err)
	}
	defer rows.Close()

	var appts []*appointment.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("scan appointment", err)
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("list blocking appointments", err)
	}
	return appts, nil
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id                   uuid.UUID
		service              string
		dateISO              string
		startMinutes         int
		endMinutes           int
		status               string
		ownerName            string
		ownerPhone           string
		ownerEmail           string
		emergencyPhone       string
		petType              string
		petSize              string
		petName              string
		packageID            string
		reason               string
		notes                string
		paymentStatus        string
		createdAt, updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(
		&id, &service, &dateISO, &startMinutes, &endMinutes, &status,
		&ownerName, &ownerPhone, &ownerEmail, &emergencyPhone,
		&petType, &petSize, &petName,
		&packageID, &reason, &notes, &paymentStatus,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	window, err := appointment.NewTimeWindow(startMinutes, endMinutes)
	if err != nil {
		return nil, err
	}

	return appointment.Reconstruct(
		id,
		appointment.ServiceType(service),
		appointment.DateISO(dateISO),
		window,
		appointment.Status(status),
		appointment.OwnerContact{
			Name:           ownerName,
			Phone:          ownerPhone,
			Email:          ownerEmail,
			EmergencyPhone: emergencyPhone,
		},
		appointment.PetDescriptor{Type: petType, Size: petSize, Name: petName},
		packageID, reason, notes,
		appointment.PaymentStatus(paymentStatus),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
