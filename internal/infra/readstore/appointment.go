package readstore

import (
	"context"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/infra"
	"petcare-hub/internal/pkg/errs"
	"petcare-hub/internal/pkg/pgconv"
	"petcare-hub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppointmentReadStore serves dashboard and calendar reads straight off the
// pool, outside any unit of work.
type AppointmentReadStore struct {
	pool *pgxpool.Pool
}

func NewAppointmentReadStore(pool *pgxpool.Pool) queries.AppointmentReadStore {
	return &AppointmentReadStore{pool: pool}
}

const viewColumns = `
	id, service, date_iso, start_minutes, end_minutes, status,
	owner_name, owner_phone, owner_email, emergency_phone,
	pet_type, pet_size, pet_name,
	package_id, reason, notes, payment_status,
	created_at, updated_at`

func (s *AppointmentReadStore) FindByID(ctx context.Context, service appointment.ServiceType, id uuid.UUID) (*queries.AppointmentView, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT`+viewColumns+`
		FROM appointments
		WHERE service = $1 AND id = $2`,
		service.String(), id,
	)
	view, err := scanView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(err, queries.ErrAppointmentNotFound)
		}
		return nil, infra.WrapRepoErr("find appointment", err)
	}
	return view, nil
}

func (s *AppointmentReadStore) ListByDate(ctx context.Context, service appointment.ServiceType, date string) ([]*queries.AppointmentView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT`+viewColumns+`
		FROM appointments
		WHERE service = $1 AND date_iso = $2
		ORDER BY start_minutes, created_at`,
		service.String(), date,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("list appointments by date", err)
	}
	return collectViews(rows)
}

func (s *AppointmentReadStore) ListAll(ctx context.Context, service appointment.ServiceType) ([]*queries.AppointmentView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT`+viewColumns+`
		FROM appointments
		WHERE service = $1
		ORDER BY date_iso DESC, start_minutes DESC, created_at DESC`,
		service.String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("list appointments", err)
	}
	return collectViews(rows)
}

func collectViews(rows pgx.Rows) ([]*queries.AppointmentView, error) {
	defer rows.Close()

	var views []*queries.AppointmentView
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("scan appointment", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("read appointments", err)
	}
	return views, nil
}

func scanView(row pgx.Row) (*queries.AppointmentView, error) {
	var (
		v                    queries.AppointmentView
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&v.ID, &v.Service, &v.Date, &v.StartMinutes, &v.EndMinutes, &v.Status,
		&v.OwnerName, &v.OwnerPhone, &v.OwnerEmail, &v.EmergencyPhone,
		&v.PetType, &v.PetSize, &v.PetName,
		&v.PackageID, &v.Reason, &v.Notes, &v.PaymentStatus,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
