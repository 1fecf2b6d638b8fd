package queries

import (
	"context"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/pkg/errs"
	"petcare-hub/internal/pkg/timeofday"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errs.New("appointment not found")
	ErrInvalidDate         = errs.New("invalid date")
)

type AppointmentReadStore interface {
	FindByID(ctx context.Context, service appointment.ServiceType, id uuid.UUID) (*AppointmentView, error)
	// ListByDate returns the day's records ascending by start minute.
	ListByDate(ctx context.Context, service appointment.ServiceType, date string) ([]*AppointmentView, error)
	// ListAll returns every record descending by (date, start, createdAt).
	ListAll(ctx context.Context, service appointment.ServiceType) ([]*AppointmentView, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, service appointment.ServiceType, id uuid.UUID) (*AppointmentView, error)
	ListByDate(ctx context.Context, service appointment.ServiceType, date string) ([]*AppointmentView, error)
	ListAll(ctx context.Context, service appointment.ServiceType) ([]*AppointmentView, error)
	// DayEvents maps one service's day to calendar events, hiding
	// rejected/cancelled records the way the public calendar does.
	DayEvents(ctx context.Context, service appointment.ServiceType, date string) ([]*EventView, error)
}

type appointmentQueriesImpl struct {
	store AppointmentReadStore
}

func NewAppointmentQueries(store AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{store: store}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, service appointment.ServiceType, id uuid.UUID) (*AppointmentView, error) {
	return q.store.FindByID(ctx, service, id)
}

func (q *appointmentQueriesImpl) ListByDate(ctx context.Context, service appointment.ServiceType, date string) ([]*AppointmentView, error) {
	if _, err := appointment.NewDateISO(date); err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}
	return q.store.ListByDate(ctx, service, date)
}

func (q *appointmentQueriesImpl) ListAll(ctx context.Context, service appointment.ServiceType) ([]*AppointmentView, error) {
	return q.store.ListAll(ctx, service)
}

func (q *appointmentQueriesImpl) DayEvents(ctx context.Context, service appointment.ServiceType, date string) ([]*EventView, error) {
	views, err := q.ListByDate(ctx, service, date)
	if err != nil {
		return nil, err
	}

	events := make([]*EventView, 0, len(views))
	for _, v := range views {
		if !appointment.Status(v.Status).BlocksSlot() {
			continue
		}
		events = append(events, ToEventView(v))
	}
	return events, nil
}

// ToEventView renders one record as a display event. Titles follow the
// original marketplace convention: "<pet> • <package or reason>".
func ToEventView(v *AppointmentView) *EventView {
	subtitle := v.PackageID
	if v.Service == appointment.ServiceVet.String() && v.Reason != "" {
		subtitle = v.Reason
	}
	if subtitle == "" {
		subtitle = v.Service
	}

	return &EventView{
		ID:      v.ID,
		Date:    v.Date,
		Start:   timeofday.ToLabel(v.StartMinutes),
		End:     timeofday.ToLabel(v.EndMinutes),
		Title:   v.PetType + " • " + subtitle,
		Service: v.Service,
		Status:  v.Status,
	}
}
