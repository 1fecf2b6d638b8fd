//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/infra"
	"petcare-hub/internal/pkg/clock"
	"petcare-hub/internal/usecase/commands"
	"petcare-hub/tests/common/builder"
	commandsmock "petcare-hub/tests/mock/commands"
	queriesmock "petcare-hub/tests/mock/queries"
	sharedmock "petcare-hub/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AppointmentCommandsTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	repo             *commandsmock.MockAppointmentRepository
	notificationRepo *commandsmock.MockNotificationRepository
	queries          *queriesmock.MockAppointmentQueries
	uow              *sharedmock.MockUnitOfWork
	clock            *clock.MockClock
	commands         commands.AppointmentCommands
}

func (s *AppointmentCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.repo = commandsmock.NewMockAppointmentRepository(s.mockCtrl)
	s.notificationRepo = commandsmock.NewMockNotificationRepository(s.mockCtrl)
	s.queries = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	s.uow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))

	// Run transaction bodies inline; the mocks below ignore the tx handle.
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return fn(ctx, nil)
		}).AnyTimes()

	s.commands = commands.NewAppointmentCommands(s.repo, s.notificationRepo, s.queries, s.uow, s.clock)
}

func (s *AppointmentCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAppointmentCommandsSuite(t *testing.T) {
	suite.Run(t, new(AppointmentCommandsTestSuite))
}

func (s *AppointmentCommandsTestSuite) domainAppointment(b *builder.AppointmentBuilder) *appointment.Appointment {
	appt, err := b.BuildDomain(s.clock)
	s.Require().NoError(err)
	return appt
}

// ================================================================================
// Create
// ================================================================================

func (s *AppointmentCommandsTestSuite) TestCreateSuccess() {
	params := builder.NewAppointmentBuilder().BuildCreateParams()
	view := builder.NewAppointmentBuilder().BuildView()

	s.repo.EXPECT().
		ListBlocking(gomock.Any(), gomock.Any(), appointment.ServiceVet, appointment.DateISO("2026-09-15")).
		Return(nil, nil)
	s.repo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.notificationRepo.EXPECT().
		CreateJob(gomock.Any(), gomock.Any(), "email", "appointment_requested", gomock.Any(), s.clock.Now()).
		Return(nil)
	s.queries.EXPECT().GetByID(gomock.Any(), appointment.ServiceVet, gomock.Any()).Return(view, nil)

	result, err := s.commands.Create(context.Background(), params)
	s.Require().NoError(err)
	s.Equal(view.ID, result.ID)
}

func (s *AppointmentCommandsTestSuite) TestCreateConflictFromPreCheck() {
	params := builder.NewAppointmentBuilder().BuildCreateParams()
	existing := s.domainAppointment(builder.NewAppointmentBuilder().WithWindow(590, 620))

	s.repo.EXPECT().
		ListBlocking(gomock.Any(), gomock.Any(), appointment.ServiceVet, gomock.Any()).
		Return([]*appointment.Appointment{existing}, nil)
	// Insert must never run when the pre-check already found the collision.

	_, err := s.commands.Create(context.Background(), params)
	s.Require().ErrorIs(err, commands.ErrSlotConflict)

	var conflict *commands.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal(existing.ID(), conflict.CollidingID)
}

func (s *AppointmentCommandsTestSuite) TestCreateConflictFromConstraint() {
	params := builder.NewAppointmentBuilder().BuildCreateParams()

	s.repo.EXPECT().
		ListBlocking(gomock.Any(), gomock.Any(), appointment.ServiceVet, gomock.Any()).
		Return(nil, nil)
	s.repo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(infra.WrapRepoErr("insert appointment", nil, infra.KindConflict))

	_, err := s.commands.Create(context.Background(), params)
	s.Require().ErrorIs(err, commands.ErrSlotConflict)

	// A lost storage-level race carries no colliding id.
	var conflict *commands.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal(uuid.Nil, conflict.CollidingID)
}

func (s *AppointmentCommandsTestSuite) TestCreateValidationListsAllMissingFields() {
	params := builder.NewAppointmentBuilder().BuildCreateParams()
	params.Reason = ""
	params.StartMinutes = nil
	params.OwnerEmail = ""

	_, err := s.commands.Create(context.Background(), params)
	s.Require().ErrorIs(err, commands.ErrValidation)

	var validation *commands.ValidationError
	s.Require().ErrorAs(err, &validation)
	s.ElementsMatch([]string{"ownerEmail", "reason", "timeSlotMinutes"}, validation.Fields)
}

func (s *AppointmentCommandsTestSuite) TestCreateDaycareNeedsBothWindowEnds() {
	params := builder.NewAppointmentBuilder().AsDaycare().BuildCreateParams()
	params.PickUpMinutes = nil

	_, err := s.commands.Create(context.Background(), params)
	s.Require().ErrorIs(err, commands.ErrValidation)

	var validation *commands.ValidationError
	s.Require().ErrorAs(err, &validation)
	s.Contains(validation.Fields, "pickUpMinutes")
}

func (s *AppointmentCommandsTestSuite) TestCreateRejectsInvertedDaycareWindow() {
	params := builder.NewAppointmentBuilder().AsDaycare().BuildCreateParams()
	dropOff := 900
	pickUp := 700
	params.DropOffMinutes = &dropOff
	params.PickUpMinutes = &pickUp

	_, err := s.commands.Create(context.Background(), params)
	s.Require().ErrorIs(err, commands.ErrValidation)
}

// ================================================================================
// Reschedule
// ================================================================================

func (s *AppointmentCommandsTestSuite) TestRescheduleExcludesOwnWindow() {
	appt := s.domainAppointment(builder.NewAppointmentBuilder())
	view := builder.NewAppointmentBuilder().BuildView()
	start := 600

	s.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), appointment.ServiceVet, appt.ID()).
		Return(appt, nil)
	// The day only holds the appointment itself, so moving onto its own
	// current window must succeed.
	s.repo.EXPECT().
		ListBlocking(gomock.Any(), gomock.Any(), appointment.ServiceVet, appointment.DateISO("2026-09-15")).
		Return([]*appointment.Appointment{appt}, nil)
	s.repo.EXPECT().Update(gomock.Any(), gomock.Any(), appt).Return(nil)
	s.queries.EXPECT().GetByID(gomock.Any(), appointment.ServiceVet, appt.ID()).Return(view, nil)

	_, err := s.commands.Reschedule(context.Background(), appointment.ServiceVet, appt.ID(), commands.RescheduleParams{
		Date:         "2026-09-15",
		StartMinutes: &start,
	})
	s.Require().NoError(err)
}

func (s *AppointmentCommandsTestSuite) TestRescheduleConflictsWithOtherBooking() {
	appt := s.domainAppointment(builder.NewAppointmentBuilder())
	other := s.domainAppointment(builder.NewAppointmentBuilder().WithWindow(840, 870))
	start := 850

	s.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), appointment.ServiceVet, appt.ID()).
		Return(appt, nil)
	s.repo.EXPECT().
		ListBlocking(gomock.Any(), gomock.Any(), appointment.ServiceVet, gomock.Any()).
		Return([]*appointment.Appointment{appt, other}, nil)

	_, err := s.commands.Reschedule(context.Background(), appointment.ServiceVet, appt.ID(), commands.RescheduleParams{
		Date:         "2026-09-15",
		StartMinutes: &start,
	})
	s.Require().ErrorIs(err, commands.ErrSlotConflict)

	var conflict *commands.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal(other.ID(), conflict.CollidingID)
}

func (s *AppointmentCommandsTestSuite) TestRescheduleNotFound() {
	id := uuid.New()
	start := 600

	s.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), appointment.ServiceVet, id).
		Return(nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound))

	_, err := s.commands.Reschedule(context.Background(), appointment.ServiceVet, id, commands.RescheduleParams{
		Date:         "2026-09-15",
		StartMinutes: &start,
	})
	s.Require().ErrorIs(err, commands.ErrAppointmentNotFound)
}

// ================================================================================
// UpdateStatus
// ================================================================================

func (s *AppointmentCommandsTestSuite) TestUpdateStatusSuccess() {
	appt := s.domainAppointment(builder.NewAppointmentBuilder())
	view := builder.NewAppointmentBuilder().WithStatus("accepted").BuildView()

	s.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), appointment.ServiceVet, appt.ID()).
		Return(appt, nil)
	s.repo.EXPECT().Update(gomock.Any(), gomock.Any(), appt).Return(nil)
	s.notificationRepo.EXPECT().
		CreateJob(gomock.Any(), gomock.Any(), "email", "appointment_status_changed", gomock.Any(), gomock.Any()).
		Return(nil)
	s.queries.EXPECT().GetByID(gomock.Any(), appointment.ServiceVet, appt.ID()).Return(view, nil)

	result, err := s.commands.UpdateStatus(context.Background(), appointment.ServiceVet, appt.ID(), "accepted")
	s.Require().NoError(err)
	s.Equal("accepted", result.Status)
	s.Equal(appointment.StatusAccepted, appt.Status())
}

func (s *AppointmentCommandsTestSuite) TestUpdateStatusRejectsUnknownMember() {
	_, err := s.commands.UpdateStatus(context.Background(), appointment.ServiceVet, uuid.New(), "approved")
	s.Require().ErrorIs(err, commands.ErrValidation)
}

func (s *AppointmentCommandsTestSuite) TestUpdateStatusConflictOnReactivation() {
	appt := s.domainAppointment(builder.NewAppointmentBuilder())
	s.Require().NoError(appt.ChangeStatus(appointment.StatusCancelled))

	s.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), appointment.ServiceVet, appt.ID()).
		Return(appt, nil)
	// Reactivating into a window taken in the meantime loses to the
	// exclusion constraint.
	s.repo.EXPECT().Update(gomock.Any(), gomock.Any(), appt).
		Return(infra.WrapRepoErr("update appointment", nil, infra.KindConflict))

	_, err := s.commands.UpdateStatus(context.Background(), appointment.ServiceVet, appt.ID(), "pending")
	s.Require().ErrorIs(err, commands.ErrSlotConflict)

	var conflict *commands.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal(uuid.Nil, conflict.CollidingID)
}

// ================================================================================
// Update
// ================================================================================

func (s *AppointmentCommandsTestSuite) TestUpdateWithoutWindowSkipsConflictScan() {
	appt := s.domainAppointment(builder.NewAppointmentBuilder())
	view := builder.NewAppointmentBuilder().BuildView()
	notes := "please call ahead"

	s.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), appointment.ServiceVet, appt.ID()).
		Return(appt, nil)
	s.repo.EXPECT().Update(gomock.Any(), gomock.Any(), appt).Return(nil)
	s.queries.EXPECT().GetByID(gomock.Any(), appointment.ServiceVet, appt.ID()).Return(view, nil)

	_, err := s.commands.Update(context.Background(), appointment.ServiceVet, appt.ID(), commands.UpdateAppointmentParams{
		Notes: &notes,
	})
	s.Require().NoError(err)
	s.Equal("please call ahead", appt.Notes())
}

func (s *AppointmentCommandsTestSuite) TestUpdateWithNewDateRechecksConflicts() {
	appt := s.domainAppointment(builder.NewAppointmentBuilder())
	view := builder.NewAppointmentBuilder().BuildView()
	newDate := "2026-09-20"

	s.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), appointment.ServiceVet, appt.ID()).
		Return(appt, nil)
	s.repo.EXPECT().
		ListBlocking(gomock.Any(), gomock.Any(), appointment.ServiceVet, appointment.DateISO(newDate)).
		Return(nil, nil)
	s.repo.EXPECT().Update(gomock.Any(), gomock.Any(), appt).Return(nil)
	s.queries.EXPECT().GetByID(gomock.Any(), appointment.ServiceVet, appt.ID()).Return(view, nil)

	_, err := s.commands.Update(context.Background(), appointment.ServiceVet, appt.ID(), commands.UpdateAppointmentParams{
		Date: &newDate,
	})
	s.Require().NoError(err)
	s.Equal("2026-09-20", appt.Date().String())
}

func (s *AppointmentCommandsTestSuite) TestUpdateDetailConflictFromConstraint() {
	appt := s.domainAppointment(builder.NewAppointmentBuilder())
	s.Require().NoError(appt.ChangeStatus(appointment.StatusCancelled))
	status := "pending"

	s.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), appointment.ServiceVet, appt.ID()).
		Return(appt, nil)
	s.repo.EXPECT().Update(gomock.Any(), gomock.Any(), appt).
		Return(infra.WrapRepoErr("update appointment", nil, infra.KindConflict))

	_, err := s.commands.Update(context.Background(), appointment.ServiceVet, appt.ID(), commands.UpdateAppointmentParams{
		Status: &status,
	})
	s.Require().ErrorIs(err, commands.ErrSlotConflict)
}

// ================================================================================
// Delete
// ================================================================================

func (s *AppointmentCommandsTestSuite) TestDeleteSuccess() {
	id := uuid.New()

	s.repo.EXPECT().
		Delete(gomock.Any(), gomock.Any(), appointment.ServiceDaycare, id).
		Return(nil)

	s.Require().NoError(s.commands.Delete(context.Background(), appointment.ServiceDaycare, id))
}

func (s *AppointmentCommandsTestSuite) TestDeleteNotFound() {
	id := uuid.New()

	s.repo.EXPECT().
		Delete(gomock.Any(), gomock.Any(), appointment.ServiceVet, id).
		Return(infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound))

	err := s.commands.Delete(context.Background(), appointment.ServiceVet, id)
	s.Require().ErrorIs(err, commands.ErrAppointmentNotFound)
}
