//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/pkg/clock"
	"petcare-hub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = clock.NewMockClock(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))

type entityCase struct {
	name   string
	mutate func(*builder.AppointmentBuilder)
	errIs  error
}

func TestNewAppointment(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewAppointmentBuilder().BuildDomain(testClock)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, appointment.StatusPending, actual.Status())
		assert.Equal(t, appointment.PaymentUnpaid, actual.PaymentStatus())
		assert.Equal(t, testClock.Now(), actual.CreatedAt())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
		assert.True(t, actual.BlocksSlot())
	})

	t.Run("per-service required fields", func(t *testing.T) {
		runEntityCases(t, []entityCase{
			{
				name:   "vet without reason",
				mutate: func(b *builder.AppointmentBuilder) { b.WithReason("") },
				errIs:  appointment.ErrMissingReason,
			},
			{
				name:   "vet without pet size",
				mutate: func(b *builder.AppointmentBuilder) { b.PetSize = "" },
				errIs:  appointment.ErrMissingPet,
			},
			{
				name:   "grooming without package",
				mutate: func(b *builder.AppointmentBuilder) { b.AsGrooming().WithPackage("") },
				errIs:  appointment.ErrMissingPackage,
			},
			{
				name:   "grooming with package",
				mutate: func(b *builder.AppointmentBuilder) { b.AsGrooming() },
			},
			{
				name:   "daycare without pet name",
				mutate: func(b *builder.AppointmentBuilder) { b.AsDaycare().WithPetName("") },
				errIs:  appointment.ErrMissingPet,
			},
			{
				name:   "daycare without package",
				mutate: func(b *builder.AppointmentBuilder) { b.AsDaycare().WithPackage("") },
				errIs:  appointment.ErrMissingPackage,
			},
			{
				name:   "daycare with package and pet name",
				mutate: func(b *builder.AppointmentBuilder) { b.AsDaycare() },
			},
		})
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		first, err1 := builder.NewAppointmentBuilder().BuildDomain(testClock)
		second, err2 := builder.NewAppointmentBuilder().BuildDomain(testClock)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func TestChangeStatus(t *testing.T) {
	appt, err := builder.NewAppointmentBuilder().BuildDomain(testClock)
	require.NoError(t, err)

	t.Run("any member may follow any other", func(t *testing.T) {
		for _, next := range []appointment.Status{
			appointment.StatusAccepted,
			appointment.StatusRejected,
			appointment.StatusPending,
			appointment.StatusCancelled,
		} {
			require.NoError(t, appt.ChangeStatus(next))
			assert.Equal(t, next, appt.Status())
		}
	})

	t.Run("rejects unknown member", func(t *testing.T) {
		err := appt.ChangeStatus(appointment.Status("approved"))
		require.ErrorIs(t, err, appointment.ErrInvalidStatus)
	})

	t.Run("rejected and cancelled free the slot", func(t *testing.T) {
		require.NoError(t, appt.ChangeStatus(appointment.StatusRejected))
		assert.False(t, appt.BlocksSlot())
		require.NoError(t, appt.ChangeStatus(appointment.StatusCancelled))
		assert.False(t, appt.BlocksSlot())
		require.NoError(t, appt.ChangeStatus(appointment.StatusAccepted))
		assert.True(t, appt.BlocksSlot())
	})
}

func TestReschedule(t *testing.T) {
	appt, err := builder.NewAppointmentBuilder().BuildDomain(testClock)
	require.NoError(t, err)

	newDate, err := appointment.NewDateISO("2026-09-20")
	require.NoError(t, err)
	newWindow, err := appointment.NewTimeWindow(840, 870)
	require.NoError(t, err)

	appt.Reschedule(newDate, newWindow)
	assert.Equal(t, newDate, appt.Date())
	assert.Equal(t, newWindow, appt.Window())
}

func TestUpdateDetails(t *testing.T) {
	t.Run("re-checks service requirements", func(t *testing.T) {
		appt, err := builder.NewAppointmentBuilder().BuildDomain(testClock)
		require.NoError(t, err)

		err = appt.UpdateDetails(appt.Owner(), appt.Pet(), appt.PackageID(), "", appt.Notes())
		require.ErrorIs(t, err, appointment.ErrMissingReason)

		err = appt.UpdateDetails(appointment.OwnerContact{}, appt.Pet(), appt.PackageID(), "checkup", "")
		require.ErrorIs(t, err, appointment.ErrMissingContact)
	})

	t.Run("applies new values", func(t *testing.T) {
		appt, err := builder.NewAppointmentBuilder().BuildDomain(testClock)
		require.NoError(t, err)

		owner := appt.Owner()
		owner.Phone = "555-0199"
		require.NoError(t, appt.UpdateDetails(owner, appt.Pet(), appt.PackageID(), "Follow-up visit", "bring records"))
		assert.Equal(t, "555-0199", appt.Owner().Phone)
		assert.Equal(t, "Follow-up visit", appt.Reason())
		assert.Equal(t, "bring records", appt.Notes())
	})
}

func runEntityCases(t *testing.T, cases []entityCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewAppointmentBuilder().With(c.mutate).BuildDomain(testClock)

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
