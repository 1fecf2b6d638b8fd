package appointment

import (
	"regexp"
	"strings"

	"petcare-hub/internal/pkg/errs"
	"petcare-hub/internal/pkg/timeofday"
)

var (
	ErrInvalidDate    = errs.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidWindow  = errs.New("invalid time window")
	ErrMissingContact = errs.New("owner contact is incomplete")
	ErrMissingPet     = errs.New("pet descriptor is incomplete")
)

var dateISOPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateISO is a calendar day kept as the literal string "YYYY-MM-DD".
// Days compare as strings; no timezone conversion ever happens.
type DateISO string

func NewDateISO(s string) (DateISO, error) {
	if !dateISOPattern.MatchString(s) {
		return "", ErrInvalidDate
	}
	return DateISO(s), nil
}

func (d DateISO) String() string {
	return string(d)
}

// TimeWindow is a half-open interval [start, end) in minutes from midnight,
// contained within a single day.
type TimeWindow struct {
	start int
	end   int
}

func NewTimeWindow(startMinutes, endMinutes int) (TimeWindow, error) {
	if startMinutes < 0 || startMinutes >= timeofday.MinutesPerDay {
		return TimeWindow{}, ErrInvalidWindow
	}
	if endMinutes <= startMinutes || endMinutes > timeofday.MinutesPerDay {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{start: startMinutes, end: endMinutes}, nil
}

// WindowFromStart derives the window for fixed-duration services (vet,
// grooming) from a bare start offset.
func WindowFromStart(service ServiceType, startMinutes int) (TimeWindow, error) {
	duration := service.DefaultDurationMinutes()
	if duration == 0 {
		return TimeWindow{}, ErrInvalidWindow
	}
	return NewTimeWindow(startMinutes, startMinutes+duration)
}

func (w TimeWindow) StartMinutes() int {
	return w.start
}

func (w TimeWindow) EndMinutes() int {
	return w.end
}

// Overlaps implements the half-open overlap rule: touching endpoints do not
// conflict.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return other.start < w.end && other.end > w.start
}

func (w TimeWindow) StartLabel() string {
	return timeofday.ToLabel(w.start)
}

func (w TimeWindow) EndLabel() string {
	return timeofday.ToLabel(w.end)
}

// OwnerContact is presence-checked only; the business never validates
// formats beyond that.
type OwnerContact struct {
	Name           string
	Phone          string
	Email          string
	EmergencyPhone string
}

func NewOwnerContact(name, phone, email, emergencyPhone string) (OwnerContact, error) {
	c := OwnerContact{
		Name:           strings.TrimSpace(name),
		Phone:          strings.TrimSpace(phone),
		Email:          strings.TrimSpace(email),
		EmergencyPhone: strings.TrimSpace(emergencyPhone),
	}
	if c.Name == "" || c.Phone == "" || c.Email == "" {
		return OwnerContact{}, ErrMissingContact
	}
	return c, nil
}

type PetDescriptor struct {
	Type string
	Size string
	Name string
}

func NewPetDescriptor(petType, size, name string) (PetDescriptor, error) {
	p := PetDescriptor{
		Type: strings.TrimSpace(petType),
		Size: strings.TrimSpace(size),
		Name: strings.TrimSpace(name),
	}
	if p.Type == "" {
		return PetDescriptor{}, ErrMissingPet
	}
	return p, nil
}
