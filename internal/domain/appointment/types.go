package appointment

// ServiceType names one of the three bookable care services. Each service
// keeps its own appointment collection and booking defaults.
type ServiceType string

const (
	ServiceVet      ServiceType = "vet"
	ServiceGrooming ServiceType = "grooming"
	ServiceDaycare  ServiceType = "daycare"
)

func (s ServiceType) String() string {
	return string(s)
}

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceVet, ServiceGrooming, ServiceDaycare:
		return true
	default:
		return false
	}
}

// DefaultDurationMinutes is the slot length applied when the caller supplies
// only a start time. Daycare windows are always explicit, so it returns 0.
func (s ServiceType) DefaultDurationMinutes() int {
	switch s {
	case ServiceVet:
		return 30
	case ServiceGrooming:
		return 60
	default:
		return 0
	}
}

func AllServices() []ServiceType {
	return []ServiceType{ServiceVet, ServiceGrooming, ServiceDaycare}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// BlocksSlot reports whether an appointment in this status holds its window
// against new bookings. Rejected and cancelled appointments free the slot.
func (s Status) BlocksSlot() bool {
	return s != StatusRejected && s != StatusCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	return p == PaymentUnpaid || p == PaymentPaid
}
