package domain

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// transitions таблица допустимых переходов; в pending вернуться нельзя
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a known booking status
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from s to target is allowed
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", NewValidationError("unknown booking status %q", s)
	}
	return status, nil
}

// ActiveStatuses статусы, занимающие вместимость
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
