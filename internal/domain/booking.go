package domain

import "time"

// BookingStatus is the lifecycle state of a session booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
)

// DateLayout is the calendar-date wire format for bookings.
const DateLayout = "2006-01-02"

// AllowedTransitions defines the booking state machine. The lifecycle is
// strictly forward; there are no cancel or revert edges.
var AllowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed},
	BookingStatusConfirmed: {BookingStatusCompleted},
	BookingStatusCompleted: {},
}

// IsValidBookingStatus reports whether s is a known lifecycle state.
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from the
// current status to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range AllowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Booking is one scheduled session between a student and a teacher.
type Booking struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	TeacherID string        `json:"teacher_id"`
	Skill     string        `json:"skill"`
	Date      string        `json:"date"`
	TimeSlot  string        `json:"time_slot"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsRatable reports whether the booking has reached the state where the
// student may submit a rating.
func (b *Booking) IsRatable() bool {
	return b.Status == BookingStatusCompleted
}

// DefaultTimeSlots is the bookable schedule grid used when no override is
// configured. Slots are opaque labels; ordering is chronological.
func DefaultTimeSlots() []string {
	return []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00", "18:00"}
}

// ValidTimeSlot reports whether slot is one of the offered slots.
func ValidTimeSlot(slot string, slots []string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// ValidBookingDate reports whether date parses as a calendar day.
func ValidBookingDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// PastBookingDate reports whether date falls before now's calendar day in
// UTC. Today is bookable; yesterday is not.
func PastBookingDate(date string, now time.Time) bool {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	y, m, d := now.UTC().Date()
	return day.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
