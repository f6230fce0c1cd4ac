package booking

import "time"

// Validator checks the static booking rules, everything that can be
// decided without looking at other bookings. The overlap rule needs
// the database and stays with the caller, which combines both checks
// inside one transaction.
type Validator struct {
	OpenHour  int // first hour a booking may start (e.g. 9 for 09:00)
	CloseHour int // hour by which a booking must end (e.g. 20 for 20:00)
}

// Check validates a candidate window and headcount against a room's
// capacity. Rules, in the order they are reported:
//
//   - bookedNum must not exceed capacity
//   - start must be strictly before end
//   - the window must fall within operating hours: a start before
//     OpenHour:00 or an end after CloseHour:00 is rejected, ending
//     exactly at CloseHour:00 is allowed
func (v Validator) Check(start, end time.Time, bookedNum, capacity int) error {
	if bookedNum > capacity {
		return ErrCapacityExceeded
	}
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	if start.Hour() < v.OpenHour {
		return ErrOutsideHours
	}
	if end.Hour() > v.CloseHour ||
		(end.Hour() == v.CloseHour && (end.Minute() > 0 || end.Second() > 0)) {
		return ErrOutsideHours
	}
	return nil
}

// Overlaps reports whether two half-open intervals [s1,e1) and
// [s2,e2) intersect. Both comparisons are strict, so an interval
// beginning exactly where the other ends does not overlap. The
// conflict check against stored bookings runs this same predicate in
// SQL, see BookingRepo.CountOverlapTx.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
