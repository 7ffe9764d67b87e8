// Package freshness contains the core domain logic of the freshness engine:
// status classification, shelf-life rules and the date arithmetic that turns
// item dates into an effective expiration.
package freshness

// Status represents how close a pantry item is to the end of its usable life.
type Status string

const (
	StatusFresh    Status = "fresh"
	StatusUseSoon  Status = "use_soon"
	StatusUseToday Status = "use_today"
	StatusExpired  Status = "expired"
)

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusFresh, StatusUseSoon, StatusUseToday, StatusExpired:
		return true
	}
	return false
}

// AlertWorthy reports whether a transition into this status should raise a
// scan alert. Only the urgent end states qualify.
func (s Status) AlertWorthy() bool {
	return s == StatusUseToday || s == StatusExpired
}

// StatusForDaysRemaining maps days remaining until the effective expiration to
// a freshness status.
func StatusForDaysRemaining(days int) Status {
	switch {
	case days <= 0:
		return StatusExpired
	case days == 1:
		return StatusUseToday
	case days <= 4:
		return StatusUseSoon
	default:
		return StatusFresh
	}
}

// ParseStatus converts a raw string (for example from an AI estimate) into a
// Status, reporting whether the value was recognized.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.IsValid()
}
