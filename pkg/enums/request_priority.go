package enums

import "fmt"

// RequestPriority orders purchase requests in the approval queue.
type RequestPriority string

const (
	RequestPriorityLow    RequestPriority = "low"
	RequestPriorityNormal RequestPriority = "normal"
	RequestPriorityHigh   RequestPriority = "high"
	RequestPriorityUrgent RequestPriority = "urgent"
)

var validRequestPriorities = []RequestPriority{
	RequestPriorityLow,
	RequestPriorityNormal,
	RequestPriorityHigh,
	RequestPriorityUrgent,
}

// String implements fmt.Stringer.
func (r RequestPriority) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RequestPriority.
func (r RequestPriority) IsValid() bool {
	for _, candidate := range validRequestPriorities {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRequestPriority converts raw input into a RequestPriority.
func ParseRequestPriority(value string) (RequestPriority, error) {
	for _, candidate := range validRequestPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request priority %q", value)
}
