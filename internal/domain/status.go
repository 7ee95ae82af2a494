package domain

var statusDisplay = map[BookingStatus]string{
	StatusAdvancePaid: "Advance Paid",
	StatusFullyPaid:   "Fully Paid",
	StatusCompleted:   "Completed",
	StatusCancelled:   "Cancelled",
}

var statusStorage = map[string]BookingStatus{
	"Advance Paid": StatusAdvancePaid,
	"Fully Paid":   StatusFullyPaid,
	"Completed":    StatusCompleted,
	"Cancelled":    StatusCancelled,
}

// StatusToDisplay maps the storage form to the display label.
// Unknown values pass through unchanged.
func StatusToDisplay(status string) string {
	if label, ok := statusDisplay[BookingStatus(status)]; ok {
		return label
	}
	return status
}

// StatusToStorage maps a display label back to the storage form.
// Unknown values pass through unchanged.
func StatusToStorage(label string) string {
	if status, ok := statusStorage[label]; ok {
		return string(status)
	}
	return label
}

// IsKnownStatus reports whether status is one of the four storage values
func IsKnownStatus(status string) bool {
	_, ok := statusDisplay[BookingStatus(status)]
	return ok
}
