package repositories

// Every aggregate and listing query goes through these fragments so the
// soft-delete filter cannot drift between call sites. A dashboard figure
// silently including trashed rows is exactly the bug class this prevents.
const (
	activeInquiries  = "inquiries.is_deleted = FALSE"
	trashedInquiries = "inquiries.is_deleted = TRUE"
	activeBookings   = "bookings.is_deleted = FALSE"

	// confirmedBookings additionally restricts to CONFIRMED, the only status
	// that counts toward receivables and the conversion rate.
	confirmedBookings = "bookings.is_deleted = FALSE AND bookings.status = 'CONFIRMED'"
)
