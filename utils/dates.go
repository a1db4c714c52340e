package utils

import (
	"strings"
	"time"
)

// Dates are stored as ISO strings (YYYY-MM-DD), matching the document fields
// the mobile/web clients already read.

// ISODate formats t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DisplayDate turns an ISO date into DD/MM/YYYY for human-facing output.
func DisplayDate(iso string) string {
	if iso == "" {
		return "N/A"
	}
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// InvoiceDate turns an ISO date into the DD/MM/YY form used in invoice codes.
func InvoiceDate(iso string) string {
	if iso == "" {
		return ""
	}
	parts := strings.Split(iso, "-")
	if len(parts) != 3 || len(parts[0]) < 4 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0][2:]
}
