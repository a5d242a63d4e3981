// Package timezone pins every wall-clock operation to APP_TIMEZONE (an IANA
// name such as "Asia/Jakarta"). Booking dates are calendar days in that zone.
// An unknown or empty name falls back to UTC.
package timezone
