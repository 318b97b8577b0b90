package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Address is a shipping address in a user's address book.
type Address struct {
	ID            uuid.UUID // The Global Unique Identifier (GUID) for the address.
	UserID        uuid.UUID // The owning user.
	FullName      string    // Recipient name.
	StreetAddress string
	AptSuite      string
	City          string
	State         string
	PostalCode    string
	Country       string
	PhoneNumber   string
	Latitude      *float64  // Optional geographic latitude.
	Longitude     *float64  // Optional geographic longitude.
	IsDefault     bool      // At most one active address per user carries this flag.
	Active        bool      // Cleared on soft delete.
	CreatedAt     time.Time // Timestamp of when this address was created.
	UpdatedAt     time.Time // Timestamp of the last modification.
}

// MissingFields lists the required fields that are blank.
func (a *Address) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"streetAddress", a.StreetAddress},
		{"city", a.City},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
		{"phoneNumber", a.PhoneNumber},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	return missing
}

// HasValidCoordinates checks the optional coordinates are within range.
func (a *Address) HasValidCoordinates() bool {
	if a.Latitude != nil && (*a.Latitude < -90 || *a.Latitude > 90) {
		return false
	}
	if a.Longitude != nil && (*a.Longitude < -180 || *a.Longitude > 180) {
		return false
	}

	return true
}
