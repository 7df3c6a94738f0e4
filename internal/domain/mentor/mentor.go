// Package mentor defines the mentor record model and the store field names
// shared by the predicate compiler, the repository, and the FT index schema.
package mentor

import "fmt"

// Store field names. TAG fields hold strings, NUMERIC fields hold numbers;
// languages is a comma-separated multi-value TAG.
const (
	FieldName         = "name"
	FieldAge          = "age"
	FieldGender       = "gender"
	FieldProfession   = "profession_area"
	FieldHourlyPrice  = "hourly_price"
	FieldRating       = "rating"
	FieldExperience   = "experience_level"
	FieldCity         = "city"
	FieldOnline       = "available_online"
	FieldLanguages    = "languages"
	FieldAvailability = "availability_code"
	FieldPhotoURL     = "photo_url"
	FieldDetails      = "other_details"
)

// Record is a materialized mentor document.
type Record struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	Profession       string   `json:"profession_area"`
	HourlyPrice      float64  `json:"hourly_price"`
	Rating           float64  `json:"rating"`
	Experience       int      `json:"experience_level"`
	City             string   `json:"city"`
	Online           bool     `json:"available_online"`
	Languages        []string `json:"languages"`
	AvailabilityCode int      `json:"availability_code"`
	PhotoURL         string   `json:"photo_url,omitempty"`
	Details          string   `json:"other_details,omitempty"`
}

// Validate checks an inbound record before it is stored.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("mentor id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("mentor name is required")
	}
	if r.Profession == "" {
		return fmt.Errorf("mentor profession area is required")
	}
	if r.Age < 0 {
		return fmt.Errorf("mentor age must be non-negative, got %d", r.Age)
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("mentor rating must be in [0, 5], got %g", r.Rating)
	}
	if r.AvailabilityCode < 0 || r.AvailabilityCode > 3 {
		return fmt.Errorf("availability code must be in [0, 3], got %d", r.AvailabilityCode)
	}
	return nil
}
