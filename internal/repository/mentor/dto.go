package mentor

import (
	"strconv"
	"strings"

	dommentor "github.com/mentorhub/mentorsearch/internal/domain/mentor"
)

// buildHashFields flattens a record into the hash representation the index
// ingests. Languages are stored comma separated to match the TAG separator.
func buildHashFields(rec *dommentor.Record) map[string]string {
	fields := map[string]string{
		dommentor.FieldName:         rec.Name,
		dommentor.FieldAge:          strconv.Itoa(rec.Age),
		dommentor.FieldGender:       rec.Gender,
		dommentor.FieldProfession:   rec.Profession,
		dommentor.FieldHourlyPrice:  formatFloat(rec.HourlyPrice),
		dommentor.FieldRating:       formatFloat(rec.Rating),
		dommentor.FieldExperience:   strconv.Itoa(rec.Experience),
		dommentor.FieldCity:         rec.City,
		dommentor.FieldOnline:       strconv.FormatBool(rec.Online),
		dommentor.FieldLanguages:    strings.Join(rec.Languages, ","),
		dommentor.FieldAvailability: strconv.Itoa(rec.AvailabilityCode),
	}
	if rec.PhotoURL != "" {
		fields[dommentor.FieldPhotoURL] = rec.PhotoURL
	}
	if rec.Details != "" {
		fields[dommentor.FieldDetails] = rec.Details
	}
	return fields
}

// parseHashFields rebuilds a record from its hash representation. Unknown
// fields are ignored and malformed numerics fall back to zero values so a
// single corrupt entry cannot fail a whole result set.
func parseHashFields(id string, fields map[string]string) dommentor.Record {
	rec := dommentor.Record{
		ID:         id,
		Name:       fields[dommentor.FieldName],
		Gender:     fields[dommentor.FieldGender],
		Profession: fields[dommentor.FieldProfession],
		City:       fields[dommentor.FieldCity],
		PhotoURL:   fields[dommentor.FieldPhotoURL],
		Details:    fields[dommentor.FieldDetails],
	}

	rec.Age, _ = strconv.Atoi(fields[dommentor.FieldAge])
	rec.HourlyPrice, _ = strconv.ParseFloat(fields[dommentor.FieldHourlyPrice], 64)
	rec.Rating, _ = strconv.ParseFloat(fields[dommentor.FieldRating], 64)
	rec.Experience, _ = strconv.Atoi(fields[dommentor.FieldExperience])
	rec.Online, _ = strconv.ParseBool(fields[dommentor.FieldOnline])
	rec.AvailabilityCode, _ = strconv.Atoi(fields[dommentor.FieldAvailability])

	if langs := fields[dommentor.FieldLanguages]; langs != "" {
		rec.Languages = strings.Split(langs, ",")
	}
	return rec
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
