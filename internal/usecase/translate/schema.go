package translate

import "github.com/xeipuuv/gojsonschema"

// payloadSchema is the structural contract for the extracted payload. It
// checks types only: value domains (rating bounds, availability tokens) are
// the normalizer's job, and unknown properties are allowed.
const payloadSchema = `{
  "type": "object",
  "properties": {
    "professionArea": {"type": "string"},
    "maxPrice": {"type": ["number", "null"]},
    "minRating": {"type": ["number", "null"]},
    "location": {
      "type": ["object", "null"],
      "properties": {
        "city": {"type": ["string", "null"]},
        "onlineFlexible": {"type": ["boolean", "null"]}
      }
    },
    "preferredLanguage": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "experienceLevel": {"type": ["string", "number", "null"]},
    "availability": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "ageRange": {
      "type": ["object", "null"],
      "properties": {
        "minAge": {"type": ["number", "null"]},
        "maxAge": {"type": ["number", "null"]}
      }
    },
    "genderPreference": {"type": ["string", "null"]}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(payloadSchema)

// validatePayload checks the extracted JSON against the structural schema.
// Returns the first violation description, or "" when the payload conforms.
func validatePayload(payload string) (string, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(payload))
	if err != nil {
		return "", err
	}
	if result.Valid() {
		return "", nil
	}
	return result.Errors()[0].String(), nil
}
