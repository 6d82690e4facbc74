package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mentorhub/backend/internal/constants"

	"github.com/qri-io/jsonschema"
)

// Completed-profile shapes per track. Submission at registration only needs full_name.
var profileSchemas = map[constants.Track]string{
	constants.TrackCandidate: `{
		"type": "object",
		"required": ["full_name"],
		"minProperties": 2,
		"properties": {
			"full_name": {"type": "string", "minLength": 1},
			"headline": {"type": "string"},
			"bio": {"type": "string"},
			"goals": {"type": "array", "items": {"type": "string"}},
			"interests": {"type": "array", "items": {"type": "string"}},
			"experience_level": {"type": "string", "enum": ["beginner", "intermediate", "advanced"]}
		}
	}`,
	constants.TrackMentor: `{
		"type": "object",
		"required": ["full_name", "skills"],
		"properties": {
			"full_name": {"type": "string", "minLength": 1},
			"headline": {"type": "string"},
			"bio": {"type": "string"},
			"skills": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
			"years_experience": {"type": "number", "minimum": 0},
			"hourly_rate": {"type": "number", "minimum": 0}
		}
	}`,
}

// ProfileValidator checks completed onboarding payloads against the compiled track schemas
type ProfileValidator struct {
	schemas map[constants.Track]*jsonschema.Schema
}

func NewProfileValidator() (*ProfileValidator, error) {
	v := &ProfileValidator{schemas: make(map[constants.Track]*jsonschema.Schema)}

	for track, raw := range profileSchemas {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(raw), rs); err != nil {
			return nil, fmt.Errorf("compile %s profile schema: %w", track, err)
		}
		v.schemas[track] = rs
	}
	return v, nil
}

// Validate returns a ValidationFailed error listing every schema violation
func (v *ProfileValidator) Validate(ctx context.Context, track constants.Track, payload []byte) error {
	schema, ok := v.schemas[track]
	if !ok {
		return validationErr("no profile schema for track %q", track)
	}

	verrs, err := schema.ValidateBytes(ctx, payload)
	if err != nil {
		return validationErr("profile is not valid JSON: %v", err)
	}
	if len(verrs) == 0 {
		return nil
	}

	var sb strings.Builder
	for i, e := range verrs {
		if i > 0 {
			sb.WriteString("; ")
		}
		if e.PropertyPath != "" {
			sb.WriteString(e.PropertyPath)
			sb.WriteString(": ")
		}
		sb.WriteString(e.Message)
	}
	return validationErr("profile does not match the %s schema: %s", track, sb.String())
}
