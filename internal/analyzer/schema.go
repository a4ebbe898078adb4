package analyzer

import (
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/models"
)

const schemaName = "happy_hour"

// Schema is the structured-output contract sent with every request. Strict
// mode needs every property listed as required and no extra properties, so
// "unknown" is expressed by empty values rather than missing keys.
func Schema(variant models.SchemaVariant) *jsonschema.Definition {
	days := jsonschema.Definition{
		Type:        jsonschema.Array,
		Description: "Days of the week when this happy hour session is available. Do not hallucinate days. Keep this empty if not sure.",
		Items: &jsonschema.Definition{
			Type: jsonschema.String,
			Enum: weekDayNames(),
		},
	}

	var schedule jsonschema.Definition
	switch variant {
	case models.VariantFreeform:
		schedule = object(map[string]jsonschema.Definition{
			"days": days,
			"times": {
				Type:        jsonschema.String,
				Description: "Time range during which this happy hour session occurs.",
			},
		}, "days", "times")
	default:
		schedule = object(map[string]jsonschema.Definition{
			"days": days,
			"start_time": {
				Type:        jsonschema.String,
				Description: "Start time of happy hour in 24-hour format (HH:MM). Do not hallucinate start time. Keep this empty if not sure.",
			},
			"end_time": {
				Type:        jsonschema.String,
				Description: "End time of happy hour in 24-hour format (HH:MM). Do not hallucinate end time. Keep this empty if not sure.",
			},
		}, "days", "start_time", "end_time")
	}

	deal := object(map[string]jsonschema.Definition{
		"item":        {Type: jsonschema.String, Description: "Name of the food or drink item."},
		"description": {Type: jsonschema.String, Description: "Any further details about the food or drink item."},
		"deal":        {Type: jsonschema.String, Description: "Details of the deal for the item."},
	}, "item", "description", "deal")

	sessionProps := map[string]jsonschema.Definition{
		"name":     {Type: jsonschema.String, Description: "The name of the happy hour session."},
		"schedule": schedule,
		"deals": {
			Type:        jsonschema.Array,
			Description: "List of deals available during this happy hour session. Identify different sessions when there is more than one kind of happy hour with different times or weekday ranges.",
			Items:       &deal,
		},
	}
	sessionRequired := []string{"name", "schedule", "deals"}

	if variant != models.VariantFreeform {
		sessionProps["deals_summary"] = jsonschema.Definition{
			Type:        jsonschema.String,
			Description: "A summary of the deals available during this happy hour session. Keep this under 250 characters. Mention the most important deals by name with their deal or price.",
		}
		sessionRequired = append(sessionRequired, "deals_summary")
	}

	session := object(sessionProps, sessionRequired...)

	root := object(map[string]jsonschema.Definition{
		"happy_hours": {
			Type:        jsonschema.Array,
			Description: "List of happy hour sessions with individual schedules and deals. Look for different schedules and days of happy hours that might have different times or deals.",
			Items:       &session,
		},
	}, "happy_hours")

	return &root
}

func object(props map[string]jsonschema.Definition, required ...string) jsonschema.Definition {
	return jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           props,
		Required:             required,
		AdditionalProperties: false,
	}
}

func weekDayNames() []string {
	names := make([]string, len(models.WeekDays))
	for i, day := range models.WeekDays {
		names[i] = string(day)
	}
	return names
}
