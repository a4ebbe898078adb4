package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"
)

type WeekDay string

const (
	Monday    WeekDay = "Monday"
	Tuesday   WeekDay = "Tuesday"
	Wednesday WeekDay = "Wednesday"
	Thursday  WeekDay = "Thursday"
	Friday    WeekDay = "Friday"
	Saturday  WeekDay = "Saturday"
	Sunday    WeekDay = "Sunday"
)

// WeekDays in calendar order, Monday first.
var WeekDays = []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d WeekDay) Valid() bool {
	for _, day := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// SchemaVariant selects the shape of Schedule requested from the model.
type SchemaVariant string

const (
	// VariantStructured asks for 24h start/end times and a deals summary.
	VariantStructured SchemaVariant = "structured"
	// VariantFreeform asks for a single human-readable time range.
	VariantFreeform SchemaVariant = "freeform"
)

const MaxDealsSummaryLength = 250

// clockTime is a 24-hour HH:MM time.
var clockTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Schedule carries either StartTime/EndTime (structured) or Times
// (freeform). Empty values mean unknown.
type Schedule struct {
	Days      []WeekDay `json:"days"`
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`
	Times     string    `json:"times,omitempty"`
}

type Deal struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	Deal        string `json:"deal"`
}

type HappyHourSession struct {
	Name         string   `json:"name"`
	Schedule     Schedule `json:"schedule"`
	Deals        []Deal   `json:"deals"`
	DealsSummary string   `json:"deals_summary,omitempty"`
}

type AnalysisResult struct {
	HappyHours []HappyHourSession `json:"happy_hours"`
}

// ParseAnalysis decodes raw model output and checks it against the schema
// for variant. Unknown fields are rejected.
func ParseAnalysis(raw string, variant SchemaVariant) (*AnalysisResult, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var result struct {
		HappyHours *[]HappyHourSession `json:"happy_hours"`
	}
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode analysis: trailing data after JSON object")
	}
	if result.HappyHours == nil {
		return nil, fmt.Errorf("analysis is missing happy_hours")
	}

	if err := checkRequired([]byte(raw), variant); err != nil {
		return nil, err
	}

	out := &AnalysisResult{HappyHours: *result.HappyHours}
	if err := out.Validate(variant); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalysisResult) Validate(variant SchemaVariant) error {
	for i, session := range r.HappyHours {
		for _, day := range session.Schedule.Days {
			if !day.Valid() {
				return fmt.Errorf("happy_hours[%d]: invalid day %q", i, day)
			}
		}

		switch variant {
		case VariantFreeform:
			if session.Schedule.StartTime != "" || session.Schedule.EndTime != "" {
				return fmt.Errorf("happy_hours[%d]: start_time/end_time not allowed in freeform schedule", i)
			}
			if session.DealsSummary != "" {
				return fmt.Errorf("happy_hours[%d]: deals_summary not allowed in freeform schema", i)
			}
		default:
			if session.Schedule.Times != "" {
				return fmt.Errorf("happy_hours[%d]: times not allowed in structured schedule", i)
			}
			if err := checkClock(i, "start_time", session.Schedule.StartTime); err != nil {
				return err
			}
			if err := checkClock(i, "end_time", session.Schedule.EndTime); err != nil {
				return err
			}
		}

		if n := utf8.RuneCountInString(session.DealsSummary); n > MaxDealsSummaryLength {
			return fmt.Errorf("happy_hours[%d]: deals_summary is %d characters, max %d", i, n, MaxDealsSummaryLength)
		}
	}
	return nil
}

// checkClock accepts an empty value as unknown.
func checkClock(session int, key, value string) error {
	if value != "" && !clockTime.MatchString(value) {
		return fmt.Errorf("happy_hours[%d]: %s %q is not HH:MM", session, key, value)
	}
	return nil
}

type object map[string]json.RawMessage

// checkRequired enforces the keys the strict response schema marks as
// required. Typed decoding alone cannot tell a missing key or null from an
// empty value.
func checkRequired(raw []byte, variant SchemaVariant) error {
	var doc struct {
		HappyHours []object `json:"happy_hours"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode analysis: %w", err)
	}

	sessionKeys := []string{"name", "schedule", "deals"}
	scheduleKeys := []string{"days", "times"}
	if variant != VariantFreeform {
		sessionKeys = append(sessionKeys, "deals_summary")
		scheduleKeys = []string{"days", "start_time", "end_time"}
	}

	for i, session := range doc.HappyHours {
		path := fmt.Sprintf("happy_hours[%d]", i)
		if session == nil {
			return fmt.Errorf("%s: session is null", path)
		}
		if err := requireKeys(session, path, sessionKeys...); err != nil {
			return err
		}

		var schedule object
		if err := json.Unmarshal(session["schedule"], &schedule); err != nil {
			return fmt.Errorf("%s.schedule: %w", path, err)
		}
		if err := requireKeys(schedule, path+".schedule", scheduleKeys...); err != nil {
			return err
		}

		var deals []object
		if err := json.Unmarshal(session["deals"], &deals); err != nil {
			return fmt.Errorf("%s.deals: %w", path, err)
		}
		for j, deal := range deals {
			dealPath := fmt.Sprintf("%s.deals[%d]", path, j)
			if deal == nil {
				return fmt.Errorf("%s: deal is null", dealPath)
			}
			if err := requireKeys(deal, dealPath, "item", "description", "deal"); err != nil {
				return err
			}
		}
	}
	return nil
}

func requireKeys(obj object, path string, keys ...string) error {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok {
			return fmt.Errorf("%s: missing %s", path, key)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("%s: %s is null", path, key)
		}
	}
	return nil
}
