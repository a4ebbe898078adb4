package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredSample = `{
  "happy_hours": [
    {
      "name": "Weekday Happy Hour",
      "schedule": {"days": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday"], "start_time": "15:00", "end_time": "18:00"},
      "deals": [{"item": "Draft Beer", "description": "All drafts", "deal": "$5"}],
      "deals_summary": "$5 draft beers"
    }
  ]
}`

func TestParseAnalysisStructured(t *testing.T) {
	result, err := ParseAnalysis(structuredSample, VariantStructured)
	require.NoError(t, err)
	require.Len(t, result.HappyHours, 1)

	session := result.HappyHours[0]
	assert.Equal(t, "Weekday Happy Hour", session.Name)
	assert.Equal(t, WeekDays[:5], session.Schedule.Days)
	assert.Equal(t, "15:00", session.Schedule.StartTime)
	assert.Equal(t, "18:00", session.Schedule.EndTime)
	assert.Equal(t, "$5", session.Deals[0].Deal)
}

func TestParseAnalysisFreeform(t *testing.T) {
	raw := `{"happy_hours":[{"name":"HH","schedule":{"days":["Saturday"],"times":"3 PM - 6 PM"},"deals":[]}]}`

	result, err := ParseAnalysis(raw, VariantFreeform)
	require.NoError(t, err)
	assert.Equal(t, "3 PM - 6 PM", result.HappyHours[0].Schedule.Times)

	_, err = ParseAnalysis(raw, VariantStructured)
	assert.Error(t, err)
}

func TestParseAnalysisEmptyMeansUnknown(t *testing.T) {
	raw := `{"happy_hours":[{"name":"Specials","schedule":{"days":[],"start_time":"","end_time":""},"deals":[],"deals_summary":""}]}`

	result, err := ParseAnalysis(raw, VariantStructured)
	require.NoError(t, err)
	assert.Empty(t, result.HappyHours[0].Schedule.Days)
	assert.Empty(t, result.HappyHours[0].Schedule.StartTime)
}

func TestParseAnalysisRejects(t *testing.T) {
	long := strings.Repeat("x", MaxDealsSummaryLength+1)

	testCases := map[string]string{
		"not json":          `happy hour!`,
		"missing key":       `{}`,
		"unknown field":     `{"happy_hours":[],"notes":"x"}`,
		"bad day":           `{"happy_hours":[{"name":"a","schedule":{"days":["Funday"]},"deals":[]}]}`,
		"summary too long":  `{"happy_hours":[{"name":"a","schedule":{"days":[]},"deals":[],"deals_summary":"` + long + `"}]}`,
		"trailing data":     `{"happy_hours":[]} {}`,
		"empty session":     `{"happy_hours":[{}]}`,
		"null session":      `{"happy_hours":[null]}`,
		"missing name":      `{"happy_hours":[{"schedule":{"days":["Monday"],"start_time":"15:00","end_time":"18:00"},"deals":[],"deals_summary":""}]}`,
		"missing schedule":  `{"happy_hours":[{"name":"a","deals":[],"deals_summary":""}]}`,
		"missing deals":     `{"happy_hours":[{"name":"a","schedule":{"days":["Monday"],"start_time":"15:00","end_time":"18:00"},"deals_summary":""}]}`,
		"null deals":        `{"happy_hours":[{"name":"a","schedule":{"days":["Monday"],"start_time":"15:00","end_time":"18:00"},"deals":null,"deals_summary":""}]}`,
		"missing summary":   `{"happy_hours":[{"name":"a","schedule":{"days":["Monday"],"start_time":"15:00","end_time":"18:00"},"deals":[]}]}`,
		"null days":         `{"happy_hours":[{"name":"a","schedule":{"days":null,"start_time":"","end_time":""},"deals":[],"deals_summary":""}]}`,
		"missing end time":  `{"happy_hours":[{"name":"a","schedule":{"days":[],"start_time":"15:00"},"deals":[],"deals_summary":""}]}`,
		"incomplete deal":   `{"happy_hours":[{"name":"a","schedule":{"days":["Monday"],"start_time":"15:00","end_time":"18:00"},"deals":[{"item":"Beer"}],"deals_summary":""}]}`,
		"12 hour times":     `{"happy_hours":[{"name":"a","schedule":{"days":[],"start_time":"3 PM","end_time":"6pm"},"deals":[],"deals_summary":""}]}`,
		"hour out of range": `{"happy_hours":[{"name":"a","schedule":{"days":[],"start_time":"24:00","end_time":"25:30"},"deals":[],"deals_summary":""}]}`,
		"unpadded hour":     `{"happy_hours":[{"name":"a","schedule":{"days":[],"start_time":"9:00","end_time":"11:00"},"deals":[],"deals_summary":""}]}`,
	}

	for name, raw := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAnalysis(raw, VariantStructured)
			assert.Error(t, err)
		})
	}
}

func TestParseAnalysisFreeformRequiresTimes(t *testing.T) {
	_, err := ParseAnalysis(`{"happy_hours":[{"name":"HH","schedule":{"days":[]},"deals":[]}]}`, VariantFreeform)
	assert.ErrorContains(t, err, "missing times")
}

func TestPageImageSetPages(t *testing.T) {
	set := PageImageSet{3: "c.png", 1: "a.png", 2: "b.png"}
	assert.Equal(t, []int{1, 2, 3}, set.Pages())
	assert.Empty(t, PageImageSet{}.Pages())
}
