package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	require.Equal(t, NewDate(2024, time.June, 1), d)
	require.Equal(t, "2024-06-01", d.String())

	_, err = ParseDate("06/01/2024")
	require.Error(t, err)

	_, err = ParseDate("2024-02-30")
	require.Error(t, err)
}

func TestDate_DaysUntil(t *testing.T) {
	start := MustDate("2024-06-01")

	require.Equal(t, 3, start.DaysUntil(MustDate("2024-06-04")))
	require.Equal(t, 0, start.DaysUntil(start))
	require.Equal(t, -1, start.DaysUntil(MustDate("2024-05-31")))
	// spans a leap day
	require.Equal(t, 2, MustDate("2024-02-28").DaysUntil(MustDate("2024-03-01")))
	require.Equal(t, 366, MustDate("2024-01-01").DaysUntil(MustDate("2025-01-01")))
	// longer than a time.Duration can hold
	require.Equal(t, 173125, MustDate("2026-10-14").DaysUntil(MustDate("2500-10-14")))
	require.Equal(t, -173125, MustDate("2500-10-14").DaysUntil(MustDate("2026-10-14")))
	require.Equal(t, 3652058, MustDate("0001-01-01").DaysUntil(MustDate("9999-12-31")))
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2024, time.June, 1, 23, 30, 0, 0, loc)

	require.Equal(t, MustDate("2024-06-01"), DateOf(late))
	require.True(t, DateOf(late).Before(MustDate("2024-06-02")))
	require.True(t, DateOf(late).AddDays(1).Equal(MustDate("2024-06-02")))
	require.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), DateOf(late).Time())
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Start *Date `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-06-01"}`), &payload))
	require.NotNil(t, payload.Start)
	require.Equal(t, MustDate("2024-06-01"), *payload.Start)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	require.JSONEq(t, `{"start":"2024-06-01"}`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"start":20240601}`), &payload))
	require.Error(t, json.Unmarshal([]byte(`{"start":"June 1"}`), &payload))
}

func TestDate_ScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.June, 4, 0, 0, 0, 0, time.FixedZone("", 0))))
	require.Equal(t, MustDate("2024-06-04"), d)

	require.NoError(t, d.Scan([]byte("2024-07-01")))
	require.Equal(t, MustDate("2024-07-01"), d)

	require.Error(t, d.Scan(42))

	v, err := MustDate("2024-06-01").Value()
	require.NoError(t, err)
	require.Equal(t, "2024-06-01", v)
}
