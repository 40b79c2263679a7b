package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	chicago := LoadLocation("America/Chicago")
	instant := time.Date(2025, time.January, 14, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC), StartOfDay(instant, time.UTC))
	assert.Equal(t, "Jan 13", StartOfDay(instant, chicago).Format(DayLabelFormat))
}

func TestFromUnixMilli(t *testing.T) {
	assert.Equal(t, time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC), FromUnixMilli(1736812800000).UTC())
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))
}
