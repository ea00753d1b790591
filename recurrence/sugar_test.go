package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSugarConstantsProduceExpectedCadence(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		build  func() (Schedule, error)
		want   time.Duration
	}{
		{name: "secondly", build: Secondly, want: time.Second},
		{name: "minutely", build: Minutely, want: time.Minute},
		{name: "hourly", build: Hourly, want: time.Hour},
		{name: "daily", build: Daily, want: 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched, err := tt.build()
			require.NoError(t, err)

			next, ok := sched.Next(start)
			require.True(t, ok)
			assert.Equal(t, start.Add(tt.want), next)
		})
	}
}
