package slowlog

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSlowLog(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should measure breakpoints", func(t *testing.T) {
		tests := []struct {
			name          string
			logic         func(slowLog Logger) []time.Duration
			expectedTimes []time.Duration
		}{
			{
				name: "single breakpoint",
				logic: func(slowLog Logger) []time.Duration {
					slowLog.Start("hunit:portals")
					time.Sleep(time.Millisecond)
					return []time.Duration{slowLog.Stop("hunit:portals")}
				},
				expectedTimes: []time.Duration{time.Millisecond},
			},
			{
				name: "nested breakpoints",
				logic: func(slowLog Logger) []time.Duration {
					slowLog.Start("outer")
					time.Sleep(time.Millisecond)

					slowLog.Start("inner")
					time.Sleep(time.Millisecond)
					inner := slowLog.Stop("inner")

					time.Sleep(time.Millisecond)
					outer := slowLog.Stop("outer")

					return []time.Duration{inner, outer}
				},
				expectedTimes: []time.Duration{time.Millisecond, 3 * time.Millisecond},
			},
			{
				name: "restarted breakpoint",
				logic: func(slowLog Logger) []time.Duration {
					slowLog.Start("same")
					time.Sleep(3 * time.Millisecond)
					slowLog.Start("same")
					time.Sleep(time.Millisecond)

					return []time.Duration{slowLog.Stop("same")}
				},
				expectedTimes: []time.Duration{time.Millisecond},
			},
		}

		slowLog := CreateLogger(&log)

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				times := test.logic(slowLog)
				assert.Empty(t, slowLog.breakpoints)
				for i, expectedTime := range test.expectedTimes {
					assert.GreaterOrEqual(t, times[i], expectedTime)
				}
			})
		}
	})

	t.Run("should ignore unknown breakpoints", func(t *testing.T) {
		slowLog := CreateLogger(&log)
		assert.Equal(t, time.Duration(0), slowLog.Stop("never started"))
	})

	t.Run("should log tracked breakpoints", func(t *testing.T) {
		out := &bytes.Buffer{}
		log := zerolog.New(out)

		stop := Track(CreateLogger(&log), "hunit:reservations")
		stop()

		assert.Contains(t, out.String(), `"label":"slowlog"`)
		assert.Contains(t, out.String(), `"breakpoint_name":"hunit:reservations"`)
	})
}
