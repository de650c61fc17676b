package slowlog

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Start(breakpoint string)
	Stop(breakpoint string) time.Duration
}

type slowLogger struct {
	log         *zerolog.Logger
	breakpoints map[string]time.Time
	sync.Mutex
}

func (s *slowLogger) Start(breakpoint string) {
	s.Lock()
	s.breakpoints[breakpoint] = time.Now()
	s.Unlock()
}

// Stop logs the time elapsed since the matching Start. Unknown breakpoints report zero.
func (s *slowLogger) Stop(breakpoint string) time.Duration {
	s.Lock()
	defer s.Unlock()

	start, ok := s.breakpoints[breakpoint]
	if !ok {
		return 0
	}

	delete(s.breakpoints, breakpoint)
	duration := time.Since(start)

	s.log.Debug().
		Float64("duration", duration.Seconds()).
		Str("breakpoint_name", breakpoint).
		Msg("")

	return duration
}

// Track starts a breakpoint and returns its stop, for use with defer.
func Track(logger Logger, breakpoint string) func() {
	logger.Start(breakpoint)

	return func() {
		logger.Stop(breakpoint)
	}
}

func CreateLogger(log *zerolog.Logger) *slowLogger {
	logger := log.With().Str("label", "slowlog").Logger()
	return &slowLogger{
		log:         &logger,
		breakpoints: make(map[string]time.Time),
	}
}
