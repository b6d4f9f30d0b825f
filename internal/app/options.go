package service

import (
	"github.com/okian/nowbar/internal/config"
	"github.com/okian/nowbar/internal/domain/judge"
	"github.com/okian/nowbar/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig copies every engine setting from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		s.lanes = cfg.Lanes
		s.nowbarFraction = cfg.NowbarFraction
		s.lookahead = cfg.LookaheadSeconds
		s.lookbehind = cfg.LookbehindSeconds
		s.slop = cfg.SlopWindowSeconds
		s.stepPoints = cfg.ScorePerComboStep
	}
}

// WithLanes bounds gem lanes to 1..n. Zero accepts any positive lane.
func WithLanes(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.lanes = n
		}
	}
}

// WithNowbarFraction sets where song time "now" sits as a fraction of height.
func WithNowbarFraction(f float64) Option {
	return func(s *Service) { s.nowbarFraction = f }
}

// WithLookahead sets how many seconds ahead of now gems become visible.
func WithLookahead(seconds float64) Option {
	return func(s *Service) { s.lookahead = seconds }
}

// WithLookbehind sets how long after now events stay active.
func WithLookbehind(seconds float64) Option {
	return func(s *Service) { s.lookbehind = seconds }
}

// WithSlopWindow sets the hit tolerance in seconds.
func WithSlopWindow(seconds float64) Option {
	return func(s *Service) { s.slop = seconds }
}

// WithStepPoints sets the points per combo step.
func WithStepPoints(points int) Option {
	return func(s *Service) { s.stepPoints = points }
}

// WithNotifier adds a consumer of judgment notifications, such as audio
// feedback or the presenter. Notifiers run inside session calls and must not
// call back into the Service.
func WithNotifier(n judge.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
