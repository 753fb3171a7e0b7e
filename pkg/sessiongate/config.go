package sessiongate

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-loadable configuration: the session timer durations
// plus the named rate limit policies the host constructs at startup.
type Config struct {
	// Session shapes the inactivity state machine
	Session SessionConfig `yaml:"session"`

	// Limits maps policy names ("api", "auth", "transfer", ...) to their
	// window parameters
	Limits map[string]LimitConfig `yaml:"limits,omitempty"`
}

// SessionConfig holds the timer durations as duration strings ("15m",
// "90s") so configs stay readable.
type SessionConfig struct {
	Timeout       string `yaml:"timeout"`
	WarningLead   string `yaml:"warning_lead"`
	CheckInterval string `yaml:"check_interval"`
}

// LimitConfig defines one rate limit policy.
type LimitConfig struct {
	Window      string `yaml:"window"`
	MaxRequests int    `yaml:"max_requests"`
}

// NewConfig returns the default configuration: a 15-minute session budget
// with a 2-minute warning band, and the three published policies.
func NewConfig() *Config {
	return &Config{
		Session: SessionConfig{
			Timeout:       "15m",
			WarningLead:   "2m",
			CheckInterval: "5s",
		},
		Limits: map[string]LimitConfig{
			"api":      {Window: "1m", MaxRequests: 100},
			"auth":     {Window: "5m", MaxRequests: 5},
			"transfer": {Window: "1h", MaxRequests: 10},
		},
	}
}

// LoadConfigFromFile loads configuration from a YAML file, filling in
// defaults for anything the file omits.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalidConfig, err)
	}

	config := NewConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks every duration and ceiling in the configuration.
func (c *Config) Validate() error {
	if _, err := c.Session.TimerConfig(); err != nil {
		return fmt.Errorf("%w: invalid session config: %v", ErrInvalidConfig, err)
	}
	for name, limit := range c.Limits {
		if _, err := limit.Policy(); err != nil {
			return fmt.Errorf("%w: invalid limit policy %q: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// TimerConfig parses the duration strings into a validated TimerConfig.
func (s SessionConfig) TimerConfig() (TimerConfig, error) {
	timeout, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return TimerConfig{}, fmt.Errorf("bad timeout %q: %v", s.Timeout, err)
	}
	warning, err := time.ParseDuration(s.WarningLead)
	if err != nil {
		return TimerConfig{}, fmt.Errorf("bad warning_lead %q: %v", s.WarningLead, err)
	}
	interval, err := time.ParseDuration(s.CheckInterval)
	if err != nil {
		return TimerConfig{}, fmt.Errorf("bad check_interval %q: %v", s.CheckInterval, err)
	}

	cfg := TimerConfig{
		Timeout:       timeout,
		WarningLead:   warning,
		CheckInterval: interval,
	}
	if err := cfg.Validate(); err != nil {
		return TimerConfig{}, err
	}
	return cfg, nil
}

// Policy parses the window string into a validated Policy.
func (l LimitConfig) Policy() (Policy, error) {
	window, err := time.ParseDuration(l.Window)
	if err != nil {
		return Policy{}, fmt.Errorf("bad window %q: %v", l.Window, err)
	}

	p := Policy{Window: window, MaxRequests: l.MaxRequests}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// BuildLimiters constructs one limiter per configured policy, keyed by
// policy name.
func (c *Config) BuildLimiters(opts ...LimiterOption) (map[string]*Limiter, error) {
	limiters := make(map[string]*Limiter, len(c.Limits))
	for name, limit := range c.Limits {
		policy, err := limit.Policy()
		if err != nil {
			return nil, fmt.Errorf("%w: limit policy %q: %v", ErrInvalidConfig, name, err)
		}
		limiter, err := policy.NewLimiter(opts...)
		if err != nil {
			return nil, err
		}
		limiters[name] = limiter
	}
	return limiters, nil
}
