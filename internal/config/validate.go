package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Validate checks that all required fields are set and values are valid.
func (c *LoaderConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Fetch.MaxAttempts < 1 {
		return errors.New("fetch.max_attempts must be >= 1")
	}
	if c.Fetch.RetryDelay < 0 {
		return errors.New("fetch.retry_delay must be >= 0")
	}

	if _, err := time.LoadLocation(c.Load.Timezone); err != nil {
		return fmt.Errorf("load.timezone %q is not a known time zone", c.Load.Timezone)
	}

	if c.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron %q is invalid: %v", c.Schedule.Cron, err)
		}
	}
	if c.Schedule.HealthPort < 1 || c.Schedule.HealthPort > 65535 {
		return fmt.Errorf("schedule.health_port must be between 1 and 65535, got %d", c.Schedule.HealthPort)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return c.validateInstruments()
}

func (c *LoaderConfig) validateInstruments() error {
	if len(c.Instruments) == 0 {
		return errors.New("instruments must not be empty")
	}

	seen := make(map[string]bool, len(c.Instruments))
	for i, inst := range c.Instruments {
		prefix := fmt.Sprintf("instruments[%d]", i)
		if inst.Ticker == "" {
			return fmt.Errorf("%s.ticker is required", prefix)
		}
		if !inst.Interval.Valid() {
			return fmt.Errorf("%s.interval %q is not supported", prefix, inst.Interval)
		}
		if !inst.Period.Valid() {
			return fmt.Errorf("%s.period %q is not supported", prefix, inst.Period)
		}

		key := inst.Ticker + "/" + string(inst.Interval)
		if seen[key] {
			return fmt.Errorf("%s duplicates %s", prefix, key)
		}
		seen[key] = true
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	switch db.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("%s.driver must be mysql or postgres, got %q", prefix, db.Driver)
	}
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.ConnectTimeout < 0 || db.ReadTimeout < 0 || db.WriteTimeout < 0 {
		return fmt.Errorf("%s timeouts must be >= 0", prefix)
	}
	return nil
}
