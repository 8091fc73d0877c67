// Package cronparser computes snapshot times from five-field cron expressions
// or descriptors such as @hourly and @every 15m.
package cronparser

import (
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// NextAfter returns the next occurrence of spec strictly after `after`.
// tz applies unless spec carries its own CRON_TZ=/TZ= prefix; UTC otherwise.
func (p *Parser) NextAfter(
	spec,
	tz string,
	after time.Time,
) (time.Time, error) {
	schedule, err := parse(spec, tz)
	if err != nil {
		return time.Time{}, err
	}

	next := schedule.Next(after)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("cron spec %q: %w", spec, ErrNoOccurrence)
	}

	return next, nil
}

// Validate fails on a spec or timezone that can never produce a snapshot time.
func (p *Parser) Validate(spec, tz string) error {
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("load timezone %q: %w", tz, err)
		}
	}

	_, err := parse(spec, tz)

	return err
}

func parse(spec, tz string) (cron.Schedule, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, ErrEmptySpec
	}

	schedule, err := _parser.Parse(withTZ(spec, tz))
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return schedule, nil
}

func withTZ(spec, tz string) string {
	if strings.HasPrefix(spec, "CRON_TZ=") || strings.HasPrefix(spec, "TZ=") {
		return spec
	}

	if tz == "" {
		tz = "UTC"
	}

	return "CRON_TZ=" + tz + " " + spec
}
