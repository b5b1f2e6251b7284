// Package fromnow resolves relative time expressions such as "2 days 3 hours"
// or "-1 year" against a reference timestamp.
//
// An expression is an optional sign followed by any subset of the units
// below, in this order, each preceded by an integer:
//
//	years    y, yr, yrs, year, years
//	months   mo, mnth, mnths, month, months
//	weeks    w, wk, wks, week, weeks
//	days     d, day, days
//	hours    h, hr, hrs, hour, hours
//	minutes  m, min, mins, minute, minutes
//	seconds  s, sec, secs, second, seconds
//
// A year is 365 days and a month is 30 days.
package fromnow

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Layout is the format of timestamps returned by [Resolve]: RFC 3339 in UTC
// with millisecond precision.
const Layout = "2006-01-02T15:04:05.000Z"

// Predefined errors.
var (
	ErrExpression = newError("invalid relative time expression")
	ErrReference  = newError("invalid reference timestamp")
	ErrRange      = newError("relative time out of range")
)

const day = 24 * time.Hour

// maxDays bounds the calendar part of an expression so the result stays
// within the range of [time.Time].
const maxDays = math.MaxInt32

//nolint:gochecknoglobals
var (
	expression = regexp.MustCompile(`^(\s*(?P<sign>[-+]))?` +
		`(\s*(?P<years>\d+)\s*(y|yrs?|years?))?` +
		`(\s*(?P<months>\d+)\s*(mo|mnths?|months?))?` +
		`(\s*(?P<weeks>\d+)\s*(w|wks?|weeks?))?` +
		`(\s*(?P<days>\d+)\s*(d|days?))?` +
		`(\s*(?P<hours>\d+)\s*(h|hrs?|hours?))?` +
		`(\s*(?P<minutes>\d+)\s*(m|mins?|minutes?))?` +
		`(\s*(?P<seconds>\d+)\s*(s|secs?|seconds?))?` +
		`\s*$`)

	calendar = map[string]int64{
		"years":  365,
		"months": 30,
		"weeks":  7,
		"days":   1,
	}

	clock = map[string]time.Duration{
		"hours":   time.Hour,
		"minutes": time.Minute,
		"seconds": time.Second,
	}
)

// span is a parsed expression. Calendar units are counted in whole days and
// applied with [time.Time.AddDate]; only the clock units form a duration.
type span struct {
	sign  int64
	days  int64
	clock time.Duration
}

func parse(expr string) (span, error) {
	s := span{sign: 1}

	match := expression.FindStringSubmatch(expr)
	if match == nil {
		return s, ErrExpression.With(slog.String("expression", expr))
	}

	for i, name := range expression.SubexpNames() {
		if match[i] == "" {
			continue
		}

		if name == "sign" {
			if match[i] == "-" {
				s.sign = -1
			}

			continue
		}

		perDay, isCalendar := calendar[name]
		unit, isClock := clock[name]

		if !isCalendar && !isClock {
			continue
		}

		n, err := strconv.ParseInt(match[i], 10, 64)
		if err != nil {
			return s, ErrExpression.Wrap(err).
				With(slog.String("expression", expr))
		}

		switch {
		case isCalendar:
			if n > (maxDays-s.days)/perDay {
				return s, ErrRange.With(slog.String("expression", expr))
			}

			s.days += n * perDay

		case isClock:
			if n > (math.MaxInt64-int64(s.clock))/int64(unit) {
				return s, ErrRange.With(slog.String("expression", expr))
			}

			s.clock += time.Duration(n) * unit
		}
	}

	return s, nil
}

// Offset parses expr into a signed duration. Expressions spanning more than
// a [time.Duration] can hold (about 292 years) fail with [ErrRange]; use
// [Resolve] for those.
func Offset(expr string) (time.Duration, error) {
	s, err := parse(expr)
	if err != nil {
		return 0, err
	}

	if s.days > (math.MaxInt64-int64(s.clock))/int64(day) {
		return 0, ErrRange.With(slog.String("expression", expr))
	}

	return time.Duration(s.sign) * (time.Duration(s.days)*day + s.clock), nil
}

// Resolve returns the timestamp expr away from reference, formatted with
// [Layout]. An empty reference means the current time.
func Resolve(expr, reference string) (string, error) {
	s, err := parse(expr)
	if err != nil {
		return "", err
	}

	ref := time.Now()

	if reference != "" {
		ref, err = time.Parse(time.RFC3339Nano, reference)
		if err != nil {
			return "", ErrReference.Wrap(err).
				With(slog.String("reference", reference))
		}
	}

	ref = ref.UTC().AddDate(0, 0, int(s.sign*s.days))

	return ref.Add(time.Duration(s.sign) * s.clock).Format(Layout), nil
}
