package redcap

import (
	"math"
	"strconv"
	"time"
)

// Category classifies a raw response value. The source platform stores
// every response as a string; the category decides how that string behaves
// in comparisons and arithmetic.
type Category uint8

const (
	// CategoryMissing is a true empty response. Its numeric value is 0.0.
	CategoryMissing Category = iota
	// CategoryNumber is a string that fully parses as a signed decimal.
	CategoryNumber
	// CategoryDate matches one of the configured date/time layouts. Dates
	// order and compute like text (numeric value NaN).
	CategoryDate
	// CategoryCode is a configured missing-data code such as "NA-2". It is
	// non-blank but carries no numeric value.
	CategoryCode
	// CategoryText is everything else.
	CategoryText
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMissing:
		return "MISSING"
	case CategoryNumber:
		return "NUMBER"
	case CategoryDate:
		return "DATE"
	case CategoryCode:
		return "CODE"
	case CategoryText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// isTextLike reports whether the category carries no numeric value.
func (c Category) isTextLike() bool {
	return c == CategoryText || c == CategoryDate || c == CategoryCode
}

// Config carries the project-level classification settings: the missing-data
// codes configured for the project and the accepted date/time layouts, tried
// in order. The collaborator that loads project metadata fills this in; the
// zero value plus DefaultDateLayouts is a reasonable default.
type Config struct {
	MissingCodes []string
	DateLayouts  []string
}

// DefaultDateLayouts lists the date/time formats the source platform
// accepts, most specific first within each date order (Y-M-D, D-M-Y, M-D-Y).
var DefaultDateLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006",
	"1-2-2006 15:04:05",
	"1-2-2006 15:04",
	"1-2-2006",
}

// DefaultConfig returns a Config with the default date layouts and no
// missing-data codes. Missing-data codes are project configuration and have
// no universal default.
func DefaultConfig() Config {
	return Config{
		DateLayouts: DefaultDateLayouts,
	}
}

// Classifier maps raw strings to (Category, numeric value) using a Config.
// Classification is total: every string gets exactly one category, and the
// numeric value is NaN exactly when the category is TEXT, DATE, or CODE.
type Classifier struct {
	layouts []string
	codes   map[string]struct{}
}

// NewClassifier builds a classifier from the given config.
func NewClassifier(cfg Config) *Classifier {
	codes := make(map[string]struct{}, len(cfg.MissingCodes))
	for _, code := range cfg.MissingCodes {
		codes[code] = struct{}{}
	}
	layouts := cfg.DateLayouts
	if layouts == nil {
		layouts = DefaultDateLayouts
	}
	return &Classifier{
		layouts: layouts,
		codes:   codes,
	}
}

// defaultClassifier backs the package-level constructors.
var defaultClassifier = NewClassifier(DefaultConfig())

// Classify returns the category and numeric value for a raw string.
// Order matters: the missing-code check precedes the numeric parse so a
// numeric-looking code like "-99" classifies as CODE, not NUMBER.
func (c *Classifier) Classify(raw string) (Category, float64) {
	if raw == "" {
		return CategoryMissing, 0.0
	}
	if _, ok := c.codes[raw]; ok {
		return CategoryCode, math.NaN()
	}
	if num, err := strconv.ParseFloat(raw, 64); err == nil {
		return CategoryNumber, num
	}
	for _, layout := range c.layouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return CategoryDate, math.NaN()
		}
	}
	return CategoryText, math.NaN()
}
