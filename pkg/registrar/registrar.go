// Package registrar looks up the registration date of a domain from public
// registries.
package registrar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sources of a Record.
const (
	SourceWhois = "whois"
	SourceRDAP  = "rdap"
)

// ErrNoCreationDate is returned when a registry answered but did not report
// a creation date.
var ErrNoCreationDate = errors.New("registry did not report a creation date")

// Record is the registration data of a domain.
type Record struct {
	Domain    string
	CreatedAt time.Time
	// Registrar is empty when unknown.
	Registrar string
	// Source is SourceWhois or SourceRDAP.
	Source string
}

// Lookup resolves the registration record of a registrable domain.
//
//go:generate mockgen -package mockregistrar -source=registrar.go -destination=mock/mockregistrar.go *
type Lookup interface {
	Lookup(ctx context.Context, domain string) (Record, error)
}

// Chain tries each lookup in order and returns the first success.
type Chain []Lookup

// Lookup implements Lookup.
func (c Chain) Lookup(ctx context.Context, domain string) (Record, error) {
	var errs []error
	for _, l := range c {
		rec, err := l.Lookup(ctx, domain)
		if err == nil {
			return rec, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return Record{}, fmt.Errorf("no registry configured for %s", domain)
	}

	return Record{}, errors.Join(errs...)
}

// dateLayouts are the creation date formats seen in registry responses.
var dateLayouts = []string{ //nolint: gochecknoglobals
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006. 01. 02.",
}

// ParseDate parses a registry date in any of the known layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unknown date format %q", s)
}
