package registrar

import (
	"context"
	"fmt"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// Whois resolves records over the WHOIS protocol.
type Whois struct {
	client *whois.Client
}

// NewWhois creates a WHOIS lookup whose queries give up after timeout.
func NewWhois(timeout time.Duration) *Whois {
	return &Whois{client: whois.NewClient().SetTimeout(timeout)}
}

// Lookup implements Lookup.
func (w *Whois) Lookup(ctx context.Context, domain string) (Record, error) {
	type result struct {
		raw string
		err error
	}
	done := make(chan result, 1)
	go func() {
		raw, err := w.client.Whois(domain)
		done <- result{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return Record{}, fmt.Errorf("whois %s: %w", domain, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return Record{}, fmt.Errorf("whois %s: %w", domain, res.err)
		}

		return ParseWhois(domain, res.raw)
	}
}

// ParseWhois extracts a Record from a raw WHOIS response.
func ParseWhois(domain, raw string) (Record, error) {
	info, err := whoisparser.Parse(raw)
	if err != nil {
		return Record{}, fmt.Errorf("could not parse whois response of %s: %w", domain, err)
	}
	if info.Domain == nil || info.Domain.CreatedDate == "" {
		return Record{}, ErrNoCreationDate
	}

	created, err := ParseDate(info.Domain.CreatedDate)
	if err != nil {
		return Record{}, err
	}

	rec := Record{Domain: domain, CreatedAt: created, Source: SourceWhois}
	if info.Registrar != nil {
		rec.Registrar = info.Registrar.Name
	}

	return rec, nil
}
