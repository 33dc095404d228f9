package registrar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-faster/jx"

	"phishguard/pkg/serrors"
)

// DefaultRDAPBaseURL is the public RDAP bootstrap redirector.
const DefaultRDAPBaseURL = "https://rdap.org"

// RDAP resolves records from an RDAP service.
type RDAP struct {
	httpClient *http.Client
	baseURL    string
}

// NewRDAP creates an RDAP lookup querying baseURL.
func NewRDAP(httpClient *http.Client, baseURL string) *RDAP {
	if baseURL == "" {
		baseURL = DefaultRDAPBaseURL
	}

	return &RDAP{httpClient: httpClient, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Lookup implements Lookup.
func (r *RDAP) Lookup(ctx context.Context, domain string) (Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.baseURL+"/domain/"+url.PathEscape(domain), nil)
	if err != nil {
		return Record{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Record{}, fmt.Errorf("could not read response body: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Record{}, serrors.With(serrors.ErrNotFound, "rdap: %s is not registered", domain)
	case resp.StatusCode == http.StatusTooManyRequests:
		return Record{}, serrors.With(serrors.ErrRateLimited, "rdap: rate limited")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return Record{}, fmt.Errorf("rdap lookup failed with status %d", resp.StatusCode)
	}

	return ParseRDAP(domain, b)
}

// ParseRDAP extracts a Record from an RDAP domain object.
func ParseRDAP(domain string, body []byte) (Record, error) {
	var (
		registered string
		registrar  string
		firstName  string
	)

	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "events":
			return d.Arr(func(d *jx.Decoder) error {
				var action, date string
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					switch key {
					case "eventAction":
						s, err := d.Str()
						action = s

						return err
					case "eventDate":
						s, err := d.Str()
						date = s

						return err
					default:
						return d.Skip()
					}
				}); err != nil {
					return err
				}
				if action == "registration" && registered == "" {
					registered = date
				}

				return nil
			})
		case "entities":
			return d.Arr(func(d *jx.Decoder) error {
				roles, name, err := decodeEntity(d)
				if err != nil {
					return err
				}
				if firstName == "" {
					firstName = name
				}
				if registrar == "" && slices.Contains(roles, "registrar") {
					registrar = name
				}

				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Record{}, fmt.Errorf("could not decode rdap response: %w", err)
	}
	if registered == "" {
		return Record{}, ErrNoCreationDate
	}

	created, err := ParseDate(registered)
	if err != nil {
		return Record{}, err
	}
	if registrar == "" {
		registrar = firstName
	}

	return Record{Domain: domain, CreatedAt: created, Registrar: registrar, Source: SourceRDAP}, nil
}

// decodeEntity reads the roles and the vCard "fn" property of an RDAP entity.
func decodeEntity(d *jx.Decoder) ([]string, string, error) {
	var (
		roles []string
		name  string
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "roles":
			return d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				roles = append(roles, s)

				return err
			})
		case "vcardArray":
			fn, err := decodeVCardName(d)
			name = fn

			return err
		default:
			return d.Skip()
		}
	})

	return roles, name, err
}

// decodeVCardName walks a jCard, ["vcard", [[name, params, type, value], ...]],
// and returns the value of its "fn" property.
func decodeVCardName(d *jx.Decoder) (string, error) {
	var fn string
	err := d.Arr(func(d *jx.Decoder) error {
		if d.Next() != jx.Array {
			return d.Skip()
		}

		return d.Arr(func(d *jx.Decoder) error {
			if d.Next() != jx.Array {
				return d.Skip()
			}

			var (
				i    int
				prop string
			)

			return d.Arr(func(d *jx.Decoder) error {
				defer func() { i++ }()

				switch {
				case i == 0 && d.Next() == jx.String:
					s, err := d.Str()
					prop = s

					return err
				case i == 3 && prop == "fn" && d.Next() == jx.String:
					s, err := d.Str()
					if fn == "" {
						fn = s
					}

					return err
				default:
					return d.Skip()
				}
			})
		})
	})

	return fn, err
}
