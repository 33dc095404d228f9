package v1handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/go-faster/jx"

	"phishguard/internal/analyzer"
	"phishguard/pkg/domain"
	"phishguard/pkg/serrors"
)

// AnalyzeRequest is the body of POST /v1/analyze and POST /v1/analyze/page.
type AnalyzeRequest struct {
	URL       string
	Page      *domain.PageContent
	EnableLLM *bool
	Detectors map[string]bool
	Whitelist []string
}

// SyncRequest is the body of POST /v1/blacklist/sync.
type SyncRequest struct {
	Mode domain.SyncMode
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, serrors.With(serrors.ErrBadRequest, "request body exceeds %d bytes", tooLarge.Limit)
		}

		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	return b, nil
}

// DecodeAnalyzeRequest parses an analyze request body.
func DecodeAnalyzeRequest(body []byte) (AnalyzeRequest, error) {
	var req AnalyzeRequest
	err := jx.DecodeBytes(body).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "url":
			s, err := d.Str()
			req.URL = s

			return err
		case "page":
			if d.Next() == jx.Null {
				return d.Null()
			}
			p, err := decodePage(d)
			req.Page = p

			return err
		case "enableLLM":
			if d.Next() == jx.Null {
				return d.Null()
			}
			v, err := d.Bool()
			req.EnableLLM = &v

			return err
		case "detectors":
			req.Detectors = make(map[string]bool)

			return d.Obj(func(d *jx.Decoder, key string) error {
				v, err := d.Bool()
				req.Detectors[key] = v

				return err
			})
		case "whitelist":
			list, err := decodeStrings(d)
			req.Whitelist = list

			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return AnalyzeRequest{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if req.URL == "" {
		return AnalyzeRequest{}, serrors.With(serrors.ErrBadRequest, "url is required")
	}

	return req, nil
}

// DecodeSyncRequest parses a sync request body. An empty body means an
// incremental sync.
func DecodeSyncRequest(body []byte) (SyncRequest, error) {
	req := SyncRequest{Mode: domain.SyncModeIncremental}
	if len(body) == 0 {
		return req, nil
	}

	err := jx.DecodeBytes(body).Obj(func(d *jx.Decoder, key string) error {
		if key != "mode" {
			return d.Skip()
		}
		s, err := d.Str()
		req.Mode = domain.SyncMode(s)

		return err
	})
	if err != nil {
		return SyncRequest{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return req, nil
}

func decodePage(d *jx.Decoder) (*domain.PageContent, error) {
	p := &domain.PageContent{}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "title":
			p.Title, err = d.Str()
		case "metaDescription":
			p.MetaDescription, err = d.Str()
		case "favicon":
			p.Favicon, err = d.Str()
		case "textContent":
			p.TextContent, err = d.Str()
		case "externalResources":
			p.ExternalResources, err = decodeStrings(d)
		case "forms":
			err = d.Arr(func(d *jx.Decoder) error {
				f, err := decodeForm(d)
				p.Forms = append(p.Forms, f)

				return err
			})
		default:
			err = d.Skip()
		}

		return err
	})

	return p, err
}

func decodeForm(d *jx.Decoder) (domain.Form, error) {
	var f domain.Form
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "action":
			f.Action, err = d.Str()
		case "method":
			f.Method, err = d.Str()
		case "inputs":
			err = d.Arr(func(d *jx.Decoder) error {
				var in domain.FormInput
				err := d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "type":
						in.Type, err = d.Str()
					case "name":
						in.Name, err = d.Str()
					case "id":
						in.ID, err = d.Str()
					case "placeholder":
						in.Placeholder, err = d.Str()
					default:
						err = d.Skip()
					}

					return err
				})
				f.Inputs = append(f.Inputs, in)

				return err
			})
		default:
			err = d.Skip()
		}

		return err
	})

	return f, err
}

func decodeStrings(d *jx.Decoder) ([]string, error) {
	out := make([]string, 0)
	if d.Next() == jx.Null {
		return out, d.Null()
	}
	err := d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		out = append(out, s)

		return err
	})

	return out, err
}

// EncodeResult renders an analyzer result.
func EncodeResult(res *analyzer.Result) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		if res.ID != nil {
			e.Field("id", func(e *jx.Encoder) { e.Str(res.ID.String()) })
		}
		e.Field("cached", func(e *jx.Encoder) { e.Bool(res.Cached) })
		encodeResultFields(e, res.AggregatedResult)
	})

	return e.Bytes()
}

// EncodeAnalysis renders a persisted analysis.
func EncodeAnalysis(a *domain.Analysis) []byte {
	var e jx.Encoder
	encodeAnalysis(&e, a)

	return e.Bytes()
}

// EncodeAnalyses renders one page of analyses.
func EncodeAnalyses(list []domain.Analysis, next string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("analyses", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range list {
					encodeAnalysis(e, &list[i])
				}
			})
		})
		if next != "" {
			e.Field("nextCursor", func(e *jx.Encoder) { e.Str(next) })
		}
	})

	return e.Bytes()
}

func encodeAnalysis(e *jx.Encoder, a *domain.Analysis) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(a.ID.String()) })
		e.Field("url", func(e *jx.Encoder) { e.Str(a.URL) })
		e.Field("hostname", func(e *jx.Encoder) { e.Str(a.Hostname) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(formatTime(a.CreatedAt)) })
		e.Field("result", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) { encodeResultFields(e, a.Result) })
		})
	})
}

func encodeResultFields(e *jx.Encoder, r domain.AggregatedResult) {
	e.Field("hostname", func(e *jx.Encoder) { e.Str(r.Hostname) })
	e.Field("totalRisk", func(e *jx.Encoder) { e.Int(r.TotalRisk) })
	e.Field("riskLevel", func(e *jx.Encoder) { e.Str(string(r.RiskLevel)) })
	e.Field("findings", func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, f := range r.Findings {
				encodeFinding(e, f)
			}
		})
	})
	e.Field("analyzedAt", func(e *jx.Encoder) { e.Str(formatTime(r.AnalyzedAt)) })
	if r.Escalation != "" {
		e.Field("escalation", func(e *jx.Encoder) { e.Str(string(r.Escalation)) })
	}
	if r.Whitelisted {
		e.Field("whitelisted", func(e *jx.Encoder) { e.Bool(true) })
	}
	if r.Skipped {
		e.Field("skipped", func(e *jx.Encoder) { e.Bool(true) })
		e.Field("skipReason", func(e *jx.Encoder) { e.Str(r.SkipReason) })
	}
}

func encodeFinding(e *jx.Encoder, f domain.Finding) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("detector", func(e *jx.Encoder) { e.Str(f.Detector) })
		e.Field("name", func(e *jx.Encoder) { e.Str(f.Name) })
		e.Field("weight", func(e *jx.Encoder) { e.Float64(f.Weight) })
		e.Field("risk", func(e *jx.Encoder) { e.Int(f.Risk) })
		e.Field("confidence", func(e *jx.Encoder) { e.Float64(f.Confidence) })
		e.Field("reason", func(e *jx.Encoder) { e.Str(f.Reason) })
		if len(f.Details) > 0 {
			e.Field("details", func(e *jx.Encoder) { encodeValue(e, map[string]any(f.Details)) })
		}
	})
}

// encodeValue writes detector details. Keys are sorted so responses are
// stable; types jx has no writer for go through encoding/json.
func encodeValue(e *jx.Encoder, v any) {
	switch v := v.(type) {
	case nil:
		e.Null()
	case string:
		e.Str(v)
	case bool:
		e.Bool(v)
	case int:
		e.Int(v)
	case int64:
		e.Int64(v)
	case float64:
		e.Float64(v)
	case time.Time:
		e.Str(formatTime(v))
	case []string:
		e.Arr(func(e *jx.Encoder) {
			for _, s := range v {
				e.Str(s)
			}
		})
	case []any:
		e.Arr(func(e *jx.Encoder) {
			for _, item := range v {
				encodeValue(e, item)
			}
		})
	case domain.Details:
		encodeValue(e, map[string]any(v))
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.Obj(func(e *jx.Encoder) {
			for _, k := range keys {
				e.Field(k, func(e *jx.Encoder) { encodeValue(e, v[k]) })
			}
		})
	default:
		b, err := json.Marshal(v)
		if err != nil {
			e.Str(fmt.Sprint(v))

			return
		}
		e.Raw(b)
	}
}

func encodeError(res *ErrorResponse) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(res.Code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(res.Message) })
	})

	return e.Bytes()
}

func encodeCount(field string, n int) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field(field, func(e *jx.Encoder) { e.Int(n) })
	})

	return e.Bytes()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
