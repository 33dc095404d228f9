// Package gemini implements llm.Client on the Google Generative Language API.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/jx"

	"phishguard/pkg/llm"
)

const (
	// Provider is the name reported by Client.Provider.
	Provider = "gemini"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash-lite"
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Client calls the generateContent endpoint.
type Client struct {
	httpClient *http.Client
	opts       llm.Options
}

var _ llm.Client = (*Client)(nil)

// New creates a Gemini client. A nil httpClient uses http.DefaultClient.
func New(httpClient *http.Client, opts llm.Options) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{httpClient: httpClient, opts: opts.WithDefaults(DefaultModel, DefaultBaseURL)}
}

func (c *Client) Provider() string { return Provider }

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if c.opts.APIKey == "" {
		return "", llm.ErrNoAPIKey
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimSuffix(c.opts.BaseURL, "/"), url.PathEscape(c.opts.Model), url.QueryEscape(c.opts.APIKey))
	body := EncodeRequest(systemPrompt, prompt)

	return llm.Retry(ctx, Provider, c.opts, func(ctx context.Context) (string, error) {
		b, err := llm.Post(ctx, c.httpClient, Provider, endpoint, nil, body)
		if err != nil {
			return "", err
		}

		return DecodeResponse(b)
	})
}

// EncodeRequest renders a generateContent request body.
func EncodeRequest(systemPrompt, prompt string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("system_instruction", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("parts", func(e *jx.Encoder) { textParts(e, systemPrompt) })
			})
		})
		e.Field("contents", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("parts", func(e *jx.Encoder) { textParts(e, prompt) })
				})
			})
		})
		e.Field("generationConfig", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("temperature", func(e *jx.Encoder) { e.Float64(llm.Temperature) })
				e.Field("maxOutputTokens", func(e *jx.Encoder) { e.Int(llm.MaxOutputTokens) })
			})
		})
	})

	return e.Bytes()
}

func textParts(e *jx.Encoder, text string) {
	e.Arr(func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("text", func(e *jx.Encoder) { e.Str(text) })
		})
	})
}

// DecodeResponse extracts candidates[0].content.parts[0].text.
func DecodeResponse(body []byte) (string, error) {
	var text string
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "candidates" {
			return d.Skip()
		}

		return llm.First(d, func(d *jx.Decoder) error {
			return d.Obj(func(d *jx.Decoder, key string) error {
				if key != "content" {
					return d.Skip()
				}

				return d.Obj(func(d *jx.Decoder, key string) error {
					if key != "parts" {
						return d.Skip()
					}

					return llm.First(d, func(d *jx.Decoder) error {
						return d.Obj(func(d *jx.Decoder, key string) error {
							if key != "text" {
								return d.Skip()
							}
							s, err := d.Str()
							text = s

							return err
						})
					})
				})
			})
		})
	})
	if err != nil {
		return "", fmt.Errorf("could not decode gemini response: %w", err)
	}
	if text == "" {
		return "", llm.ErrEmptyResponse
	}

	return text, nil
}
