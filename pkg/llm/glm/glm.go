// Package glm implements llm.Client on the z.ai chat completions API.
package glm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-faster/jx"

	"phishguard/pkg/llm"
)

const (
	// Provider is the name reported by Client.Provider.
	Provider = "glm"
	// DefaultModel is used when no model is configured.
	DefaultModel = "glm-4.7-flash"
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://api.z.ai/api/paas/v4"
)

// Client calls the chat completions endpoint with bearer authentication.
type Client struct {
	httpClient *http.Client
	opts       llm.Options
}

var _ llm.Client = (*Client)(nil)

// New creates a GLM client. A nil httpClient uses http.DefaultClient.
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

	endpoint := strings.TrimSuffix(c.opts.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.opts.APIKey}
	body := EncodeRequest(c.opts.Model, systemPrompt, prompt)

	return llm.Retry(ctx, Provider, c.opts, func(ctx context.Context) (string, error) {
		b, err := llm.Post(ctx, c.httpClient, Provider, endpoint, headers, body)
		if err != nil {
			return "", err
		}

		return DecodeResponse(b)
	})
}

// EncodeRequest renders a chat completions request with thinking disabled.
func EncodeRequest(model, systemPrompt, prompt string) []byte {
	message := func(e *jx.Encoder, role, content string) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("role", func(e *jx.Encoder) { e.Str(role) })
			e.Field("content", func(e *jx.Encoder) { e.Str(content) })
		})
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("model", func(e *jx.Encoder) { e.Str(model) })
		e.Field("messages", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				message(e, "system", systemPrompt)
				message(e, "user", prompt)
			})
		})
		e.Field("temperature", func(e *jx.Encoder) { e.Float64(llm.Temperature) })
		e.Field("max_tokens", func(e *jx.Encoder) { e.Int(llm.MaxOutputTokens) })
		e.Field("thinking", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("type", func(e *jx.Encoder) { e.Str("disabled") })
			})
		})
	})

	return e.Bytes()
}

// DecodeResponse extracts choices[0].message.content.
func DecodeResponse(body []byte) (string, error) {
	var content string
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "choices" {
			return d.Skip()
		}

		return llm.First(d, func(d *jx.Decoder) error {
			return d.Obj(func(d *jx.Decoder, key string) error {
				if key != "message" {
					return d.Skip()
				}

				return d.Obj(func(d *jx.Decoder, key string) error {
					if key != "content" || d.Next() != jx.String {
						return d.Skip()
					}
					s, err := d.Str()
					content = s

					return err
				})
			})
		})
	})
	if err != nil {
		return "", fmt.Errorf("could not decode glm response: %w", err)
	}
	if content == "" {
		return "", llm.ErrEmptyResponse
	}

	return content, nil
}
