// Package page extracts the page metadata consumed by the content and
// protocol detectors from an HTML document.
package page

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"phishguard/pkg/domain"
)

const (
	// MaxTextRunes bounds the extracted body text.
	MaxTextRunes = 2000
	// MaxExternalResources bounds the collected image and script URLs.
	MaxExternalResources = 50
)

// Extract parses an HTML document served from pageURL. Relative URLs in forms,
// the favicon and resources are resolved against pageURL.
func Extract(r io.Reader, pageURL string) (*domain.PageContent, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse page url: %w", err)
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse html: %w", err)
	}

	e := &extractor{base: base, out: &domain.PageContent{
		Forms:             make([]domain.Form, 0),
		ExternalResources: make([]string, 0),
	}}
	e.walk(doc, false)
	e.out.TextContent = truncateRunes(strings.Join(strings.Fields(e.text.String()), " "), MaxTextRunes)

	return e.out, nil
}

type extractor struct {
	base     *url.URL
	out      *domain.PageContent
	text     strings.Builder
	hasTitle bool
}

func (e *extractor) walk(n *html.Node, inBody bool) {
	switch n.Type {
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template":
			e.element(n)
			return
		case "title":
			if !e.hasTitle {
				e.hasTitle = true
				e.out.Title = strings.Join(strings.Fields(textOf(n)), " ")
			}
			return
		case "body":
			inBody = true
		}
		e.element(n)
	case html.TextNode:
		if inBody {
			e.text.WriteString(n.Data)
			e.text.WriteString(" ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c, inBody)
	}
}

func (e *extractor) element(n *html.Node) {
	switch n.Data {
	case "meta":
		if strings.EqualFold(attr(n, "name"), "description") && e.out.MetaDescription == "" {
			e.out.MetaDescription = attr(n, "content")
		}
	case "link":
		rel := strings.ToLower(strings.TrimSpace(attr(n, "rel")))
		if (rel == "icon" || rel == "shortcut icon") && e.out.Favicon == "" {
			e.out.Favicon = e.resolve(attr(n, "href"))
		}
	case "form":
		e.out.Forms = append(e.out.Forms, e.form(n))
	case "img", "script":
		src := e.resolve(attr(n, "src"))
		if strings.HasPrefix(src, "http") && len(e.out.ExternalResources) < MaxExternalResources {
			e.out.ExternalResources = append(e.out.ExternalResources, src)
		}
	}
}

// form collects a form and its input, select and textarea fields. A missing
// action resolves to the page itself, as browsers do.
func (e *extractor) form(n *html.Node) domain.Form {
	method := strings.ToUpper(strings.TrimSpace(attr(n, "method")))
	if method == "" {
		method = "GET"
	}
	f := domain.Form{
		Action: e.resolve(attr(n, "action")),
		Method: method,
		Inputs: make([]domain.FormInput, 0),
	}
	if f.Action == "" {
		f.Action = e.base.String()
	}

	var fields func(*html.Node)
	fields = func(c *html.Node) {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "input", "select", "textarea":
				f.Inputs = append(f.Inputs, domain.FormInput{
					Type:        fieldType(c),
					Name:        attr(c, "name"),
					ID:          attr(c, "id"),
					Placeholder: attr(c, "placeholder"),
				})
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			fields(cc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fields(c)
	}

	return f
}

func fieldType(n *html.Node) string {
	switch n.Data {
	case "select":
		if _, multiple := lookup(n, "multiple"); multiple {
			return "select-multiple"
		}
		return "select-one"
	case "textarea":
		return "textarea"
	}
	if t := strings.ToLower(strings.TrimSpace(attr(n, "type"))); t != "" {
		return t
	}

	return "text"
}

func (e *extractor) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	return e.base.ResolveReference(u).String()
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}

	return b.String()
}

func attr(n *html.Node, key string) string {
	v, _ := lookup(n, key)

	return v
}

func lookup(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}
