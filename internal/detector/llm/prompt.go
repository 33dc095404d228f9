package llm

import (
	"fmt"
	"strings"

	"phishguard/internal/detector"
)

// SystemPrompt instructs the model to answer with a single JSON object.
const SystemPrompt = `You are a cyber security analyst deciding whether a website is a phishing or scam site.
Judge the site from the information provided and answer ONLY with a JSON object of this shape:

{
  "verdict": "phishing" | "suspicious" | "safe",
  "confidence": 0.0-1.0,
  "risk_score": 0-100,
  "reasons": ["reason 1", "reason 2"],
  "recommendation": "a short message for the user"
}

Guidelines:
- A domain that resembles a well-known site without matching it exactly is likely phishing.
- Asking for sensitive information over plain HTTP is dangerous.
- Urgent or threatening wording raises the likelihood of phishing.
- Asking for many kinds of personal information at once is suspicious.
- Several weak signals together should raise the overall risk.

Write reasons and the recommendation in Korean.`

const (
	maxTextPreview = 300
	maxForms       = 3
)

// BuildPrompt renders the analysis request for dc. ragContext may be empty.
func BuildPrompt(dc detector.Context, ragContext string) string {
	var b strings.Builder

	b.WriteString("## Website phishing analysis request\n\n")

	b.WriteString("### 1. URL\n")
	fullURL := dc.URL
	if fullURL == "" {
		fullURL = dc.Protocol + "//" + dc.Hostname + dc.Path
	}
	path := dc.Path
	if path == "" {
		path = "/"
	}
	fmt.Fprintf(&b, "- Full URL: %s\n", fullURL)
	fmt.Fprintf(&b, "- Domain: %s\n", dc.Hostname)
	fmt.Fprintf(&b, "- Protocol: %s\n", dc.Protocol)
	fmt.Fprintf(&b, "- Path: %s\n\n", path)

	if len(dc.Prior) > 0 {
		b.WriteString("### 2. Automated detector results\n")
		for _, f := range dc.Prior {
			fmt.Fprintf(&b, "- [%s] **%s**: risk %d/100 (confidence %.0f%%)\n", level(f.Risk), f.Name, f.Risk, f.Confidence*100)
			fmt.Fprintf(&b, "  -> %s\n", f.Reason)
		}
		b.WriteString("\n")
	}

	if ragContext != "" {
		b.WriteString("### 3. Related phishing patterns\n")
		b.WriteString(ragContext)
		b.WriteString("\n")
	}

	b.WriteString("### 4. Page\n")
	title := "(none)"
	if dc.Page != nil && dc.Page.Title != "" {
		title = dc.Page.Title
	}
	fmt.Fprintf(&b, "- Title: %s\n", title)
	if page := dc.Page; page != nil {
		if page.MetaDescription != "" {
			fmt.Fprintf(&b, "- Meta description: %s\n", page.MetaDescription)
		}
		if len(page.Forms) > 0 {
			fmt.Fprintf(&b, "- %d form(s) found\n", len(page.Forms))
			for _, form := range page.Forms[:min(maxForms, len(page.Forms))] {
				types := make([]string, 0, len(form.Inputs))
				for _, in := range form.Inputs {
					types = append(types, in.Type)
				}
				fmt.Fprintf(&b, "  - form (%s): input types [%s]\n", form.Method, strings.Join(types, ", "))
			}
		}
		if page.TextContent != "" {
			fmt.Fprintf(&b, "- Text excerpt: %q\n", preview(page.TextContent, maxTextPreview))
		}
	}

	b.WriteString("\n### Request\n")
	b.WriteString("Considering everything above, decide whether this website is a phishing or scam site.\n")
	b.WriteString("Answer only in the JSON format specified.\n")

	return b.String()
}

func level(risk int) string {
	switch {
	case risk >= 70:
		return "HIGH"
	case risk >= 40:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// preview returns the first n runes of s with whitespace runs collapsed.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}

	return strings.Join(strings.Fields(string(r)), " ")
}
