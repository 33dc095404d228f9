package llm

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/jx"
)

// Verdict is the classification returned by the model.
type Verdict string

const (
	VerdictPhishing   Verdict = "phishing"
	VerdictSuspicious Verdict = "suspicious"
	VerdictSafe       Verdict = "safe"
)

// Response is a validated model reply.
type Response struct {
	Verdict        Verdict  `json:"verdict"`
	Confidence     float64  `json:"confidence"`
	RiskScore      int      `json:"risk_score"`
	Reasons        []string `json:"reasons"`
	Recommendation string   `json:"recommendation"`
}

var (
	codeBlock  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	jsonObject = regexp.MustCompile(`(?s)\{.*\}`)
)

// Parse turns a raw model reply into a Response. The JSON payload is taken
// from a fenced code block, or else from the outermost braces. Replies that
// do not decode fall back to keyword inference with confidence 0.3.
func Parse(text string) Response {
	if strings.TrimSpace(text) == "" {
		return Response{
			Verdict:        VerdictSuspicious,
			Confidence:     0.1,
			RiskScore:      50,
			Reasons:        []string{"the model returned an empty response"},
			Recommendation: recommendation(VerdictSuspicious),
		}
	}

	payload := text
	if m := codeBlock.FindStringSubmatch(text); m != nil {
		payload = strings.TrimSpace(m[1])
	} else if m := jsonObject.FindString(text); m != "" {
		payload = m
	}

	resp, err := decode([]byte(payload))
	if err != nil {
		return infer(text)
	}

	return resp
}

// decode reads the reply object, clamping numbers and defaulting anything
// missing or invalid.
func decode(b []byte) (Response, error) {
	var (
		resp                  Response
		confidence, riskScore float64
	)

	d := jx.DecodeBytes(b)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "verdict":
			if d.Next() != jx.String {
				return d.Skip()
			}
			s, err := d.Str()
			resp.Verdict = Verdict(s)

			return err
		case "confidence":
			v, err := number(d)
			confidence = v

			return err
		case "risk_score":
			v, err := number(d)
			riskScore = v

			return err
		case "reasons":
			if d.Next() != jx.Array {
				return d.Skip()
			}

			return d.Arr(func(d *jx.Decoder) error {
				if d.Next() != jx.String {
					return d.Skip()
				}
				s, err := d.Str()
				resp.Reasons = append(resp.Reasons, s)

				return err
			})
		case "recommendation":
			if d.Next() != jx.String {
				return d.Skip()
			}
			s, err := d.Str()
			resp.Recommendation = s

			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Response{}, err //nolint: wrapcheck
	}

	switch resp.Verdict {
	case VerdictPhishing, VerdictSuspicious, VerdictSafe:
	default:
		resp.Verdict = VerdictSuspicious
	}
	// zero counts as missing
	if confidence == 0 {
		confidence = 0.5
	}
	if riskScore == 0 {
		riskScore = 50
	}
	resp.Confidence = min(1, max(0, confidence))
	resp.RiskScore = int(math.Round(min(100, max(0, riskScore))))
	if resp.Reasons == nil {
		resp.Reasons = []string{}
	}
	if resp.Recommendation == "" {
		resp.Recommendation = recommendation(resp.Verdict)
	}

	return resp, nil
}

// number accepts a JSON number or a numeric string. Anything else reads as 0.
func number(d *jx.Decoder) (float64, error) {
	switch d.Next() {
	case jx.Number:
		return d.Float64() //nolint: wrapcheck
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return 0, err //nolint: wrapcheck
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) {
			return 0, nil
		}

		return v, nil
	default:
		return 0, d.Skip() //nolint: wrapcheck
	}
}

func infer(text string) Response {
	lower := strings.ToLower(text)
	verdict, risk := VerdictSuspicious, 50
	switch {
	case strings.Contains(lower, "phishing") || strings.Contains(lower, "피싱") || strings.Contains(lower, "위험"):
		verdict, risk = VerdictPhishing, 80
	case strings.Contains(lower, "safe") || strings.Contains(lower, "안전") || strings.Contains(lower, "정상"):
		verdict, risk = VerdictSafe, 15
	}

	return Response{
		Verdict:        verdict,
		Confidence:     0.3,
		RiskScore:      risk,
		Reasons:        []string{"the reply was not valid JSON; the verdict was inferred from its text"},
		Recommendation: recommendation(verdict),
	}
}

func recommendation(v Verdict) string {
	switch v {
	case VerdictPhishing:
		return "This site looks like a phishing site. Do not enter personal information and leave immediately."
	case VerdictSafe:
		return "This site appears to be safe."
	default:
		return "Suspicious elements were found on this site. Proceed with caution."
	}
}

func suggestedAction(v Verdict) string {
	switch v {
	case VerdictPhishing:
		return "leave this site"
	case VerdictSafe:
		return "safe to continue"
	default:
		return "be careful"
	}
}
