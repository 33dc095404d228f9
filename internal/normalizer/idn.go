package normalizer

import (
	"strings"

	"golang.org/x/net/idna"
)

const acePrefix = "xn--"

// DecodeInternationalized decodes every ASCII-compatible-encoded label of
// hostname to Unicode. Labels that fail to decode are kept as they are.
func DecodeInternationalized(hostname string) string {
	if !strings.Contains(strings.ToLower(hostname), acePrefix) {
		return hostname
	}

	labels := strings.Split(hostname, ".")
	for i, label := range labels {
		if !strings.HasPrefix(strings.ToLower(label), acePrefix) {
			continue
		}

		decoded, err := idna.Punycode.ToUnicode(strings.ToLower(label))
		if err != nil || decoded == "" {
			continue
		}
		labels[i] = decoded
	}

	return strings.Join(labels, ".")
}
