package domain

import "strings"

// KnownDomain is an entry of the reference corpus of legitimate domains.
type KnownDomain struct {
	DisplayName   string   `yaml:"name"     json:"name"`
	PrimaryDomain string   `yaml:"primary"  json:"primary"`
	Aliases       []string `yaml:"aliases"  json:"aliases,omitempty"`
	Category      string   `yaml:"category" json:"category"`
}

// Domains returns the primary domain followed by all aliases.
func (k KnownDomain) Domains() []string {
	out := make([]string, 0, len(k.Aliases)+1)
	out = append(out, k.PrimaryDomain)

	return append(out, k.Aliases...)
}

// Owns reports whether hostname equals, or is a subdomain of, the primary
// domain or any alias.
func (k KnownDomain) Owns(hostname string) bool {
	for _, d := range k.Domains() {
		if d == "" {
			continue
		}
		if hostname == d || strings.HasSuffix(hostname, "."+d) {
			return true
		}
	}

	return false
}
