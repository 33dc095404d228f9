package normalizer

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// multiLabelSuffixes are the two-label public suffixes recognised when
// extracting registrable domains.
var multiLabelSuffixes = map[string]struct{}{ //nolint: gochecknoglobals
	// kr
	"co.kr": {}, "or.kr": {}, "ne.kr": {}, "go.kr": {}, "ac.kr": {}, "pe.kr": {}, "re.kr": {}, "ms.kr": {},
	// jp
	"co.jp": {}, "or.jp": {}, "ne.jp": {}, "ac.jp": {}, "go.jp": {}, "ad.jp": {},
	// uk
	"co.uk": {}, "org.uk": {}, "ac.uk": {}, "gov.uk": {}, "me.uk": {}, "net.uk": {}, "sch.uk": {},
	// au
	"com.au": {}, "net.au": {}, "org.au": {}, "edu.au": {}, "gov.au": {}, "id.au": {},
	// nz
	"co.nz": {}, "net.nz": {}, "org.nz": {}, "ac.nz": {}, "govt.nz": {},
	// cn
	"com.cn": {}, "net.cn": {}, "org.cn": {}, "gov.cn": {}, "edu.cn": {}, "ac.cn": {},
	// tw
	"com.tw": {}, "net.tw": {}, "org.tw": {}, "edu.tw": {}, "gov.tw": {},
	// hk
	"com.hk": {}, "net.hk": {}, "org.hk": {}, "edu.hk": {}, "gov.hk": {},
	// sg
	"com.sg": {}, "net.sg": {}, "org.sg": {}, "edu.sg": {}, "gov.sg": {},
	// in
	"co.in": {}, "net.in": {}, "org.in": {}, "ac.in": {}, "gov.in": {},
	// br
	"com.br": {}, "net.br": {}, "org.br": {}, "edu.br": {}, "gov.br": {},
	// za
	"co.za": {}, "net.za": {}, "org.za": {}, "ac.za": {}, "gov.za": {},
	// th
	"co.th": {}, "or.th": {}, "ac.th": {}, "go.th": {}, "in.th": {},
	// vn
	"com.vn": {}, "net.vn": {}, "org.vn": {}, "edu.vn": {}, "gov.vn": {},
	// my
	"com.my": {}, "net.my": {}, "org.my": {}, "edu.my": {}, "gov.my": {},
	// id
	"co.id": {}, "or.id": {}, "ac.id": {}, "go.id": {}, "web.id": {},
	// ph
	"com.ph": {}, "net.ph": {}, "org.ph": {}, "edu.ph": {}, "gov.ph": {},
	// ng
	"com.ng": {}, "net.ng": {}, "org.ng": {}, "edu.ng": {}, "gov.ng": {},
	// mx
	"com.mx": {}, "net.mx": {}, "org.mx": {}, "edu.mx": {}, "gob.mx": {},
	// ar
	"com.ar": {}, "net.ar": {}, "org.ar": {}, "edu.ar": {}, "gov.ar": {},
	// tr
	"com.tr": {}, "net.tr": {}, "org.tr": {}, "edu.tr": {}, "gov.tr": {},
	// misc
	"com.ru": {}, "co.at": {}, "co.il": {}, "co.ke": {},
}

// singleLabelSuffixes lists the top-level domains known to the normalizer.
var singleLabelSuffixes = map[string]struct{}{ //nolint: gochecknoglobals
	"com": {}, "net": {}, "org": {}, "edu": {}, "gov": {}, "mil": {}, "int": {},
	"kr": {}, "jp": {}, "cn": {}, "tw": {}, "hk": {}, "sg": {}, "th": {}, "vn": {}, "my": {}, "id": {}, "ph": {}, "in": {},
	"uk": {}, "de": {}, "fr": {}, "it": {}, "es": {}, "nl": {}, "be": {}, "at": {}, "ch": {}, "se": {}, "no": {},
	"fi": {}, "dk": {}, "pl": {}, "pt": {}, "ie": {}, "ru": {}, "ua": {}, "cz": {}, "ro": {}, "hu": {}, "gr": {}, "bg": {},
	"us": {}, "ca": {}, "mx": {}, "br": {}, "ar": {}, "cl": {}, "co": {},
	"au": {}, "nz": {}, "za": {}, "ng": {}, "eg": {}, "ke": {},
	"io": {}, "ai": {}, "app": {}, "dev": {}, "me": {}, "tv": {}, "cc": {}, "info": {}, "biz": {}, "xyz": {},
	"online": {}, "site": {}, "store": {}, "tech": {}, "cloud": {}, "space": {}, "pro": {}, "mobi": {},
	"name": {}, "museum": {}, "aero": {}, "coop": {}, "travel": {}, "jobs": {}, "cat": {}, "asia": {},
}

// IsMultiLabelSuffix reports whether suffix (e.g. "co.kr") is a known two-label public suffix.
func IsMultiLabelSuffix(suffix string) bool {
	_, ok := multiLabelSuffixes[strings.ToLower(suffix)]

	return ok
}

// IsKnownSuffix reports whether suffix is a known single- or multi-label public suffix.
func IsKnownSuffix(suffix string) bool {
	suffix = strings.ToLower(strings.Trim(suffix, "."))
	if _, ok := singleLabelSuffixes[suffix]; ok {
		return true
	}

	return IsMultiLabelSuffix(suffix)
}

// RegistrableDomain strips subdomains from hostname, keeping the label right
// above the public suffix. Hostnames with a single label are returned unchanged.
//
//	RegistrableDomain("deep.sub.bbc.co.uk") == "bbc.co.uk"
//	RegistrableDomain("www.naver.com")      == "naver.com"
func RegistrableDomain(hostname string) string {
	parts := strings.Split(strings.ToLower(hostname), ".")
	if len(parts) <= 1 {
		return hostname
	}

	if len(parts) >= 3 && IsMultiLabelSuffix(strings.Join(parts[len(parts)-2:], ".")) {
		return strings.Join(parts[len(parts)-3:], ".")
	}

	return strings.Join(parts[len(parts)-2:], ".")
}

// Suffix returns the public suffix of a registrable domain: two labels when
// the domain ends in a known multi-label suffix, otherwise the last label.
func Suffix(registrable string) string {
	parts := strings.Split(registrable, ".")
	if len(parts) < 2 {
		return ""
	}
	if len(parts) >= 3 && IsMultiLabelSuffix(strings.Join(parts[len(parts)-2:], ".")) {
		return strings.Join(parts[len(parts)-2:], ".")
	}

	return parts[len(parts)-1]
}

// BaseName returns the registrable domain of hostname without its public suffix,
// e.g. "naver" for "m.naver.com" and "bbc" for "www.bbc.co.uk".
func BaseName(hostname string) string {
	registrable := RegistrableDomain(hostname)
	suffix := Suffix(registrable)
	if suffix == "" {
		return registrable
	}

	return strings.TrimSuffix(registrable, "."+suffix)
}

// LookupDomain returns the domain to query registries for. It is the
// RegistrableDomain of hostname unless the ICANN section of the public suffix
// list knows a longer suffix than the table above, as for "example.com.pl".
func LookupDomain(hostname string) string {
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	registrable := RegistrableDomain(hostname)

	ps, icann := publicsuffix.PublicSuffix(hostname)
	if !icann || strings.Count(ps, ".") <= strings.Count(Suffix(registrable), ".") {
		return registrable
	}

	etldPlusOne, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		return registrable
	}

	return etldPlusOne
}
