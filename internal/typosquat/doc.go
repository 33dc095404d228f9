// Package typosquat flags hostnames that imitate a domain from the known
// domain corpus: subdomain impersonation, homoglyph look-alikes, close
// misspellings and hyphenated brand names.
package typosquat
