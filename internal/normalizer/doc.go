// Package normalizer turns raw URLs and hostnames into the parts the detectors
// work on: protocol, host, registrable domain, subdomain and public suffix.
//
// Every function here is pure. Malformed input never produces an error from
// Parse; callers treat an empty Hostname as "not analyzable".
package normalizer
