package generator

import (
	"fmt"
	"strings"
)

const secureScheme = "https://"

// InvalidProtocolError reports a UI domain supplied with the insecure scheme.
type InvalidProtocolError struct {
	Domain string
}

func (e *InvalidProtocolError) Error() string {
	return fmt.Sprintf("invalid protocol in uiDomainName %q (http:// should be https:// or not included)", e.Domain)
}

// HasProtocol reports whether the user-supplied domain already carries the
// https scheme. A domain carrying http:// without https:// is rejected.
// The check is a substring match, not a prefix match, so callers must pass
// well-formed domains.
func HasProtocol(domain string) (bool, error) {
	if strings.Contains(domain, secureScheme) {
		return true, nil
	}
	if strings.Contains(domain, "http://") {
		return false, &InvalidProtocolError{Domain: domain}
	}
	return false, nil
}

// FormatDomain returns the domain as a fully qualified https URL, prepending
// the scheme only when the domain does not already carry it.
func FormatDomain(domain string) (string, error) {
	hasProtocol, err := HasProtocol(domain)
	if err != nil {
		return "", err
	}
	if hasProtocol {
		return domain, nil
	}
	return secureScheme + domain, nil
}
