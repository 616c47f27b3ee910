package main

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	maxLocalLen  = 64
	maxDomainLen = 255
)

// Deliberately simplified grammar: no Unicode, no quoted local parts,
// no IP-literal domains.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidFormat(email string) bool {
	return emailPattern.MatchString(email)
}

// splitAddress round-trips the input through the address-header parser,
// which strips display names and comments, then splits the bare address
// on the first "@".
func splitAddress(email string) (local, domain string, err error) {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", "", errors.Wrap(err, "unparseable address")
	}
	var ok bool
	local, domain, ok = strings.Cut(addr.Address, "@")
	if !ok || local == "" || domain == "" {
		return "", "", errors.Errorf("no local/domain separator in %q", addr.Address)
	}
	return local, domain, nil
}

// checkLengths returns one problem per violated limit. Violations are
// recorded by the caller, not fatal on their own.
func checkLengths(local, domain string) []string {
	var problems []string
	if len(local) > maxLocalLen {
		problems = append(problems, fmt.Sprintf("local part is %d characters, above the %d-character limit", len(local), maxLocalLen))
	}
	if len(domain) > maxDomainLen {
		problems = append(problems, fmt.Sprintf("domain is %d characters, above the %d-character limit", len(domain), maxDomainLen))
	}
	return problems
}
