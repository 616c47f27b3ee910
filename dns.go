package main

import (
	"context"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const mxLookupTimeout = 5 * time.Second

// DNSFailure reports that a domain resolved neither as an SMTP service
// name nor as a plain host.
type DNSFailure struct {
	Domain string
	cause  error
}

func (e *DNSFailure) Error() string {
	return "domain " + e.Domain + " does not resolve: " + e.cause.Error()
}

func (e *DNSFailure) Unwrap() error { return e.cause }

type domainResolver interface {
	resolve(ctx context.Context, domain string) error
}

// liveResolver checks domain liveness with the system resolver. The
// _smtp._tcp service lookup runs first for compatibility with earlier
// releases of this tool; plain address resolution is the fallback that
// answers for most domains. Success of either is enough. This is a
// liveness heuristic, not proof of mail capability.
type liveResolver struct {
	r *net.Resolver
}

func (lr *liveResolver) resolve(ctx context.Context, domain string) error {
	log.Debugf("resolving _smtp._tcp.%s", domain)
	if _, _, err := lr.r.LookupSRV(ctx, "smtp", "tcp", domain); err == nil {
		return nil
	}
	log.Debugf("service lookup failed, resolving %s directly", domain)
	if _, err := lr.r.LookupIPAddr(ctx, domain); err != nil {
		return &DNSFailure{Domain: domain, cause: err}
	}
	return nil
}

// mxResolver abstracts the optional MX-lookup capability so the prober
// behaves the same whether or not record lookup is available.
type mxResolver interface {
	lookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

type netMXResolver struct {
	r *net.Resolver
}

func (n *netMXResolver) lookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	ctx, cancel := context.WithTimeout(ctx, mxLookupTimeout)
	defer cancel()
	records, err := n.r.LookupMX(ctx, domain)
	if err != nil {
		return nil, errors.Wrapf(err, "mx lookup for %s", domain)
	}
	return records, nil
}

// noMXResolver stands in when record lookup is unavailable; the prober
// then falls back to the bare domain as the mail host.
type noMXResolver struct{}

func (noMXResolver) lookupMX(context.Context, string) ([]*net.MX, error) {
	return nil, nil
}

// pickExchanger selects the preferred mail exchanger: lowest preference
// number wins, resolution order breaks ties.
func pickExchanger(records []*net.MX) (string, bool) {
	if len(records) == 0 {
		return "", false
	}
	sorted := make([]*net.MX, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pref < sorted[j].Pref })
	return strings.TrimSuffix(sorted[0].Host, "."), true
}
