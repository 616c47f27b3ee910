package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	smtpPort    = "25"
	smtpTimeout = 5 * time.Second
	heloDomain  = "example.com"
	probeSender = "noreply@example.com"
)

// probeResult is the outcome of one mailbox probe. Note carries either
// the server's rejection text or an explanation of why an inconclusive
// session was counted as deliverable.
type probeResult struct {
	Exists bool
	Note   string
}

type existenceProber interface {
	probe(ctx context.Context, email, domain string) probeResult
}

// prober asks the domain's preferred mail exchanger, without sending a
// message, whether it would accept mail for the address. failOpen names
// the policy for inconclusive sessions (unreachable host, refused
// verification): when set, they count as deliverable, so only an
// explicit non-250 RCPT reply marks the mailbox missing.
type prober struct {
	mx       mxResolver
	port     string
	timeout  time.Duration
	failOpen bool
}

func newProber(mx mxResolver) *prober {
	return &prober{mx: mx, port: smtpPort, timeout: smtpTimeout, failOpen: true}
}

func (p *prober) probe(ctx context.Context, email, domain string) probeResult {
	// The bare domain serves as the mail host when no MX record can be
	// found, matching what most small mail setups expect.
	host := domain
	if records, err := p.mx.lookupMX(ctx, domain); err != nil {
		log.Debugf("mx lookup failed, using %s directly: %v", domain, err)
	} else if h, ok := pickExchanger(records); ok {
		host = h
	}

	exists, note, err := p.session(host, email)
	if err == nil {
		return probeResult{Exists: exists, Note: note}
	}
	if p.failOpen {
		log.Debugf("probe against %s inconclusive: %v", host, err)
		return probeResult{
			Exists: true,
			Note:   fmt.Sprintf("could not verify with %s (%v): assuming deliverable", host, err),
		}
	}
	return probeResult{
		Exists: false,
		Note:   fmt.Sprintf("could not verify with %s: %v", host, err),
	}
}

// session runs the partial SMTP transaction against one host. A nil
// error means the server gave a definitive answer either way; any error
// means the result is inconclusive and subject to the fail-open policy.
// The connection is closed on every path.
func (p *prober) session(host, email string) (exists bool, note string, err error) {
	addr := net.JoinHostPort(host, p.port)
	log.Debugf("connecting to %s", addr)
	conn, err := net.DialTimeout("tcp", addr, p.timeout)
	if err != nil {
		return false, "", errors.Wrap(err, "connect")
	}
	conn.SetDeadline(time.Now().Add(p.timeout))

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return false, "", errors.Wrap(err, "smtp greeting")
	}
	defer func() {
		if qerr := client.Quit(); qerr != nil {
			client.Close()
		}
	}()

	// EHLO with HELO fallback.
	if err := client.Hello(heloDomain); err != nil {
		return false, "", errors.Wrap(err, "EHLO")
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		// The client re-issues EHLO after the upgrade.
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return false, "", errors.Wrap(err, "STARTTLS")
		}
	}
	if err := client.Mail(probeSender); err != nil {
		return false, "", errors.Wrap(err, "MAIL FROM")
	}
	// The RCPT reply is read raw so only an explicit 250 counts as
	// deliverable; 251 ("will forward") and everything else does not.
	id, err := client.Text.Cmd("RCPT TO:<%s>", email)
	if err != nil {
		return false, "", errors.Wrap(err, "RCPT TO")
	}
	client.Text.StartResponse(id)
	code, msg, err := client.Text.ReadResponse(-1)
	client.Text.EndResponse(id)
	if err != nil {
		return false, "", errors.Wrap(err, "RCPT TO reply")
	}
	if code != 250 {
		return false, fmt.Sprintf("server replied %d %s", code, msg), nil
	}
	return true, "recipient accepted", nil
}
