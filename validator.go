package main

import (
	"context"
	"fmt"
	"net"
)

// Options selects which pipeline stages run beyond the mandatory format
// and parse checks.
type Options struct {
	CheckDNS        bool
	CheckDisposable bool
	VerifyExistence bool
}

type Status int

const (
	StatusOK Status = iota
	StatusFail
	StatusWarn
)

// Line is one entry of the validation report.
type Line struct {
	Status  Status
	Stage   string
	Message string
}

// Report is the ordered outcome of one validation run.
type Report struct {
	Email string
	Lines []Line
	Valid bool
}

// Validator sequences the pipeline stages and accumulates the report.
// The resolver and prober are injected so the network stages can be
// stubbed out.
type Validator struct {
	opts     Options
	resolver domainResolver
	prober   existenceProber

	// Progress, when set, is called once after every completed stage.
	Progress func(stage string)
}

func NewValidator(opts Options) *Validator {
	r := &net.Resolver{}
	return &Validator{
		opts:     opts,
		resolver: &liveResolver{r: r},
		prober:   newProber(&netMXResolver{r: r}),
	}
}

// StageCount reports how many stages this configuration runs, for
// progress display.
func (v *Validator) StageCount() int {
	n := 2 // format, length
	if v.opts.CheckDNS {
		n++
	}
	if v.opts.VerifyExistence {
		n++
	}
	if v.opts.CheckDisposable {
		n++
	}
	return n
}

func (v *Validator) Validate(ctx context.Context, email string) Report {
	rep := Report{Email: email}
	add := func(st Status, stage, msg string) {
		rep.Lines = append(rep.Lines, Line{Status: st, Stage: stage, Message: msg})
	}
	step := func(stage string) {
		if v.Progress != nil {
			v.Progress(stage)
		}
	}

	if !isValidFormat(email) {
		add(StatusFail, "format", "address does not match the expected local@domain.tld pattern")
		step("format")
		return rep
	}
	add(StatusOK, "format", "address matches the expected pattern")
	step("format")

	local, domain, err := splitAddress(email)
	if err != nil {
		add(StatusFail, "parse", err.Error())
		step("parse")
		return rep
	}
	rep.Valid = true

	problems := checkLengths(local, domain)
	for _, problem := range problems {
		add(StatusFail, "length", problem)
		rep.Valid = false
	}
	if len(problems) == 0 {
		add(StatusOK, "length", "local part and domain are within length limits")
	}
	step("length")

	probeEnabled := v.opts.VerifyExistence
	if v.opts.CheckDNS {
		if err := v.resolver.resolve(ctx, domain); err != nil {
			add(StatusFail, "dns", err.Error())
			rep.Valid = false
			// no point probing a domain that does not resolve
			probeEnabled = false
		} else {
			add(StatusOK, "dns", domain+" resolves")
		}
		step("dns")
	}

	if v.opts.VerifyExistence {
		if probeEnabled && rep.Valid {
			res := v.prober.probe(ctx, email, domain)
			if res.Exists {
				add(StatusOK, "smtp", res.Note)
			} else {
				add(StatusFail, "smtp", res.Note)
				rep.Valid = false
			}
		}
		step("smtp")
	}

	if v.opts.CheckDisposable {
		if isDisposable(domain) {
			add(StatusWarn, "disposable", domain+" is a known disposable domain")
		} else {
			add(StatusOK, "disposable", domain+" is not a known disposable domain")
		}
		if suggestion, ok := suggestDomain(domain); ok {
			add(StatusWarn, "disposable", fmt.Sprintf("did you mean %s@%s?", local, suggestion))
		}
		step("disposable")
	}

	return rep
}
