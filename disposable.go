package main

import "strings"

// Domains known to hand out throwaway mailboxes. One shared set for the
// whole tool, lower-cased, immutable for the process lifetime.
var disposableDomains = func() map[string]struct{} {
	list := []string{
		"mailinator.com",
		"guerrillamail.com",
		"temp-mail.org",
		"fakeinbox.com",
		"tempmail.com",
		"10minutemail.com",
		"yopmail.com",
		"throwawaymail.com",
		"getairmail.com",
		"mailnesia.com",
		"mailcatch.com",
		"dispostable.com",
	}
	set := make(map[string]struct{}, len(list))
	for _, d := range list {
		set[strings.ToLower(d)] = struct{}{}
	}
	return set
}()

// Frequent fat-finger domains and what the sender probably meant.
var commonTypos = map[string]string{
	"gmai.com":   "gmail.com",
	"gmal.com":   "gmail.com",
	"gmail.co":   "gmail.com",
	"yaho.com":   "yahoo.com",
	"hotmai.com": "hotmail.com",
	"outlok.com": "outlook.com",
}

func isDisposable(domain string) bool {
	_, ok := disposableDomains[strings.ToLower(domain)]
	return ok
}

// suggestDomain reports the likely intended domain for a known typo.
func suggestDomain(domain string) (string, bool) {
	suggestion, ok := commonTypos[strings.ToLower(domain)]
	return suggestion, ok
}
