package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidFormat(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"a.b+c@sub.example.org", true},
		{"user_name%tag@example.travel", true},
		{"a@b", false},
		{"", false},
		{"no-at-sign.example.com", false},
		{"two@@example.com", false},
		{"user@example.c", false},          // TLD shorter than two letters
		{"user@example.com trailing", false}, // anchors bind the whole string
		{"üser@example.com", false},        // no Unicode
		{"\"quoted\"@example.com", false},  // no quoted local parts
		{"user@[192.168.0.1]", false},      // no IP-literal domains
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isValidFormat(tc.email), tc.email)
	}
}

func TestSplitAddress(t *testing.T) {
	local, domain, err := splitAddress("a.b+c@sub.example.org")
	require.NoError(t, err)
	assert.Equal(t, "a.b+c", local)
	assert.Equal(t, "sub.example.org", domain)
}

func TestSplitAddressStripsDisplayName(t *testing.T) {
	local, domain, err := splitAddress("Jane Doe <jane@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "jane", local)
	assert.Equal(t, "example.com", domain)
}

func TestSplitAddressRejectsGarbage(t *testing.T) {
	_, _, err := splitAddress("not an address")
	assert.Error(t, err)
}

func TestCheckLengths(t *testing.T) {
	assert.Empty(t, checkLengths("user", "example.com"))

	longLocal := strings.Repeat("a", 65)
	problems := checkLengths(longLocal, "example.com")
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "64")

	longDomain := strings.Repeat("d", 256)
	assert.Len(t, checkLengths(longLocal, longDomain), 2)
}
