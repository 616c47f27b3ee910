package main

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickExchanger(t *testing.T) {
	records := []*net.MX{
		{Host: "b.mx.test.", Pref: 20},
		{Host: "a.mx.test.", Pref: 10},
	}
	host, ok := pickExchanger(records)
	require.True(t, ok)
	assert.Equal(t, "a.mx.test", host, "lowest preference wins, trailing dot stripped")
}

func TestPickExchangerStableTies(t *testing.T) {
	records := []*net.MX{
		{Host: "first.mx.test", Pref: 10},
		{Host: "second.mx.test", Pref: 10},
	}
	host, ok := pickExchanger(records)
	require.True(t, ok)
	assert.Equal(t, "first.mx.test", host, "ties break by resolution order")
}

func TestPickExchangerEmpty(t *testing.T) {
	_, ok := pickExchanger(nil)
	assert.False(t, ok)
}

func TestPickExchangerLeavesInputUnsorted(t *testing.T) {
	records := []*net.MX{
		{Host: "b.mx.test", Pref: 20},
		{Host: "a.mx.test", Pref: 10},
	}
	pickExchanger(records)
	assert.Equal(t, "b.mx.test", records[0].Host)
}

func TestNoMXResolver(t *testing.T) {
	records, err := noMXResolver{}.lookupMX(context.Background(), "example.com")
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestLiveResolver(t *testing.T) {
	lr := &liveResolver{r: &net.Resolver{}}
	if err := lr.resolve(context.Background(), "example.com"); err != nil {
		t.Skipf("DNS resolution unavailable in this environment: %v", err)
	}

	err := lr.resolve(context.Background(), "thisisnotarealdomainxyz123.invalid")
	require.Error(t, err)
	var dnsErr *DNSFailure
	assert.ErrorAs(t, err, &dnsErr)
	assert.Equal(t, "thisisnotarealdomainxyz123.invalid", dnsErr.Domain)
}
