// Copyright (c) 2025 @AmarnathCJD

package dc_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarnathcjd/sessionconv/internal/dc"
)

func TestResolveCoversTable(t *testing.T) {
	r := dc.Default()

	for _, test := range []bool{false, true} {
		ids := r.IDs(test)
		require.NotEmpty(t, ids)
		for _, id := range ids {
			e, err := r.Resolve(id, test, false)
			require.NoError(t, err, "dc %d test=%v", id, test)
			assert.Equal(t, id, e.ID)
			assert.Equal(t, test, e.Test)
			assert.False(t, e.IPv6)
		}
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, r.IDs(false))
	assert.Equal(t, []int{1, 2, 3}, r.IDs(true))
}

func TestResolveUnknown(t *testing.T) {
	r := dc.Default()

	for _, id := range []int{0, -1, 6, 99, 255} {
		_, err := r.Resolve(id, false, false)
		assert.ErrorIs(t, err, dc.ErrUnknownDataCenter, "dc %d", id)
	}

	// dc 4 exists in production only
	_, err := r.Resolve(4, true, true)
	assert.ErrorIs(t, err, dc.ErrUnknownDataCenter)
}

func TestResolveFixtures(t *testing.T) {
	r := dc.Default()

	e, err := r.Resolve(2, true, false)
	require.NoError(t, err)
	assert.Equal(t, "149.154.167.40:443", e.Hostname())

	e, err = r.Resolve(1, true, true)
	require.NoError(t, err)
	assert.True(t, e.IPv6)
	assert.Equal(t, "[2001:b28:f23d:f001::e]:443", e.Hostname())
}

func TestResolveFallsBackToIPv4(t *testing.T) {
	r, err := dc.New(dc.Entry{ID: 7, Address: "10.0.0.7", Port: 443})
	require.NoError(t, err)

	e, err := r.Resolve(7, false, true)
	require.NoError(t, err)
	assert.False(t, e.IPv6)
	assert.Equal(t, "10.0.0.7", e.Address)
}

func TestLookup(t *testing.T) {
	r := dc.Default()

	tests := []struct {
		addr string
		id   int
		test bool
		ok   bool
	}{
		{"149.154.167.40", 2, true, true},
		{"149.154.167.40:443", 2, true, true},
		{"149.154.167.40:80", 0, false, false},
		{"[2001:b28:f23d:f001::a]:443", 1, false, true},
		{"2001:0b28:f23d:f001:0000:0000:0000:000a", 1, false, true},
		{"127.0.0.1", 0, false, false},
	}

	for _, tt := range tests {
		e, ok := r.Lookup(tt.addr)
		if !assert.Equal(t, tt.ok, ok, tt.addr) || !ok {
			continue
		}
		assert.Equal(t, tt.id, e.ID, tt.addr)
		assert.Equal(t, tt.test, e.Test, tt.addr)
	}
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	_, err := dc.New(dc.Entry{ID: 1, Address: "", Port: 443})
	assert.EqualError(t, err, "entry 0: data center 1: empty address")
	// the cause carries a stack trace pointing at the check
	assert.Contains(t, fmt.Sprintf("%+v", err), "dc.Entry.validate")

	_, err = dc.New(dc.Entry{ID: 1, Address: "10.0.0.1", Port: 70000})
	assert.Error(t, err)

	_, err = dc.New(dc.Entry{ID: 0, Address: "10.0.0.1", Port: 443})
	assert.Error(t, err)
}

func TestMergeDoesNotTouchDefault(t *testing.T) {
	merged, err := dc.Default().Merge(dc.Entry{ID: 2, Test: true, Address: "10.0.0.2", Port: 8443})
	require.NoError(t, err)

	e, err := merged.Resolve(2, true, false)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2:8443", e.Hostname())

	e, err = dc.Default().Resolve(2, true, false)
	require.NoError(t, err)
	assert.Equal(t, "149.154.167.40:443", e.Hostname())
}

func TestLoadYAML(t *testing.T) {
	entries, err := dc.LoadYAML(strings.NewReader(`
data_centers:
  - id: 9
    test: true
    address: 10.1.2.3
  - {id: 9, test: true, ipv6: true, address: "fd00::9", port: 8443}
`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, dc.DefaultPort, entries[0].Port)
	assert.Equal(t, 8443, entries[1].Port)

	_, err = dc.LoadYAML(strings.NewReader("data_centers:\n  - {id: 1, address: 1.1.1.1, bogus: 1}\n"))
	assert.Error(t, err)

	entries, err = dc.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
