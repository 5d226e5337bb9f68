// Copyright (c) 2025 @AmarnathCJD

// Package dc holds the static table of Telegram data centers and resolves a data center id
// (plus environment and address family) to a concrete server address.
package dc

import (
	"fmt"
	"net"
	"net/netip"
	"slices"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrUnknownDataCenter is returned when the registry has no entry for a requested id/environment pair.
var ErrUnknownDataCenter = errors.New("unknown data center")

// Entry is a single data center address. Several entries may share an ID, one per
// environment and address family.
type Entry struct {
	ID      int    `yaml:"id"`
	Test    bool   `yaml:"test"`
	IPv6    bool   `yaml:"ipv6"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// Hostname renders the entry as host:port, bracketing IPv6 hosts.
func (e Entry) Hostname() string {
	return net.JoinHostPort(e.Address, strconv.Itoa(e.Port))
}

func (e Entry) String() string {
	env := "prod"
	if e.Test {
		env = "test"
	}
	return fmt.Sprintf("DC%d/%s %s", e.ID, env, e.Hostname())
}

func (e Entry) validate() error {
	switch {
	case e.ID <= 0 || e.ID > 0xff:
		return errors.Errorf("data center id %d out of range", e.ID)
	case e.Address == "":
		return errors.Errorf("data center %d: empty address", e.ID)
	case e.Port <= 0 || e.Port > 0xffff:
		return errors.Errorf("data center %d: port %d out of range", e.ID, e.Port)
	}
	return nil
}

type key struct {
	id   int
	test bool
	ipv6 bool
}

func (e Entry) key() key {
	return key{id: e.ID, test: e.Test, ipv6: e.IPv6}
}

// Registry is an immutable data center table. It is never mutated after New returns,
// so it can be shared between goroutines without locking.
type Registry struct {
	entries map[key]Entry
	ordered []Entry
}

var defaultRegistry = mustNew(DefaultEntries()...)

// Default returns the process-wide registry built from the built-in table.
func Default() *Registry {
	return defaultRegistry
}

// New builds a registry from entries. When two entries share id, environment and
// address family, the later one wins.
func New(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make(map[key]Entry, len(entries))}
	for i, e := range entries {
		if err := e.validate(); err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		r.entries[e.key()] = e
	}

	r.ordered = lo.Values(r.entries)
	slices.SortFunc(r.ordered, func(a, b Entry) int {
		switch {
		case a.Test != b.Test:
			if a.Test {
				return 1
			}
			return -1
		case a.ID != b.ID:
			return a.ID - b.ID
		case a.IPv6 != b.IPv6:
			if a.IPv6 {
				return 1
			}
			return -1
		}
		return 0
	})
	return r, nil
}

func mustNew(entries ...Entry) *Registry {
	r, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Merge returns a new registry holding r's entries overlaid with extra.
func (r *Registry) Merge(extra ...Entry) (*Registry, error) {
	return New(append(slices.Clone(r.ordered), extra...)...)
}

// Resolve returns the entry for id in the given environment. If preferIPv6 is set but the
// data center has no IPv6 entry, the IPv4 entry is returned instead.
func (r *Registry) Resolve(id int, test, preferIPv6 bool) (Entry, error) {
	if preferIPv6 {
		if e, ok := r.entries[key{id: id, test: test, ipv6: true}]; ok {
			return e, nil
		}
	}
	if e, ok := r.entries[key{id: id, test: test}]; ok {
		return e, nil
	}
	// a data center reachable only over IPv6 still resolves
	if e, ok := r.entries[key{id: id, test: test, ipv6: true}]; ok {
		return e, nil
	}

	env := "production"
	if test {
		env = "test"
	}
	return Entry{}, errors.Wrapf(ErrUnknownDataCenter, "dc %d (%s)", id, env)
}

// Lookup finds the entry whose address matches addr. addr may be a bare host or host:port;
// when a port is given it has to match as well.
func (r *Registry) Lookup(addr string) (Entry, bool) {
	host, port := addr, 0
	if h, p, err := net.SplitHostPort(addr); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Entry{}, false
		}
		host, port = h, n
	}

	return lo.Find(r.ordered, func(e Entry) bool {
		return sameHost(e.Address, host) && (port == 0 || e.Port == port)
	})
}

func sameHost(a, b string) bool {
	ia, errA := netip.ParseAddr(a)
	ib, errB := netip.ParseAddr(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return ia.Unmap() == ib.Unmap()
}

// Entries lists all entries, production first, ordered by id then address family.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.ordered)
}

// IDs returns the distinct data center ids known for an environment, in ascending order.
func (r *Registry) IDs(test bool) []int {
	return lo.Uniq(lo.FilterMap(r.ordered, func(e Entry, _ int) (int, bool) {
		return e.ID, e.Test == test
	}))
}
