// Copyright (c) 2025 @AmarnathCJD

// Package sessionconv converts Telegram session strings between the layouts used by
// different client libraries. A session is decoded into a Descriptor, completed from a
// static data center table when the target layout needs a server address the source did
// not store, and encoded again.
package sessionconv

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/amarnathcjd/sessionconv/internal/dc"
)

// DataCenter is a data center table entry.
type DataCenter = dc.Entry

// Options tune a single conversion.
type Options struct {
	// PreferIPv6 picks the IPv6 address of the data center when the address has to be
	// derived. Data centers without one fall back to IPv4.
	PreferIPv6 bool
	// AddressOverride is embedded as is, bypassing the data center table.
	AddressOverride *Address
	// Version forces a layout revision of the target format; 0 picks the default.
	Version int
}

// Config is used to build a Converter.
type Config struct {
	// DataCenters are merged over the built-in table.
	DataCenters []DataCenter
	// Codecs are registered after the built-in ones and replace those with the same Format.
	Codecs []Codec
}

// Converter is immutable once built and safe for concurrent use.
type Converter struct {
	registry *dc.Registry
	codecs   map[Format]Codec
}

var defaultConverter = mustNew(Config{})

// Default returns the converter backed by the built-in codecs and data center table.
func Default() *Converter {
	return defaultConverter
}

func New(c Config) (*Converter, error) {
	registry := dc.Default()
	if len(c.DataCenters) > 0 {
		var err error
		if registry, err = registry.Merge(c.DataCenters...); err != nil {
			return nil, errors.Wrap(err, "building data center table")
		}
	}

	conv := &Converter{registry: registry, codecs: make(map[Format]Codec)}
	for _, codec := range append(Codecs(), c.Codecs...) {
		if codec == nil || codec.Format() == "" {
			return nil, errors.New("codec without a format")
		}
		conv.codecs[codec.Format()] = codec
	}
	return conv, nil
}

func mustNew(c Config) *Converter {
	conv, err := New(c)
	if err != nil {
		panic(err)
	}
	return conv
}

// Formats lists the registered formats in lexical order.
func (c *Converter) Formats() []Format {
	formats := lo.Keys(c.codecs)
	slices.Sort(formats)
	return formats
}

// Codec returns the codec registered for f.
func (c *Converter) Codec(f Format) (Codec, error) {
	codec, ok := c.codecs[f]
	if !ok {
		return nil, &Error{Kind: KindUnknownFormat, Format: f, Err: errors.Errorf("no codec registered for %q", f)}
	}
	return codec, nil
}

// DataCenters lists the data center table, production first.
func (c *Converter) DataCenters() []DataCenter {
	return c.registry.Entries()
}

// Resolve looks a data center up in the table. When preferIPv6 is set and the data center
// has no IPv6 address the IPv4 one is returned.
func (c *Converter) Resolve(id int, test, preferIPv6 bool) (DataCenter, error) {
	e, err := c.registry.Resolve(id, test, preferIPv6)
	if err != nil {
		return DataCenter{}, &Error{Kind: KindUnknownDataCenter, Err: err}
	}
	return e, nil
}

// Decode parses raw as format f. For layouts that store an address but no environment
// flag, the environment is taken from the data center table when the address is known.
func (c *Converter) Decode(f Format, raw string) (*Descriptor, error) {
	codec, err := c.Codec(f)
	if err != nil {
		return nil, err
	}
	return c.decode(codec, raw)
}

func (c *Converter) decode(codec Codec, raw string) (*Descriptor, error) {
	d, err := codec.Decode(raw)
	if err != nil {
		return nil, err
	}

	if !codec.Carries().Has(FieldEnvironment) && d.HasAddress() {
		if e, ok := c.registry.Lookup(d.Hostname()); ok && e.ID == d.DataCenterID {
			d.TestEnvironment = e.Test
		}
	}
	return d, nil
}

// Encode renders d as format f, filling in the server address if f needs one. d's layout
// version is kept only when d was decoded from f; opts.Version overrides it.
// d itself is left untouched.
func (c *Converter) Encode(f Format, d *Descriptor, opts Options) (string, error) {
	codec, err := c.Codec(f)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", incomplete(f, "descriptor", errors.New("nil descriptor"))
	}

	return c.encode(codec, d.Clone(), opts)
}

func (c *Converter) encode(codec Codec, d *Descriptor, opts Options) (string, error) {
	if opts.Version != 0 {
		d.Format, d.FormatVersion = codec.Format(), opts.Version
	}
	if err := c.complete(codec, d, opts); err != nil {
		return "", err
	}
	return codec.Encode(d)
}

// complete sets or drops the server address depending on whether the codec stores one.
func (c *Converter) complete(codec Codec, d *Descriptor, opts Options) error {
	if !codec.Carries().Has(FieldAddress) {
		d.ServerAddress, d.ServerPort = "", 0
		return nil
	}

	switch {
	case opts.AddressOverride != nil:
		d.ServerAddress, d.ServerPort = opts.AddressOverride.Host, opts.AddressOverride.Port
		d.IPv6 = isIPv6(d.ServerAddress)
	case d.HasAddress():
	default:
		e, err := c.registry.Resolve(d.DataCenterID, d.TestEnvironment, opts.PreferIPv6 || d.IPv6)
		if err != nil {
			return incomplete(codec.Format(), "server address", &Error{Kind: KindUnknownDataCenter, Err: err})
		}
		d.ServerAddress, d.ServerPort, d.IPv6 = e.Address, e.Port, e.IPv6
	}
	return nil
}

// Convert decodes raw as src and encodes it as dst. Both formats are looked up before
// raw is read.
func (c *Converter) Convert(src, dst Format, raw string, opts Options) (string, error) {
	from, err := c.Codec(src)
	if err != nil {
		return "", err
	}
	to, err := c.Codec(dst)
	if err != nil {
		return "", err
	}

	d, err := c.decode(from, raw)
	if err != nil {
		return "", err
	}
	return c.encode(to, d, opts)
}

// Convert converts raw from src to dst with the default converter.
func Convert(src, dst Format, raw string, opts Options) (string, error) {
	return defaultConverter.Convert(src, dst, raw, opts)
}

// Decode parses raw with the default converter.
func Decode(f Format, raw string) (*Descriptor, error) {
	return defaultConverter.Decode(f, raw)
}

// Encode renders d with the default converter.
func Encode(f Format, d *Descriptor, opts Options) (string, error) {
	return defaultConverter.Encode(f, d, opts)
}
