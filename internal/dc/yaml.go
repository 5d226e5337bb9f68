// Copyright (c) 2025 @AmarnathCJD

package dc

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type tableFile struct {
	DataCenters []Entry `yaml:"data_centers"`
}

// LoadYAML reads extra data center entries from a document of the form
//
//	data_centers:
//	  - {id: 2, test: true, address: 10.0.0.2, port: 8443}
//
// Missing ports default to DefaultPort.
func LoadYAML(r io.Reader) ([]Entry, error) {
	var f tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding data center table")
	}

	for i := range f.DataCenters {
		if f.DataCenters[i].Port == 0 {
			f.DataCenters[i].Port = DefaultPort
		}
		if err := f.DataCenters[i].validate(); err != nil {
			return nil, errors.Wrapf(err, "data_centers[%d]", i)
		}
	}
	return f.DataCenters, nil
}
