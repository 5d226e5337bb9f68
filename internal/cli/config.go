// Copyright (c) 2025 @AmarnathCJD

package cli

import (
	"reflect"
	"strings"

	"github.com/fatih/structtag"
	"github.com/joeshaw/envdecode"
	"github.com/pkg/errors"
)

// Config holds the defaults the CLI reads from the environment. Flags override them.
type Config struct {
	PreferIPv6 bool   `env:"SESSIONCONV_PREFER_IPV6,default=false" desc:"derive IPv6 addresses when the target format needs one"`
	Address    string `env:"SESSIONCONV_ADDRESS" desc:"host:port to embed instead of the data center table address"`
	DCFile     string `env:"SESSIONCONV_DC_FILE" desc:"YAML file with extra data center entries"`
	LogLevel   string `env:"SESSIONCONV_LOG_LEVEL,default=info" desc:"trace, debug, info, warn, error or disable"`
	LogJSON    bool   `env:"SESSIONCONV_LOG_JSON,default=false" desc:"log as JSON lines"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := envdecode.Decode(&c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, errors.Wrap(err, "reading environment")
	}
	return c, nil
}

// EnvVar documents one variable LoadConfig understands.
type EnvVar struct {
	Name        string
	Default     string
	Description string
}

// EnvVars lists the variables declared on Config.
func EnvVars() ([]EnvVar, error) {
	t := reflect.TypeOf(Config{})
	vars := make([]EnvVar, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tags, err := structtag.Parse(string(t.Field(i).Tag))
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", t.Field(i).Name)
		}
		env, err := tags.Get("env")
		if err != nil {
			continue
		}

		v := EnvVar{Name: env.Name}
		for _, opt := range env.Options {
			if def, ok := strings.CutPrefix(opt, "default="); ok {
				v.Default = def
			}
		}
		if desc, err := tags.Get("desc"); err == nil {
			v.Description = desc.Value()
		}
		vars = append(vars, v)
	}
	return vars, nil
}
