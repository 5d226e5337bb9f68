// Copyright (c) 2025 @AmarnathCJD

package cli

import (
	"encoding/hex"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amarnathcjd/sessionconv"
)

type InspectOptions struct {
	*GlobalOptions

	Format  string
	ShowKey bool
}

// SessionView is what inspect prints. The key is left out unless asked for.
type SessionView struct {
	Format          string
	DataCenterID    int
	TestEnvironment bool
	IPv6            bool
	ServerAddress   string
	UserID          int64
	IsBot           bool
	AppID           int32
	FormatVersion   int
	KeyID           string
	AuthKey         string
}

func newSessionView(f sessionconv.Format, d *sessionconv.Descriptor, showKey bool) SessionView {
	v := SessionView{
		Format:          string(f),
		DataCenterID:    d.DataCenterID,
		TestEnvironment: d.TestEnvironment,
		IPv6:            d.IPv6,
		ServerAddress:   d.Hostname(),
		UserID:          d.UserID,
		IsBot:           d.IsBot,
		AppID:           d.AppID,
		FormatVersion:   d.FormatVersion,
		KeyID:           d.KeyID(),
	}
	if showKey {
		v.AuthKey = hex.EncodeToString(d.AuthKey)
	}
	return v
}

func NewCmdInspect(g *GlobalOptions) *cobra.Command {
	o := &InspectOptions{GlobalOptions: g}
	cmd := &cobra.Command{
		Use:          "inspect --format FORMAT [SESSION | @FILE | -]",
		Short:        "Decode a session string and print its fields.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd, args)
		},
	}
	o.Bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("format")
	return cmd
}

func (o *InspectOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Format, "format", "f", o.Format, "Format of the session.")
	fs.BoolVar(&o.ShowKey, "show-key", o.ShowKey, "Print the authorization key in hex.")
}

func (o *InspectOptions) Run(cmd *cobra.Command, args []string) error {
	raw, err := readSession(o.streams, args)
	if err != nil {
		return err
	}

	f := sessionconv.Format(o.Format)
	d, err := o.converter.Decode(f, raw)
	if err != nil {
		return err
	}
	o.log.WithPrefix(appName+" inspect").WithField("key_id", d.KeyID()).Debug("decoded %s session", f)

	printer := pp.New()
	printer.SetColoringEnabled(isTerminal(o.streams.Out))
	_, err = printer.Fprintln(o.streams.Out, newSessionView(f, d, o.ShowKey))
	return err
}
