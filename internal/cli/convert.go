// Copyright (c) 2025 @AmarnathCJD

package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amarnathcjd/sessionconv"
	"github.com/amarnathcjd/sessionconv/internal/session"
	"github.com/amarnathcjd/sessionconv/internal/utils"
)

type ConvertOptions struct {
	*GlobalOptions

	From    string
	To      string
	IPv6    bool
	Address string
	Version int
	Out     string

	override *sessionconv.Address
}

func DefaultConvertOptions(g *GlobalOptions) *ConvertOptions {
	return &ConvertOptions{GlobalOptions: g}
}

func NewCmdConvert(g *GlobalOptions) *cobra.Command {
	o := DefaultConvertOptions(g)
	cmd := &cobra.Command{
		Use:   "convert --from FORMAT --to FORMAT [SESSION | @FILE | -]",
		Short: "Convert a session string from one format to another.",
		Example: `  sessionconv convert --from pyrogram --to telethon BQIAAAAB...
  sessionconv convert --from telethon --to gogram --out bot.session @telethon.txt`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd, args)
		},
	}
	o.Bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (o *ConvertOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.From, "from", "f", o.From, "Format of the input session.")
	fs.StringVarP(&o.To, "to", "t", o.To, "Format to convert to.")
	fs.BoolVar(&o.IPv6, "ipv6", o.PreferIPv6, "Prefer the IPv6 address when one has to be derived.")
	fs.StringVar(&o.Address, "address", o.Config.Address, "Embed this host:port instead of the data center table address.")
	fs.IntVar(&o.Version, "version", o.Version, "Layout revision of the target format (0 picks the default).")
	fs.StringVarP(&o.Out, "out", "o", o.Out, "Write the result to this file (mode 0600) instead of stdout.")
}

func (o *ConvertOptions) Complete(cmd *cobra.Command, args []string) error {
	if o.Address == "" {
		return nil
	}
	addr, err := sessionconv.ParseAddress(o.Address)
	if err != nil {
		return errors.Wrap(err, "--address")
	}
	o.override = &addr
	return nil
}

func (o *ConvertOptions) Validate(args []string) error {
	if o.Version < 0 {
		return fmt.Errorf("--version must not be negative")
	}
	for _, f := range []string{o.From, o.To} {
		if _, err := o.converter.Codec(sessionconv.Format(f)); err != nil {
			return err
		}
	}
	return nil
}

func (o *ConvertOptions) Run(cmd *cobra.Command, args []string) error {
	raw, err := readSession(o.streams, args)
	if err != nil {
		return err
	}

	from, to := sessionconv.Format(o.From), sessionconv.Format(o.To)
	opts := sessionconv.Options{PreferIPv6: o.IPv6, AddressOverride: o.override, Version: o.Version}

	log := o.log.WithPrefix(appName + " convert").WithFields(map[string]any{"from": from, "to": to})
	log.Trace("read %d character session", len(raw))
	if log.Lev() <= utils.DebugLevel {
		if d, err := o.converter.Decode(from, raw); err == nil {
			log = log.WithFields(map[string]any{"dc": d.DataCenterID, "test": d.TestEnvironment, "key_id": d.KeyID()})
		}
		log.Debug("converting session")
	}

	out, err := o.converter.Convert(from, to, raw, opts)
	if err != nil {
		return err
	}

	if o.Out != "" {
		if err := session.WriteFile(o.Out, out); err != nil {
			return err
		}
		log.WithField("file", o.Out).Info("session written")
		return nil
	}
	_, err = fmt.Fprintln(o.streams.Out, out)
	return err
}
