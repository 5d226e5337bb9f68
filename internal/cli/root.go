// Copyright (c) 2025 @AmarnathCJD

package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amarnathcjd/sessionconv"
	"github.com/amarnathcjd/sessionconv/internal/dc"
	"github.com/amarnathcjd/sessionconv/internal/utils"
)

const appName = "sessionconv"

// GlobalOptions are shared by every subcommand. They are completed once, before the
// subcommand runs, into a logger and a converter.
type GlobalOptions struct {
	Config

	streams   IOStreams
	envErr    error
	log       *utils.Logger
	converter *sessionconv.Converter
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (trace, debug, info, warn, error, disable).")
	fs.BoolVar(&o.LogJSON, "log-json", o.LogJSON, "Log as JSON lines.")
	fs.StringVar(&o.DCFile, "dc-file", o.DCFile, "YAML file with extra data center entries.")
}

func (o *GlobalOptions) Complete() error {
	if o.envErr != nil {
		return o.envErr
	}
	level, err := utils.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}

	logConfig := &utils.LoggerConfig{Level: level, Prefix: appName, Output: o.streams.ErrOut, Color: true}
	if o.LogJSON {
		logConfig.Formatter = &utils.JSONFormatter{}
	}
	o.log = utils.NewLoggerWithConfig(logConfig)

	if o.DCFile == "" {
		o.converter = sessionconv.Default()
		return nil
	}

	f, err := os.Open(o.DCFile)
	if err != nil {
		return errors.Wrap(err, "opening data center file")
	}
	defer f.Close()

	entries, err := dc.LoadYAML(f)
	if err != nil {
		return errors.Wrap(err, o.DCFile)
	}
	o.converter, err = sessionconv.New(sessionconv.Config{DataCenters: entries})
	if err != nil {
		return err
	}
	o.log.WithField("file", o.DCFile).Debug("loaded %d extra data center entries", len(entries))
	return nil
}

// NewCmdRoot builds the sessionconv command tree. Defaults come from the environment.
func NewCmdRoot(streams IOStreams) *cobra.Command {
	o := &GlobalOptions{streams: streams}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Convert Telegram session strings between client library formats.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.Complete()
		},
	}
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	o.Config, o.envErr = LoadConfig()
	o.Bind(cmd.PersistentFlags())

	cmd.AddCommand(
		NewCmdConvert(o),
		NewCmdInspect(o),
		NewCmdFormats(o),
		NewCmdDataCenters(o),
		NewCmdEnv(o),
	)
	return cmd
}

// Execute runs the command tree and reports a failure on ErrOut.
func Execute(streams IOStreams, args []string) int {
	cmd := NewCmdRoot(streams)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		utils.NewLoggerWithConfig(&utils.LoggerConfig{Prefix: appName, Output: streams.ErrOut, Color: true}).ErrorErr(err)
		return 1
	}
	return 0
}
