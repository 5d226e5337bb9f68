// Copyright (c) 2025 @AmarnathCJD

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/amarnathcjd/sessionconv"
)

func NewCmdFormats(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "formats",
		Short:        "List the session formats this build understands.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(g.streams.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tSTORES")
			for _, f := range g.converter.Formats() {
				codec, err := g.converter.Codec(f)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", f, describeFields(codec.Carries()))
			}
			return w.Flush()
		},
	}
}

func describeFields(fields sessionconv.Fields) string {
	names := lo.FilterMap([]lo.Tuple2[sessionconv.Fields, string]{
		lo.T2(sessionconv.FieldAddress, "address"),
		lo.T2(sessionconv.FieldEnvironment, "environment"),
		lo.T2(sessionconv.FieldUser, "user"),
		lo.T2(sessionconv.FieldAppID, "app id"),
	}, func(t lo.Tuple2[sessionconv.Fields, string], _ int) (string, bool) {
		return t.B, fields.Has(t.A)
	})
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

func NewCmdDataCenters(g *GlobalOptions) *cobra.Command {
	var test bool
	cmd := &cobra.Command{
		Use:          "dcs",
		Aliases:      []string{"datacenters"},
		Short:        "List the data center table.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(g.streams.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tENV\tFAMILY\tADDRESS")
			for _, e := range g.converter.DataCenters() {
				if e.Test != test {
					continue
				}
				env, family := "prod", "ipv4"
				if e.Test {
					env = "test"
				}
				if e.IPv6 {
					family = "ipv6"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, env, family, e.Hostname())
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&test, "test", false, "List the test environment instead of production.")
	return cmd
}

func NewCmdEnv(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "env",
		Short:        "List the environment variables that set flag defaults.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := EnvVars()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(g.streams.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDEFAULT\tDESCRIPTION")
			for _, v := range vars {
				fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, lo.Ternary(v.Default == "", "-", v.Default), v.Description)
			}
			return w.Flush()
		},
	}
}
