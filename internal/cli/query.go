// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/openchoreo/valuesmcp/internal/values"
)

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search values.yaml with a natural-language query",
		Example: `  valuesmcp search ingress host
  valuesmcp search etcd backup -r latest --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt(flagLimit)
			result, err := a.service.Search(cmd.Context(), strings.Join(args, " "), a.version, limit)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().Int(flagLimit, values.DefaultSearchLimit, "maximum number of matches")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get PATH",
		Short:   "Show the default value and documentation of a values.yaml key",
		Example: `  valuesmcp get controlPlane.distro.k8s.enabled`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.service.GetValue(cmd.Context(), args[0], a.version)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), result)
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "schema SECTION",
		Short:   "Print the JSON Schema of a values section",
		Example: `  valuesmcp schema controlPlane.ingress -o json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.service.GetSchemaSection(cmd.Context(), args[0], a.version)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), result)
		},
	}
}

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules [SECTION]",
		Short: "List the rules stated in values.yaml comments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) == 1 {
				section = args[0]
			}
			result, err := a.service.ExtractRules(cmd.Context(), section, a.version)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), result)
		},
	}
}

func newVersionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List chart versions (tags and branches)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.write(cmd.OutOrStdout(), a.service.ListVersions(cmd.Context()))
		},
	}
}
