// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/openchoreo/valuesmcp/internal/validation"
)

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [FILE|-]",
		Short: "Validate a YAML snippet against the chart's values schema",
		Long: "Validate a complete values file, a single section or a nested sub-tree. The schema section is " +
			"detected from the snippet's keys; use --section when the snippet omits its parent keys. " +
			"Reads stdin when FILE is omitted or '-'. Exits non-zero when the snippet is invalid.",
		Example: `  valuesmcp validate my-values.yaml
  printf 'replicas: 0\n' | valuesmcp validate --section controlPlane.statefulSet.highAvailability`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snippet, err := readInput(cmd, args, a.cfg.Validator.MaxSnippetBytes)
			if err != nil {
				return err
			}
			section, _ := cmd.Flags().GetString(flagSection)

			result, err := a.service.Validate(cmd.Context(), snippet, a.version, section)
			if err != nil {
				return err
			}
			if err := a.write(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Valid {
				return ErrInvalid
			}
			return nil
		},
	}
	cmd.Flags().String(flagSection, "", "dotted section path the snippet belongs to")
	return cmd
}

// readInput reads the snippet from FILE or stdin. At most limit+1 bytes are read so that an
// oversized input is reported by the validator without being buffered in full.
func readInput(cmd *cobra.Command, args []string, limit int) (string, error) {
	if limit <= 0 {
		limit = validation.DefaultMaxSnippetBytes
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), int64(limit)+1))
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, int64(limit)+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
