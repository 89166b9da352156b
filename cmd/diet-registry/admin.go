// cmd/diet-registry/admin.go
package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mcp-diet-registry/internal/models"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration panel operations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "options",
			Short: "Show which form sections participants may edit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				opts, err := a.client().GetEditOptions(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, opts)
			},
		},
		&cobra.Command{
			Use:       "set-option FIELD true|false",
			Short:     "Enable or disable editing of one form section",
			Args:      cobra.ExactArgs(2),
			ValidArgs: models.EditOptionFields,
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := strconv.ParseBool(args[1])
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", args[1], err)
				}
				if err := a.client().SetEditOption(cmd.Context(), args[0], value); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Se actualizó correctamente")
				return nil
			},
		},
		&cobra.Command{
			Use:   "free-registry",
			Short: "Toggle free registry mode",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := a.client().ToggleFreeRegistry(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "registroLibre: %t\n", enabled)
				return nil
			},
		},
		&cobra.Command{
			Use:   "pyramid",
			Short: "List the food pyramid levels",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				levels, err := a.client().ListPyramidLevels(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, levels)
			},
		},
		&cobra.Command{
			Use:   "set-pyramid LEVEL URL",
			Short: "Set the image of one pyramid level (0-5)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				level, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid level %q: %w", args[0], err)
				}
				created, err := a.client().UpsertPyramidLevel(cmd.Context(), level, args[1])
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintln(cmd.OutOrStdout(), "Se creó correctamente")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Se actualizó correctamente")
				}
				return nil
			},
		},
	)
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
