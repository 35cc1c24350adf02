package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/same-cargo/internal/core/domain"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Scaffold a same.yaml for a new cargo project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawKind, _ := cmd.Flags().GetString("kind")
			kind, err := domain.ParseProjectKind(rawKind)
			if err != nil {
				return err
			}
			directory, _ := cmd.Flags().GetString("directory")

			path, err := c.app.Generate(cmd.Context(), domain.ProjectSpec{
				Name:      args[0],
				Kind:      kind,
				Directory: directory,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().String("kind", string(domain.KindApplication), "Project kind: application or library")
	cmd.Flags().String("directory", "", "Parent directory relative to the workspace root (default: apps or libs)")
	return cmd
}
