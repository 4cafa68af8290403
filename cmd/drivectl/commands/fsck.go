package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"menedzer-plikow/internal/tree"
)

func newFsckCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsck",
		Short: "Check that metadata and storage agree",
		Long: `Compare every node's stored path with the path its ancestors imply, and
both with what the file storage holds. Nothing is changed; run "drivectl repair"
to rewrite drifted paths. Exits non-zero when issues are found.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, _ []string) error {
		report, err := engine.Check(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if c.output == "json" {
			if err := printJSON(out, report); err != nil {
				return err
			}
		} else if !report.Clean() {
			rows := make([][]string, 0, len(report.Issues))
			for _, is := range report.Issues {
				node := "-"
				if is.NodeID != 0 {
					node = strconv.FormatInt(is.NodeID, 10)
				}
				rows = append(rows, []string{string(is.Kind), node, is.Path, is.Expected})
			}
			printTable(out, []string{"Issue", "Node", "Path", "Expected"}, rows)
		}

		if report.Clean() {
			printDone(cmd.ErrOrStderr(), "%d nodes checked, no issues", report.Nodes)
			return nil
		}
		return fmt.Errorf("%d nodes checked, %d issues", report.Nodes, len(report.Issues))
	})
	return cmd
}

func newRepairCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Rewrite stored paths that disagree with the folder hierarchy",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, _ []string) error {
		repaired, err := engine.RepairPaths(cmd.Context())
		if err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "repaired %d paths", repaired)
		return nil
	})
	return cmd
}
