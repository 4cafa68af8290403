package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"menedzer-plikow/internal/tree"
)

func newLsCmd(c *cli) *cobra.Command {
	var f tree.Filter
	cmd := &cobra.Command{
		Use:   "ls [parent-id]",
		Short: "List a folder or one of the views",
		Long: `List the live children of a folder, the top level when no id is given.

Examples:
  drivectl ls
  drivectl ls 12
  drivectl ls --view recent
  drivectl ls --search report -o json`,
		Args: cobra.MaximumNArgs(1),
	}
	cmd.Flags().StringVar(&f.View, "view", "", "my-drive, home, recent, starred, shared, trash or storage")
	cmd.Flags().StringVar(&f.Search, "search", "", "case-insensitive name filter over the whole tree")
	cmd.Flags().BoolVar(&f.Starred, "starred", false, "only starred nodes")
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		if len(args) == 1 {
			parentID, err := parseParent(args[0])
			if err != nil {
				return err
			}
			f.ParentID = parentID
		}
		nodes, err := engine.List(cmd.Context(), f)
		if err != nil {
			return err
		}
		return c.printNodes(cmd.OutOrStdout(), nodes)
	})
	return cmd
}

func newStatCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat <id>",
		Short: "Show one node",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		n, err := engine.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return c.printNode(cmd.OutOrStdout(), n)
	})
	return cmd
}

func newMkdirCmd(c *cli) *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "parent folder id (default: top level)")
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		parentID, err := parseParent(parent)
		if err != nil {
			return err
		}
		n, err := engine.CreateFolder(cmd.Context(), args[0], parentID)
		if err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "created %d %s", n.ID, n.Path)
		return nil
	})
	return cmd
}

func newUploadCmd(c *cli) *cobra.Command {
	var parent, name string
	cmd := &cobra.Command{
		Use:   "upload <local-file>",
		Short: "Upload a local file",
		Long: `Upload a local file into a folder. A taken name gets a " (n)" suffix,
the same way uploads through the API do.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "parent folder id (default: top level)")
	cmd.Flags().StringVar(&name, "name", "", "stored name (default: the local file name)")
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		parentID, err := parseParent(parent)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if name == "" {
			name = filepath.Base(args[0])
		}
		n, err := engine.UploadFile(cmd.Context(), name, parentID, f)
		if err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "uploaded %d %s (%s)", n.ID, n.Path, sizeOf(n))
		return nil
	})
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id> [destination]",
		Short: "Download a file",
		Long: `Write a file's content to destination, "-" for stdout.
Without a destination the file is written to the current directory under its own name.`,
		Args: cobra.RangeArgs(1, 2),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		n, body, err := engine.Open(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer body.Close()

		dest := n.Name
		if len(args) == 2 {
			dest = args[1]
		}
		if dest == "-" {
			_, err = io.Copy(cmd.OutOrStdout(), body)
			return err
		}

		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, body); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		printDone(cmd.ErrOrStderr(), "wrote %s (%s)", dest, sizeOf(n))
		return nil
	})
	return cmd
}

func newRenameCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a node",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		path, err := engine.Rename(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "renamed %d -> %s", id, path)
		return nil
	})
	return cmd
}

func newMvCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <id> <parent-id|root>",
		Short: "Move a node into another folder",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		parentID, err := parseParent(args[1])
		if err != nil {
			return err
		}
		path, err := engine.Move(cmd.Context(), id, parentID)
		if err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "moved %d -> %s", id, path)
		return nil
	})
	return cmd
}

func newCpCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cp <id>",
		Short: `Copy a node next to the original as "Copy of ..."`,
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		n, err := engine.Copy(cmd.Context(), id)
		if err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "copied %d -> %d %s", id, n.ID, n.Path)
		return nil
	})
	return cmd
}

func newRmCmd(c *cli) *cobra.Command {
	var permanent bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Move a node to the trash",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&permanent, "permanent", false, "delete the node, its subtree and their bytes for good")
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if permanent {
			if err := engine.PermanentDelete(cmd.Context(), id); err != nil {
				return err
			}
			printDone(cmd.OutOrStdout(), "deleted %d", id)
			return nil
		}
		if err := engine.SoftDelete(cmd.Context(), id); err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "trashed %d", id)
		return nil
	})
	return cmd
}

func newRestoreCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Bring a node and its subtree back from the trash",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := engine.Restore(cmd.Context(), id); err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "restored %d", id)
		return nil
	})
	return cmd
}

func newStarCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "star <id>",
		Short: "Toggle the starred flag",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		starred, err := engine.ToggleStar(cmd.Context(), id)
		if err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "%d starred=%t", id, starred)
		return nil
	})
	return cmd
}

func newShareCmd(c *cli) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Mark a node as shared",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&off, "off", false, "clear the shared flag instead")
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := engine.SetShared(cmd.Context(), id, !off); err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "%d shared=%t", id, !off)
		return nil
	})
	return cmd
}

func newTrashCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "List the trash",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, _ []string) error {
		nodes, err := engine.List(cmd.Context(), tree.Filter{View: tree.ViewTrash})
		if err != nil {
			return err
		}
		return c.printNodes(cmd.OutOrStdout(), nodes)
	})

	empty := &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete everything in the trash",
		Args:  cobra.NoArgs,
	}
	empty.RunE = c.run(func(cmd *cobra.Command, engine *tree.Engine, _ []string) error {
		removed, err := engine.EmptyTrash(cmd.Context())
		if err != nil {
			return err
		}
		printDone(cmd.OutOrStdout(), "removed %d nodes", removed)
		return nil
	})
	cmd.AddCommand(empty)
	return cmd
}
