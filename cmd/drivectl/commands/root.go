// Package commands implements drivectl, the offline administration tool for a drive's
// metadata store and file storage.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"menedzer-plikow/internal/app"
	"menedzer-plikow/internal/config"
	"menedzer-plikow/internal/logger"
	"menedzer-plikow/internal/tree"
)

type cli struct {
	cfgFile string
	verbose bool
	output  string
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "drivectl",
		Short: "Inspect and maintain a drive without the HTTP server",
		Long: `drivectl works directly on the metadata store and file storage configured
in settings.yml. Stop the server first when the metadata store is badger,
which allows a single process at a time.

Use "drivectl [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ./configs/settings.yml or /configs/settings.yml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log engine operations to stderr")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "table", "output format (table|json)")

	root.AddCommand(
		newLsCmd(c),
		newStatCmd(c),
		newMkdirCmd(c),
		newUploadCmd(c),
		newGetCmd(c),
		newRenameCmd(c),
		newMvCmd(c),
		newCpCmd(c),
		newRmCmd(c),
		newRestoreCmd(c),
		newStarCmd(c),
		newShareCmd(c),
		newTrashCmd(c),
		newFsckCmd(c),
		newRepairCmd(c),
	)
	return root
}

// Execute runs drivectl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// open wires an engine to the configured backends. The returned func releases them.
func (c *cli) open(cmd *cobra.Command) (*tree.Engine, func(), error) {
	cfg, err := config.LoadFile(c.cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: cfg.Logging.Format, Output: "stderr"})
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	store, err := app.OpenStore(ctx, cfg.Metadata)
	if err != nil {
		return nil, nil, err
	}
	files, err := app.OpenStorage(ctx, cfg.Storage)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	log.Debug("drivectl opened backends", "where", app.Describe(cfg))

	engine := tree.New(store, files, tree.Options{
		RootPrefix:     cfg.Storage.RootPrefix,
		Owner:          cfg.Owner,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		Logger:         log,
	})
	return engine, func() { store.Close() }, nil
}

// run opens the engine around fn.
func (c *cli) run(fn func(cmd *cobra.Command, engine *tree.Engine, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		engine, closeFn, err := c.open(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(cmd, engine, args)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid node id %q", s)
	}
	return id, nil
}

// parseParent accepts a node id, or "" and "root" for the top level.
func parseParent(s string) (*int64, error) {
	if s == "" || strings.EqualFold(s, "root") {
		return nil, nil
	}
	id, err := parseID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
