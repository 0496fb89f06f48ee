package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"task-board.com/task-board/internal/services"
)

var pruneCmd = &cobra.Command{
	Use:   "prune-magic-links",
	Short: "Delete expired magic links once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		janitor := services.NewMagicLinkJanitor(a.store, a.cfg.MagicLinkCleanup, a.logger)
		deleted, err := janitor.PruneOnce(context.Background())
		if err != nil {
			return err
		}

		a.logger.Info("expired magic links pruned", zap.Int64("deleted", deleted))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
