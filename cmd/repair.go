package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"task-board.com/task-board/internal/services"
)

var repairBoardID string

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Renumber column and task positions to 0..n-1",
	Long:  "Reindexes sibling positions of every board, or of a single board with --board, and reports how many rows moved",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := context.Background()
		repair := services.NewRepairService(a.store, a.logger)

		if repairBoardID != "" {
			fixed, columns, err := repair.RepairBoard(ctx, repairBoardID)
			if err != nil {
				return err
			}
			a.logger.Info("board repaired",
				zap.String("board_id", repairBoardID),
				zap.Int("columns", columns),
				zap.Int("fixed", fixed),
			)
			return nil
		}

		report, err := repair.RepairAll(ctx)
		if err != nil {
			return err
		}
		a.logger.Info("boards repaired",
			zap.Int("boards", report.Boards),
			zap.Int("columns", report.Columns),
			zap.Int("fixed", report.Fixed),
		)
		return nil
	},
}

func init() {
	repairCmd.Flags().StringVar(&repairBoardID, "board", "", "only repair the board with this id")
	rootCmd.AddCommand(repairCmd)
}
