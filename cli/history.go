package cli

import (
	"encoding/json"
	"errors"

	"csv-to-json/common"

	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.history == "" {
				return errors.New("--history is required")
			}
			cmd.SilenceUsage = true

			db, err := common.OpenDatabase(opts.history)
			if err != nil {
				return err
			}
			defer common.CloseDatabase(db)

			jobs, err := common.NewJobStore(db).List(limit)
			if err != nil {
				return err
			}
			if jobs == nil {
				jobs = []common.ConversionJob{}
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(jobs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", common.DefaultHistoryLimit, "Maximum number of jobs to list")
	return cmd
}
