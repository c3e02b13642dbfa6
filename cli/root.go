package cli

import (
	"io"
	"log"

	"csv-to-json/common"
	"csv-to-json/exports"

	"github.com/spf13/cobra"
)

// Version of the command line tool
const Version = "0.1.0"

type rootOptions struct {
	output    string
	lowercase bool
	pretty    bool
	quiet     bool
	history   string
}

// Execute runs the command line tool with the process arguments
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the csv-to-json command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "csv-to-json <csv>",
		Short: "Convert csv to json",
		Long: `Convert a CSV file to JSON.

The first row of the file names the keys. A file with one data row (or none)
becomes a single JSON object; a file with more rows becomes an array of
objects. Values are trimmed and empty values become null.

Example Usage:
  csv-to-json people.csv                  # writes people.json in the current directory
  csv-to-json people.csv -o out/p.json -p # pretty output, creating out/ if needed
  csv-to-json people.csv -l               # lower-case the header keys`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runConvert(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "Sets path to output file (default: input file name with .json, in the current directory)")
	f.BoolVarP(&opts.lowercase, "lowercase", "l", false, "Sets the headers to lower case")
	f.BoolVarP(&opts.pretty, "pretty", "p", false, "Pretty-print the json with 4-space indentation")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")
	cmd.PersistentFlags().StringVar(&opts.history, "history", "", "sqlite database that records conversions (disabled when empty)")

	cmd.AddCommand(
		newHistoryCommand(opts),
		newServeCommand(),
		newTokenCommand(),
	)
	return cmd
}

func runConvert(cmd *cobra.Command, input string, opts *rootOptions) error {
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	if opts.quiet {
		logger.SetOutput(io.Discard)
	}

	var store *common.JobStore
	if opts.history != "" {
		db, err := common.OpenDatabase(opts.history)
		if err != nil {
			// history never decides the outcome of a conversion
			logger.Printf("conversion history disabled: %v", err)
		} else {
			defer common.CloseDatabase(db)
			store = common.NewJobStore(db)
		}
	}

	converter := &exports.Converter{
		Lowercase: opts.lowercase,
		Pretty:    opts.pretty,
		Logger:    logger,
		Jobs:      store,
	}
	_, err := converter.Convert(input, opts.output)
	return err
}
