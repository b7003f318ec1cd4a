package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	"github.com/KaramelBytes/revlens-cli/internal/review"
	"github.com/KaramelBytes/revlens-cli/internal/session"
	"github.com/KaramelBytes/revlens-cli/internal/storage"
)

var (
	expTo       string
	expOutput   string
	expDSN      string
	expSession  string
	expCriteria criteriaFlags
	expInput    inputFlags
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write filtered reviews and word counts to JSON, CSV, SQLite or Postgres",
	Long: `Runs one filter pass and writes the resulting reviews. JSON and CSV keep the
source columns (CSV adds "Rating Value" and "Normalized Date"). SQL targets
replace the reviews and word_frequencies tables in one transaction.

Either pass a dataset file or --session to export a session's current state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (len(args) == 0) == (expSession == "") {
			return errors.New("specify exactly one of <file> or --session")
		}
		p, err := expCriteria.pipeline(cmd)
		if err != nil {
			return err
		}

		var (
			all  []*review.Review
			name string
			q    analysis.Query
			prev []analysis.WordEntry
		)
		if expSession != "" {
			s, err := session.Open(cfg.SessionsDir, expSession)
			if err != nil {
				return err
			}
			if all, err = sessionReviews(s); err != nil {
				return err
			}
			name, q, prev = filepath.Base(s.Dataset), s.Query(), s.TopWords
		} else {
			opt, err := expInput.options()
			if err != nil {
				return err
			}
			if all, err = loadDataset(args[0], opt); err != nil {
				return err
			}
			name, q = datasetName(args[0]), defaultQuery()
			prev = p.Baseline(all)
		}
		q, err = expCriteria.apply(cmd, q, p.Categories, now())
		if err != nil {
			return err
		}
		res := p.Run(all, q, prev)

		kind := expTo
		if kind == "" {
			kind = cfg.ExportDriver
		}
		dsn := expDSN
		if dsn == "" && strings.EqualFold(kind, cfg.ExportDriver) {
			dsn = cfg.ExportDSN
		}
		sink, err := storage.Open(storage.Target{Kind: kind, Path: expOutput, DSN: dsn, Stdout: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		rep := &analysis.Report{Name: name, Total: len(all), Query: q, Result: res, Policy: p.Policy}
		if err := sink.Write(cmd.Context(), rep); err != nil {
			return fmt.Errorf("export %s: %w", kind, err)
		}
		logger.Info("exported %d reviews and %d words as %s", len(res.Reviews), len(res.Words), kind)
		if (expOutput != "" && expOutput != "-") || dsn != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d reviews (%s)\n", len(res.Reviews), kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&expTo, "to", "", "export target: "+strings.Join(storage.Kinds, ", ")+" (default from export_driver)")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output file for json/csv/sqlite (json/csv default to stdout)")
	exportCmd.Flags().StringVar(&expDSN, "dsn", "", "SQL data source name (default from export_dsn)")
	exportCmd.Flags().StringVarP(&expSession, "session", "s", "", "export a session's current state instead of a file")
	expCriteria.register(exportCmd)
	expInput.register(exportCmd)
}
