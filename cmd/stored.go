package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/revlens-cli/internal/storage"
)

var (
	storedFrom    string
	storedDSN     string
	storedReviews bool
)

var storedCmd = &cobra.Command{
	Use:   "stored",
	Short: "Show what the last SQL export wrote",
	Long: `Reads the reviews and word_frequencies tables written by "export --to
sqlite|postgres" and prints the stored word list. Use --reviews to list the
stored reviews as well.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		driver := strings.ToLower(storedFrom)
		if driver == "" {
			driver = strings.ToLower(cfg.ExportDriver)
		}
		switch driver {
		case "sqlite", "sqlite3":
			driver = "sqlite"
		case "postgres", "postgresql":
			driver = "postgres"
		default:
			return fmt.Errorf("stored exports are read from sqlite or postgres, not %q", driver)
		}
		dsn := storedDSN
		if dsn == "" {
			dsn = cfg.ExportDSN
		}
		if dsn == "" {
			return fmt.Errorf("%s needs --dsn", driver)
		}

		reviews, err := storage.ReadReviews(cmd.Context(), driver, dsn)
		if err != nil {
			return err
		}
		words, err := storage.ReadWords(cmd.Context(), driver, dsn)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(reviews) > 0 {
			fmt.Fprintf(out, "Dataset: %s (exported %s)\n", reviews[0].Dataset, reviews[0].ExportedAt)
		} else if len(words) > 0 {
			fmt.Fprintf(out, "Dataset: %s (exported %s)\n", words[0].Dataset, words[0].ExportedAt)
		}
		fmt.Fprintf(out, "Reviews: %d\n", len(reviews))
		fmt.Fprintln(out, "\n[TOP WORDS]")
		if len(words) == 0 {
			fmt.Fprintln(out, "(none)")
		}
		for _, w := range words {
			fmt.Fprintf(out, "%d. %s (%d)\n", w.Rank, w.Word, w.Count)
		}
		if storedReviews {
			fmt.Fprintln(out, "\n[REVIEWS]")
			for _, r := range reviews {
				name := r.Reviewer
				if name == "" {
					name = "Anonymous"
				}
				fmt.Fprintf(out, "%d. %s | %d stars | %s\n", r.Position, r.Date, r.Rating, name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storedCmd)
	storedCmd.Flags().StringVar(&storedFrom, "from", "", "sqlite or postgres (default from export_driver)")
	storedCmd.Flags().StringVar(&storedDSN, "dsn", "", "SQL data source name (default from export_dsn)")
	storedCmd.Flags().BoolVar(&storedReviews, "reviews", false, "also list the stored reviews")
}
