package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/revlens-cli/internal/config"
	"github.com/KaramelBytes/revlens-cli/internal/parser"
	"github.com/KaramelBytes/revlens-cli/internal/review"
	"github.com/KaramelBytes/revlens-cli/internal/utils"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = utils.NewLogger(os.Stderr, false)

	// now is replaced in tests.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "revlens",
	Short: "RevLens CLI: filter, sort and summarize customer review exports",
	Long: `RevLens reads review exports (CSV, TSV, XLSX or JSON) with Date, Rating,
Reviewer and Review Text columns, and reports rating statistics and the most
frequent words for any combination of search, date, rating and category filters.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd.ErrOrStderr())
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.revlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig(stderr io.Writer) error {
	logger = utils.NewLogger(stderr, debug)
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	logger.Debug("sessions dir %s, word policy %s", cfg.SessionsDir, cfg.Policy())
	return nil
}

// loadDataset reads and normalizes a review export.
func loadDataset(path string, opt parser.Options) ([]*review.Review, error) {
	start := time.Now()
	recs, err := parser.ReadFile(path, opt)
	if err != nil {
		return nil, err
	}
	all := review.Normalize(recs)
	logger.Debug("loaded %d reviews from %s in %s", len(all), path, time.Since(start).Round(time.Millisecond))
	warnDefaults(all)
	return all, nil
}

// warnDefaults reports rows whose rating or date fell back to a default.
func warnDefaults(all []*review.Review) {
	unrated, undated := 0, 0
	for _, r := range all {
		if !r.RatingLabel.Known() {
			unrated++
		}
		if r.Date == review.InvalidDate {
			undated++
		}
	}
	if unrated > 0 {
		logger.Warn("%d of %d rows have no recognized rating; counted as %d stars", unrated, len(all), review.DefaultRating)
	}
	if undated > 0 {
		logger.Warn("%d of %d rows have an unreadable date; shown as %s", undated, len(all), review.InvalidDate)
	}
}

// renderReport formats r as md, html or json.
func renderReport(r *analysis.Report, format string) (string, error) {
	switch format {
	case "", "md", "markdown":
		return r.Markdown(), nil
	case "html":
		return r.HTML()
	case "json":
		b, err := utils.PrettyJSON(r)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	}
	return "", fmt.Errorf("unsupported --format: %s (use md, html or json)", format)
}

// emit writes text to path, or to the command's stdout when path is empty.
func emit(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	p, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(p, []byte(text)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", p)
	return nil
}

func datasetName(path string) string { return filepath.Base(path) }
