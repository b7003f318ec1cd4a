package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
)

var (
	anaOutputPath string
	anaFormat     string
	anaLimit      int
	anaCriteria   criteriaFlags
	anaInput      inputFlags
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Filter, sort and summarize a review export",
	Long: `Loads a review export, computes the word list over every review, then runs
one filter pass with the given criteria and prints the report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := anaInput.options()
		if err != nil {
			return err
		}
		p, err := anaCriteria.pipeline(cmd)
		if err != nil {
			return err
		}
		q, err := anaCriteria.apply(cmd, defaultQuery(), p.Categories, now())
		if err != nil {
			return err
		}
		all, err := loadDataset(path, opt)
		if err != nil {
			return err
		}
		res := p.Run(all, q, p.Baseline(all))
		rep := &analysis.Report{
			Name:       datasetName(path),
			Total:      len(all),
			Query:      q,
			Result:     res,
			Policy:     p.Policy,
			MaxReviews: anaLimit,
		}
		out, err := renderReport(rep, anaFormat)
		if err != nil {
			return err
		}
		return emit(cmd, anaOutputPath, out)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "md", "report format: md, html or json")
	analyzeCmd.Flags().IntVar(&anaLimit, "limit", 0, "show at most N reviews in the report (0 = all)")
	anaCriteria.register(analyzeCmd)
	anaInput.register(analyzeCmd)
}
