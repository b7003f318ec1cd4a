package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	"github.com/KaramelBytes/revlens-cli/internal/review"
	"github.com/KaramelBytes/revlens-cli/internal/session"
)

var (
	sesName    string
	sesFormat  string
	sesOutput  string
	sesLimit   int
	sesForce   bool
	sesInput   inputFlags
	sesApply   criteriaFlags
	sesSortDir string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run analysis passes that remember their criteria and word list",
	Long: `A session keeps one dataset, the current filter and sort, and the word list
from the last pass. Each apply starts from the stored state, so a category
filter narrows the word list left by the previous pass.`,
}

var sessionInitCmd = &cobra.Command{
	Use:   "init <name> <dataset>",
	Short: "Create a session and compute its initial word list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, dataset := args[0], args[1]
		if err := session.ValidName(name); err != nil {
			return err
		}
		if session.Exists(cfg.SessionsDir, name) && !sesForce {
			return fmt.Errorf("session %q already exists at %s (use --force to replace it)", name, session.Dir(cfg.SessionsDir, name))
		}
		abs, err := filepath.Abs(dataset)
		if err != nil {
			return fmt.Errorf("resolve dataset path: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		s := session.New(name, abs, session.Dir(cfg.SessionsDir, name))
		s.Delimiter = sesInput.delimiterName()
		s.SheetName = sesInput.sheetName
		s.SheetIndex = sesInput.sheetIndex
		s.Sort = defaultQuery().Sort
		if _, err := s.ParserOptions(); err != nil {
			return fmt.Errorf("--delimiter: %w", err)
		}
		all, err := sessionReviews(s)
		if err != nil {
			return err
		}
		s.Reset(cfg.Pipeline(), all)
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Session initialized: %s (%d reviews, %d words)\n", s.RootDir(), len(all), len(s.TopWords))
		return nil
	},
}

var sessionApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Change the session's criteria and run one pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.Open(cfg.SessionsDir, sesName)
		if err != nil {
			return err
		}
		p, err := sesApply.pipeline(cmd)
		if err != nil {
			return err
		}
		q, err := sesApply.apply(cmd, s.Query(), p.Categories, now())
		if err != nil {
			return err
		}
		return runSessionPass(cmd, s, p, q)
	},
}

var sessionSortCmd = &cobra.Command{
	Use:   "sort <field>",
	Short: "Sort by a field, flipping direction when it is already the active field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := analysis.ParseSortField(args[0])
		if err != nil {
			return err
		}
		s, err := session.Open(cfg.SessionsDir, sesName)
		if err != nil {
			return err
		}
		q := s.Query()
		q.Sort = q.Sort.Toggle(field)
		if sesSortDir != "" {
			d, err := analysis.ParseDirection(sesSortDir)
			if err != nil {
				return err
			}
			q.Sort.Direction = d
		}
		return runSessionPass(cmd, s, cfg.Pipeline(), q)
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the criteria and recompute the word list from every review",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.Open(cfg.SessionsDir, sesName)
		if err != nil {
			return err
		}
		all, err := sessionReviews(s)
		if err != nil {
			return err
		}
		s.Criteria = analysis.DefaultCriteria()
		s.Sort = defaultQuery().Sort
		s.Reset(cfg.Pipeline(), all)
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Session reset: %s\n", s.Name)
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a session's dataset, criteria and carried word list",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.Open(cfg.SessionsDir, sesName)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "name: %s\n", s.Name)
		fmt.Fprintf(out, "id: %s\n", s.ID)
		fmt.Fprintf(out, "dataset: %s\n", s.Dataset)
		fmt.Fprintf(out, "search: %q\n", s.Criteria.Search)
		fmt.Fprintf(out, "dates: %s .. %s\n", orAny(s.Criteria.Dates.Start), orAny(s.Criteria.Dates.End))
		fmt.Fprintf(out, "rating: %s\n", s.Criteria.Rating)
		fmt.Fprintf(out, "category: %s\n", s.Criteria.Category)
		fmt.Fprintf(out, "sort: %s\n", s.Sort)
		fmt.Fprintf(out, "passes: %d\n", s.Passes)
		fmt.Fprintf(out, "updated: %s\n", s.UpdatedAt.Format("2006-01-02 15:04:05"))
		words := make([]string, len(s.TopWords))
		for i, w := range s.TopWords {
			words[i] = fmt.Sprintf("%s(%d)", w.Word, w.Count)
		}
		if len(words) == 0 {
			words = append(words, "(none)")
		}
		fmt.Fprintf(out, "top words: %s\n", strings.Join(words, " "))
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := session.List(cfg.SessionsDir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "(no sessions)")
			return nil
		}
		for _, s := range list {
			fmt.Fprintf(out, "- %s: %s (%d passes)\n", s.Name, filepath.Base(s.Dataset), s.Passes)
		}
		return nil
	},
}

func runSessionPass(cmd *cobra.Command, s *session.Session, p *analysis.Pipeline, q analysis.Query) error {
	all, err := sessionReviews(s)
	if err != nil {
		return err
	}
	res := s.Apply(p, all, q)
	if err := s.Save(); err != nil {
		return err
	}
	logger.Debug("session %s pass %d: %d of %d reviews", s.Name, s.Passes, res.Stats.Count, len(all))
	rep := &analysis.Report{
		Name:       filepath.Base(s.Dataset),
		Total:      len(all),
		Query:      q,
		Result:     res,
		Policy:     p.Policy,
		MaxReviews: sesLimit,
	}
	text, err := renderReport(rep, sesFormat)
	if err != nil {
		return err
	}
	return emit(cmd, sesOutput, text)
}

func sessionReviews(s *session.Session) ([]*review.Review, error) {
	all, err := s.Reviews()
	if err != nil {
		return nil, err
	}
	logger.Debug("session %s: %d reviews from %s", s.Name, len(all), s.Dataset)
	warnDefaults(all)
	return all, nil
}

func orAny(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionInitCmd, sessionApplyCmd, sessionSortCmd, sessionResetCmd, sessionShowCmd, sessionListCmd)

	sessionInitCmd.Flags().BoolVar(&sesForce, "force", false, "replace an existing session")
	sesInput.register(sessionInitCmd)

	for _, c := range []*cobra.Command{sessionApplyCmd, sessionSortCmd, sessionResetCmd, sessionShowCmd} {
		c.Flags().StringVarP(&sesName, "session", "s", "", "session name")
		_ = c.MarkFlagRequired("session")
	}
	for _, c := range []*cobra.Command{sessionApplyCmd, sessionSortCmd} {
		c.Flags().StringVarP(&sesFormat, "format", "f", "md", "report format: md, html or json")
		c.Flags().StringVarP(&sesOutput, "output", "o", "", "write the report to a file instead of stdout")
		c.Flags().IntVar(&sesLimit, "limit", 0, "show at most N reviews in the report (0 = all)")
	}
	sessionSortCmd.Flags().StringVar(&sesSortDir, "dir", "", "force the direction instead of toggling")
	sesApply.register(sessionApplyCmd)
}
