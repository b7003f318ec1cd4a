package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/revlens-cli/internal/config"
	"github.com/KaramelBytes/revlens-cli/internal/parser"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set RevLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "sessions_dir: %s\n", cfg.SessionsDir)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %s\n", cfg.Delimiter)
		}
		fmt.Fprintf(out, "word_limit: %d\n", cfg.WordLimit)
		fmt.Fprintf(out, "min_word_length: %d\n", cfg.MinWordLength)
		fmt.Fprintf(out, "excluded_words: %s\n", strings.Join(cfg.ExcludedWords, ","))
		fmt.Fprintf(out, "word_policy: %s\n", cfg.Policy())
		fmt.Fprintf(out, "word_stemming: %t\n", cfg.WordStemming)
		fmt.Fprintf(out, "categories: %s\n", strings.Join(cfg.CategoryTable().Names(), ", "))
		fmt.Fprintf(out, "default_sort_field: %s\n", cfg.DefaultSortField)
		fmt.Fprintf(out, "default_sort_direction: %s\n", cfg.DefaultSortDirection)
		fmt.Fprintf(out, "export_driver: %s\n", cfg.ExportDriver)
		if cfg.ExportDSN != "" {
			fmt.Fprintf(out, "export_dsn: %s\n", mask(cfg.ExportDSN))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		switch key {
		case "sessions_dir":
			cfg.SessionsDir = val
		case "delimiter":
			if _, err := parser.ParseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "word_limit", "min_word_length":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			if key == "word_limit" {
				cfg.WordLimit = i
			} else {
				cfg.MinWordLength = i
			}
		case "excluded_words":
			var words []string
			for _, w := range strings.Split(val, ",") {
				if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
					words = append(words, w)
				}
			}
			cfg.ExcludedWords = words
		case "word_policy":
			p, err := analysis.ParseWordPolicy(val)
			if err != nil {
				return err
			}
			cfg.WordPolicy = string(p)
		case "word_stemming":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for word_stemming: %w", err)
			}
			cfg.WordStemming = b
		case "default_sort_field":
			f, err := analysis.ParseSortField(val)
			if err != nil {
				return err
			}
			cfg.DefaultSortField = string(f)
		case "default_sort_direction":
			d, err := analysis.ParseDirection(val)
			if err != nil {
				return err
			}
			cfg.DefaultSortDirection = string(d)
		case "export_driver":
			switch strings.ToLower(val) {
			case "sqlite", "postgres":
				cfg.ExportDriver = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid export_driver: %s (use sqlite or postgres)", val)
			}
		case "export_dsn":
			cfg.ExportDSN = val
		default:
			return fmt.Errorf("unknown key: %s (edit the config file for categories)", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// mask hides the middle of secrets such as a DSN with a password.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
