package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"textdate/htmldate"
	"textdate/locales"
	"textdate/log"
	"textdate/parser"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "textdate",
		Short: "Parse dates out of free-form text",
	}
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(localesCmd())
	rootCmd.AddCommand(extractCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type parseOutput struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Second     int    `json:"second"`
	Zone       string `json:"zone,omitempty"`
	Offset     *int   `json:"offset_seconds,omitempty"`
	Inferred   string `json:"inferred,omitempty"`
	Confidence string `json:"confidence"`
	Ambiguous  bool   `json:"ambiguous"`
	Locale     string `json:"locale"`
	Time       string `json:"time"`
}

func parseCmd() *cobra.Command {
	var localeHint string
	var regionHint string
	var strict bool
	var preferFuture bool
	var anchor string

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a date expression and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := parser.Config{
				LocaleHint:   localeHint,
				RegionHint:   regionHint,
				Strict:       strict,
				PreferFuture: preferFuture,
			}
			if anchor != "" {
				now, err := time.Parse(time.RFC3339, anchor)
				if err != nil {
					return err
				}
				cfg.Now = now
			}

			result, err := parser.Parse(args[0], cfg)
			if err != nil {
				log.Error().Err(err).Str("input", args[0]).Msg("Parse failed")
				return err
			}

			output := parseOutput{
				Year:       result.Year,
				Month:      result.Month,
				Day:        result.Day,
				Hour:       result.Hour,
				Minute:     result.Minute,
				Second:     result.Second,
				Zone:       result.Zone,
				Inferred:   result.Inferred.String(),
				Confidence: result.Confidence.String(),
				Ambiguous:  result.Ambiguous,
				Locale:     result.Locale,
				Time:       result.Time().Format(time.RFC3339Nano),
			}
			if result.HasOffset {
				offset := result.OffsetSeconds
				output.Offset = &offset
			}

			encoded, err := json.MarshalIndent(&output, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&localeHint, "locale", "", "preferred locale code (en, pt-BR)")
	cmd.Flags().StringVar(&regionHint, "region", "", "region for timezone abbreviations (US, CN)")
	cmd.Flags().BoolVar(&strict, "strict", false, "refuse ambiguous readings")
	cmd.Flags().BoolVar(&preferFuture, "prefer-future", false, "resolve bare weekdays and missing years forward")
	cmd.Flags().StringVar(&anchor, "now", "", "anchor time as RFC 3339 (default: current time)")
	return cmd
}

func localesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List registered locales",
		Run: func(_ *cobra.Command, _ []string) {
			for _, locale := range locales.All() {
				fmt.Printf("%s\t%s\n", locale.Code, locale.Name)
			}
		},
	}
}

func extractCmd() *cobra.Command {
	var guessYear bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a publication date from HTML on stdin",
		RunE: func(_ *cobra.Command, _ []string) error {
			source, err := htmldate.Extract(os.Stdin, htmldate.Options{GuessYear: guessYear})
			if err != nil {
				return err
			}
			if source == nil {
				log.Info().Msg("No date found")
				os.Exit(1)
			}
			fmt.Printf("%s\t%s\n", source.Date, source.Kind)
			return nil
		},
	}

	cmd.Flags().BoolVar(&guessYear, "guess-year", false, "accept dates with no year")
	return cmd
}
