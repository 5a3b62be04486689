package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pep299/page-summarizer/internal/config"
	"github.com/pep299/page-summarizer/internal/gemini"
	"github.com/pep299/page-summarizer/internal/page"
	"github.com/pep299/page-summarizer/internal/summarize"
)

var (
	flagURL      string
	flagModel    string
	flagBullets  int
	flagMaxWords int
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "page-summarizer",
	Short:         "Summarize a web page into a JSON abstract and bullet points",
	Long:          "Fetches a web page, strips its markup, and asks Gemini for a short abstract and bullet-point summary, printed as JSON.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagVerbose {
			log.SetLevel(log.WarnLevel)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		model := flagModel
		if model == "" {
			model = cfg.GeminiModel
		}

		pages := page.NewClient(time.Duration(cfg.FetchTimeout) * time.Second)
		summarizer := summarize.New(pages, gemini.NewClient(cfg.GeminiAPIKey, model))

		result, err := summarizer.SummarizeURL(context.Background(), flagURL, flagBullets, flagMaxWords)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagURL, "url", "", "URL of the page to summarize")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "Gemini model name (default from GEMINI_MODEL)")
	rootCmd.Flags().IntVar(&flagBullets, "bullets", 6, "Maximum bullet points in the final summary")
	rootCmd.Flags().IntVar(&flagMaxWords, "max-words", 180, "Soft word cap for the abstract")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log pipeline progress to stderr")
	_ = rootCmd.MarkFlagRequired("url")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
