package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
	"github.com/Rishi01010010/Doc-Analyzer/pkg/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docanalyzer",
	Short: "Read, correct, summarize and speak scanned documents",
	Long: `docanalyzer extracts text from an image with Tesseract, corrects it with
LanguageTool, summarizes it with Gemini and reads the summary aloud as MP3.

Settings come from environment variables or a .env file in the working directory.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: syncLogger,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(audioCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err = logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func syncLogger(cmd *cobra.Command, args []string) error {
	if log != nil {
		_ = log.Sync()
	}
	return nil
}
