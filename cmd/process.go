package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Rishi01010010/Doc-Analyzer/internal/domain"
	"github.com/Rishi01010010/Doc-Analyzer/internal/server"
)

var processCmd = &cobra.Command{
	Use:   "process <image>",
	Short: "Run one image through the pipeline and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	components, err := server.NewComponents(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	result, err := components.Pipeline.Run(cmd.Context(), domain.UploadedImage{
		Filename: filepath.Base(path),
		Data:     data,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
