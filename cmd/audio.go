package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rishi01010010/Doc-Analyzer/internal/server"
)

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "List stored audio files, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runAudio,
}

func runAudio(cmd *cobra.Command, args []string) error {
	audio, err := server.NewAudioStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	artifacts, err := audio.List()
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", audio.Dir(), err)
	}
	if len(artifacts) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No audio files in %s\n", audio.Dir())
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILENAME\tSIZE\tAGE")
	for _, a := range artifacts {
		age := time.Since(a.ModifiedAt).Round(time.Second)
		fmt.Fprintf(w, "%s\t%d\t%s\n", a.Filename, a.Size, age)
	}
	return w.Flush()
}
