package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rishi01010010/Doc-Analyzer/internal/server"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete audio files older than the retention window",
	Args:  cobra.NoArgs,
	RunE:  runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	audio, err := server.NewAudioStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	removed := audio.Sweep(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d audio file(s) from %s\n", removed, audio.Dir())
	return nil
}
