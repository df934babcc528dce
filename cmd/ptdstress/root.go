package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	workers    int
	iterations int
	capacity   int
	recycle    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ptdstress",
	Short: "Stress the per-thread runtime-data registry",
	Long: `ptdstress brings up a thread-data registry, runs concurrent workers
through lookup/release cycles, and prints the resulting registry and pool
counters. With --recycle, workers simulate the host recycling dead thread
identifiers so the in-place block reuse path is exercised.`,
	Version: "0.1.0",
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return runStress(log)
	},
}

func init() {
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 16, "concurrent workers")
	rootCmd.Flags().IntVarP(&iterations, "iterations", "n", 1000, "lookup/release cycles per worker")
	rootCmd.Flags().IntVarP(&capacity, "capacity", "c", 64, "block pool capacity")
	rootCmd.Flags().BoolVar(&recycle, "recycle", false, "simulate thread-identifier recycling")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}
