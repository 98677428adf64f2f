package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "dramsim",
	Short: "dramsim replays memory-access traces through a DRAM controller model.",
	Long: `dramsim is a command-line tool for driving the cycle-accurate ` +
		`DRAM memory controller model against a recorded trace of memory ` +
		`accesses and reporting the resulting bank/bus statistics.`,
}

var envFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"file of environment variables to load, if present (flag values are not read from it)")
	cobra.OnInitialize(loadEnvFile)
}

func loadEnvFile() {
	if _, err := os.Stat(envFile); err != nil {
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "dramsim: failed to load %s: %v\n", envFile, err)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
