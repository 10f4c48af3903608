package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flowcore/connio/internal/connlog"
	"github.com/flowcore/connio/internal/registry"

	_ "github.com/flowcore/connio/backend/all"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "connio",
	Short:         "connio moves events between a registered reader backend and a registered writer backend",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		connlog.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list every registered reader and writer backend name",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("readers:")
		for _, name := range registry.ReaderNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("writers:")
		for _, name := range registry.WriterNames() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}
