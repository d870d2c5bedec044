// Command gostdoc reformats DOCX documents to the GOST 7.32 standard, as a
// one-shot CLI, a Telegram bot or an HTTP service.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc"
	"github.com/gost-tools/gostdoc/bot"
	"github.com/gost-tools/gostdoc/config"
	"github.com/gost-tools/gostdoc/server"
)

var (
	cfgPath string
	cfg     config.Config
	logger  *zap.Logger
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gostdoc",
		Short:         "Reformat DOCX documents to GOST 7.32",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			logger, err = config.Logger(cfg.Log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to TOML config file")

	root.AddCommand(formatCmd(), botCmd(), serveCmd(), initConfigCmd())
	return root
}

func formatCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "format <input.docx>",
		Short: "Format a single document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				ext := filepath.Ext(input)
				output = strings.TrimSuffix(input, ext) + "_gost" + ext
			}
			stats, err := gostdoc.Open(input).
				WithConfig(cfg.StyleConfig()).
				WithLogger(logger).
				Format(output)
			if err != nil {
				return err
			}
			fmt.Printf("%s: figures %d, tables %d, formulas %d\n",
				output, stats.Figures, stats.Tables, stats.Formulas)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <input>_gost.docx)")
	return cmd
}

func botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			b, err := bot.New(cfg.Bot, cfg.StyleConfig(), logger)
			if err != nil {
				return err
			}
			if err := b.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP formatting service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg.Server, cfg.StyleConfig(), logger).Run(ctx)
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config <path>",
		Short: "Write a config file with the default settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().Save(args[0]); err != nil {
				return err
			}
			fmt.Println("wrote", args[0])
			return nil
		},
	}
}
