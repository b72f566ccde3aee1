package main

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ytget/vivid-downloader/internal/config"
)

func newRootCommand() *cobra.Command {
	return buildRootCommand(newCommandContext(config.NewViper()))
}

func buildRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vivid",
		Short:         "Download videos and playlists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFile, "config", "c", "", "Configuration file path")
	flags.StringP("dir", "d", "", "Download directory")
	flags.String("log-level", config.DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	lo.Must0(ctx.viper.BindPFlag(config.KeyDownloadDir, flags.Lookup("dir")))
	lo.Must0(ctx.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level")))

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
