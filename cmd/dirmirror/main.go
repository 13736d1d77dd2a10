package main

import (
	"context"
	"dirmirror/internal/dirsyncer"
	"dirmirror/internal/log"
	"dirmirror/internal/settings"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Executable).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

//newRootCmd builds the CLI; executable locates the running binary, next to which the replica lives.
func newRootCmd(executable func() (string, error)) *cobra.Command {
	var flags settings.Flags
	cmd := &cobra.Command{
		Use:   "dirmirror <source_folder> <log_file_path> <sync_interval_seconds>",
		Short: "Periodically mirrors the source folder into the \"replica\" folder next to this executable",
		Long: "Every sync interval the replica folder is made an exact copy of the source folder: " +
			"new and modified files are copied, files and folders absent in the source are removed. " +
			"The process runs until interrupted.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			exePath, err := executable()
			if err != nil {
				return fmt.Errorf("cannot locate the executable: %w", err)
			}
			stg, err := settings.New(args, flags, exePath)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true // the arguments are fine, later errors are not about usage

			logger, err := log.New(stg.LogLevel, stg.LogFile, stg.LogToStd)
			if err != nil {
				return fmt.Errorf("cannot set up logging: %w", err)
			}
			defer func() { _ = logger.Sync() }()
			logger.Debug("settings: " + stg.String())

			return dirsyncer.New(logger, *stg).Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.LogLevel, "loglvl", log.InfoLevel,
		fmt.Sprintf("level of logging, permitted values are: %v, %v, %v, %v",
			log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel))
	cmd.Flags().BoolVar(&flags.LogToStd, "log2std", true,
		"if true, then logs are written to the console as well as to the log file")
	cmd.Flags().BoolVar(&flags.Once, "once", false,
		"if true, then directories are synchronized only once (i.e. the program has finite execution), "+
			"otherwise - the process is started and lasts indefinitely (until interruption)")
	return cmd
}
