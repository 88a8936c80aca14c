package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"icompress/internal/app"
	"icompress/internal/config"
	"icompress/internal/domain"
	appErrors "icompress/internal/errors"
	"icompress/internal/infra/exif"
	"icompress/internal/infra/fs"
	"icompress/internal/infra/jpegcodec"
	"icompress/internal/logging"
	"icompress/internal/presentation"
	"icompress/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitWithError(err)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:           "icompress --directory <path>",
		Short:         "Downsize and re-encode recent JPEG files as progressive JPEG",
		Long:          "icompress walks a directory tree, shrinks JPEG files larger than 1920x1080 and re-saves every unoptimized one as a progressive JPEG at quality 85, in place.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Resolve(); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			return run(cmd.Context(), cfg)
		},
	}
	cfg = config.Bind(cmd.Flags())
	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	filesystem := fs.OSFS{}
	codec := jpegcodec.Codec{}
	logger := logging.New(os.Stderr, cfg.Verbose)

	runner := app.Runner{
		FS: filesystem,
		Filter: &app.Filter{
			FS:        filesystem,
			Inspector: codec,
			Logger:    logger,
		},
		Engine: &app.Engine{
			FS:      filesystem,
			Codec:   codec,
			Exif:    exif.Reader{},
			Logger:  logger,
			Options: domain.DefaultEncodeOptions(),
		},
		Logger: logger,
	}

	if !cfg.Progress {
		runner.Reporter = presentation.Printer{
			Writer:     os.Stdout,
			Renderer:   lipgloss.NewRenderer(os.Stdout),
			LogSkipped: cfg.LogSkipped(),
		}
		_, err := runner.Run(ctx, cfg.Directory, cfg.Days)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewModel(tui.Config{
		Directory:  cfg.Directory,
		Days:       cfg.Days,
		LogSkipped: cfg.LogSkipped(),
		Cancel:     cancel,
	}))
	runner.Reporter = tui.Reporter{Program: program}

	uiDone := make(chan tea.Model, 1)
	go func() {
		final, _ := program.Run()
		uiDone <- final
	}()

	summary, err := runner.Run(ctx, cfg.Directory, cfg.Days)
	if err != nil {
		program.Quit()
	}
	final := <-uiDone
	if err != nil {
		return err
	}

	// A forced quit leaves the screen without a summary.
	if model, ok := final.(tui.Model); !ok || !model.Finished {
		presentation.Printer{Writer: os.Stdout}.Finish(summary)
	}
	return nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
