package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/ytget/vivid-downloader/internal/analysis"
	"github.com/ytget/vivid-downloader/internal/controller"
	"github.com/ytget/vivid-downloader/internal/download"
	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/platform"
	"github.com/ytget/vivid-downloader/internal/queue"
)

const eventBuffer = 256

type getOptions struct {
	format string
}

func newGetCommand(ctx *commandContext) *cobra.Command {
	var opts getOptions

	cmd := &cobra.Command{
		Use:   "get URL...",
		Short: "Analyze URLs and download every video found",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), ctx, cmd.OutOrStdout(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", `Quality label to download, as shown by "vivid analyze" (default Best)`)

	return cmd
}

func runGet(ctx context.Context, cc *commandContext, out io.Writer, urls []string, opts getOptions) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	ex, err := cc.extractor(ctx)
	if err != nil {
		return err
	}
	dir, err := platform.ResolveDownloadDir(cc.fs, cfg.DownloadDir)
	if err != nil {
		return fmt.Errorf("download directory: %w", err)
	}

	events := make(chan model.Event, eventBuffer)
	analyzer := analysis.NewWorker(ex, events, cc.log)
	downloader := download.NewService(ex, dir, events,
		download.WithFallbackSelector(cfg.FallbackFormat),
		download.WithLogger(cc.log),
	)
	store := queue.NewStore(nil)

	for _, url := range urls {
		entries, err := analyzer.Resolve(ctx, url)
		if err != nil {
			fmt.Fprintln(out, color.RedString(analysis.MsgFailedToAnalyze, err.Error()))
			continue
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, color.YellowString("%s: %s", url, analysis.MsgNoVideos))
			continue
		}
		if err := store.AddEntries(entries...); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString(analysis.MsgAddedFormat, len(entries)))
	}
	if store.Len() == 0 {
		return errors.New(analysis.MsgNoVideos)
	}

	store.SelectAll()
	if opts.format != "" {
		applyFormat(out, store, opts.format)
	}

	fmt.Fprintf(out, "Saving to %s\n", color.CyanString(dir))
	progress := mpb.NewWithContext(ctx, mpb.WithOutput(out), mpb.WithWidth(40))
	listener := newProgressListener(progress, store.Entries())

	ctrl := controller.New(ctx, store, analyzer, downloader, events,
		controller.WithListener(listener),
		controller.WithLogger(cc.log),
	)
	ctrl.Start()

	if err := ctrl.OnDownloadRequested(); err != nil {
		return err
	}

	select {
	case <-listener.done:
	case <-ctx.Done():
		listener.abortAll()
		progress.Wait()
		return ctx.Err()
	}
	progress.Wait()

	failed := listener.failed()
	for _, msg := range failed {
		fmt.Fprintln(out, color.RedString(msg))
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d downloads failed", len(failed), store.Len())
	}
	fmt.Fprintln(out, color.GreenString(download.MsgBatchCompleted))
	return nil
}

// applyFormat picks label for every entry offering it. Entries without
// that quality keep Best.
func applyFormat(out io.Writer, store *queue.Store, label string) {
	for _, entry := range store.Entries() {
		if err := store.SetChosenFormat(entry.ID, label); err != nil {
			fmt.Fprintln(out, color.YellowString("%s: %v, using %s", truncate(entry.Title, titleWidth), err, model.BestFormat))
		}
	}
}
