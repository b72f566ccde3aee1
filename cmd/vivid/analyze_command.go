package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/vivid-downloader/internal/analysis"
	"github.com/ytget/vivid-downloader/internal/model"
)

const titleWidth = 60

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze URL",
		Short: "List the videos and formats behind a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := ctx.extractor(cmd.Context())
			if err != nil {
				return err
			}

			worker := analysis.NewWorker(ex, nil, ctx.log)
			entries, err := worker.Resolve(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf(analysis.MsgFailedToAnalyze, err.Error())
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, color.YellowString(analysis.MsgNoVideos))
				return nil
			}

			fmt.Fprintln(out, renderEntries(entries))
			if len(entries) == 1 && entries[0].HasFormats() {
				fmt.Fprintln(out, renderFormats(entries[0].Formats))
			}
			return nil
		},
	}
}

func renderEntries(entries []*model.QueueEntry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(e.Title, titleWidth),
			e.Uploader,
			strconv.Itoa(len(e.Formats)),
			e.Source.URL,
		})
	}
	return renderTable(
		[]string{"#", "Title", "Uploader", "Formats", "URL"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func renderFormats(formats []model.Format) string {
	rows := make([][]string, 0, len(formats))
	for _, f := range formats {
		rows = append(rows, []string{f.Label, f.ID, f.Ext})
	}
	return renderTable([]string{"Quality", "Format ID", "Ext"}, rows, nil)
}
