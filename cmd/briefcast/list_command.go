package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwulff/briefcast/internal/playback"
	"github.com/jwulff/briefcast/internal/podcast"
)

const descriptionWidth = 48

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "List published podcasts, optionally filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			list, err := store.Load()
			if err != nil {
				return fmt.Errorf("load podcasts: %w", err)
			}
			if len(args) == 1 {
				list = podcast.Filter(list, args[0])
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No podcasts found.")
				return nil
			}
			fmt.Fprintln(out, renderPodcasts(list, ctx.config.Service.BaseURL))
			return nil
		},
	}
}

// renderPodcasts tables the list with audio refs resolved against the
// service root, so the URLs can be fetched directly.
func renderPodcasts(list []podcast.Podcast, baseURL string) string {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		audio := "-"
		if p.HasAudio() {
			audio = playback.ResolveRef(baseURL, p.AudioRef)
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Date,
			p.Language,
			audio,
			strings.ReplaceAll(p.Description, "\n", " "),
		})
	}
	return renderTable(
		[]string{"ID", "Name", "Date", "Language", "Audio URL", "Description"},
		rows,
		map[int]int{5: descriptionWidth},
	)
}
