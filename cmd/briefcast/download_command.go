package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jwulff/briefcast/internal/playback"
	"github.com/jwulff/briefcast/internal/podcast"
)

const defaultDownloadName = "podcast.mp3"

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <id|name>",
		Short: "Save the audio of a published podcast",
		Args:  cobra.ExactArgs(1),
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
			p, ok := findPodcast(list, args[0])
			if !ok {
				return fmt.Errorf("no published podcast matches %q", args[0])
			}

			src := playback.ResolveRef(ctx.config.Service.BaseURL, p.AudioRef)
			u, err := url.Parse(src)
			if !p.HasAudio() || err != nil || (u.Scheme != "http" && u.Scheme != "https") {
				return fmt.Errorf("podcast %q has no downloadable audio", p.Name)
			}
			if output == "" {
				output = downloadName(u)
			}

			n, err := downloadAudio(cmd, &http.Client{Timeout: ctx.config.Timeout()}, src, output)
			if err != nil {
				return err
			}
			ctx.ensureLogger().Info("audio downloaded", "id", p.ID, "url", src, "path", output, "bytes", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q audio to %s (%d bytes)\n", p.Name, output, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default: the file name from the audio URL)")
	return cmd
}

// findPodcast looks an argument up by ID first, then by exact name. The
// list is newest first, so a repeated name resolves to the latest record.
func findPodcast(list []podcast.Podcast, arg string) (podcast.Podcast, bool) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		for _, p := range list {
			if p.ID == id {
				return p, true
			}
		}
	}
	for _, p := range list {
		if p.Name == arg {
			return p, true
		}
	}
	return podcast.Podcast{}, false
}

func downloadName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return defaultDownloadName
	}
	return name
}

func downloadAudio(cmd *cobra.Command, client *http.Client, src, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, src, nil)
	if err != nil {
		return 0, fmt.Errorf("build download request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download audio: unexpected status %s", resp.Status)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, errors.Join(fmt.Errorf("write audio: %w", err), os.Remove(dest))
	}
	return n, nil
}
