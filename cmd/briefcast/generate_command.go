package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwulff/briefcast/internal/generation"
	"github.com/jwulff/briefcast/internal/playback"
	"github.com/jwulff/briefcast/internal/workflow"
)

type generateOptions struct {
	name     string
	voice    string
	language string
	approve  bool
	publish  bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a podcast without the TUI",
		Long: `Generate runs one session: it requests a transcript, prints it, and
with approval waits for audio and optionally publishes the result.
Missing values are prompted for when stdin is a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Podcast name or topic")
	cmd.Flags().StringVar(&opts.voice, "voice", "", "Voice code or picker label (default from config)")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "hi, en or both (default from config)")
	cmd.Flags().BoolVar(&opts.approve, "approve", false, "Approve the transcript without asking")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Publish after audio is ready without asking")
	return cmd
}

func runGenerate(cmd *cobra.Command, ctx *commandContext, opts generateOptions) error {
	cfg := ctx.config
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	interactive := isTerminal(in)

	answers := requestAnswers{
		Name:     opts.name,
		Voice:    firstNonEmpty(opts.voice, cfg.Workflow.DefaultVoice),
		Language: firstNonEmpty(opts.language, cfg.Language().Code()),
	}
	if strings.TrimSpace(answers.Name) == "" && interactive {
		var err error
		if answers, err = promptRequest(in, out, answers); err != nil {
			return err
		}
	}
	lang, err := generation.ParseLanguage(answers.Language)
	if err != nil {
		return err
	}

	defer ctx.close()
	if err := ctx.acquireLock(); err != nil {
		return err
	}
	ctrl, err := ctx.controller(cmd)
	if err != nil {
		return err
	}

	req := generation.NewRequest(answers.Name, answers.Voice, lang)
	effect, err := ctrl.Submit(req)
	if errors.Is(err, workflow.ErrEmptyName) {
		return errors.New("a podcast name is required (use --name)")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Generating %s transcript for %q...\n", lang, req.Name)
	ctrl.Update(effect())
	sess, _ := ctrl.Session()
	if sess.HasError() {
		_ = ctrl.Discard()
		return fmt.Errorf("generate: %s", sess.ErrorMessage)
	}
	printTranscript(out, sess.Transcript)

	if !opts.approve && !promptConfirm(in, out, "Approve this transcript?") {
		_ = ctrl.Discard()
		fmt.Fprintln(out, "Transcript not approved; nothing was published.")
		return nil
	}

	effect, err = ctrl.ApproveTranscript()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Waiting for audio...")
	ctrl.Update(effect())
	sess, _ = ctrl.Session()
	if sess.HasAudio() {
		fmt.Fprintf(out, "Audio (%s): %s\n", sess.AudioLanguage, playback.ResolveRef(cfg.Service.BaseURL, sess.AudioRef))
	}
	if sess.Notice != "" {
		fmt.Fprintln(out, sess.Notice)
	}

	if !opts.publish && !promptConfirm(in, out, "Publish this podcast?") {
		_ = ctrl.Discard()
		fmt.Fprintln(out, "Discarded; nothing was published.")
		return nil
	}

	p, err := ctrl.Publish()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Published %q on %s\n", p.Name, p.Date)
	return nil
}

func printTranscript(out io.Writer, transcript string) {
	rule := strings.Repeat("-", 60)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, transcript)
	fmt.Fprintln(out, rule)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
