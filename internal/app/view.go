package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/briefcast/internal/generation"
	"github.com/jwulff/briefcast/internal/playback"
	"github.com/jwulff/briefcast/internal/ui"
	"github.com/jwulff/briefcast/internal/workflow"
)

var barGlyphs = []rune("▁▂▃▄▅▆▇█")

var reviewSteps = []string{"Transcript", "Audio", "Publish"}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return msgInitializing
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.ctrl.ReviewOpen() {
		sections = append(sections, m.renderReview())
	} else if m.tab == TabCreate {
		sections = append(sections, m.renderCreate())
	} else {
		sections = append(sections, m.renderSearch())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.status != "" {
		sections = append(sections, m.renderStatus())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("BRIEFCAST")

	tabs := []string{"Search", "Create"}
	var rendered []string
	for i, t := range tabs {
		if Tab(i) == m.tab && !m.ctrl.ReviewOpen() {
			rendered = append(rendered, ui.TabActiveStyle.Render(t))
		} else {
			rendered = append(rendered, ui.TabStyle.Render(t))
		}
	}
	count := ui.SubtitleStyle.Render(fmt.Sprintf("  %d published", len(m.ctrl.Podcasts())))
	return title + "  " + strings.Join(rendered, " ") + count
}

func (m Model) renderSearch() string {
	lines := []string{m.query.View(), ""}

	if len(m.results) == 0 {
		if m.query.Value() == "" {
			lines = append(lines, ui.DimStyle.Render("  No podcasts yet. Press Tab to create one."))
		} else {
			lines = append(lines, ui.DimStyle.Render(fmt.Sprintf("  No podcasts match %q", m.query.Value())))
		}
		return m.fit(lines)
	}

	width := max(20, m.width-4)
	end := min(len(m.results), m.listOffset+m.visibleResults())
	for i := m.listOffset; i < end; i++ {
		p := m.results[i]
		meta := ui.DimStyle.Render(fmt.Sprintf("  %s · %s", p.Date, p.Language))
		if p.HasAudio() {
			meta += ui.DimStyle.Render(" · ♪")
		}
		if i == m.selected {
			lines = append(lines, ui.SelectedStyle.Render("> "+p.Name)+meta)
		} else {
			lines = append(lines, "  "+p.Name+meta)
		}
		lines = append(lines, ui.DimStyle.Render("    "+truncateToWidth(p.Description, width)))
	}
	return m.fit(lines)
}

func (m Model) renderCreate() string {
	label := func(f Field, text string) string {
		if m.field == f {
			return ui.LabelActiveStyle.Render(text)
		}
		return ui.LabelStyle.Render(text)
	}
	picker := func(f Field, value string) string {
		if m.field == f {
			return ui.SelectedStyle.Render("< " + value + " >")
		}
		return "  " + value
	}

	lines := []string{
		label(FieldName, "Podcast name"),
		m.name.View(),
	}
	if m.formError != "" {
		lines = append(lines, ui.ErrorTextStyle.Render(m.formError))
	}
	lines = append(lines,
		"",
		label(FieldVoice, "Voice"),
		picker(FieldVoice, m.voices[m.voiceIdx]),
		"",
		label(FieldLanguage, "Language"),
		picker(FieldLanguage, generation.Languages[m.langIdx].String()),
	)
	return m.fit(lines)
}

func (m Model) renderReview() string {
	sess, _ := m.ctrl.Session()
	width := max(20, m.width-4)

	title := ui.LabelStyle.Render(sess.Request.Name)
	if sess.Replay {
		title += ui.DimStyle.Render("  (published)")
	}
	lines := []string{title, renderSteps(sess.Stage), ""}

	switch sess.Stage {
	case workflow.StageTranscriptPending:
		if sess.HasError() {
			lines = append(lines, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(sess.ErrorMessage))
			lines = append(lines, ui.DimStyle.Render("Press r to try again."))
		} else {
			lines = append(lines, ui.SpinnerStyle.Render("⟳ ")+fmt.Sprintf("Generating %s transcript...", sess.Request.Language))
		}

	case workflow.StageTranscriptReady:
		lines = append(lines, m.scrolled(wrapText(sess.Transcript, width))...)

	case workflow.StageAudioPending:
		lines = append(lines, ui.SpinnerStyle.Render("⟳ ")+"Generating audio...")
		lines = append(lines, "")
		lines = append(lines, m.scrolled(wrapText(sess.Transcript, width))...)

	case workflow.StageAudioReady:
		lines = append(lines, m.renderPlayer(sess, width)...)
		if sess.Notice != "" {
			lines = append(lines, ui.NoticeStyle.Render(sess.Notice))
		}
		lines = append(lines, "")
		lines = append(lines, m.scrolled(wrapText(sess.Transcript, width))...)
	}

	box := ui.ModalStyle.Width(max(20, m.width-2)).Render(strings.Join(m.clip(lines, 2), "\n"))
	return box
}

func renderSteps(stage workflow.Stage) string {
	current := 0
	switch stage {
	case workflow.StageAudioPending:
		current = 1
	case workflow.StageAudioReady:
		current = 2
	}
	parts := make([]string, len(reviewSteps))
	for i, s := range reviewSteps {
		text := fmt.Sprintf("%d %s", i+1, s)
		switch {
		case i < current:
			parts[i] = ui.StepDoneStyle.Render("✓ " + s)
		case i == current:
			parts[i] = ui.StepActiveStyle.Render(text)
		default:
			parts[i] = ui.StepStyle.Render(text)
		}
	}
	return strings.Join(parts, ui.DimStyle.Render("  ›  "))
}

func (m Model) renderPlayer(sess workflow.Session, width int) []string {
	if !sess.HasAudio() {
		return nil
	}
	state := m.engine.State()
	progress := m.engine.ProgressPercent()

	lines := []string{renderBars(progress)}

	icon := "▶"
	if state.IsPlaying {
		icon = "❚❚"
	}
	elapsed := ui.TimeStyle.Render(m.engine.Elapsed())
	total := ui.TimeStyle.Render(m.engine.Total())
	trackW := max(10, width-lipgloss.Width(icon)-lipgloss.Width(elapsed)-lipgloss.Width(total)-4)
	lines = append(lines, icon+" "+elapsed+" "+renderProgress(progress, trackW)+" "+total)

	switch {
	case state.Unavailable:
		reason := "Audio unavailable."
		if f := m.engine.Failure(); f != "" {
			reason = "Audio unavailable: " + f
		}
		lines = append(lines, ui.ErrorTextStyle.Render(reason))
	case !state.Ready:
		lines = append(lines, ui.DimStyle.Render("Loading audio..."))
	}
	return lines
}

// renderBars draws the visualization with inactive bars scaled down.
func renderBars(progress float64) string {
	heights := playback.BarHeights(progress, playback.BaseHeights)
	var b strings.Builder
	for i, h := range heights {
		idx := int(h / 100 * float64(len(barGlyphs)-1))
		idx = min(max(idx, 0), len(barGlyphs)-1)
		glyph := string(barGlyphs[idx])
		if playback.BarActive(i, len(heights), progress) {
			b.WriteString(ui.BarActiveStyle.Render(glyph))
		} else {
			b.WriteString(ui.BarInactiveStyle.Render(glyph))
		}
	}
	return b.String()
}

func renderProgress(progress float64, width int) string {
	filled := int(progress / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return ui.ProgressFillStyle.Render(strings.Repeat("━", filled)) +
		ui.ProgressTrackStyle.Render(strings.Repeat("─", width-filled))
}

func (m Model) renderStatus() string {
	if m.statusErr {
		return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.status)
	}
	return ui.SuccessStyle.Render(m.status)
}

func (m Model) renderFooter() string {
	key := func(k, desc string) string {
		return ui.FooterKeyStyle.Render(k) + ui.FooterDescStyle.Render(" "+desc)
	}

	var parts []string
	if m.ctrl.ReviewOpen() {
		sess, _ := m.ctrl.Session()
		switch sess.Stage {
		case workflow.StageTranscriptPending:
			if sess.HasError() {
				parts = append(parts, key("r", "Retry"))
			}
		case workflow.StageTranscriptReady:
			parts = append(parts, key("a", "Approve"), key("↑↓", "Scroll"))
		case workflow.StageAudioReady:
			if sess.HasAudio() {
				parts = append(parts, key("Space", "Play"), key("←→", "Seek"), key("0-9", "Jump"))
			}
			if !sess.Replay {
				parts = append(parts, key("p", "Publish"))
			}
		}
		if sess.Replay {
			parts = append(parts, key("Esc", "Close"))
		} else {
			parts = append(parts, key("Esc", "Discard"))
		}
	} else {
		parts = append(parts, key("Tab", "Switch"))
		if m.tab == TabSearch {
			parts = append(parts, key("↑↓", "Select"), key("Enter", "Play"))
		} else {
			parts = append(parts, key("↑↓", "Field"), key("←→", "Change"), key("Enter", "Generate"))
		}
		parts = append(parts, key("Esc", "Quit"))
	}
	parts = append(parts, key("Ctrl+C", "Exit"))
	return strings.Join(parts, "  ")
}

// Helpers

func (m Model) bodyHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + dividers(2) + status(1) + footer(1)
	return max(5, m.height-5)
}

// visibleResults is how many two-line search entries fit below the query.
func (m Model) visibleResults() int {
	return max(1, (m.bodyHeight()-2)/2)
}

// fit pads or clips lines to the body height.
func (m Model) fit(lines []string) string {
	lines = m.clip(lines, 0)
	for len(lines) < m.bodyHeight() {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) clip(lines []string, reserve int) []string {
	h := m.bodyHeight() - reserve
	if len(lines) > h {
		return lines[:h]
	}
	return lines
}

func (m Model) scrolled(lines []string) []string {
	start := min(m.reviewScroll, max(0, len(lines)-1))
	return lines[start:]
}

func truncateToWidth(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if lipgloss.Width(current)+1+lipgloss.Width(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
