package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/briefcast/internal/db"
	"github.com/jwulff/briefcast/internal/generation"
	"github.com/jwulff/briefcast/internal/logging"
	"github.com/jwulff/briefcast/internal/playback"
	"github.com/jwulff/briefcast/internal/podcast"
	"github.com/jwulff/briefcast/internal/workflow"
)

var testVoices = []string{"sachit (Male/En)", "anushka (Female/Hi)"}

// scriptedGenerator answers each call with the next queued outcome.
type scriptedGenerator struct {
	mu    sync.Mutex
	queue []scripted
	calls int
}

type scripted struct {
	resp generation.GenerateResponse
	err  error
}

func (g *scriptedGenerator) Generate(_ context.Context, req generation.Request) (generation.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if len(g.queue) == 0 {
		return generation.Result{}, errors.New("unexpected call")
	}
	next := g.queue[0]
	g.queue = g.queue[1:]
	if next.err != nil {
		return generation.Result{}, next.err
	}
	return generation.NewResult(req.Language, next.resp), nil
}

func newTestModel(t *testing.T, gen generation.Generator, seed ...podcast.Podcast) (Model, *db.Store) {
	t.Helper()

	store, err := db.OpenMemory(nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for i := len(seed) - 1; i >= 0; i-- {
		if err := store.Prepend(seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	ctrl := workflow.New(workflow.Options{
		Generator:  gen,
		Repository: store,
		AudioDelay: time.Millisecond,
		Logger:     logging.NewNop(),
	})
	m := New(Options{
		Controller:      ctrl,
		BaseURL:         "http://localhost:8000/api/v1",
		TickInterval:    time.Millisecond,
		Voices:          testVoices,
		DefaultVoice:    testVoices[0],
		DefaultLanguage: generation.English,
		Logger:          logging.NewNop(),
	})
	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, store
}

func applyUpdate(m Model, msg tea.Msg) (Model, tea.Cmd) {
	newModel, cmd := m.Update(msg)
	return newModel.(Model), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case KeyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case KeyEsc:
		return tea.KeyMsg{Type: tea.KeyEsc}
	case KeyTab:
		return tea.KeyMsg{Type: tea.KeyTab}
	case KeySpace:
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case KeyUp:
		return tea.KeyMsg{Type: tea.KeyUp}
	case KeyDown:
		return tea.KeyMsg{Type: tea.KeyDown}
	case KeyLeft:
		return tea.KeyMsg{Type: tea.KeyLeft}
	case KeyRight:
		return tea.KeyMsg{Type: tea.KeyRight}
	case KeyCtrlC:
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = applyUpdate(m, key(k))
	}
	return m, cmd
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = applyUpdate(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// runCmd executes cmd and feeds its message back into the model.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return applyUpdate(m, cmd())
}

// createAndSubmit switches to the create tab, types name and submits.
func createAndSubmit(t *testing.T, m Model, name string) (Model, tea.Cmd) {
	t.Helper()
	m, _ = press(m, KeyTab)
	m = typeText(m, name)
	return press(m, KeyEnter)
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t, &scriptedGenerator{})
	if m.tab != TabSearch {
		t.Errorf("tab = %v, want search", m.tab)
	}
	if m.ctrl.ReviewOpen() {
		t.Error("review should start closed")
	}
	if m.Engine().Attached() {
		t.Error("engine should start detached")
	}
	if generation.Languages[m.langIdx] != generation.English {
		t.Errorf("language = %v, want default english", generation.Languages[m.langIdx])
	}
}

func TestViewWithoutSize(t *testing.T) {
	m := New(Options{Controller: workflow.New(workflow.Options{Logger: logging.NewNop()})})
	if view := m.View(); view != msgInitializing {
		t.Errorf("view without size = %q", view)
	}
}

func TestEmptyNameShowsFormError(t *testing.T) {
	gen := &scriptedGenerator{}
	m, _ := newTestModel(t, gen)

	m, cmd := createAndSubmit(t, m, "   ")
	if cmd != nil {
		t.Error("empty name should not issue a command")
	}
	if m.formError != msgEmptyName {
		t.Errorf("formError = %q", m.formError)
	}
	if m.ctrl.ReviewOpen() {
		t.Error("review should stay closed")
	}
	if !strings.Contains(m.View(), msgEmptyName) {
		t.Error("view should show the validation message")
	}
	if gen.calls != 0 {
		t.Errorf("calls = %d, want 0", gen.calls)
	}
}

func TestDemoFlowToPublish(t *testing.T) {
	m, store := newTestModel(t, generation.Demo{})

	m, cmd := createAndSubmit(t, m, "Test")
	if m.ctrl.Stage() != workflow.StageTranscriptPending {
		t.Fatalf("stage = %s", m.ctrl.Stage())
	}
	if !strings.Contains(m.View(), "Generating English transcript") {
		t.Error("view should show pending state")
	}

	m, _ = runCmd(t, m, cmd)
	if m.ctrl.Stage() != workflow.StageTranscriptReady {
		t.Fatalf("stage = %s, want transcript_ready", m.ctrl.Stage())
	}
	if !strings.Contains(m.View(), "Smart Finance") {
		t.Error("view should show the transcript")
	}

	m, cmd = press(m, KeyApprove)
	m, cmd = runCmd(t, m, cmd)
	if m.ctrl.Stage() != workflow.StageAudioReady {
		t.Fatalf("stage = %s, want audio_ready", m.ctrl.Stage())
	}
	eng := m.Engine()
	if !eng.Attached() || !playback.IsSimulated(eng.Ref()) {
		t.Fatalf("engine ref = %q, want simulated", eng.Ref())
	}
	if !eng.State().Ready {
		t.Fatal("simulated audio should be ready at once")
	}

	m, _ = press(m, KeySpace)
	if !eng.State().IsPlaying {
		t.Fatal("space should start playback")
	}
	m, _ = runCmd(t, m, cmd)
	if eng.State().PositionSeconds <= 0 {
		t.Error("tick should advance the simulated clock")
	}

	m, _ = press(m, "5")
	if got := eng.ProgressPercent(); got != 50 {
		t.Errorf("progress after seek = %v, want 50", got)
	}

	m, _ = press(m, KeyPublish)
	if m.ctrl.ReviewOpen() {
		t.Fatal("review should close after publish")
	}
	if eng.Attached() {
		t.Error("engine should detach after publish")
	}
	if m.tab != TabSearch || len(m.results) != 1 || m.results[0].Name != "Test" {
		t.Errorf("results = %+v", m.results)
	}
	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Test" || list[0].AudioRef != generation.DemoAudioRef {
		t.Errorf("stored = %+v", list)
	}
}

func TestStaleTickIgnoredAfterDiscard(t *testing.T) {
	m, _ := newTestModel(t, generation.Demo{})

	m, cmd := createAndSubmit(t, m, "Test")
	m, _ = runCmd(t, m, cmd)
	m, cmd = press(m, KeyApprove)
	m, tick := runCmd(t, m, cmd)

	m, _ = press(m, KeyEsc)
	if m.ctrl.ReviewOpen() || m.Engine().Attached() {
		t.Fatal("discard should close review and detach")
	}
	m, next := runCmd(t, m, tick)
	if next != nil {
		t.Error("a tick for a detached generation must not reschedule")
	}
}

func TestMediaProbeAndSeek(t *testing.T) {
	gen := &scriptedGenerator{queue: []scripted{{resp: generation.GenerateResponse{
		Status:  generation.StatusOK,
		Scripts: generation.Scripts{English: "Hello"},
		Audio:   generation.Audio{English: "/audio/brief.mp3"},
	}}}}
	m, _ := newTestModel(t, gen)

	m, cmd := createAndSubmit(t, m, "Media")
	m, _ = runCmd(t, m, cmd)
	m, cmd = press(m, KeyApprove)
	m, _ = runCmd(t, m, cmd)

	eng := m.Engine()
	if eng.Ref() != "http://localhost:8000/audio/brief.mp3" {
		t.Fatalf("ref = %q", eng.Ref())
	}
	if eng.State().Ready {
		t.Fatal("media should not be ready before the probe")
	}
	if !strings.Contains(m.View(), "Loading audio") {
		t.Error("view should show loading state")
	}

	gen1 := eng.Generation()
	m, _ = applyUpdate(m, DurationProbedMsg{Gen: gen1 + 1, Seconds: 10})
	if eng.State().Ready {
		t.Error("probe for another generation must be ignored")
	}

	m, _ = applyUpdate(m, DurationProbedMsg{Gen: gen1, Seconds: 480})
	if !eng.State().Ready || eng.Total() != "8:00" {
		t.Fatalf("state = %+v total = %s", eng.State(), eng.Total())
	}

	m, _ = press(m, "5")
	if eng.Elapsed() != "4:00" || eng.ProgressPercent() != 50 {
		t.Errorf("elapsed = %s progress = %v", eng.Elapsed(), eng.ProgressPercent())
	}
	wantBars := playback.ActiveBars(len(playback.BaseHeights), 50)
	if wantBars != 15 {
		t.Errorf("active bars = %d, want 15", wantBars)
	}

	m, _ = press(m, KeyRight)
	if eng.Elapsed() != "4:10" {
		t.Errorf("elapsed after seek forward = %s", eng.Elapsed())
	}
}

func TestProbeFailureMarksUnavailable(t *testing.T) {
	gen := &scriptedGenerator{queue: []scripted{{resp: generation.GenerateResponse{
		Status:  generation.StatusOK,
		Scripts: generation.Scripts{English: "Hello"},
		Audio:   generation.Audio{English: "https://cdn.example.com/a.mp3"},
	}}}}
	m, _ := newTestModel(t, gen)

	m, cmd := createAndSubmit(t, m, "Broken")
	m, _ = runCmd(t, m, cmd)
	m, cmd = press(m, KeyApprove)
	m, _ = runCmd(t, m, cmd)

	eng := m.Engine()
	m, _ = applyUpdate(m, DurationProbedMsg{Gen: eng.Generation(), Err: errors.New("404")})
	if !eng.State().Unavailable {
		t.Fatal("engine should be unavailable")
	}
	if m.ctrl.Stage() != workflow.StageAudioReady {
		t.Error("playback failure must not change the workflow stage")
	}
	m, _ = press(m, KeySpace)
	if eng.State().IsPlaying {
		t.Error("unavailable audio must not play")
	}
	if !strings.Contains(m.View(), "Audio unavailable: 404") {
		t.Error("view should show the failure")
	}
}

func TestNoAudioShowsNotice(t *testing.T) {
	m, _ := newTestModel(t, generation.Demo{NoAudio: true})

	m, cmd := createAndSubmit(t, m, "Silent")
	m, _ = runCmd(t, m, cmd)
	m, cmd = press(m, KeyApprove)
	m, _ = runCmd(t, m, cmd)

	if m.Engine().Attached() {
		t.Error("nothing to attach without audio")
	}
	if !strings.Contains(m.View(), workflow.NoticeNoAudio) {
		t.Error("view should show the degraded notice")
	}
}

func TestErrorThenRetry(t *testing.T) {
	gen := &scriptedGenerator{queue: []scripted{
		{err: &generation.Error{Message: "quota exceeded", Status: 429}},
		{resp: generation.GenerateResponse{Status: generation.StatusOK, Scripts: generation.Scripts{English: "Back online"}}},
	}}
	m, _ := newTestModel(t, gen)

	m, cmd := createAndSubmit(t, m, "Retry")
	m, _ = runCmd(t, m, cmd)
	if !strings.Contains(m.View(), "quota exceeded") {
		t.Fatal("view should show the service error")
	}

	m, cmd = press(m, KeyRetry)
	m, _ = runCmd(t, m, cmd)
	if m.ctrl.Stage() != workflow.StageTranscriptReady {
		t.Errorf("stage = %s, want transcript_ready", m.ctrl.Stage())
	}
	if gen.calls != 2 {
		t.Errorf("calls = %d, want 2", gen.calls)
	}
}

func TestStaleSettleAfterResubmit(t *testing.T) {
	gen := &scriptedGenerator{queue: []scripted{
		{resp: generation.GenerateResponse{Status: generation.StatusOK, Scripts: generation.Scripts{English: "first"}}},
		{resp: generation.GenerateResponse{Status: generation.StatusOK, Scripts: generation.Scripts{English: "second"}}},
	}}
	m, _ := newTestModel(t, gen)

	m, first := createAndSubmit(t, m, "A")
	m, _ = press(m, KeyEsc)
	m, second := press(m, KeyEnter)

	msgA, msgB := first(), second()
	m, _ = applyUpdate(m, msgB)
	m, _ = applyUpdate(m, msgA)

	sess, _ := m.ctrl.Session()
	if sess.Transcript != "second" {
		t.Errorf("transcript = %q, want second", sess.Transcript)
	}
}

func TestSearchAndReplay(t *testing.T) {
	seed := []podcast.Podcast{
		{ID: 2, Name: "Market Wrap", Description: "Sensex closed higher", Date: "Mar 4, 2025", Language: "English", AudioRef: generation.DemoAudioRef},
		{ID: 1, Name: "Weekly", Description: "Rupee outlook", Date: "Mar 1, 2025", Language: "Hindi"},
	}
	m, _ := newTestModel(t, &scriptedGenerator{}, seed...)
	if len(m.results) != 2 {
		t.Fatalf("results = %d, want 2", len(m.results))
	}

	m = typeText(m, "MARKET")
	if len(m.results) != 1 || m.results[0].ID != 2 {
		t.Fatalf("results = %+v", m.results)
	}

	m, cmd := press(m, KeyEnter)
	if cmd == nil {
		t.Fatal("replay should start ticking")
	}
	sess, ok := m.ctrl.Session()
	if !ok || !sess.Replay || sess.Stage != workflow.StageAudioReady {
		t.Fatalf("session = %+v", sess)
	}
	if !m.Engine().Attached() {
		t.Error("replay should attach audio")
	}
	if strings.Contains(m.renderFooter(), "Publish") {
		t.Error("replay should not offer publish")
	}

	m, _ = press(m, KeyPublish)
	if !m.ctrl.ReviewOpen() {
		t.Error("publish on replay must be a no-op")
	}
	m, _ = press(m, KeyEsc)
	if m.ctrl.ReviewOpen() || m.Engine().Attached() {
		t.Error("close should end the replay")
	}
}

func TestSearchListFollowsSelection(t *testing.T) {
	var seed []podcast.Podcast
	for i := 1; i <= 20; i++ {
		seed = append(seed, podcast.Podcast{ID: int64(100 - i), Name: fmt.Sprintf("Episode %02d", i), Description: "Daily notes", Language: "English"})
	}
	m, _ := newTestModel(t, &scriptedGenerator{}, seed...)

	view := m.View()
	if !strings.Contains(view, "Episode 01") || strings.Contains(view, "Episode 20") {
		t.Fatalf("initial view should start at the top:\n%s", view)
	}

	for range 15 {
		m, _ = press(m, KeyDown)
	}
	if m.selected != 15 {
		t.Fatalf("selected = %d, want 15", m.selected)
	}
	view = m.View()
	if !strings.Contains(view, "Episode 16") {
		t.Errorf("selected entry scrolled off screen:\n%s", view)
	}
	if strings.Contains(view, "Episode 01") {
		t.Errorf("list should have scrolled past the first entry:\n%s", view)
	}

	for range 10 {
		m, _ = press(m, KeyUp)
	}
	view = m.View()
	if !strings.Contains(view, "Episode 06") || strings.Contains(view, "Episode 05") {
		t.Errorf("moving up inside the window should not scroll:\n%s", view)
	}
	m, _ = press(m, KeyUp)
	if view = m.View(); !strings.Contains(view, "Episode 05") {
		t.Errorf("moving above the window should scroll up:\n%s", view)
	}

	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 15})
	if view = m.View(); !strings.Contains(view, "Episode 05") {
		t.Errorf("selection lost after resize:\n%s", view)
	}

	m = typeText(m, "Episode 2")
	if len(m.results) != 1 || m.listOffset != 0 {
		t.Fatalf("results = %d offset = %d, want 1 and 0", len(m.results), m.listOffset)
	}
	if view = m.View(); !strings.Contains(view, "Episode 20") {
		t.Errorf("filtered entry not shown:\n%s", view)
	}
}

func TestReplayWithoutAudio(t *testing.T) {
	seed := []podcast.Podcast{{ID: 1, Name: "Weekly", Description: "Rupee outlook"}}
	m, _ := newTestModel(t, &scriptedGenerator{}, seed...)

	m, _ = press(m, KeyEnter)
	if m.ctrl.ReviewOpen() {
		t.Error("podcast without audio should not open")
	}
	if !m.statusErr || m.status == "" {
		t.Errorf("status = %q", m.status)
	}
}

func TestPickersCycle(t *testing.T) {
	m, _ := newTestModel(t, &scriptedGenerator{})
	m, _ = press(m, KeyTab, KeyDown)
	if m.field != FieldVoice {
		t.Fatalf("field = %v, want voice", m.field)
	}
	m, _ = press(m, KeyRight)
	if m.voiceIdx != 1 {
		t.Errorf("voiceIdx = %d, want 1", m.voiceIdx)
	}
	m, _ = press(m, KeyRight)
	if m.voiceIdx != 0 {
		t.Errorf("voiceIdx = %d, want wrap to 0", m.voiceIdx)
	}

	m, _ = press(m, KeyDown, KeyLeft)
	if got := generation.Languages[m.langIdx]; got != generation.Hindi {
		t.Errorf("language = %v, want hindi", got)
	}
}

func TestStatusClearsBySequence(t *testing.T) {
	m, _ := newTestModel(t, &scriptedGenerator{})
	m.setStatus("first", false)
	m.setStatus("second", false)

	m, _ = applyUpdate(m, ClearStatusMsg{Seq: 1})
	if m.status != "second" {
		t.Errorf("status = %q, an older clear must not remove it", m.status)
	}
	m, _ = applyUpdate(m, ClearStatusMsg{Seq: 2})
	if m.status != "" {
		t.Errorf("status = %q, want cleared", m.status)
	}
}

func TestRenderBarsWidth(t *testing.T) {
	for _, p := range []float64{0, 50, 100} {
		if w := lipgloss.Width(renderBars(p)); w != len(playback.BaseHeights) {
			t.Errorf("renderBars(%v) width = %d", p, w)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if got := wrapText("a\n\nb", 10); len(got) != 3 || got[1] != "" {
		t.Errorf("paragraphs = %q", got)
	}
}
