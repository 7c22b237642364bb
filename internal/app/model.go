package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/briefcast/internal/generation"
	"github.com/jwulff/briefcast/internal/playback"
	"github.com/jwulff/briefcast/internal/podcast"
	"github.com/jwulff/briefcast/internal/workflow"
)

// Tab is the top-level surface shown when no review is open.
type Tab int

const (
	TabSearch Tab = iota
	TabCreate
)

// Field is a focusable control on the create tab.
type Field int

const (
	FieldName Field = iota
	FieldVoice
	FieldLanguage
	fieldCount
)

const (
	defaultTick     = 100 * time.Millisecond
	statusLifetime  = 4 * time.Second
	nameCharLimit   = 120
	msgEmptyName    = "Please enter a podcast name."
	msgNoProber     = "no duration probe configured"
	msgInitializing = "Initializing..."
)

var errNoProber = errors.New(msgNoProber)

// Options wires the model to its collaborators.
type Options struct {
	Controller *workflow.Controller
	// Prober reports media length for real audio; simulated refs skip it.
	Prober playback.Prober
	// Player renders audible output. Nil keeps playback silent.
	Player playback.Player
	// BaseURL resolves relative audio locators.
	BaseURL         string
	TickInterval    time.Duration
	Voices          []string
	DefaultVoice    string
	DefaultLanguage generation.Language
	Context         context.Context
	Logger          *slog.Logger
}

// Model is the root bubbletea model for the briefcast TUI.
type Model struct {
	ctrl    *workflow.Controller
	engine  *playback.Engine
	prober  playback.Prober
	player  playback.Player
	baseURL string
	tick    time.Duration
	ctx     context.Context
	logger  *slog.Logger

	// Navigation
	tab    Tab
	width  int
	height int

	// Search tab
	query    textinput.Model
	results    []podcast.Podcast
	selected   int
	listOffset int

	// Create tab
	name      textinput.Model
	voices    []string
	voiceIdx  int
	langIdx   int
	field     Field
	formError string

	// Review
	reviewScroll  int
	attachedToken uint64

	// Status line
	status    string
	statusErr bool
	statusSeq int
}

// New creates the model with the published list already loaded by the
// controller.
func New(opts Options) Model {
	query := textinput.New()
	query.Placeholder = "Search podcasts"
	query.Prompt = "/ "
	query.Focus()

	name := textinput.New()
	name.Placeholder = "e.g. Daily Market Brief"
	name.Prompt = "> "
	name.CharLimit = nameCharLimit

	voices := opts.Voices
	if len(voices) == 0 {
		voices = []string{""}
	}
	voiceIdx := 0
	for i, v := range voices {
		if v == opts.DefaultVoice {
			voiceIdx = i
		}
	}
	langIdx := 0
	for i, l := range generation.Languages {
		if l == opts.DefaultLanguage {
			langIdx = i
		}
	}

	tick := opts.TickInterval
	if tick <= 0 {
		tick = defaultTick
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		ctrl:     opts.Controller,
		engine:   &playback.Engine{},
		prober:   opts.Prober,
		player:   opts.Player,
		baseURL:  opts.BaseURL,
		tick:     tick,
		ctx:      ctx,
		logger:   logger,
		tab:      TabSearch,
		query:    query,
		name:     name,
		voices:   voices,
		voiceIdx: voiceIdx,
		langIdx:  langIdx,
	}
	m.refreshResults()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Engine exposes the playback engine for inspection.
func (m Model) Engine() *playback.Engine {
	return m.engine
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.followSelection()
		return m, nil

	case workflow.GenerationSettledMsg:
		if m.ctrl.HandleSettled(msg) {
			m.reviewScroll = 0
		}
		return m, nil

	case workflow.AudioDelayElapsedMsg:
		m.ctrl.HandleAudioDelay(msg)
		return m, m.syncPlayback()

	case DurationProbedMsg:
		if msg.Err != nil {
			if m.engine.Fail(msg.Gen, msg.Err) {
				m.logger.Warn("audio unavailable", "ref", m.engine.Ref(), "error", msg.Err)
			}
			return m, nil
		}
		m.engine.DurationKnown(msg.Gen, msg.Seconds)
		return m, nil

	case PlaybackTickMsg:
		if m.engine.Tick(msg.Gen) {
			return m, tickCmd(m.tick, msg.Gen)
		}
		return m, nil

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// updateInputs forwards non-key messages such as cursor blinks.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var qCmd, nCmd tea.Cmd
	m.query, qCmd = m.query.Update(msg)
	m.name, nCmd = m.name.Update(msg)
	return m, tea.Batch(qCmd, nCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		m.engine.Detach()
		return m, tea.Quit
	}
	if m.ctrl.ReviewOpen() {
		return m.handleReviewKey(msg)
	}
	switch msg.String() {
	case KeyEsc:
		m.engine.Detach()
		return m, tea.Quit
	case KeyTab, KeyShiftTab:
		return m.switchTab()
	}
	if m.tab == TabCreate {
		return m.handleCreateKey(msg)
	}
	return m.handleSearchKey(msg)
}

func (m Model) switchTab() (tea.Model, tea.Cmd) {
	if m.tab == TabSearch {
		m.tab = TabCreate
		m.query.Blur()
		m.field = FieldName
		return m, m.name.Focus()
	}
	m.tab = TabSearch
	m.name.Blur()
	m.refreshResults()
	return m, m.query.Focus()
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		m.followSelection()
		return m, nil
	case KeyDown:
		if m.selected < len(m.results)-1 {
			m.selected++
		}
		m.followSelection()
		return m, nil
	case KeyEnter:
		if m.selected >= len(m.results) {
			return m, nil
		}
		p := m.results[m.selected]
		if err := m.ctrl.Replay(p); err != nil {
			return m, m.setStatus("Nothing to play for "+p.Name, true)
		}
		m.reviewScroll = 0
		return m, m.syncPlayback()
	}

	var cmd tea.Cmd
	prev := m.query.Value()
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != prev {
		m.refreshResults()
	}
	return m, cmd
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEnter:
		return m.submit()
	case KeyUp:
		return m.focusField((m.field + fieldCount - 1) % fieldCount)
	case KeyDown:
		return m.focusField((m.field + 1) % fieldCount)
	case KeyLeft, KeyRight:
		step := 1
		if msg.String() == KeyLeft {
			step = -1
		}
		switch m.field {
		case FieldVoice:
			m.voiceIdx = cycle(m.voiceIdx, step, len(m.voices))
			return m, nil
		case FieldLanguage:
			m.langIdx = cycle(m.langIdx, step, len(generation.Languages))
			return m, nil
		}
	}

	if m.field != FieldName {
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	if m.formError != "" && m.name.Value() != "" {
		m.formError = ""
	}
	return m, cmd
}

func (m Model) focusField(f Field) (tea.Model, tea.Cmd) {
	m.field = f
	if f == FieldName {
		return m, m.name.Focus()
	}
	m.name.Blur()
	return m, nil
}

// submit starts a session from the create form.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req := generation.NewRequest(m.name.Value(), m.voices[m.voiceIdx], generation.Languages[m.langIdx])
	return m.start(req)
}

func (m Model) start(req generation.Request) (tea.Model, tea.Cmd) {
	cmd, err := m.ctrl.Submit(req)
	if err != nil {
		if errors.Is(err, workflow.ErrEmptyName) {
			m.formError = msgEmptyName
		}
		return m, nil
	}
	m.formError = ""
	m.reviewScroll = 0
	m.engine.Detach()
	return m, cmd
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess, _ := m.ctrl.Session()

	switch msg.String() {
	case KeyEsc, KeyDiscard:
		if err := m.ctrl.Discard(); err != nil {
			return m, nil
		}
		m.engine.Detach()
		if sess.Replay {
			return m, nil
		}
		return m, m.setStatus("Discarded "+sess.Request.Name, false)

	case KeyEnter, KeyApprove:
		if sess.Stage == workflow.StageAudioReady && !sess.Replay && msg.String() == KeyEnter {
			return m.publish()
		}
		cmd, err := m.ctrl.ApproveTranscript()
		if err != nil {
			return m, nil
		}
		return m, cmd

	case KeyRetry:
		if sess.Stage != workflow.StageTranscriptPending || !sess.HasError() {
			return m, nil
		}
		return m.start(sess.Request)

	case KeyPublish:
		return m.publish()

	case KeySpace:
		m.engine.TogglePlay()
		return m, nil

	case KeyLeft, KeyBack:
		m.engine.SeekBy(-seekStep)
		return m, nil

	case KeyRight, KeyForward:
		m.engine.SeekBy(seekStep)
		return m, nil

	case KeyUp:
		if m.reviewScroll > 0 {
			m.reviewScroll--
		}
		return m, nil

	case KeyDown:
		m.reviewScroll++
		return m, nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		m.engine.Seek(float64(s[0]-'0') / 10)
	}
	return m, nil
}

func (m Model) publish() (tea.Model, tea.Cmd) {
	p, err := m.ctrl.Publish()
	if err != nil {
		if errors.Is(err, workflow.ErrInvalidStage) || errors.Is(err, workflow.ErrAlreadyPublished) || errors.Is(err, workflow.ErrNoSession) {
			return m, nil
		}
		return m, m.setStatus("Publish failed: "+err.Error(), true)
	}
	m.engine.Detach()
	m.name.SetValue("")
	m.tab = TabSearch
	m.field = FieldName
	m.name.Blur()
	m.query.SetValue("")
	m.selected = 0
	m.refreshResults()
	return m, tea.Batch(m.query.Focus(), m.setStatus(fmt.Sprintf("Published %q", p.Name), false))
}

// syncPlayback attaches the engine to the active session's audio, or
// detaches it when there is nothing to play.
func (m *Model) syncPlayback() tea.Cmd {
	sess, ok := m.ctrl.Session()
	if !ok || sess.Stage != workflow.StageAudioReady || !sess.HasAudio() {
		if m.engine.Attached() {
			m.engine.Detach()
		}
		return nil
	}

	ref := playback.ResolveRef(m.baseURL, sess.AudioRef)
	if m.engine.Attached() && m.engine.Ref() == ref && m.attachedToken == sess.Token {
		return nil
	}
	m.attachedToken = sess.Token

	if playback.IsSimulated(ref) {
		gen := m.engine.Attach(ref, playback.NewSimulatedClock(playback.DefaultSimulatedDuration, playback.DefaultSimulatedStep))
		return tickCmd(m.tick, gen)
	}
	gen := m.engine.Attach(ref, playback.NewMediaClock(ref, m.player, nil))
	m.logger.Info("audio attached", "token", sess.Token, "ref", ref, "gen", gen)
	return tea.Batch(probeCmd(m.ctx, m.prober, gen, ref), tickCmd(m.tick, gen))
}

func (m *Model) refreshResults() {
	m.results = m.ctrl.Search(m.query.Value())
	if m.selected >= len(m.results) {
		m.selected = max(0, len(m.results)-1)
	}
	m.followSelection()
}

// followSelection scrolls the result list just enough to keep the
// selected entry on screen.
func (m *Model) followSelection() {
	visible := m.visibleResults()
	if m.selected < m.listOffset {
		m.listOffset = m.selected
	}
	if m.selected >= m.listOffset+visible {
		m.listOffset = m.selected - visible + 1
	}
	m.listOffset = min(max(m.listOffset, 0), max(0, len(m.results)-visible))
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// tickCmd schedules the next reporting tick for gen.
func tickCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return PlaybackTickMsg{Gen: gen}
	})
}

// probeCmd reads the media length for gen off the event loop.
func probeCmd(ctx context.Context, prober playback.Prober, gen uint64, ref string) tea.Cmd {
	return func() tea.Msg {
		if prober == nil {
			return DurationProbedMsg{Gen: gen, Err: errNoProber}
		}
		seconds, err := prober.Duration(ctx, ref)
		return DurationProbedMsg{Gen: gen, Seconds: seconds, Err: err}
	}
}

func cycle(i, step, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+step)%n + n) % n
}
