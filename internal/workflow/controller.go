package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwulff/briefcast/internal/generation"
	"github.com/jwulff/briefcast/internal/podcast"
)

// DefaultAudioDelay is the audio-pending pause used when none is configured.
const DefaultAudioDelay = 1500 * time.Millisecond

// FallbackTranscript is shown when the service returns no text for the
// requested language.
const FallbackTranscript = "Transcript generated successfully."

// NoticeNoAudio is the degraded notice when no requested language has audio.
const NoticeNoAudio = "Audio generation is currently unavailable."

// Repository persists the published list, newest first.
type Repository interface {
	Load() ([]podcast.Podcast, error)
	Prepend(p podcast.Podcast) error
}

// Session is the live state of one generation attempt.
type Session struct {
	Token        uint64
	RequestID    string
	Request      generation.Request
	Stage        Stage
	Result       *generation.Result
	Transcript   string
	ErrorMessage string
	// Notice is the degraded-audio message shown once audio is ready.
	Notice        string
	AudioLanguage generation.Language
	AudioRef      string
	// Replay marks a session opened from the published list.
	Replay bool
}

// HasError reports whether the last generation call failed.
func (s Session) HasError() bool {
	return s.ErrorMessage != ""
}

// HasAudio reports whether a playable locator was resolved.
func (s Session) HasAudio() bool {
	return s.AudioRef != ""
}

// Options configures a Controller.
type Options struct {
	Generator  generation.Generator
	Repository Repository
	// AudioDelay is the minimum time the audio-pending stage is shown.
	AudioDelay time.Duration
	// Context bounds every generation call. Defaults to Background.
	Context      context.Context
	Now          func() time.Time
	NewRequestID func() string
	Logger       *slog.Logger
}

// Controller drives the generation workflow for a single local user.
type Controller struct {
	gen        generation.Generator
	repo       Repository
	audioDelay time.Duration
	ctx        context.Context
	now        func() time.Time
	newID      func() string
	logger     *slog.Logger

	token    uint64
	session  *Session
	closed   Stage
	podcasts []podcast.Podcast
}

// New creates a controller and reads the published list once.
func New(opts Options) *Controller {
	c := &Controller{
		gen:        opts.Generator,
		repo:       opts.Repository,
		audioDelay: opts.AudioDelay,
		ctx:        opts.Context,
		now:        opts.Now,
		newID:      opts.NewRequestID,
		logger:     opts.Logger,
	}
	if c.audioDelay <= 0 {
		c.audioDelay = DefaultAudioDelay
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.repo != nil {
		list, err := c.repo.Load()
		if err != nil {
			c.logger.Warn("load published podcasts", "error", err)
		}
		c.podcasts = list
	}
	if c.podcasts == nil {
		c.podcasts = []podcast.Podcast{}
	}
	return c
}

// Session returns a snapshot of the active session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Stage returns the active session's stage, or how the last one ended.
func (c *Controller) Stage() Stage {
	if c.session != nil {
		return c.session.Stage
	}
	return c.closed
}

// ReviewOpen reports whether the review surface should be shown.
func (c *Controller) ReviewOpen() bool {
	return c.session != nil
}

// Podcasts returns the published list, newest first.
func (c *Controller) Podcasts() []podcast.Podcast {
	return slices.Clone(c.podcasts)
}

// Search filters the published list by name or description.
func (c *Controller) Search(query string) []podcast.Podcast {
	return podcast.Filter(c.podcasts, query)
}

// Submit starts a new session for req, discarding any active one, and
// returns the command that performs the single generation call.
func (c *Controller) Submit(req generation.Request) (tea.Cmd, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ErrEmptyName
	}
	if c.session != nil {
		c.logger.Info("superseding session", "token", c.session.Token, "stage", c.session.Stage)
	}

	sess := c.open()
	sess.Request = req
	c.move(sess, StageTranscriptPending)

	c.logger.Info("generation submitted",
		"token", sess.Token,
		"request_id", sess.RequestID,
		"language", req.Language.Code(),
	)
	return generateCmd(generation.WithRequestID(c.ctx, sess.RequestID), c.gen, sess.Token, req), nil
}

// HandleSettled applies a generation outcome if it belongs to the active
// session. It reports whether state changed.
func (c *Controller) HandleSettled(msg GenerationSettledMsg) bool {
	sess := c.active(msg.Token)
	if sess == nil || sess.Stage != StageTranscriptPending {
		c.logger.Debug("dropping stale generation result", "token", msg.Token)
		return false
	}

	if msg.Err != nil {
		sess.ErrorMessage = generation.Message(msg.Err)
		c.move(sess, StageTranscriptPending)
		c.logger.Warn("generation failed", "token", sess.Token, "request_id", sess.RequestID, "error", msg.Err)
		return true
	}

	res := msg.Result
	sess.Result = &res
	sess.ErrorMessage = ""
	sess.Transcript = res.Transcript()
	if sess.Transcript == "" {
		sess.Transcript = FallbackTranscript
	}
	c.move(sess, StageTranscriptReady)
	return true
}

// ApproveTranscript accepts the transcript and returns the command that
// ends the audio-pending pause.
func (c *Controller) ApproveTranscript() (tea.Cmd, error) {
	if c.session == nil {
		return nil, ErrNoSession
	}
	sess := c.session
	if sess.Stage != StageTranscriptReady {
		return nil, stageError("approve", sess.Stage)
	}
	c.move(sess, StageAudioPending)
	return audioDelayCmd(c.audioDelay, sess.Token), nil
}

// HandleAudioDelay moves the matching session to AudioReady.
func (c *Controller) HandleAudioDelay(msg AudioDelayElapsedMsg) bool {
	return c.MarkAudioReady(msg.Token)
}

// MarkAudioReady confirms the audio locators for session token and moves
// it from AudioPending to AudioReady. Missing audio yields a notice, not
// an error.
func (c *Controller) MarkAudioReady(token uint64) bool {
	sess := c.active(token)
	if sess == nil || sess.Stage != StageAudioPending {
		return false
	}

	if sess.Result != nil {
		if lang, ref, ok := sess.Result.AudioRef(); ok {
			sess.AudioLanguage, sess.AudioRef = lang, ref
		}
		sess.Notice = degradedNotice(sess.Result.MissingAudio(), sess.HasAudio())
	}
	c.move(sess, StageAudioReady)
	if sess.Notice != "" {
		c.logger.Info("audio degraded", "token", sess.Token, "notice", sess.Notice)
	}
	return true
}

// Publish stores the active AudioReady session and closes it. On a
// repository failure the session stays open so the user can retry.
func (c *Controller) Publish() (podcast.Podcast, error) {
	if c.session == nil {
		return podcast.Podcast{}, ErrNoSession
	}
	sess := c.session
	if sess.Stage != StageAudioReady {
		return podcast.Podcast{}, stageError("publish", sess.Stage)
	}
	if sess.Replay {
		return podcast.Podcast{}, ErrAlreadyPublished
	}

	name := sess.Request.Name
	if sess.Result != nil && sess.Result.Name != "" {
		name = sess.Result.Name
	}
	p := podcast.New(name, sess.Transcript, sess.Request.Language.String(), sess.AudioRef, c.now())

	if c.repo != nil {
		if err := c.repo.Prepend(p); err != nil {
			c.logger.Error("publish failed", "token", sess.Token, "error", err)
			return podcast.Podcast{}, fmt.Errorf("publish %q: %w", name, err)
		}
	}
	c.podcasts = append([]podcast.Podcast{p}, c.podcasts...)
	c.move(sess, StagePublished)
	c.close()

	c.logger.Info("podcast published", "token", sess.Token, "id", p.ID, "name", p.Name)
	return p, nil
}

// Discard closes the active session without writing anything. Results
// still in flight for it are ignored when they arrive.
func (c *Controller) Discard() error {
	if c.session == nil {
		return ErrNoSession
	}
	sess := c.session
	if sess.Stage.Terminal() {
		return stageError("discard", sess.Stage)
	}
	c.move(sess, StageDiscarded)
	c.close()
	c.logger.Info("session discarded", "token", sess.Token)
	return nil
}

// Replay opens a published podcast straight into AudioReady.
func (c *Controller) Replay(p podcast.Podcast) error {
	if !p.HasAudio() {
		return fmt.Errorf("replay %q: no audio", p.Name)
	}
	lang, err := generation.ParseLanguage(p.Language)
	if err != nil {
		lang = generation.Both
	}

	sess := c.open()
	sess.Replay = true
	sess.Request = generation.Request{Name: p.Name, Language: lang}
	sess.Transcript = p.Description
	sess.AudioRef = p.AudioRef
	sess.AudioLanguage = lang
	c.move(sess, StageAudioReady)
	return nil
}

// Update routes workflow messages. It reports whether state changed.
func (c *Controller) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case GenerationSettledMsg:
		return c.HandleSettled(msg)
	case AudioDelayElapsedMsg:
		return c.HandleAudioDelay(msg)
	}
	return false
}

// open replaces the active session with a fresh Idle one under a new token.
func (c *Controller) open() *Session {
	c.token++
	c.session = &Session{
		Token:     c.token,
		RequestID: c.newID(),
		Stage:     StageIdle,
	}
	c.closed = StageIdle
	return c.session
}

func (c *Controller) close() {
	if c.session != nil {
		c.closed = c.session.Stage
	}
	c.session = nil
}

// active returns the session only if token is still current.
func (c *Controller) active(token uint64) *Session {
	if c.session == nil || c.session.Token != token {
		return nil
	}
	return c.session
}

func (c *Controller) move(sess *Session, to Stage) {
	if !isValidTransition(sess.Stage, to) {
		// Callers check stages first; reaching here is a programming error.
		panic(fmt.Sprintf("workflow: invalid transition %s -> %s", sess.Stage, to))
	}
	c.logger.Debug("stage", "token", sess.Token, "from", sess.Stage, "to", to)
	sess.Stage = to
}

func generateCmd(ctx context.Context, g generation.Generator, token uint64, req generation.Request) tea.Cmd {
	return func() tea.Msg {
		if g == nil {
			return GenerationSettledMsg{Token: token, Err: &generation.Error{Message: generation.DefaultErrorMessage}}
		}
		res, err := g.Generate(ctx, req)
		return GenerationSettledMsg{Token: token, Result: res, Err: err}
	}
}

func audioDelayCmd(d time.Duration, token uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return AudioDelayElapsedMsg{Token: token}
	})
}

func degradedNotice(missing []generation.Language, hasAudio bool) string {
	if !hasAudio {
		return NoticeNoAudio
	}
	if len(missing) == 0 {
		return ""
	}
	names := make([]string, len(missing))
	for i, l := range missing {
		names[i] = l.String()
	}
	return strings.Join(names, " and ") + " audio unavailable; transcript only."
}
