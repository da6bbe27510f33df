/*
Package editor implements the interaction side of autocomplete: it tracks the
three buffers, the caret and the suggestion dropdown of a split-pane code editor,
and turns key, pointer and change events into dropdown state and buffer edits.

The controller has two states, hidden and visible. A buffer change or a typed
identifier character that produces suggestions shows the dropdown. While it is
visible, arrow keys move the highlight with wraparound, Enter/Tab or a click
accepts, and Escape, a click outside the list, a tab switch or an empty word
hide it.

All work runs synchronously inside the event call. The only deferral is the
key press trigger, which posts to a Scheduler so the typed character has landed
in the buffer before the word is read back.

A Controller is not safe for concurrent use; hosts drive it from one goroutine.
*/
package editor

import (
	"unicode/utf8"

	"github.com/bastiangx/codeserve/internal/logger"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Key names, as reported by browser keyboard events.
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyEnter     = "Enter"
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
)

// Modifiers held during a key event.
type Modifiers struct {
	Ctrl  bool `msgpack:"ctrl,omitempty"`
	Alt   bool `msgpack:"alt,omitempty"`
	Meta  bool `msgpack:"meta,omitempty"`
	Shift bool `msgpack:"shift,omitempty"`
}

// State is the transient dropdown state.
type State struct {
	Visible       bool
	SelectedIndex int
	Anchor        Position
}

// Controller owns the dropdown state for one editor surface.
type Controller struct {
	ranker  suggest.IRanker
	metrics Metrics
	sched   Scheduler
	log     *log.Logger

	lang     suggest.Language
	buffers  suggest.BufferSet
	cursor   int
	geometry Geometry

	// generation counts buffer commits; ctxGen is the generation ctx was resolved against.
	generation uint64
	ctx        suggest.CursorContext
	ctxGen     uint64

	list  []suggest.Entry
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithMetrics sets the monospace metrics used for the anchor.
func WithMetrics(m Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithScheduler sets where key press re-derivations are posted.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithBuffers seeds the buffers, for example with a step's starting code.
func WithBuffers(b suggest.BufferSet) Option {
	return func(c *Controller) { c.buffers = b }
}

// WithLanguage sets the initially active tab.
func WithLanguage(lang suggest.Language) Option {
	return func(c *Controller) { c.lang = lang }
}

// New creates a hidden controller over ranker.
func New(ranker suggest.IRanker, opts ...Option) *Controller {
	c := &Controller{
		ranker:  ranker,
		metrics: DefaultMetrics(),
		lang:    suggest.Markup,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = &Queue{}
	}
	if c.log == nil {
		c.log = logger.New("editor")
	}
	return c
}

// OnBufferChanged commits new text for lang and re-derives the dropdown.
// Changes to a buffer other than the active one are stored without ranking.
func (c *Controller) OnBufferChanged(lang suggest.Language, text string, cursor int) {
	c.commit(lang, text, cursor)
	if lang != c.lang {
		c.log.Debug("buffer changed off tab", "lang", lang, "active", c.lang)
		return
	}
	c.refresh(true)
}

// OnKeyPress handles a character key. A single identifier character without
// ctrl, alt or meta schedules a re-derivation once the character is in the buffer.
// The re-derivation is dropped if the active tab changes before it runs.
func (c *Controller) OnKeyPress(key string, mods Modifiers) {
	if mods.Ctrl || mods.Alt || mods.Meta {
		return
	}
	if utf8.RuneCountInString(key) != 1 {
		return
	}
	r, _ := utf8.DecodeRuneInString(key)
	if !suggest.IsWordChar(r) {
		return
	}
	lang := c.lang
	c.sched.Post(func() {
		if c.lang != lang {
			c.log.Debug("key press dropped after tab switch", "posted", lang, "active", c.lang)
			return
		}
		c.refresh(false)
	})
}

// OnKeyDown drives navigation, acceptance and dismissal while the dropdown is
// visible. It reports whether the key was consumed and must not reach the buffer.
// An accepted entry is committed to the controller buffers; hosts read it back
// with Buffer and Cursor.
func (c *Controller) OnKeyDown(key string, mods Modifiers) bool {
	if !c.state.Visible {
		return false
	}
	switch key {
	case KeyArrowDown:
		c.Next()
		return true
	case KeyArrowUp:
		c.Prev()
		return true
	case KeyEnter, KeyTab:
		_, _, ok := c.AcceptSelected()
		return ok
	case KeyEscape:
		c.Dismiss()
		return true
	}
	return false
}

// OnPointerDown hides the dropdown when the press lands outside the list.
// It reports whether the dropdown was dismissed.
func (c *Controller) OnPointerDown(x, y int) bool {
	if !c.state.Visible {
		return false
	}
	if c.metrics.ListRegion(c.state.Anchor).Contains(x, y) {
		return false
	}
	c.Dismiss()
	return true
}

// OnSelect accepts the entry at index, as a click on the list does.
func (c *Controller) OnSelect(index int) (string, int, bool) {
	if !c.state.Visible || index < 0 || index >= len(c.list) {
		return c.Buffer(), c.cursor, false
	}
	c.state.SelectedIndex = index
	text, cursor := c.Accept(c.list[index])
	return text, cursor, true
}

// Next moves the highlight down, wrapping to the top.
func (c *Controller) Next() {
	if n := len(c.list); n > 0 {
		c.state.SelectedIndex = (c.state.SelectedIndex + 1) % n
	}
}

// Prev moves the highlight up, wrapping to the bottom.
func (c *Controller) Prev() {
	if n := len(c.list); n > 0 {
		c.state.SelectedIndex = (c.state.SelectedIndex - 1 + n) % n
	}
}

// Accept splices entry over the current word and hides the dropdown. It
// returns the new buffer and caret; the host commits them to the text input
// and refocuses it.
//
// The word range is the one recorded for the current buffer. If the buffer
// changed after that range was resolved, it is resolved again at the caret
// first, so a stale range never lands on shifted text.
func (c *Controller) Accept(e suggest.Entry) (string, int) {
	buf := c.Buffer()
	ctx := c.ctx
	if c.ctxGen != c.generation {
		c.log.Debug("context stale at accept, resolving again", "ctxGen", c.ctxGen, "generation", c.generation)
		ctx = suggest.ResolveContext(buf, c.cursor)
	}

	text, cursor := suggest.Splice(buf, ctx, e)
	c.commit(c.lang, text, cursor)
	c.ctx = suggest.ResolveContext(text, cursor)
	c.ctxGen = c.generation
	c.hide("accepted")
	c.log.Debug("accepted", "text", e.Text, "insert", e.Insertion(), "cursor", cursor)
	return text, cursor
}

// AcceptSelected accepts the highlighted entry. It is a no-op returning false
// when the dropdown is hidden or the highlight is out of range.
func (c *Controller) AcceptSelected() (string, int, bool) {
	i := c.state.SelectedIndex
	if !c.state.Visible || i < 0 || i >= len(c.list) {
		return c.Buffer(), c.cursor, false
	}
	text, cursor := c.Accept(c.list[i])
	return text, cursor, true
}

// Dismiss hides the dropdown.
func (c *Controller) Dismiss() {
	c.hide("dismissed")
}

// SetLanguage switches the active tab and hides the dropdown.
func (c *Controller) SetLanguage(lang suggest.Language) {
	if lang != c.lang {
		c.lang = lang
		c.cursor = len(c.buffers.Get(lang))
	}
	c.hide("language changed")
}

// SetGeometry records the text input box and scroll offsets.
func (c *Controller) SetGeometry(g Geometry) {
	c.geometry = g
}

// SetRanker swaps the ranker, for example after a config reload. The current
// list stays until the next re-derivation.
func (c *Controller) SetRanker(r suggest.IRanker) {
	c.ranker = r
}

// SetMetrics replaces the monospace metrics.
func (c *Controller) SetMetrics(m Metrics) {
	c.metrics = m
}

// Metrics returns the monospace metrics in use.
func (c *Controller) Metrics() Metrics { return c.metrics }

// SetCursor moves the caret without changing text.
func (c *Controller) SetCursor(offset int) {
	c.cursor = clampOffset(offset, len(c.Buffer()))
}

// Reset replaces all buffers and hides the dropdown.
func (c *Controller) Reset(b suggest.BufferSet) {
	c.buffers = b
	c.generation++
	c.cursor = 0
	c.hide("reset")
}

// Suggestions returns the current list. The slice is replaced, never modified,
// on recomputation.
func (c *Controller) Suggestions() []suggest.Entry {
	if !c.state.Visible {
		return nil
	}
	return c.list
}

// SelectedIndex returns the highlighted position.
func (c *Controller) SelectedIndex() int { return c.state.SelectedIndex }

// Anchor returns where the dropdown is drawn.
func (c *Controller) Anchor() Position { return c.state.Anchor }

// Visible reports whether the dropdown is shown.
func (c *Controller) Visible() bool { return c.state.Visible }

// State returns a snapshot of the dropdown state.
func (c *Controller) State() State { return c.state }

// Language returns the active tab.
func (c *Controller) Language() suggest.Language { return c.lang }

// Buffers returns all three buffers.
func (c *Controller) Buffers() suggest.BufferSet { return c.buffers }

// Buffer returns the active buffer.
func (c *Controller) Buffer() string { return c.buffers.Get(c.lang) }

// Cursor returns the caret offset in the active buffer.
func (c *Controller) Cursor() int { return c.cursor }

// Context returns the last resolved word context.
func (c *Controller) Context() suggest.CursorContext { return c.ctx }

func (c *Controller) commit(lang suggest.Language, text string, cursor int) {
	c.buffers = c.buffers.With(lang, text)
	c.generation++
	if lang == c.lang {
		c.cursor = clampOffset(cursor, len(text))
	}
}

// refresh resolves the word at the caret and ranks it. With hideOnEmpty unset
// (the key press path) an empty result leaves the dropdown as it is.
func (c *Controller) refresh(hideOnEmpty bool) {
	buf := c.Buffer()
	ctx := suggest.ResolveContext(buf, c.cursor)
	c.ctx = ctx
	c.ctxGen = c.generation

	if ctx.Word == "" {
		if hideOnEmpty {
			c.hide("empty word")
		}
		return
	}

	list := c.ranker.Rank(c.lang, ctx.Word, c.buffers)
	if len(list) == 0 {
		if hideOnEmpty {
			c.hide("no suggestions")
		}
		return
	}

	c.list = list
	c.state.SelectedIndex = 0
	c.state.Anchor = c.metrics.Anchor(c.geometry, buf, c.cursor)
	if !c.state.Visible {
		c.log.Debug("showing suggestions", "word", ctx.Word, "count", len(list))
	}
	c.state.Visible = true
}

func (c *Controller) hide(reason string) {
	if c.state.Visible {
		c.log.Debug("hiding suggestions", "reason", reason)
	}
	c.state.Visible = false
	c.state.SelectedIndex = 0
	c.list = nil
}

func clampOffset(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}
