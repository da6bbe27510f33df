// Package cli is a line console over the editor controller for DBG and testing.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/codeserve/internal/utils"
	"github.com/bastiangx/codeserve/pkg/editor"
	"github.com/bastiangx/codeserve/pkg/render"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

const helpText = `commands:
  :html :css :js   switch tab
  :buf             print buffers, | marks the caret
  :corpus          corpus tables and sizes
  :fuzzy <p>       fuzzy lookup in the active language
  :down :up        move the highlight
  :accept          accept the highlighted entry
  :esc             hide the dropdown
  :reset           clear all buffers
  :help            this text
any other line is typed into the active buffer, a trailing \ types a newline`

// InputHandler types lines into a simulated editor and prints the dropdown
// after each one.
type InputHandler struct {
	ranker       *suggest.Ranker
	ctrl         *editor.Controller
	queue        *editor.Queue
	out          io.Writer
	opts         render.Options
	requestCount int
}

// NewInputHandler creates a console starting on the lang tab. Output goes to out.
func NewInputHandler(ranker *suggest.Ranker, lang suggest.Language, color bool, out io.Writer) *InputHandler {
	queue := &editor.Queue{}
	opts := render.DefaultOptions()
	opts.Color = color
	return &InputHandler{
		ranker: ranker,
		ctrl: editor.New(ranker,
			editor.WithScheduler(queue),
			editor.WithLanguage(lang),
		),
		queue: queue,
		out:   out,
		opts:  opts,
	}
}

// Start reads lines from in until EOF.
func (h *InputHandler) Start(in io.Reader) error {
	log.Print("CodeServe CLI [BETA]")
	log.Print("type code and press Enter to see suggestions, :help for commands (Ctrl+C to exit)")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
	return scanner.Err()
}

// handleInput runs a command or types the line into the active buffer.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	if cmd, arg, ok := parseCommand(line); ok {
		h.handleCommand(cmd, arg)
		return
	}

	text := line
	if strings.HasSuffix(text, `\`) {
		text = strings.TrimSuffix(text, `\`) + "\n"
	}

	start := time.Now()
	h.typeText(text)
	log.Debugf("Took [ %v ] for %d characters", time.Since(start), len(text))
	h.printDropdown()
}

// typeText feeds text one character at a time the way a browser delivers
// keypress and input events.
func (h *InputHandler) typeText(text string) {
	for _, r := range text {
		key := string(r)
		h.ctrl.OnKeyPress(key, editor.Modifiers{})
		buf := h.ctrl.Buffer() + key
		h.ctrl.OnBufferChanged(h.ctrl.Language(), buf, len(buf))
		h.queue.Drain()
	}
}

func (h *InputHandler) handleCommand(cmd, arg string) {
	switch cmd {
	case "html", "css", "js":
		lang, _ := suggest.ParseLanguage(cmd)
		h.ctrl.SetLanguage(lang)
		fmt.Fprintf(h.out, "tab: %s\n", lang)
	case "buf":
		h.printBuffers()
	case "corpus":
		h.printCorpus()
	case "fuzzy":
		h.printFuzzy(arg)
	case "down":
		h.key(editor.KeyArrowDown)
	case "up":
		h.key(editor.KeyArrowUp)
	case "esc":
		h.key(editor.KeyEscape)
	case "accept":
		if !h.ctrl.OnKeyDown(editor.KeyEnter, editor.Modifiers{}) {
			log.Warn("Nothing to accept")
			return
		}
		fmt.Fprintln(h.out, withCaret(h.ctrl.Buffer(), h.ctrl.Cursor()))
	case "reset":
		h.ctrl.Reset(suggest.BufferSet{})
		fmt.Fprintln(h.out, "buffers cleared")
	case "help":
		fmt.Fprintln(h.out, helpText)
	default:
		log.Warnf("Unknown command :%s, try :help", cmd)
	}
}

func (h *InputHandler) key(name string) {
	if !h.ctrl.OnKeyDown(name, editor.Modifiers{}) {
		log.Warn("No suggestions open")
		return
	}
	h.printDropdown()
}

func (h *InputHandler) printDropdown() {
	if !h.ctrl.Visible() {
		fmt.Fprintln(h.out, "no suggestions")
		return
	}
	fmt.Fprintln(h.out, render.Dropdown(h.ctrl.Suggestions(), h.ctrl.SelectedIndex(), h.opts))
}

func (h *InputHandler) printBuffers() {
	active := h.ctrl.Language()
	for _, lang := range suggest.Languages {
		text := h.ctrl.Buffers().Get(lang)
		marker := " "
		if lang == active {
			marker = "*"
			text = withCaret(text, h.ctrl.Cursor())
		}
		fmt.Fprintf(h.out, "%s %s:\n%s\n", marker, lang, text)
	}
}

func (h *InputHandler) printCorpus() {
	corpus := h.ranker.Corpus()
	for _, t := range corpus.Tables() {
		fmt.Fprintf(h.out, "%-22s %-10s %8s\n", t.Name, t.Language, utils.FormatWithCommas(t.Len()))
	}
	for _, lang := range suggest.Languages {
		fmt.Fprintf(h.out, "%-22s %-10s %8s\n", "total", lang, utils.FormatWithCommas(corpus.Size(lang)))
	}
}

func (h *InputHandler) printFuzzy(prefix string) {
	if prefix == "" {
		log.Error("Usage: :fuzzy <prefix>")
		return
	}
	start := time.Now()
	list := h.ranker.Fuzzy(h.ctrl.Language(), prefix, h.ctrl.Buffers(), 0)
	log.Debugf("Took [ %v ] for fuzzy '%s'", time.Since(start), prefix)

	if len(list) == 0 {
		log.Warnf("No suggestions found for '%s'", prefix)
		return
	}
	for i, e := range list {
		fmt.Fprintf(h.out, "%2d. %-30s [%s]\n", i+1, e.Text, e.Kind.Label())
	}
}

// parseCommand splits ":name arg". Lines like "a:hover" or ": x" are text.
func parseCommand(line string) (cmd, arg string, ok bool) {
	if !strings.HasPrefix(line, ":") {
		return "", "", false
	}
	cmd, arg, _ = strings.Cut(line[1:], " ")
	if cmd == "" {
		return "", "", false
	}
	for _, r := range cmd {
		if r < 'a' || r > 'z' {
			return "", "", false
		}
	}
	return cmd, strings.TrimSpace(arg), true
}

func withCaret(text string, cursor int) string {
	if cursor < 0 || cursor > len(text) {
		return text
	}
	return text[:cursor] + "|" + text[cursor:]
}
