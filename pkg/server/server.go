package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bastiangx/codeserve/pkg/config"
	"github.com/bastiangx/codeserve/pkg/editor"
	"github.com/bastiangx/codeserve/pkg/render"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
)

const statusOK = "ok"

// Server handles the IPC for one editor surface
type Server struct {
	mu sync.Mutex

	config     *config.Config
	configPath string
	version    string
	session    string

	corpus *suggest.Corpus
	ranker *suggest.Ranker
	queue  *editor.Queue
	ctrl   *editor.Controller

	reader       *bufio.Reader
	writer       *bufio.Writer
	enc          *msgpack.Encoder
	requestCount int
}

// Option configures a Server.
type Option func(*Server)

// WithIO replaces stdin and stdout, for tests and embedding.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(s *Server) {
		s.reader = bufio.NewReader(r)
		s.writer = bufio.NewWriter(w)
	}
}

// WithVersion sets the version reported in the ready message.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithBuffers seeds the editor buffers.
func WithBuffers(b suggest.BufferSet) Option {
	return func(s *Server) { s.ctrl.Reset(b) }
}

// NewServer creates a server over stdin/stdout. cfg may be nil for defaults;
// configPath is the TOML file to watch and persist to, empty for none.
func NewServer(cfg *config.Config, configPath string, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	corpus := suggest.NewCorpus()
	ranker := suggest.NewRanker(corpus, rankerOptions(cfg))
	queue := &editor.Queue{}

	lang, err := suggest.ParseLanguage(cfg.CLI.DefaultLanguage)
	if err != nil {
		lang = suggest.Markup
	}

	s := &Server{
		config:     cfg,
		configPath: configPath,
		version:    "dev",
		session:    uuid.NewString(),
		corpus:     corpus,
		ranker:     ranker,
		queue:      queue,
		ctrl: editor.New(ranker,
			editor.WithScheduler(queue),
			editor.WithMetrics(metrics(cfg)),
			editor.WithLanguage(lang),
		),
		reader: bufio.NewReader(os.Stdin),
		writer: bufio.NewWriter(os.Stdout),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.enc = msgpack.NewEncoder(s.writer)
	return s
}

// Session returns the id sent in the ready message.
func (s *Server) Session() string { return s.session }

// Start serves requests until stdin closes or ctx is cancelled. When the
// config has watch enabled the TOML file is reloaded on change.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting Server.", "session", s.session)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if s.config.Server.Watch && s.configPath != "" {
		g.Go(func() error { return s.watchConfig(gctx) })
	}

	// Reads block on stdin, so the loop runs outside the group and is
	// abandoned on cancel.
	done := make(chan error, 1)
	go func() { done <- s.serve() }()

	g.Go(func() error {
		select {
		case err := <-done:
			cancel()
			return err
		case <-gctx.Done():
			return nil
		}
	})
	return g.Wait()
}

// serve writes the ready message then handles requests until EOF.
func (s *Server) serve() error {
	s.sendResponse(ReadyResponse{Status: "ready", Session: s.session, Version: s.version})

	dec := msgpack.NewDecoder(s.reader)
	for {
		raw, err := dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("stdin closed", "requests", s.requestCount)
				return nil
			}
			log.Errorf("Reading from stdin: %v", err)
			return err
		}
		s.handleRequest(raw)
	}
}

// handleRequest decodes one message and writes exactly one response.
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.sendError("", "Invalid msgpack request", 400)
		log.Errorf("Unmarshaling request: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestCount++

	// Work scheduled by a keypress runs once its character has arrived: after
	// the change that follows it, or before anything else.
	if req.Op != OpChange {
		s.queue.Drain()
	}

	start := time.Now()
	resp, err := s.dispatch(req)
	if req.Op != OpKeyPress {
		s.queue.Drain()
	}
	if err != nil {
		s.sendError(req.ID, err.Error(), errorCode(err))
		log.Debug("request failed", "op", req.Op, "id", req.ID, "err", err)
		return
	}
	if st, ok := resp.(*StateResponse); ok {
		s.fillState(st, start)
	}
	s.sendResponse(resp)
}

// dispatch runs one op. Editor ops return a *StateResponse which is filled
// after deferred work has drained.
func (s *Server) dispatch(req Request) (any, error) {
	st := &StateResponse{ID: req.ID, Status: statusOK}

	switch req.Op {
	case OpChange:
		lang, err := s.language(req.Lang)
		if err != nil {
			return nil, err
		}
		if lang != s.ctrl.Language() {
			s.ctrl.SetLanguage(lang)
		}
		s.ctrl.OnBufferChanged(lang, req.Text, req.Cursor)
	case OpKeyPress:
		s.ctrl.OnKeyPress(req.Key, req.Mods)
	case OpKeyDown:
		before := s.ctrl.Buffer()
		st.Consumed = s.ctrl.OnKeyDown(req.Key, req.Mods)
		st.Edited = s.ctrl.Buffer() != before
	case OpPointer:
		st.Consumed = s.ctrl.OnPointerDown(req.X, req.Y)
	case OpSelect:
		_, _, ok := s.ctrl.OnSelect(req.Index)
		if !ok {
			return nil, badRequest("no suggestion at index %d", req.Index)
		}
		st.Consumed, st.Edited = true, true
	case OpAccept:
		_, _, ok := s.ctrl.AcceptSelected()
		st.Consumed, st.Edited = ok, ok
	case OpDismiss:
		s.ctrl.Dismiss()
	case OpTab:
		lang, err := s.language(req.Lang)
		if err != nil {
			return nil, err
		}
		s.ctrl.SetLanguage(lang)
	case OpGeometry:
		if req.Geometry == nil {
			return nil, badRequest("missing 'geometry'")
		}
		s.ctrl.SetGeometry(*req.Geometry)
	case OpCursor:
		s.ctrl.SetCursor(req.Cursor)
	case OpReset:
		var b suggest.BufferSet
		if req.Buffers != nil {
			b = suggest.BufferSet{Markup: req.Buffers.HTML, Stylesheet: req.Buffers.CSS, Script: req.Buffers.JavaScript}
		}
		s.ctrl.Reset(b)
	case OpState:
	case OpComplete:
		return s.handleComplete(req)
	case OpRender:
		opts := render.DefaultOptions()
		opts.Color = false
		text := render.Dropdown(s.ctrl.Suggestions(), s.ctrl.SelectedIndex(), opts)
		return RenderResponse{ID: req.ID, Status: statusOK, Text: text}, nil
	case OpInfo:
		return InfoResponse{
			ID:         req.ID,
			Status:     statusOK,
			Session:    s.session,
			Stats:      s.stats(),
			ConfigPath: config.GetActiveConfigPath(s.configPath),
		}, nil
	case OpConfig:
		return s.handleConfig(req)
	default:
		return nil, badRequest("Unknown op: %s", req.Op)
	}
	return st, nil
}

// fillState copies the controller snapshot into st.
func (s *Server) fillState(st *StateResponse, start time.Time) {
	state := s.ctrl.State()
	st.Lang = s.ctrl.Language().String()
	st.Visible = state.Visible
	st.Selected = state.SelectedIndex
	st.Anchor = state.Anchor
	st.Suggestions = toSuggestions(s.ctrl.Suggestions())
	st.Count = len(st.Suggestions)
	st.TimeTaken = time.Since(start).Microseconds()
	if st.Edited {
		st.Text = s.ctrl.Buffer()
		st.Cursor = s.ctrl.Cursor()
	}
}

// handleComplete ranks a prefix against the current buffers without touching
// the dropdown.
func (s *Server) handleComplete(req Request) (any, error) {
	lang, err := s.language(req.Lang)
	if err != nil {
		return nil, err
	}
	prefix := req.Prefix
	if n := len(prefix); n > 0 && n < s.config.Server.MinPrefix {
		return nil, badRequest("Prefix must be at least %d characters", s.config.Server.MinPrefix)
	} else if n > s.config.Server.MaxPrefix {
		return nil, badRequest("Prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix)
	}

	start := time.Now()
	var list []suggest.Entry
	if req.Fuzzy {
		list = s.ranker.Fuzzy(lang, prefix, s.ctrl.Buffers(), req.Limit)
	} else {
		list = s.ranker.Rank(lang, prefix, s.ctrl.Buffers())
		if req.Limit > 0 && req.Limit < len(list) {
			list = list[:req.Limit]
		}
	}
	elapsed := time.Since(start)

	suggestions := toSuggestions(list)
	return CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	}, nil
}

// handleConfig applies a runtime config change and persists it.
func (s *Server) handleConfig(req Request) (any, error) {
	if req.Config == nil {
		return nil, badRequest("missing 'config'")
	}
	u := req.Config
	if err := s.config.Update(s.configPath, u.MaxLimit, u.EmptyLimit, u.MinPrefix, u.MaxPrefix, u.Dedupe); err != nil {
		return nil, &requestError{msg: fmt.Sprintf("saving config: %v", err), code: 500}
	}
	s.applyConfig(s.config)

	c := s.config.Server
	return ConfigResponse{
		ID:         req.ID,
		Status:     statusOK,
		MaxLimit:   c.MaxLimit,
		EmptyLimit: c.EmptyLimit,
		MinPrefix:  c.MinPrefix,
		MaxPrefix:  c.MaxPrefix,
		Dedupe:     s.config.Symbols.Dedupe,
	}, nil
}

// applyConfig rebuilds the ranker over the same corpus. Callers hold mu.
func (s *Server) applyConfig(cfg *config.Config) {
	s.config = cfg
	s.ranker = suggest.NewRanker(s.corpus, rankerOptions(cfg))
	s.ctrl.SetRanker(s.ranker)
	s.ctrl.SetMetrics(metrics(cfg))
	log.Debug("config applied", "max_limit", cfg.Server.MaxLimit, "empty_limit", cfg.Server.EmptyLimit, "dedupe", cfg.Symbols.Dedupe)
}

// watchConfig reloads the TOML file when it is written or replaced. The
// directory is watched since saves replace the file by rename.
func (s *Server) watchConfig(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warnf("Config watch disabled: %v", err)
		return nil
	}
	defer w.Close()

	target := filepath.Clean(s.configPath)
	if err := w.Add(filepath.Dir(target)); err != nil {
		log.Warnf("Config watch disabled: %v", err)
		return nil
	}
	log.Debug("watching config", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				s.reloadConfig()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("Config watcher: %v", err)
		}
	}
}

// reloadConfig reads the config file again and applies it.
func (s *Server) reloadConfig() {
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		log.Warnf("Reloading config: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyConfig(cfg)
	log.Info("Config reloaded", "path", s.configPath)
}

func (s *Server) stats() map[string]int {
	stats := s.ranker.Stats()
	stats["requests"] = s.requestCount
	stats["queued"] = s.queue.Len()
	return stats
}

func (s *Server) language(name string) (suggest.Language, error) {
	if name == "" {
		return s.ctrl.Language(), nil
	}
	lang, err := suggest.ParseLanguage(name)
	if err != nil {
		return lang, badRequest("%v", err)
	}
	return lang, nil
}

// sendResponse encodes response and flushes it to the client.
func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}

// toSuggestions numbers entries by position, 1 being the best.
func toSuggestions(list []suggest.Entry) []Suggestion {
	out := make([]Suggestion, len(list))
	for i, e := range list {
		out[i] = Suggestion{
			Text:        e.Text,
			Kind:        e.Kind.Label(),
			Description: e.Description,
			Insert:      e.Insertion(),
			Category:    e.Category,
			Rank:        uint16(i + 1),
		}
	}
	return out
}

func rankerOptions(cfg *config.Config) suggest.RankerOptions {
	return suggest.RankerOptions{
		Limit:         cfg.Server.MaxLimit,
		EmptyLimit:    cfg.Server.EmptyLimit,
		DedupeSymbols: cfg.Symbols.Dedupe,
	}
}

func metrics(cfg *config.Config) editor.Metrics {
	e := cfg.Editor
	return editor.Metrics{
		CharWidth:  e.CharWidth,
		LineHeight: e.LineHeight,
		AnchorGap:  e.AnchorGap,
		ListWidth:  e.ListWidth,
		ListHeight: e.ListHeight,
	}
}

type requestError struct {
	msg  string
	code int
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...), code: 400}
}

func errorCode(err error) int {
	var re *requestError
	if errors.As(err, &re) {
		return re.code
	}
	return 500
}
