/*
Package server implements msgpack IPC between an editor front-end and the
autocomplete controller.

The front-end owns the text area. It forwards its change, key and pointer
events over stdin as msgpack maps and renders the dropdown state it receives
on stdout. One server process backs one editor surface.

# IPC

On start the server writes a ready message carrying a session id:

	{"status": "ready", "session": "6f0c...", "version": "0.3.0"}

Every request has an id and an op. Editor events return the dropdown state
after the event and any deferred work it scheduled:

	{"id": "7", "op": "change", "lang": "css", "text": "body { disp", "cursor": 11}
	{"id": "7", "status": "ok", "visible": true, "sel": 0, "anchor": {"top": 45, "left": 88},
	 "s": [{"w": "display", "k": "property", "i": "display: ", "g": "CSS Properties", "r": 1}], "c": 1, "t": 52}

Key events report whether the key was consumed, in which case the front-end
must not let it reach the text area:

	{"id": "8", "op": "keydown", "key": "Enter"}
	{"id": "8", "status": "ok", "consumed": true, "text": "body { display: ", "cursor": 16, ...}

A change names the buffer it edits; a change for a language other than the
active tab switches to that tab first.

When an event edits the buffer (accepting an entry) the response carries the
new buffer text and caret, which the front-end commits and refocuses.

Every cursor is a byte offset into the UTF-8 buffer text, both in requests and
in responses. Browser selectionStart and setSelectionRange count UTF-16 code
units, so a front-end converts caret positions in both directions whenever the
text holds anything outside ASCII.

# Ops

Editor events: change, keypress, keydown, pointer, select, accept, dismiss,
tab, geometry, cursor, reset, state.

Lookups: complete ranks a prefix without touching the dropdown (fuzzy: true
switches to fuzzy matching), render returns the dropdown as terminal text,
info returns corpus and session stats, config updates the ranking caps and
persists them to the TOML file.

A keypress schedules a re-read of the word for after the character lands. The
server runs scheduled work after the next request when that request is a
change (the character arriving), and before any other request, matching the
order of browser keypress, input and timer events.

Errors are reported as {"id": "...", "e": "message", "c": 400}; the server
keeps serving after them.
*/
package server

import (
	"github.com/bastiangx/codeserve/pkg/editor"
)

// Op names.
const (
	OpChange   = "change"
	OpKeyPress = "keypress"
	OpKeyDown  = "keydown"
	OpPointer  = "pointer"
	OpSelect   = "select"
	OpAccept   = "accept"
	OpDismiss  = "dismiss"
	OpTab      = "tab"
	OpGeometry = "geometry"
	OpCursor   = "cursor"
	OpReset    = "reset"
	OpState    = "state"
	OpComplete = "complete"
	OpRender   = "render"
	OpInfo     = "info"
	OpConfig   = "config"
)

// Request is any message from the front-end. Fields not used by an op are ignored.
type Request struct {
	ID       string           `msgpack:"id"`
	Op       string           `msgpack:"op"`
	Lang     string           `msgpack:"lang,omitempty"`
	Text     string           `msgpack:"text,omitempty"`
	Cursor   int              `msgpack:"cursor,omitempty"`
	Key      string           `msgpack:"key,omitempty"`
	Mods     editor.Modifiers `msgpack:"mods,omitempty"`
	Index    int              `msgpack:"index,omitempty"`
	X        int              `msgpack:"x,omitempty"`
	Y        int              `msgpack:"y,omitempty"`
	Geometry *editor.Geometry `msgpack:"geometry,omitempty"`
	Buffers  *Buffers         `msgpack:"buffers,omitempty"`
	Prefix   string           `msgpack:"p,omitempty"`
	Limit    int              `msgpack:"l,omitempty"`
	Fuzzy    bool             `msgpack:"fuzzy,omitempty"`
	Config   *ConfigUpdate    `msgpack:"config,omitempty"`
}

// Buffers carries all three buffers, for reset.
type Buffers struct {
	HTML       string `msgpack:"html"`
	CSS        string `msgpack:"css"`
	JavaScript string `msgpack:"javascript"`
}

// ConfigUpdate changes ranking caps at runtime. Nil fields are left as is.
type ConfigUpdate struct {
	MaxLimit   *int  `msgpack:"max_limit,omitempty"`
	EmptyLimit *int  `msgpack:"empty_limit,omitempty"`
	MinPrefix  *int  `msgpack:"min_prefix,omitempty"`
	MaxPrefix  *int  `msgpack:"max_prefix,omitempty"`
	Dedupe     *bool `msgpack:"dedupe,omitempty"`
}

// Suggestion is one dropdown entry.
type Suggestion struct {
	Text        string `msgpack:"w"`
	Kind        string `msgpack:"k"`
	Description string `msgpack:"d,omitempty"`
	Insert      string `msgpack:"i"`
	Category    string `msgpack:"g"`
	Rank        uint16 `msgpack:"r"`
}

// ReadyResponse is written once before any request is read.
type ReadyResponse struct {
	Status  string `msgpack:"status"`
	Session string `msgpack:"session"`
	Version string `msgpack:"version"`
}

// StateResponse is the dropdown state after an editor event.
type StateResponse struct {
	ID          string          `msgpack:"id"`
	Status      string          `msgpack:"status"`
	Lang        string          `msgpack:"lang"`
	Visible     bool            `msgpack:"visible"`
	Selected    int             `msgpack:"sel"`
	Anchor      editor.Position `msgpack:"anchor"`
	Suggestions []Suggestion    `msgpack:"s"`
	Count       int             `msgpack:"c"`
	TimeTaken   int64           `msgpack:"t"`
	Consumed    bool            `msgpack:"consumed,omitempty"`
	Edited      bool            `msgpack:"edited,omitempty"`
	Text        string          `msgpack:"text,omitempty"`
	Cursor      int             `msgpack:"cursor,omitempty"`
}

// CompletionResponse answers a complete lookup.
type CompletionResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// RenderResponse carries the dropdown as terminal text.
type RenderResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Text   string `msgpack:"text"`
}

// InfoResponse reports corpus sizes, counters and the active config.
type InfoResponse struct {
	ID         string         `msgpack:"id"`
	Status     string         `msgpack:"status"`
	Session    string         `msgpack:"session"`
	Stats      map[string]int `msgpack:"stats"`
	ConfigPath string         `msgpack:"config_path"`
}

// ConfigResponse answers a config update.
type ConfigResponse struct {
	ID         string `msgpack:"id"`
	Status     string `msgpack:"status"`
	MaxLimit   int    `msgpack:"max_limit"`
	EmptyLimit int    `msgpack:"empty_limit"`
	MinPrefix  int    `msgpack:"min_prefix"`
	MaxPrefix  int    `msgpack:"max_prefix"`
	Dedupe     bool   `msgpack:"dedupe"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
