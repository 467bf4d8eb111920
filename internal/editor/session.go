// Package editor owns the edit session for a single selected node: draft
// text, its validation state, and the save path that reconciles an edited
// fragment back into the full document.
package editor

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jed/internal/jsontree"
	"github.com/oakwood-commons/jed/internal/navigator"
)

// NodeData is the externally selected node: its flattened display rows and
// its location inside the full document.
type NodeData struct {
	Rows []navigator.NodeRow
	Path jsontree.Path
}

// DocumentStore is the narrow surface of whatever owns the full document.
// LoadText returns the current committed serialization; CommitText replaces
// it wholesale and records whether unsaved downstream changes now exist.
type DocumentStore interface {
	LoadText() (string, error)
	CommitText(text string, dirty bool) error
}

// SelectionSource supplies the currently selected node. Selection is owned
// elsewhere (the UI); the session only reads it.
type SelectionSource interface {
	Current() (NodeData, bool)
}

// Session is one node-editing session. It holds the draft text and its
// validation state, and orchestrates save and cancel. All methods are
// synchronous; a Session is not safe for concurrent use.
type Session struct {
	store     DocumentStore
	selection SelectionSource
	log       logr.Logger

	draft    string
	parsed   jsontree.Value
	parseErr error
	editing  bool
}

// NewSession wires a session to its collaborators. The draft starts from
// the current selection so the preview and the editor agree before the
// first BeginEdit.
func NewSession(store DocumentStore, selection SelectionSource, log logr.Logger) *Session {
	s := &Session{store: store, selection: selection, log: log}
	s.resetDraft()
	return s
}

// Draft returns the current draft text.
func (s *Session) Draft() string { return s.draft }

// Editing reports whether an edit is in progress.
func (s *Session) Editing() bool { return s.editing }

// Valid reports whether the draft parses as JSON.
func (s *Session) Valid() bool { return s.parseErr == nil }

// Err returns the draft's parse error, or nil while the draft is valid.
func (s *Session) Err() error { return s.parseErr }

// BeginEdit starts editing: the draft is seeded from the current selection,
// any stale error is recomputed, and the session enters editing state. A
// node whose normalized text is not valid JSON (the bare-string case) starts
// out invalid, with the parse error already populated.
func (s *Session) BeginEdit() {
	s.resetDraft()
	s.editing = true
}

// UpdateDraft replaces the draft text and revalidates it. Validation is
// recomputed once per change and cached until the next change.
func (s *Session) UpdateDraft(text string) {
	if text == s.draft {
		return
	}
	s.draft = text
	s.validate()
}

// Cancel discards the draft: it is regenerated from the selection's current
// rows (not a pre-edit snapshot), the error state is recomputed, and the
// session leaves editing state. Nothing is written anywhere.
func (s *Session) Cancel() {
	s.resetDraft()
	s.editing = false
}

// Reset is Cancel for selection changes: reopening the editor or moving to
// another node starts from a clean draft.
func (s *Session) Reset() {
	s.resetDraft()
	s.editing = false
}

// Save commits the draft into the full document. It loads and parses the
// committed document, resolves the selected node, shallow-merges the draft
// onto it when both sides are objects (so sibling keys and the nested
// structure hidden from the draft survive) or replaces the value outright
// otherwise, then serializes the whole tree back to the store.
//
// On any failure the store is left untouched, the error is logged and
// returned, and the session stays exactly as it was. Editing state is only
// cleared on confirmed success.
func (s *Session) Save() error {
	if err := s.save(); err != nil {
		s.log.Error(err, "save failed, document left unchanged",
			"path", jsontree.FormatPath(s.currentPath()))
		return err
	}
	s.editing = false
	return nil
}

func (s *Session) save() error {
	if !s.editing {
		return fmt.Errorf("no edit in progress")
	}
	if s.parseErr != nil {
		return fmt.Errorf("draft is not valid JSON: %w", s.parseErr)
	}

	sel, ok := s.selection.Current()
	if !ok {
		return fmt.Errorf("no node selected")
	}

	text, err := s.store.LoadText()
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	root, err := jsontree.Parse(text)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	draftObj, draftIsObject := s.parsed.(*jsontree.Object)
	current, _ := jsontree.Get(root, sel.Path)
	currentObj, currentIsObject := current.(*jsontree.Object)

	if draftIsObject && currentIsObject {
		// Shallow merge: draft keys win, untouched keys stay. currentObj is
		// a live reference into root, so this mutates the document tree.
		for _, m := range draftObj.Members() {
			currentObj.Set(m.Key, m.Value)
		}
	} else {
		root = jsontree.Set(root, sel.Path, s.parsed)
	}

	if err := s.store.CommitText(jsontree.EncodeIndent(root), true); err != nil {
		return fmt.Errorf("commit document: %w", err)
	}
	return nil
}

func (s *Session) resetDraft() {
	rows := []navigator.NodeRow(nil)
	if sel, ok := s.selection.Current(); ok {
		rows = sel.Rows
	}
	s.draft = navigator.Normalize(rows)
	s.validate()
}

func (s *Session) validate() {
	s.parsed, s.parseErr = jsontree.Parse(s.draft)
}

func (s *Session) currentPath() jsontree.Path {
	if sel, ok := s.selection.Current(); ok {
		return sel.Path
	}
	return nil
}
