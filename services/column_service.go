package services

import (
	"errors"
	"strings"

	"zakatbackend/types"
	"zakatbackend/utils/helpers"
)

// ErrNoVisibleColumns signals the "nothing selected" state: exporting with
// every column toggled off must be surfaced to the user instead of emitting a
// header-only artifact.
var ErrNoVisibleColumns = errors.New("no columns selected for export")

// ColumnDef declares one presentable column for an entity type: identity,
// label, an optional header tooltip, a default width, and pure display/export
// formatters. Display and export may differ only in formatting; both are
// total functions that render a placeholder for unknown values.
type ColumnDef[T any] struct {
	ID           string
	Label        string
	Tooltip      string
	DefaultWidth int
	Display      func(T) string
	Export       func(T) string
	CellTooltip  func(T) string
}

// ColumnConfig is the session-scoped state for one column id.
type ColumnConfig struct {
	Visible bool
	Width   int
}

// Table pairs a fixed, ordered column definition set with mutable per-session
// visibility/width state. Definitions never change at runtime; state is keyed
// by column id and self-heals when the definition set gains new columns.
type Table[T any] struct {
	defs     []ColumnDef[T]
	state    map[string]ColumnConfig
	warnings func(T) []string
}

// NewTable builds a table over defs. warnings extracts the entity's warning
// sequence for the trailing export column; nil means no warnings column
// content.
func NewTable[T any](defs []ColumnDef[T], warnings func(T) []string) *Table[T] {
	t := &Table[T]{
		defs:     defs,
		state:    make(map[string]ColumnConfig, len(defs)),
		warnings: warnings,
	}
	t.heal()
	return t
}

// heal gives every defined column id a default state entry without touching
// existing overrides. Idempotent and order-independent, so it is safe to call
// whenever the definition set may have changed shape.
func (t *Table[T]) heal() {
	for _, def := range t.defs {
		if _, ok := t.state[def.ID]; !ok {
			t.state[def.ID] = ColumnConfig{Visible: true, Width: def.DefaultWidth}
		}
	}
}

// SetVisibility toggles a column. Unknown ids get a lazily created entry so
// the call never fails; it simply has no effect on rendering until a matching
// definition appears.
func (t *Table[T]) SetVisibility(id string, visible bool) {
	cfg := t.configFor(id)
	cfg.Visible = visible
	t.state[id] = cfg
}

// SetWidth stores a width as given. Clamping to the UI's allowed range is the
// caller's responsibility.
func (t *Table[T]) SetWidth(id string, width int) {
	cfg := t.configFor(id)
	cfg.Width = width
	t.state[id] = cfg
}

func (t *Table[T]) configFor(id string) ColumnConfig {
	if cfg, ok := t.state[id]; ok {
		return cfg
	}
	for _, def := range t.defs {
		if def.ID == id {
			return ColumnConfig{Visible: true, Width: def.DefaultWidth}
		}
	}
	return ColumnConfig{Visible: true}
}

// Config returns the current state for a column id.
func (t *Table[T]) Config(id string) ColumnConfig {
	return t.configFor(id)
}

// ApplyOverrides folds request-supplied per-column overrides into the session
// state. Nil fields keep the current value.
func (t *Table[T]) ApplyOverrides(overrides map[string]types.ColumnState) {
	for id, o := range overrides {
		if o.Visible != nil {
			t.SetVisibility(id, *o.Visible)
		}
		if o.Width != nil {
			t.SetWidth(id, *o.Width)
		}
	}
}

// ColumnMeta is the caller-visible description of one column: identity,
// header labeling and current state.
type ColumnMeta struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Tooltip string `json:"tooltip,omitempty"`
	Visible bool   `json:"visible"`
	Width   int    `json:"width"`
}

// Meta describes every defined column in definition order, tooltips included,
// so the UI renders headers and column settings from one source of truth.
func (t *Table[T]) Meta() []ColumnMeta {
	t.heal()
	meta := make([]ColumnMeta, 0, len(t.defs))
	for _, def := range t.defs {
		cfg := t.state[def.ID]
		meta = append(meta, ColumnMeta{
			ID:      def.ID,
			Label:   def.Label,
			Tooltip: def.Tooltip,
			Visible: cfg.Visible,
			Width:   cfg.Width,
		})
	}
	return meta
}

// VisibleColumns returns the subsequence of definitions currently visible,
// preserving original definition order.
func (t *Table[T]) VisibleColumns() []ColumnDef[T] {
	t.heal()
	visible := make([]ColumnDef[T], 0, len(t.defs))
	for _, def := range t.defs {
		if t.state[def.ID].Visible {
			visible = append(visible, def)
		}
	}
	return visible
}

// Header returns the export header: visible column labels plus the trailing
// warnings column.
func (t *Table[T]) Header() []string {
	visible := t.VisibleColumns()
	header := make([]string, 0, len(visible)+1)
	for _, def := range visible {
		header = append(header, def.Label)
	}
	return append(header, "Warnings")
}

// ExportRows produces one row per entity: each visible column's export value
// in order, plus the entity's warnings joined by single spaces.
func (t *Table[T]) ExportRows(entities []T) [][]string {
	visible := t.VisibleColumns()
	rows := make([][]string, 0, len(entities))
	for _, entity := range entities {
		row := make([]string, 0, len(visible)+1)
		for _, def := range visible {
			row = append(row, def.Export(entity))
		}
		var joined string
		if t.warnings != nil {
			joined = helpers.JoinWarnings(t.warnings(entity))
		}
		rows = append(rows, append(row, joined))
	}
	return rows
}

// CSV serializes the visible columns of entities. Rows are newline-joined
// with no trailing newline. Returns ErrNoVisibleColumns when every column is
// toggled off, so callers surface a "nothing selected" state instead of a
// malformed file.
func (t *Table[T]) CSV(entities []T) (string, error) {
	if len(t.VisibleColumns()) == 0 {
		return "", ErrNoVisibleColumns
	}
	lines := make([]string, 0, len(entities)+1)
	lines = append(lines, csvLine(t.Header()))
	for _, row := range t.ExportRows(entities) {
		lines = append(lines, csvLine(row))
	}
	return strings.Join(lines, "\n"), nil
}

func csvLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = helpers.EscapeCSV(field)
	}
	return strings.Join(escaped, ",")
}
