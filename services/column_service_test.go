package services

import (
	"errors"
	"reflect"
	"testing"

	"zakatbackend/types"
)

type fakeEntity struct {
	Name     string
	Warnings []string
}

func fakeDefs() []ColumnDef[fakeEntity] {
	identity := func(e fakeEntity) string { return e.Name }
	return []ColumnDef[fakeEntity]{
		{ID: "a", Label: "A", DefaultWidth: 100, Display: identity, Export: identity},
		{ID: "b", Label: "B", DefaultWidth: 120, Display: identity, Export: identity},
		{ID: "c", Label: "C", DefaultWidth: 140, Display: identity, Export: identity},
	}
}

func fakeTable() *Table[fakeEntity] {
	return NewTable(fakeDefs(), func(e fakeEntity) []string { return e.Warnings })
}

func visibleIDs[T any](t *Table[T]) []string {
	var ids []string
	for _, def := range t.VisibleColumns() {
		ids = append(ids, def.ID)
	}
	return ids
}

func TestVisibleColumns_ToggleOffAndBackPreservesOrder(t *testing.T) {
	table := fakeTable()
	table.SetVisibility("b", false)
	got := visibleIDs(table)
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Expected [a c], got %v", got)
	}

	table.SetVisibility("b", true)
	got = visibleIDs(table)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Expected [a b c], got %v", got)
	}
}

func TestSetVisibility_UnknownIDNeverFails(t *testing.T) {
	table := fakeTable()
	table.SetVisibility("nope", false)
	got := visibleIDs(table)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Expected [a b c], got %v", got)
	}
}

func TestSetWidth_StoresValueAsGiven(t *testing.T) {
	table := fakeTable()
	// Out-of-range on purpose; clamping belongs to the caller.
	table.SetWidth("a", 9999)
	if got := table.Config("a").Width; got != 9999 {
		t.Errorf("Expected 9999, got %v", got)
	}
	if got := table.Config("b").Width; got != 120 {
		t.Errorf("Expected default 120, got %v", got)
	}
}

func TestSetWidth_KeepsVisibilityState(t *testing.T) {
	table := fakeTable()
	table.SetVisibility("a", false)
	table.SetWidth("a", 150)
	got := table.Config("a")
	if got.Visible {
		t.Errorf("Expected hidden, got %+v", got)
	}
	if got.Width != 150 {
		t.Errorf("Expected 150, got %v", got.Width)
	}
}

func TestHeal_NewColumnGetsDefaultWithoutDisturbingOverrides(t *testing.T) {
	table := fakeTable()
	table.SetVisibility("a", false)
	table.SetWidth("b", 300)

	// Simulate the definition set growing a column.
	table.defs = append(table.defs, ColumnDef[fakeEntity]{
		ID: "d", Label: "D", DefaultWidth: 160,
		Display: func(e fakeEntity) string { return e.Name },
		Export:  func(e fakeEntity) string { return e.Name },
	})

	// heal runs on access; calling twice must be idempotent.
	_ = table.VisibleColumns()
	_ = table.VisibleColumns()

	if got := table.Config("d"); !got.Visible || got.Width != 160 {
		t.Errorf("Expected default state for new column, got %+v", got)
	}
	if got := table.Config("a"); got.Visible {
		t.Errorf("Expected customized visibility preserved, got %+v", got)
	}
	if got := table.Config("b").Width; got != 300 {
		t.Errorf("Expected customized width preserved, got %v", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	table := fakeTable()
	hidden := false
	width := 200
	table.ApplyOverrides(map[string]types.ColumnState{
		"a": {Visible: &hidden},
		"c": {Width: &width},
	})
	if got := visibleIDs(table); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Expected [b c], got %v", got)
	}
	if got := table.Config("c").Width; got != 200 {
		t.Errorf("Expected 200, got %v", got)
	}
}

func TestMeta_DescribesEveryColumnInOrder(t *testing.T) {
	table := fakeTable()
	table.SetVisibility("b", false)
	table.SetWidth("c", 200)

	meta := table.Meta()
	if len(meta) != 3 {
		t.Fatalf("Expected 3 entries, got %v", len(meta))
	}
	for i, id := range []string{"a", "b", "c"} {
		if meta[i].ID != id {
			t.Errorf("Expected %v at position %v, got %v", id, i, meta[i].ID)
		}
	}
	if meta[1].Visible {
		t.Errorf("Expected hidden column reflected in meta, got %+v", meta[1])
	}
	if meta[2].Width != 200 {
		t.Errorf("Expected 200, got %v", meta[2].Width)
	}
}

func TestExportRows_TrailingWarningsColumn(t *testing.T) {
	table := fakeTable()
	rows := table.ExportRows([]fakeEntity{{Name: "x", Warnings: []string{"first warning.", "second warning."}}})
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %v", len(rows))
	}
	expected := []string{"x", "x", "x", "first warning. second warning."}
	if !reflect.DeepEqual(rows[0], expected) {
		t.Errorf("Expected %v, got %v", expected, rows[0])
	}
}

func TestCSV_EscapesOnlyWhenNeeded(t *testing.T) {
	defs := []ColumnDef[fakeEntity]{{
		ID: "name", Label: "Name", DefaultWidth: 100,
		Display: func(e fakeEntity) string { return e.Name },
		Export:  func(e fakeEntity) string { return e.Name },
	}}
	table := NewTable(defs, nil)
	content, err := table.CSV([]fakeEntity{{Name: `Acme, Inc. "East"`}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := "Name,Warnings\n\"Acme, Inc. \"\"East\"\"\","
	if content != expected {
		t.Errorf("Expected %q, got %q", expected, content)
	}
}

func TestCSV_NoVisibleColumns(t *testing.T) {
	table := fakeTable()
	table.SetVisibility("a", false)
	table.SetVisibility("b", false)
	table.SetVisibility("c", false)
	if _, err := table.CSV([]fakeEntity{{Name: "x"}}); !errors.Is(err, ErrNoVisibleColumns) {
		t.Errorf("Expected ErrNoVisibleColumns, got %v", err)
	}
}

func TestCSV_Idempotent(t *testing.T) {
	table := fakeTable()
	table.SetVisibility("b", false)
	entities := []fakeEntity{{Name: "x"}, {Name: "y", Warnings: []string{"w"}}}
	first, err := table.CSV(entities)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := table.CSV(entities)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if first != second {
		t.Errorf("Expected identical exports, got %q and %q", first, second)
	}
}
