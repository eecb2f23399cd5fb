package document

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/wikitext"
)

// counterIDs is a deterministic IDGenerator for tests.
type counterIDs struct {
	n int
}

func (c *counterIDs) NewID() string {
	c.n++
	return fmt.Sprintf("id-%d", c.n)
}

// fixedClock is a deterministic Clock for tests.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestEditor() (Editor, *counterIDs, *fixedClock) {
	ids := &counterIDs{}
	clock := &fixedClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewEditor(ids, clock), ids, clock
}

func seeded(t *testing.T) (Editor, Document) {
	t.Helper()
	editor, ids, clock := newTestEditor()
	doc := Seed(ids, clock)
	return editor, doc
}

func TestSeed_FixedSchema(t *testing.T) {
	_, doc := seeded(t)

	require.Equal(t, "id-1", doc.ID)
	require.Equal(t, DefaultTemplateName, doc.TemplateName)
	require.Len(t, doc.Sections, 12)

	date, ok := doc.Section(SectionDate)
	require.True(t, ok)
	require.Equal(t, KindList, date.Kind)
	// list sections always seed with one slot
	require.Equal(t, []string{""}, date.Items)

	combatants, ok := doc.Section(SectionCombatants)
	require.True(t, ok)
	require.Equal(t, KindColumns, combatants.Kind)
	require.Empty(t, combatants.Columns)
	require.Empty(t, combatants.Cells)
}

func TestClone_SharesNothing(t *testing.T) {
	editor, doc := seeded(t)
	doc = editor.AddColumn(doc)
	doc, err := editor.SetCellItems(doc, SectionCombatants, 0, []string{"France"})
	require.NoError(t, err)

	clone := doc.Clone()
	clone.Sections[clone.sectionIndex(SectionCombatants)].Cells[0][0] = "changed"

	original, _ := doc.Section(SectionCombatants)
	require.Equal(t, "France", original.Cells[0][0])
}

func TestEditor_EditClearsReport(t *testing.T) {
	editor, doc := seeded(t)

	report := NewImportReport()
	report.Add("combatant1", wikitext.NewExtraction("France", []string{"France"}, nil, ""))
	doc.Report = report

	edited := editor.SetTitle(doc, "Battle of Testing")
	require.Nil(t, edited.Report)
	// the input snapshot keeps its provenance
	require.NotNil(t, doc.Report)
}

func TestEditor_NoopKeepsReport(t *testing.T) {
	editor, doc := seeded(t)
	doc.Title = "Same"
	doc.Report = NewImportReport()

	edited := editor.SetTitle(doc, "Same")
	require.NotNil(t, edited.Report)
	require.Equal(t, doc.LastEdited, edited.LastEdited)
}

func TestEditor_SetSingle(t *testing.T) {
	editor, doc := seeded(t)

	doc, err := editor.SetSingle(doc, SectionResult, "Decisive victory")
	require.NoError(t, err)

	result, _ := doc.Section(SectionResult)
	require.Equal(t, "Decisive victory", result.Value)

	_, err = editor.SetSingle(doc, SectionCombatants, "x")
	require.Error(t, err)
}

func TestEditor_ListOperations(t *testing.T) {
	editor, doc := seeded(t)

	doc, err := editor.SetListItem(doc, SectionDate, 0, "1914")
	require.NoError(t, err)

	doc, err = editor.AddListItem(doc, SectionDate)
	require.NoError(t, err)

	doc, err = editor.SetListItem(doc, SectionDate, 1, "1918")
	require.NoError(t, err)

	date, _ := doc.Section(SectionDate)
	require.Equal(t, []string{"1914", "1918"}, date.Items)

	doc, err = editor.RemoveListItem(doc, SectionDate, 0)
	require.NoError(t, err)
	date, _ = doc.Section(SectionDate)
	require.Equal(t, []string{"1918"}, date.Items)

	// the last slot is cleared, never removed
	doc, err = editor.RemoveListItem(doc, SectionDate, 0)
	require.NoError(t, err)
	date, _ = doc.Section(SectionDate)
	require.Equal(t, []string{""}, date.Items)
}

func TestEditor_ColumnsStayParallel(t *testing.T) {
	editor, doc := seeded(t)

	doc = editor.AddColumn(doc)
	doc = editor.AddColumn(doc)

	for _, s := range doc.Sections {
		if s.Kind != KindColumns {
			continue
		}
		require.Len(t, s.Columns, 2)
		require.Len(t, s.Cells, 2)
	}

	// column ids are unique across sections
	seen := map[string]bool{}
	for _, s := range doc.Sections {
		for _, c := range s.Columns {
			require.False(t, seen[c.ID])
			seen[c.ID] = true
		}
	}

	doc, err := editor.RemoveColumn(doc, 0)
	require.NoError(t, err)
	for _, s := range doc.Sections {
		if s.Kind == KindColumns {
			require.Len(t, s.Columns, 1)
			require.Len(t, s.Cells, 1)
		}
	}
}

func TestEditor_CustomFields(t *testing.T) {
	editor, doc := seeded(t)

	doc = editor.SetCustomField(doc, "campaignbox", "{{Campaignbox X}}")
	doc = editor.SetCustomField(doc, "campaignbox", "{{Campaignbox Y}}")
	require.Len(t, doc.CustomFields, 1)
	require.Equal(t, "{{Campaignbox Y}}", doc.CustomFields[0].Value)

	doc = editor.RemoveCustomField(doc, "campaignbox")
	require.Empty(t, doc.CustomFields)
}

func TestImportReport_StatusViews(t *testing.T) {
	report := NewImportReport()
	report.Add("combatant1", wikitext.NewExtraction("France", []string{"France"}, nil, ""))
	report.Add("combatant2", wikitext.NewExtraction("raw", []string{"a"}, []wikitext.Fragment{{Tag: "x", Text: "y"}}, "x"))
	report.Add("strength1", wikitext.NewExtraction("raw", nil, []wikitext.Fragment{{Tag: "x", Text: "y"}}, "x"))
	report.Add("casualties1", wikitext.NewExtraction("", nil, nil, ""))

	require.Equal(t, []string{"combatant1"}, report.ParsedKeys())
	require.Equal(t, []string{"combatant2"}, report.PartialKeys())
	require.Equal(t, []string{"strength1"}, report.FailedKeys())
	require.Equal(t, 1, report.Fields["combatant1"].ParsedItemCount)
}
