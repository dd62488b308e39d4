package main

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/vasquezjesus2710/next-form-project/internal/logger"
	"github.com/vasquezjesus2710/next-form-project/internal/manifest"
	"github.com/vasquezjesus2710/next-form-project/internal/schema"
)

// maxNameGraphemes caps the displayed manifest file name. Truncation
// counts grapheme clusters so combining marks and emoji stay intact.
const maxNameGraphemes = 36

func truncateLabel(s string, max int) string {
	if max <= 0 || uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	kept := 0
	for g.Next() {
		if kept >= max-1 {
			break
		}
		b.WriteString(g.Str())
		kept++
	}
	b.WriteString("…")
	return b.String()
}

// submit validates the full value set. On failure every field is marked
// touched so all errors show at once; on success the form moves to the
// submitted view with a fresh session id.
func (a *formApp) submit() {
	a.store.TouchAll()
	values := a.store.Snapshot()
	issues := a.ruleset.Evaluate(values)
	a.store.SetErrors(a.ruleset.Errors(values))
	a.refreshErrors()

	if len(issues) > 0 {
		logger.Warn("Submission rejected", "issues", len(issues))
		a.flashRed()
		return
	}

	a.lastSessionID = uuid.NewString()
	logger.Info("Import submitted", submissionAttrs(a.lastSessionID, values)...)

	a.safeDo("app.submit.success", func() {
		a.sessionLabel.SetText("Session " + a.lastSessionID)
	})
	a.setState(StateSubmitted)
}

// submissionAttrs flattens an accepted value set into log attributes.
func submissionAttrs(sessionID string, values map[string]any) []any {
	attrs := []any{
		"session_id", sessionID,
		"import_name", stringValue(values, schema.FieldImportName),
		"split_schedule", stringValue(values, schema.FieldSplitSchedule),
		"client", stringValue(values, schema.FieldClient),
		"testing_centers", centersFilled(values),
		"tolerance_window", values[schema.FieldToleranceWindow],
	}
	if d, ok := values[schema.FieldManifestFile].(*manifest.Descriptor); ok && d != nil {
		attrs = append(attrs, "manifest", d.Name, "manifest_kb", manifest.KB(d.Size))
	}
	return attrs
}

func stringValue(values map[string]any, field string) string {
	s, _ := values[field].(string)
	return s
}

// centersFilled counts the optional testing centers that carry text.
func centersFilled(values map[string]any) int {
	n := 0
	for _, field := range []string{
		schema.FieldTestingCenter1,
		schema.FieldTestingCenter2,
		schema.FieldTestingCenter3,
		schema.FieldTestingCenter4,
	} {
		if s, _ := values[field].(string); strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// resetForm returns every widget and the store to the pristine state.
// The store reset runs last: clearing the selects fires their change
// handlers, which would otherwise re-mark fields as touched.
func (a *formApp) resetForm() {
	a.manifest.clear()

	a.safeDo("app.reset_form", func() {
		a.importSelect.ClearSelected()
		a.scheduleSelect.ClearSelected()
		a.clientSelect.ClearSelected()
		for _, entry := range a.centerEntries {
			entry.SetText("")
		}
		a.toleranceCheck.SetChecked(false)
		a.sessionLabel.SetText("")
	})

	a.store.Reset(schema.InitialValues())
	a.refreshErrors()
	a.setState(StateForm)
}
