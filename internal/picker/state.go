// Package picker models the file selector widget's local display state as
// a value type with pure transitions, so the drag/drop/select behavior is
// testable without a rendering environment. The state is display-only;
// the shared form store stays the source of truth for submission.
package picker

import "github.com/vasquezjesus2710/next-form-project/internal/manifest"

// ProgressStep is the fixed increment applied per animation tick.
const ProgressStep = 10

// State holds the widget's hover flag, the most recent selection and the
// cosmetic progress percentage.
type State struct {
	Hovering bool
	File     *manifest.Descriptor
	Progress int
}

// EnterHover sets the hover flag. Repeated enters are no-ops.
func (s State) EnterHover() State {
	s.Hovering = true
	return s
}

// LeaveHover clears the hover flag unconditionally.
func (s State) LeaveHover() State {
	s.Hovering = false
	return s
}

// Choose records the first file of a selection and rewinds progress to 0.
// An empty selection changes nothing; the second return is false.
func (s State) Choose(files []*manifest.Descriptor) (State, bool) {
	if len(files) == 0 || files[0] == nil {
		return s, false
	}
	s.File = files[0]
	s.Progress = 0
	return s, true
}

// Drop clears the hover flag and then applies Choose. An empty payload
// still clears hover but leaves file and progress untouched.
func (s State) Drop(files []*manifest.Descriptor) (State, bool) {
	s = s.LeaveHover()
	return s.Choose(files)
}

// Tick advances progress by one step, capped at 100.
func (s State) Tick() State {
	s.Progress += ProgressStep
	if s.Progress > 100 {
		s.Progress = 100
	}
	return s
}

// Done reports whether the animation has reached the end.
func (s State) Done() bool {
	return s.Progress >= 100
}
