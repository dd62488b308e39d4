package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/vasquezjesus2710/next-form-project/internal/apperrors"
	"github.com/vasquezjesus2710/next-form-project/internal/form"
	"github.com/vasquezjesus2710/next-form-project/internal/logger"
	"github.com/vasquezjesus2710/next-form-project/internal/manifest"
	"github.com/vasquezjesus2710/next-form-project/internal/picker"
	"github.com/vasquezjesus2710/next-form-project/internal/progress"
	"github.com/vasquezjesus2710/next-form-project/internal/rules"
	"github.com/vasquezjesus2710/next-form-project/internal/schema"
)

type AppState int

const (
	StateForm AppState = iota
	StateSubmitted
)

type formApp struct {
	window  fyne.Window
	state   AppState
	content *fyne.Container

	// UI Components
	formView      fyne.CanvasObject
	submittedView fyne.CanvasObject
	errorOverlay  *canvas.Rectangle

	importSelect   *widget.Select
	scheduleSelect *widget.Select
	clientSelect   *widget.Select
	centerEntries  map[string]*widget.Entry
	toleranceCheck *widget.Check
	manifest       *manifestField
	errorLabels    map[string]*widget.Label
	sessionLabel   *widget.Label

	// Runtime data
	isAnimating        bool
	lastSessionID      string
	currentSettingsWin fyne.Window
	config             AppConfig
	opts               schema.Options
	ruleset            rules.Ruleset
	store              *form.Store
	panicNoticeOnce    sync.Once
}

func newFormApp(w fyne.Window) *formApp {
	a := &formApp{window: w}
	a.config = loadConfig()
	a.opts = schema.MustLoad()
	a.ruleset = schema.Ruleset(a.opts)
	a.store = form.NewStore(schema.InitialValues())
	a.setupUI()
	a.setState(StateForm)
	return a
}

func (a *formApp) setupUI() {
	a.centerEntries = make(map[string]*widget.Entry)
	a.errorLabels = make(map[string]*widget.Label)

	a.importSelect = widget.NewSelect(a.opts.ImportNames, a.selectHandler(schema.FieldImportName))
	a.importSelect.PlaceHolder = "Choose an import"
	a.scheduleSelect = widget.NewSelect(a.opts.SplitSchedules, a.selectHandler(schema.FieldSplitSchedule))
	a.scheduleSelect.PlaceHolder = "Split the schedule?"
	a.clientSelect = widget.NewSelect(a.opts.Clients, a.selectHandler(schema.FieldClient))
	a.clientSelect.PlaceHolder = "Choose a client"

	a.toleranceCheck = widget.NewCheck("Apply tolerance window", func(b bool) {
		a.store.SetValue(schema.FieldToleranceWindow, b)
		a.store.Touch(schema.FieldToleranceWindow)
		a.revalidate()
	})

	a.manifest = newManifestField(a)

	rows := container.NewVBox()
	for _, f := range schema.Fields() {
		rows.Add(a.fieldRow(f))
	}

	submitBtn := widget.NewButtonWithIcon("Submit import", theme.ConfirmIcon(), a.submit)
	submitBtn.Importance = widget.HighImportance

	a.formView = container.NewVScroll(container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("New Import", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rows,
		container.NewPadded(submitBtn),
	)))

	a.sessionLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	newImportBtn := widget.NewButton("Start another import", func() {
		a.resetForm()
	})
	a.submittedView = container.NewCenter(container.NewVBox(
		container.NewCenter(widget.NewIcon(theme.ConfirmIcon())),
		widget.NewLabelWithStyle("Import submitted", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		a.sessionLabel,
		container.NewPadded(newImportBtn),
	))

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), a.showSettingsWindow)
	settingsBtn.Importance = widget.LowImportance
	topBar := container.NewBorder(nil, nil, nil, settingsBtn)

	a.errorOverlay = canvas.NewRectangle(color.Transparent)
	a.errorOverlay.Hide()

	views := container.NewStack(
		a.formView,
		a.submittedView,
	)

	a.content = container.NewStack(
		container.NewBorder(topBar, nil, nil, nil, views),
		a.errorOverlay,
	)

	a.window.SetContent(a.content)
}

// fieldRow builds the label, input widget and error line for one field.
func (a *formApp) fieldRow(f schema.Field) fyne.CanvasObject {
	label := f.Label
	if f.Required {
		label += " *"
	}

	var input fyne.CanvasObject
	switch f.Name {
	case schema.FieldImportName:
		input = a.importSelect
	case schema.FieldManifestFile:
		input = a.manifest.build()
	case schema.FieldSplitSchedule:
		input = a.scheduleSelect
	case schema.FieldClient:
		input = a.clientSelect
	case schema.FieldToleranceWindow:
		input = a.toleranceCheck
	default:
		entry := widget.NewEntry()
		entry.SetPlaceHolder("Optional")
		name := f.Name
		entry.OnChanged = func(s string) {
			a.store.SetValue(name, s)
		}
		a.centerEntries[f.Name] = entry
		input = entry
	}

	errLabel := widget.NewLabel("")
	errLabel.Importance = widget.DangerImportance
	errLabel.Hide()
	a.errorLabels[f.Name] = errLabel

	return container.NewVBox(
		widget.NewLabelWithStyle(label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		input,
		errLabel,
	)
}

func (a *formApp) selectHandler(field string) func(string) {
	return func(s string) {
		a.store.SetValue(field, s)
		a.store.Touch(field)
		a.revalidate()
	}
}

// revalidate runs the ruleset over the current values and refreshes the
// per-field error lines. Only touched fields display their error.
func (a *formApp) revalidate() {
	a.store.SetErrors(a.ruleset.Errors(a.store.Snapshot()))
	a.refreshErrors()
}

func (a *formApp) refreshErrors() {
	a.safeDo("app.refresh_errors", func() {
		for field, label := range a.errorLabels {
			msg := a.store.DisplayError(field)
			if msg == "" {
				label.SetText("")
				label.Hide()
			} else {
				label.SetText(msg)
				label.Show()
			}
		}
	})
}

func (a *formApp) setState(s AppState) {
	a.safeDo("app.set_state", func() {
		a.state = s
		a.formView.Hide()
		a.submittedView.Hide()

		switch s {
		case StateForm:
			a.formView.Show()
		case StateSubmitted:
			a.submittedView.Show()
		}

		a.content.Refresh()
	})
}

func (a *formApp) flashRed() {
	if a.isAnimating {
		return
	}
	a.isAnimating = true

	a.safeDo("app.flash_red.start", func() {
		a.errorOverlay.Show()
		a.content.Refresh()
	})

	a.safeGo("app.flash_red.animate", func() {
		steps := 10
		duration := 150 * time.Millisecond
		sleep := duration / time.Duration(steps)

		// Fade in
		for i := 1; i <= steps; i++ {
			alpha := uint8(120 * float32(i) / float32(steps))
			a.safeDo("app.flash_red.fade_in", func() {
				a.errorOverlay.FillColor = color.NRGBA{R: 255, G: 0, B: 0, A: alpha}
				canvas.Refresh(a.errorOverlay)
			})
			time.Sleep(sleep)
		}
		// Fade out
		for i := steps; i >= 0; i-- {
			alpha := uint8(120 * float32(i) / float32(steps))
			a.safeDo("app.flash_red.fade_out", func() {
				a.errorOverlay.FillColor = color.NRGBA{R: 255, G: 0, B: 0, A: alpha}
				canvas.Refresh(a.errorOverlay)
			})
			time.Sleep(sleep)
		}

		a.safeDo("app.flash_red.end", func() {
			a.errorOverlay.FillColor = color.Transparent
			a.errorOverlay.Hide()
			a.isAnimating = false
			a.content.Refresh()
		})
	})
}

// manifestField is the file control: a drop zone plus the chosen-file
// summary with name, rounded size and the upload progress bar.
type manifestField struct {
	app       *formApp
	zone      *manifestDropZone
	nameLabel *widget.Label
	sizeLabel *widget.Label
	bar       *widget.ProgressBar
	infoBox   *fyne.Container
	animator  *progress.Animator
	state     picker.State
}

func newManifestField(a *formApp) *manifestField {
	f := &manifestField{app: a}
	f.zone = newManifestDropZone(f)
	f.animator = progress.NewAnimator(a.config.tickInterval())
	return f
}

func (f *manifestField) build() fyne.CanvasObject {
	f.nameLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	f.sizeLabel = widget.NewLabel("")
	f.bar = widget.NewProgressBar()
	f.bar.Min = 0
	f.bar.Max = float64(progress.Max)

	f.infoBox = container.NewVBox(
		container.NewHBox(widget.NewIcon(theme.DocumentIcon()), f.nameLabel, f.sizeLabel),
		f.bar,
	)
	f.infoBox.Hide()

	return container.NewVBox(f.zone, f.infoBox)
}

// openPicker shows the file dialog filtered to the manifest extensions.
func (f *manifestField) openPicker() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		f.selectManifestPath(path)
	}, f.app.window)

	fd.SetFilter(storage.NewExtensionFileFilter(f.app.opts.ManifestExtensions))
	if f.app.config.PickerDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(f.app.config.PickerDir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Resize(fyne.NewSize(800, 600))
	fd.Show()
}

// handleDropped takes the URIs from a window drop. Only the first file
// counts; an empty payload just clears the hover highlight.
func (f *manifestField) handleDropped(uris []fyne.URI) {
	if len(uris) == 0 {
		f.app.safeDo("ui.manifest.drop_empty", func() {
			f.state, _ = f.state.Drop(nil)
			f.zone.Refresh()
		})
		return
	}
	f.selectManifestPath(uris[0].Path())
}

func (f *manifestField) selectManifestPath(path string) {
	if !manifest.HasAllowedExt(path, f.app.opts.ManifestExtensions) {
		logger.Warn("Unsupported manifest extension", "file", filepath.Base(path))
		a := f.app
		a.safeDo("ui.manifest.bad_ext", func() {
			f.state = f.state.LeaveHover()
			f.zone.Refresh()
		})
		a.flashRed()
		return
	}

	d, err := manifest.FromPath(path, f.app.config.maxManifestBytes())
	if err != nil {
		logger.Error("Manifest rejected", "file", filepath.Base(path), "error", err)
		a := f.app
		a.safeDo("ui.manifest.rejected", func() {
			f.state = f.state.LeaveHover()
			f.zone.Refresh()
			dialog.ShowError(errors.New(apperrors.PublicMessage(err)), a.window)
		})
		return
	}

	f.apply(d)
}

// apply records the descriptor, updates the form value and restarts the
// progress ramp. A second selection replaces the first and rearms.
func (f *manifestField) apply(d *manifest.Descriptor) {
	a := f.app

	a.safeDo("ui.manifest.apply", func() {
		f.state, _ = f.state.Drop([]*manifest.Descriptor{d})
		f.zone.Refresh()

		a.store.SetValue(schema.FieldManifestFile, d)
		a.store.Touch(schema.FieldManifestFile)
		a.revalidate()

		f.nameLabel.SetText(truncateLabel(d.Name, maxNameGraphemes))
		f.sizeLabel.SetText(d.SizeLabel())
		f.bar.SetValue(0)
		f.infoBox.Show()
	})

	logger.Info("Manifest selected", "file", d.Name, "size_kb", manifest.KB(d.Size))

	f.animator.Start(func(percent int) {
		a.safeDo("ui.manifest.progress", func() {
			f.state.Progress = percent
			f.bar.SetValue(float64(percent))
		})
	})
}

func (f *manifestField) stopAnimation() {
	if f.animator != nil {
		f.animator.Stop()
	}
}

func (f *manifestField) clear() {
	f.stopAnimation()
	f.app.safeDo("ui.manifest.clear", func() {
		f.state = picker.State{}
		f.zone.Refresh()
		f.infoBox.Hide()
		f.bar.SetValue(0)
		f.nameLabel.SetText("")
		f.sizeLabel.SetText("")
	})
}

// manifestDropZone is the tappable, hoverable target area.
type manifestDropZone struct {
	widget.BaseWidget
	field *manifestField
}

func newManifestDropZone(f *manifestField) *manifestDropZone {
	d := &manifestDropZone{field: f}
	d.ExtendBaseWidget(d)
	return d
}

func (d *manifestDropZone) Tapped(_ *fyne.PointEvent) {
	d.field.openPicker()
}

func (d *manifestDropZone) MouseIn(_ *desktop.MouseEvent) {
	d.setHover(true)
}

func (d *manifestDropZone) MouseMoved(_ *desktop.MouseEvent) {
	d.setHover(true)
}

func (d *manifestDropZone) MouseOut() {
	d.setHover(false)
}

func (d *manifestDropZone) setHover(on bool) {
	safeDo("ui.drop_zone.hover", func() {
		if on {
			d.field.state = d.field.state.EnterHover()
		} else {
			d.field.state = d.field.state.LeaveHover()
		}
		d.Refresh()
	})
}

func (d *manifestDropZone) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (d *manifestDropZone) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	border.StrokeWidth = 2
	border.CornerRadius = 6

	hint := canvas.NewText("Drop manifest here, or tap to browse", color.NRGBA{R: 130, G: 130, B: 130, A: 255})
	hint.Alignment = fyne.TextAlignCenter

	return &manifestDropZoneRenderer{
		border: border,
		hint:   hint,
		d:      d,
	}
}

type manifestDropZoneRenderer struct {
	border *canvas.Rectangle
	hint   *canvas.Text
	d      *manifestDropZone
}

func (r *manifestDropZoneRenderer) Layout(s fyne.Size) {
	r.border.Resize(s)
	textSize := r.hint.MinSize()
	r.hint.Resize(textSize)
	r.hint.Move(fyne.NewPos((s.Width-textSize.Width)/2, (s.Height-textSize.Height)/2))
}

func (r *manifestDropZoneRenderer) MinSize() fyne.Size { return fyne.NewSize(320, 90) }

func (r *manifestDropZoneRenderer) Refresh() {
	if r.d.field.state.Hovering {
		r.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		r.hint.Color = theme.Color(theme.ColorNamePrimary)
	} else {
		r.border.StrokeColor = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
		r.hint.Color = color.NRGBA{R: 130, G: 130, B: 130, A: 255}
	}
	canvas.Refresh(r.border)
	canvas.Refresh(r.hint)
}

func (r *manifestDropZoneRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.border, r.hint}
}

func (r *manifestDropZoneRenderer) Destroy() {}

func (a *formApp) handleDropped(uris []fyne.URI) {
	if a.state != StateForm {
		return
	}
	a.manifest.handleDropped(uris)
}

func (a *formApp) dispose() {
	if a.manifest != nil {
		a.manifest.stopAnimation()
	}
}

func main() {
	// Initialize logger for debug/error tracing
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID("com.nextform.app")

	w := myApp.NewWindow("nextform")
	w.SetMaster()
	w.Resize(fyne.NewSize(560, 680))
	w.CenterOnScreen()

	fa := newFormApp(w)
	w.SetCloseIntercept(func() {
		fa.dispose()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		fa.handleDropped(uris)
	})

	w.ShowAndRun()
}
