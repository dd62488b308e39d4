package main

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/vasquezjesus2710/next-form-project/internal/logger"
)

func (a *formApp) showSettingsWindow() {
	if a.currentSettingsWin != nil {
		a.currentSettingsWin.RequestFocus()
		return
	}

	w := fyne.CurrentApp().NewWindow("Settings")
	a.currentSettingsWin = w
	w.SetOnClosed(func() {
		a.currentSettingsWin = nil
	})

	// --- 1. Defaults Tab ---
	pickerDirEntry := widget.NewEntry()
	pickerDirEntry.SetText(a.config.PickerDir)
	pickerDirEntry.SetPlaceHolder("Start browsing from...")
	pickerDirEntry.OnChanged = func(s string) {
		a.config.PickerDir = s
		a.config.save()
	}

	browseBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		fd := dialog.NewFolderOpen(func(list fyne.ListableURI, err error) {
			if err != nil || list == nil {
				return
			}
			pickerDirEntry.SetText(list.Path())
		}, w)
		fd.Resize(fyne.NewSize(700, 500))
		fd.Show()
	})

	maxSizeEntry := widget.NewEntry()
	maxSizeEntry.SetText(strconv.Itoa(a.config.MaxManifestMB))
	maxSizeEntry.OnChanged = func(s string) {
		if v, err := strconv.Atoi(s); err == nil {
			clamped, changed := clampMaxManifestMB(v)
			if changed {
				logger.Warn("Max manifest size clamped", "requested", v, "effective", clamped)
				if strconv.Itoa(clamped) != s {
					maxSizeEntry.SetText(strconv.Itoa(clamped))
				}
			}
			a.config.MaxManifestMB = clamped
			a.config.save()
		}
	}

	tickEntry := widget.NewEntry()
	tickEntry.SetText(strconv.Itoa(a.config.TickMillis))
	tickEntry.OnChanged = func(s string) {
		if v, err := strconv.Atoi(s); err == nil {
			clamped, changed := clampTickMillis(v)
			if changed {
				logger.Warn("Progress tick interval clamped", "requested", v, "effective", clamped)
				if strconv.Itoa(clamped) != s {
					tickEntry.SetText(strconv.Itoa(clamped))
				}
			}
			a.config.TickMillis = clamped
			a.config.save()
		}
	}

	resetBtn := widget.NewButtonWithIcon("Reset to Defaults", theme.HistoryIcon(), func() {
		a.config.PickerDir = ""
		a.config.MaxManifestMB = defaultMaxManifestMB
		a.config.TickMillis = defaultTickMillis
		a.config.save()

		pickerDirEntry.SetText("")
		maxSizeEntry.SetText(strconv.Itoa(defaultMaxManifestMB))
		tickEntry.SetText(strconv.Itoa(defaultTickMillis))

		dialog.ShowInformation("Reset", "Settings have been reset to defaults.", w)
	})

	defaultsTab := container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("Defaults", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Picker Folder", container.NewBorder(nil, nil, nil, browseBtn, pickerDirEntry)),
			widget.NewFormItem("Max Manifest (MB, 1-1024)", maxSizeEntry),
			widget.NewFormItem("Progress Tick (ms, 20-1000)", tickEntry),
		),
		widget.NewSeparator(),
		container.NewCenter(resetBtn),
	))

	// --- 2. About Tab ---
	aboutTab := buildAboutTab()

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Defaults", theme.SettingsIcon(), defaultsTab),
		container.NewTabItemWithIcon("About", theme.InfoIcon(), aboutTab),
	)

	minSize := tabs.MinSize()
	targetSize := fyne.NewSize(minSize.Width+80, minSize.Height+10)

	w.SetContent(tabs)
	w.Resize(targetSize)
	w.CenterOnScreen()
	w.Show()
}
