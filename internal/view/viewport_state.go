package view

import (
	"charm.land/bubbles/v2/viewport"
)

// ViewportState bundles a viewport model with lazy initialization.
// Bubbletea delivers the terminal size after the first render, so views
// keep Ready false until the first SetSize and fall back to a plain
// string render before that.
type ViewportState struct {
	Model viewport.Model
	Ready bool
}

// SetSize initializes the viewport on first call and resizes it afterwards.
func (v *ViewportState) SetSize(width, height int) {
	if !v.Ready {
		v.Model = viewport.New(viewport.WithWidth(width), viewport.WithHeight(height))
		v.Ready = true
		return
	}
	v.Model.SetWidth(width)
	v.Model.SetHeight(height)
}
