package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	myTheme "github.com/dweymouth/vrmusicremote/ui/theme"
)

// ControlButton is a large flat icon button on a rounded chip,
// sized for pointing at from a VR controller. It never takes focus.
type ControlButton struct {
	ttwidget.ToolTipWidget

	OnTapped func()

	icon    fyne.Resource
	hovered bool
	pressed bool

	chip *canvas.Rectangle
	img  *canvas.Image
}

var (
	_ fyne.Tappable     = (*ControlButton)(nil)
	_ desktop.Hoverable = (*ControlButton)(nil)
	_ desktop.Mouseable = (*ControlButton)(nil)
)

func NewControlButton(icon fyne.Resource, toolTip string, onTapped func()) *ControlButton {
	c := &ControlButton{icon: icon, OnTapped: onTapped}
	c.ExtendBaseWidget(c)
	c.SetToolTip(toolTip)
	return c
}

func (c *ControlButton) Tapped(*fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped()
	}
}

func (c *ControlButton) MouseDown(*desktop.MouseEvent) {
	c.pressed = true
	c.Refresh()
}

func (c *ControlButton) MouseUp(*desktop.MouseEvent) {
	c.pressed = false
	c.Refresh()
}

func (c *ControlButton) MouseIn(e *desktop.MouseEvent) {
	c.ToolTipWidget.MouseIn(e)
	if !c.hovered {
		defer c.Refresh()
	}
	c.hovered = true
}

func (c *ControlButton) MouseOut() {
	c.ToolTipWidget.MouseOut()
	if c.hovered || c.pressed {
		defer c.Refresh()
	}
	c.hovered = false
	c.pressed = false
}

func (c *ControlButton) MouseMoved(e *desktop.MouseEvent) {
	c.ToolTipWidget.MouseMoved(e)
}

func (c *ControlButton) MinSize() fyne.Size {
	s := theme.Size(myTheme.SizeNameControlIcon)
	pad := theme.Padding() * 2
	return fyne.NewSize(s+pad*2, s+pad)
}

func (c *ControlButton) chipColor() fyne.ThemeColorName {
	if c.pressed || c.hovered {
		return theme.ColorNamePressed
	}
	return theme.ColorNameButton
}

func (c *ControlButton) Refresh() {
	if c.chip == nil {
		return
	}
	c.chip.FillColor = theme.Color(c.chipColor())
	c.chip.Refresh()
	c.img.SetMinSize(fyne.NewSquareSize(theme.Size(myTheme.SizeNameControlIcon)))
	c.img.Refresh()
}

func (c *ControlButton) CreateRenderer() fyne.WidgetRenderer {
	if c.chip == nil {
		c.chip = canvas.NewRectangle(theme.Color(c.chipColor()))
		c.chip.CornerRadius = theme.InputRadiusSize()
		c.img = canvas.NewImageFromResource(theme.NewThemedResource(c.icon))
		c.img.FillMode = canvas.ImageFillContain
		c.img.SetMinSize(fyne.NewSquareSize(theme.Size(myTheme.SizeNameControlIcon)))
	}
	return widget.NewSimpleRenderer(container.NewStack(c.chip, container.NewCenter(c.img)))
}
