package editor

import (
	"bytes"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	euiimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"skyraid/events"
	"skyraid/levels"
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *euiimage.NineSlice {
	return euiimage.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(color.RGBA{40, 40, 40, 255}),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}

// paletteEntries is the placeable catalog shown in the left panel.
var paletteEntries = []struct {
	label string
	typ   levels.EntityType
}{
	{"Enemy Spawner", levels.TypeEnemySpawner},
	{"Player Start", levels.TypePlayerStart},
	{"Obstacle", levels.TypeObstacle},
	{"Powerup", levels.TypePowerupSpawner},
	{"Decoration", levels.TypeDecoration},
	{"Trigger", levels.TypeTrigger},
}

// BuildEditorUI assembles the design step's palette, toolbar and action
// buttons. Called once per session; the returned UI is reused across
// activations.
func BuildEditorUI(state *StateStore, surface *Surface, workflow *Workflow) *ebitenui.UI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	theme := newEditorTheme(&fontFace)
	ui.PrimaryTheme = theme

	toolbar := buildToolbar(theme, &fontFace, state)
	palette := buildPalette(theme, &fontFace, state, surface)
	actions := buildActionRow(theme, &fontFace, state, surface, workflow)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	toolbar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	palette.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	actions.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}
	root.AddChild(toolbar)
	root.AddChild(palette)
	root.AddChild(actions)

	ui.Container = root
	return ui
}

func buildToolbar(theme *widget.Theme, fontFace *text.Face, state *StateStore) *widget.Container {
	tools := []Tool{ToolSelect, ToolPlace, ToolLock, ToolDelete}
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	var toolButtons []*widget.Button
	for _, tool := range tools {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(64, 40),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}
	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range toolButtons {
				if args.Active == b {
					state.SetTool(tools[idx])
					return
				}
			}
		}),
	)
	group.SetActive(toolButtons[int(state.Tool())])

	// Keep the toolbar in sync when a hotkey changes the tool.
	state.Bus().Subscribe(events.ToolChange, func(data any) {
		t, ok := data.(Tool)
		if !ok {
			return
		}
		if idx := int(t); idx >= 0 && idx < len(toolButtons) {
			group.SetActive(toolButtons[idx])
		}
	})

	return toolbar
}

func buildPalette(theme *widget.Theme, fontFace *text.Face, state *StateStore, surface *Surface) *widget.Container {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(160, 0),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
	)

	for _, entry := range paletteEntries {
		typ := entry.typ
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(entry.label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(140, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				// A palette click never places at the cursor: the entity
				// spawns at the viewport center, selected and draggable.
				state.SetPlaceableType(typ)
				surface.PlaceFromPalette(typ)
			}),
		)
		panel.AddChild(btn)
	}
	return panel
}

func buildActionRow(theme *widget.Theme, fontFace *text.Face, state *StateStore, surface *Surface, workflow *Workflow) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	addButton := func(label string, onClick func()) {
		row.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(72, 32)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	addButton("Grid -", func() { state.SetGridSize(state.GridSize() - 8) })
	addButton("Grid +", func() { state.SetGridSize(state.GridSize() + 8) })
	addButton("Grid", func() { state.SetGridVisible(!state.GridVisible()) })
	addButton("Save", func() {
		if _, err := surface.Save(); err != nil {
			log.Printf("save failed: %v", err)
		}
	})
	addButton("Test", func() { workflow.ChangeStep(StepTest, state.CurrentLevelID()) })
	addButton("Publish", func() { workflow.ChangeStep(StepPublish, state.CurrentLevelID()) })
	addButton("Browse", func() { workflow.ChangeStep(StepBrowse, "") })

	return row
}
