package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/text-extractor/internal/config"
)

// paletteTheme is a light theme recolored from four hex colors. Fonts,
// icons and sizes come from the default theme.
type paletteTheme struct {
	base fyne.Theme

	primary    color.Color
	background color.Color
	border     color.Color
	hover      color.Color
	pressed    color.Color
	focus      color.Color
	selection  color.Color
}

// NewTheme builds the window theme from the configured palette.
func NewTheme(cfg config.ThemeConfig) (fyne.Theme, error) {
	primary, err := colorful.Hex(cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("invalid primary color: %w", err)
	}
	background, err := colorful.Hex(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("invalid background color: %w", err)
	}
	border, err := colorful.Hex(cfg.Border)
	if err != nil {
		return nil, fmt.Errorf("invalid border color: %w", err)
	}
	accent, err := colorful.Hex(cfg.Accent)
	if err != nil {
		return nil, fmt.Errorf("invalid accent color: %w", err)
	}

	// Hover darkens the primary the way #6200ea goes to #3700b3.
	black := colorful.Color{}
	hover := primary.BlendLab(black, 0.3).Clamped()

	return &paletteTheme{
		base:       theme.DefaultTheme(),
		primary:    toNRGBA(primary, 0xff),
		background: toNRGBA(background, 0xff),
		border:     toNRGBA(border, 0xff),
		hover:      toNRGBA(hover, 0x66),
		pressed:    toNRGBA(accent, 0x80),
		focus:      toNRGBA(accent, 0x7f),
		selection:  toNRGBA(primary, 0x40),
	}, nil
}

func toNRGBA(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

// Color implements fyne.Theme. The variant is ignored: the palette is light.
func (t *paletteTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return t.primary
	case theme.ColorNameBackground:
		return t.background
	case theme.ColorNameSeparator, theme.ColorNameInputBorder:
		return t.border
	case theme.ColorNameHover:
		return t.hover
	case theme.ColorNamePressed:
		return t.pressed
	case theme.ColorNameFocus:
		return t.focus
	case theme.ColorNameSelection:
		return t.selection
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return color.White
	}
	return t.base.Color(name, theme.VariantLight)
}

// Font implements fyne.Theme.
func (t *paletteTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon implements fyne.Theme.
func (t *paletteTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size implements fyne.Theme.
func (t *paletteTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 8
	}
	return t.base.Size(name)
}
