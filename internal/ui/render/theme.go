package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	PaneTitleFg tcell.Color
	FocusFg     tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	InactiveSel tcell.Color
	OfferFg     tcell.Color
	SeekingFg   tcell.Color
	UserFg      tcell.Color
	DimFg       tcell.Color
	MatchFg     tcell.Color
	ErrorFg     tcell.Color
	WarningFg   tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		PaneTitleFg: tcell.ColorLightSlateGray,
		FocusFg:     tcell.Color33,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		InactiveSel: tcell.Color238, // selection in panes without focus
		OfferFg:     tcell.Color44,
		SeekingFg:   tcell.Color214,
		UserFg:      tcell.Color51,
		DimFg:       tcell.ColorLightSlateGray,
		MatchFg:     tcell.ColorYellow,
		ErrorFg:     tcell.ColorRed,
		WarningFg:   tcell.Color214,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
	}
}
