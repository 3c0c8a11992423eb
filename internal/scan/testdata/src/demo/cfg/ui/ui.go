package ui

// ThemeKind selects the color theme.
type ThemeKind string

const (
	ThemeLight ThemeKind = "light"
	ThemeDark  ThemeKind = "dark"
)

//optionsgen:dispatcher whitelist="Enum"
type ThemeHandler interface {
	HandleTheme(name string, value any) error
}

// UIOptions is the user interface configuration.
//
//optionsgen:config
type UIOptions struct {
	Theme ThemeKind

	//optionsgen:display description="Disable all animation"
	ReducedMotion bool
}
