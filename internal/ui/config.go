package ui

// Config contains window/input related settings.
type Config struct {
	Title     string // window title
	Scale     int    // integer upscaling factor
	StateDir  string // directory for save-state slots
	ShowHUD   bool   // draw selection and commit info over the preview
	StartMenu bool   // open the menu on launch
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "oamview"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.StateDir == "" {
		c.StateDir = "."
	}
}
