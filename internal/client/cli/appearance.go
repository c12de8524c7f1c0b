package cli

import "sync"

// terminalAppearance keeps the visual settings the REPL renders with: the
// prompt marks dark mode and the settings view shows the font family.
type terminalAppearance struct {
	mu   sync.Mutex
	dark bool
	font string
}

func (t *terminalAppearance) SetDarkMode(dark bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dark = dark
}

func (t *terminalAppearance) SetFontFamily(css string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.font = css
}

func (t *terminalAppearance) Dark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

func (t *terminalAppearance) FontFamily() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.font
}
