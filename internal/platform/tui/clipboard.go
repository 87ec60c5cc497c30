package tui

import (
	"golang.design/x/clipboard"
)

// Clipboard receives the share text.
type Clipboard interface {
	Copy(text string) error
}

type systemClipboard struct{}

// NewSystemClipboard returns the local system clipboard. It fails on hosts
// without a display, in which case the share text is shown on screen instead.
func NewSystemClipboard() (Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return systemClipboard{}, nil
}

func (systemClipboard) Copy(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
