package main

import (
	"github.com/go-vgo/robotgo"
)

// ClipboardReader reads the text a start trigger types.
type ClipboardReader struct {
	read  func() (string, error)
	retry *RetryManager
}

// NewClipboardReader reads the system clipboard through robotgo. Clipboard
// owners on X11 and Windows can hold it briefly, so reads are retried.
func NewClipboardReader(retry *RetryManager) *ClipboardReader {
	return &ClipboardReader{read: robotgo.ReadAll, retry: retry}
}

// ReadClipboard returns the clipboard text. An empty clipboard is not an
// error here; the session rejects empty text.
func (c *ClipboardReader) ReadClipboard() (string, error) {
	var text string
	err := c.retry.Retry("read clipboard", func() error {
		var err error
		text, err = c.read()
		return err
	})
	return text, err
}
