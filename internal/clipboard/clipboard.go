// Package clipboard writes export payloads to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/readease/internal/logger"
	"github.com/jmylchreest/readease/pkg/export"
)

// ErrClipboardUnavailable is returned when neither the rich nor the plain
// text write succeeded.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// TextWriter writes a plain string to the clipboard.
type TextWriter interface {
	WriteText(text string) error
}

// RichWriter writes several MIME representations at once.
type RichWriter interface {
	WriteRich(p export.Payload) error
}

// Clipboard writes payloads, degrading to plain text when the rich write
// fails.
type Clipboard struct {
	rich RichWriter
	text TextWriter
}

// New creates a Clipboard. Either writer may be nil.
func New(rich RichWriter, text TextWriter) *Clipboard {
	return &Clipboard{rich: rich, text: text}
}

// System returns a Clipboard backed by the platform clipboard utilities.
func System() *Clipboard {
	return New(commandWriter{}, systemText{})
}

// Copy writes p, falling back to fallback as plain text.
func (c *Clipboard) Copy(p export.Payload, fallback string) error {
	var errs []error

	if c.rich != nil {
		err := c.rich.WriteRich(p)
		if err == nil {
			logger.Debug("clipboard rich write", "types", p.Types())
			return nil
		}
		logger.Debug("clipboard rich write failed, falling back to text", "error", err)
		errs = append(errs, fmt.Errorf("rich write: %w", err))
	}

	if c.text != nil {
		err := c.text.WriteText(fallback)
		if err == nil {
			logger.Debug("clipboard text write", "size", len(fallback))
			return nil
		}
		errs = append(errs, fmt.Errorf("text write: %w", err))
	}

	if len(errs) == 0 {
		return ErrClipboardUnavailable
	}
	return fmt.Errorf("%w: %w", ErrClipboardUnavailable, errors.Join(errs...))
}

// CopyResult writes the payload for format from r.
func (c *Clipboard) CopyResult(r *export.Result, format export.Format) error {
	p, err := r.Payload(format)
	if err != nil {
		return err
	}
	fallback, err := r.Artifact(format)
	if err != nil {
		return err
	}
	return c.Copy(p, fallback)
}
