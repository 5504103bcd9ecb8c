package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/jmylchreest/readease/pkg/export"
)

var errNoRichTarget = errors.New("no rich clipboard target")

// systemText writes through atotto/clipboard.
type systemText struct{}

func (systemText) WriteText(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility installed")
	}
	return clipboard.WriteAll(text)
}

// commandWriter offers the HTML representation through wl-copy or xclip.
// Those tools hold a single target per invocation, so only payloads
// carrying HTML take the rich path; everything else is plain text.
type commandWriter struct{}

func (commandWriter) WriteRich(p export.Payload) error {
	html, ok := p[export.MIMEHTML]
	if !ok || runtime.GOOS != "linux" {
		return errNoRichTarget
	}
	cmd, err := richCommand(export.MIMEHTML)
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(html)
	return cmd.Run()
}

func richCommand(mime string) (*exec.Cmd, error) {
	if path, err := exec.LookPath("wl-copy"); err == nil {
		return exec.Command(path, "--type", mime), nil
	}
	if path, err := exec.LookPath("xclip"); err == nil {
		return exec.Command(path, "-in", "-selection", "clipboard", "-t", mime), nil
	}
	return nil, errNoRichTarget
}
