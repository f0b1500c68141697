package tui

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// TerminalImageProtocol represents the image protocol supported by the terminal
type TerminalImageProtocol int

const (
	ProtocolNone TerminalImageProtocol = iota
	ProtocolKitty
	ProtocolITerm2
)

// DetectImageProtocol detects which terminal image protocol is supported.
func DetectImageProtocol() TerminalImageProtocol {
	return detectImageProtocol(os.Getenv("TERM"), os.Getenv("TERM_PROGRAM"))
}

func detectImageProtocol(term, termProgram string) TerminalImageProtocol {
	switch {
	case strings.Contains(term, "kitty"):
		return ProtocolKitty
	case termProgram == "ghostty":
		// Ghostty speaks the Kitty protocol
		return ProtocolKitty
	case termProgram == "iTerm.app" || termProgram == "WezTerm":
		return ProtocolITerm2
	}
	return ProtocolNone
}

// RenderInlineImage renders a cached cover inline, at most cols cells wide.
// Returns "" when the protocol is unsupported or the file cannot be read.
func RenderInlineImage(imagePath string, cols int, protocol TerminalImageProtocol) string {
	if protocol == ProtocolNone || imagePath == "" {
		return ""
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return ""
	}
	return RenderInlineImageBytes(data, cols, protocol)
}

// RenderInlineImageBytes renders image data inline using the terminal's protocol.
func RenderInlineImageBytes(data []byte, cols int, protocol TerminalImageProtocol) string {
	if len(data) == 0 {
		return ""
	}
	if cols < 1 {
		cols = 20
	}
	switch protocol {
	case ProtocolKitty:
		return renderKittyImage(data, cols)
	case ProtocolITerm2:
		return renderITerm2Image(data, cols)
	}
	return ""
}

// renderKittyImage uses Kitty's graphics protocol: a=T transmit and display,
// f=100 PNG/JPEG payload, c=<cols> display width in cells. Payloads are sent
// in 4096-byte chunks with m=1 on every chunk but the last.
func renderKittyImage(data []byte, cols int) string {
	const chunk = 4096
	encoded := base64.StdEncoding.EncodeToString(data)

	var b strings.Builder
	for i := 0; i < len(encoded); i += chunk {
		end := i + chunk
		more := 1
		if end >= len(encoded) {
			end = len(encoded)
			more = 0
		}
		if i == 0 {
			fmt.Fprintf(&b, "\x1b_Ga=T,f=100,c=%d,m=%d;%s\x1b\\", cols, more, encoded[i:end])
		} else {
			fmt.Fprintf(&b, "\x1b_Gm=%d;%s\x1b\\", more, encoded[i:end])
		}
	}
	return b.String()
}

// renderITerm2Image uses iTerm2's inline images protocol.
func renderITerm2Image(data []byte, cols int) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("\x1b]1337;File=inline=1;width=%d;preserveAspectRatio=1:%s\x07", cols, encoded)
}
