package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	clrDim     = color.New(color.FgHiBlack)
	clrSubtle  = color.New(color.FgWhite)
	clrPrimary = color.New(color.FgMagenta, color.Bold)
	clrAccent  = color.New(color.FgCyan, color.Bold)

	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
	clrWarning = color.New(color.FgYellow)
	clrInfo    = color.New(color.FgBlue)

	badgePrimary = color.New(color.BgMagenta, color.FgWhite, color.Bold)
)

const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

// Version is printed in the banner.
const Version = "v0.4.1"

var (
	outMu sync.Mutex
	out   io.Writer = color.Output
	debug           = false
)

// SetOutput redirects all log output. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	out = w
}

// SetLevel enables "debug" lines when level is debug.
func SetLevel(level string) {
	outMu.Lock()
	defer outMu.Unlock()
	debug = strings.EqualFold(strings.TrimSpace(level), "debug")
}

func printf(format string, a ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, format, a...)
}

func timestamp() string {
	return clrDim.Sprint(time.Now().Format("15:04:05"))
}

// PrintBanner displays the service header
func PrintBanner() {
	badge := badgePrimary.Sprint(" ◆ PALETTE BRIDGE ")
	version := clrDim.Sprint(Version)

	printf("\n%s\n", clrDim.Sprint(boxTopLeft+strings.Repeat(boxHorizontal, 60)+boxTopRight))
	printf("%s  %s %s%s\n",
		clrDim.Sprint(boxVertical),
		badge,
		version,
		clrDim.Sprint(strings.Repeat(" ", 60-2-VisibleWidth(badge)-1-len(Version))+boxVertical))
	subtitle := "Theme colors for the page builder"
	printf("%s  %s%s\n",
		clrDim.Sprint(boxVertical),
		clrSubtle.Sprint(subtitle),
		clrDim.Sprint(strings.Repeat(" ", 60-2-len(subtitle))+boxVertical))
	printf("%s\n\n", clrDim.Sprint(boxBottomLeft+strings.Repeat(boxHorizontal, 60)+boxBottomRight))
}

// LogStatus displays a status message with appropriate styling.
// Categories: success, error, warn, info, debug.
func LogStatus(category, message string) {
	var icon, styledMsg string

	switch category {
	case "success":
		icon = clrSuccess.Sprint("✔")
		styledMsg = clrSuccess.Sprint(message)
	case "error":
		icon = clrError.Sprint("✖")
		styledMsg = clrError.Sprint(message)
	case "warn", "warning":
		icon = clrWarning.Sprint("⚠")
		styledMsg = clrWarning.Sprint(message)
	case "info":
		icon = clrInfo.Sprint("ℹ")
		styledMsg = clrSubtle.Sprint(message)
	case "debug":
		outMu.Lock()
		enabled := debug
		outMu.Unlock()
		if !enabled {
			return
		}
		icon = clrDim.Sprint("·")
		styledMsg = clrDim.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styledMsg = clrSubtle.Sprint(message)
	}

	printf("%s  %s  %s\n", timestamp(), icon, styledMsg)
}

// LogRequest displays one served request
func LogRequest(requestID, method, path string, status int, size int64, took time.Duration) {
	statusClr := clrSuccess
	switch {
	case status >= 500:
		statusClr = clrError
	case status >= 400:
		statusClr = clrWarning
	case status == 204:
		statusClr = clrDim
	}

	printf("%s  %s  %s %s  %s  %s  %s  %s\n",
		timestamp(),
		clrSuccess.Sprint("→"),
		clrAccent.Sprintf("%-6s", method),
		clrSubtle.Sprintf("%-16s", path),
		statusClr.Sprintf("%d", status),
		clrDim.Sprintf("%-8s", humanize.Bytes(uint64(size))),
		clrDim.Sprintf("%-8s", took.Round(time.Microsecond)),
		clrDim.Sprint(shortID(requestID)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// LogGroup starts a grouped block of messages
func LogGroup(title string) {
	pad := 50 - len(title)
	if pad < 0 {
		pad = 0
	}
	printf("\n%s%s %s %s%s\n",
		clrDim.Sprint(boxTopLeft),
		clrDim.Sprint(strings.Repeat(boxHorizontal, 2)),
		clrPrimary.Sprint(title),
		clrDim.Sprint(strings.Repeat(boxHorizontal, pad)),
		clrDim.Sprint(boxTopRight))
}

// LogGroupItem logs an item within a group
func LogGroupItem(label, value string) {
	printf("%s  %s %s\n",
		clrDim.Sprint(boxVertical),
		clrDim.Sprint(label+":"),
		clrAccent.Sprint(value))
}

// LogGroupEnd closes a grouped block
func LogGroupEnd() {
	printf("%s\n\n", clrDim.Sprint(boxBottomLeft+strings.Repeat(boxHorizontal, 56)+boxBottomRight))
}

// LogGracefulShutdown announces the start of shutdown
func LogGracefulShutdown() {
	LogStatus("warn", "Shutting down gracefully...")
}
