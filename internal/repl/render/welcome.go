package render

import (
	"fmt"
	"io"
	"strings"
)

// BannerTitle is the first line printed at startup
const BannerTitle = "JEL Console"

// WelcomeInfo contains information to display in the welcome banner.
type WelcomeInfo struct {
	// Version is the console version string
	Version string
	// SessionID identifies this session in the log and history
	SessionID string
}

var hints = []string{
	"type help for a list of commands",
	"assign with x = 1, then inspect with show",
	"press Ctrl+R to search previous lines",
	"press Ctrl+D on an empty line to exit",
}

// RenderWelcome writes the banner. The title is always printed on its own
// line; the secondary lines are dimmed and dropped on very narrow terminals.
func RenderWelcome(w io.Writer, styles Styles, info WelcomeInfo, termWidth int) {
	var out strings.Builder

	out.WriteString(styles.Title.Render(BannerTitle) + "\n")

	if termWidth >= 40 {
		switch info.Version {
		case "":
		case "dev":
			out.WriteString(styles.Dim.Render("version: ") + styles.Hint.Render("development") + "\n")
		default:
			out.WriteString(styles.Dim.Render("version: ") + styles.Value.Render(info.Version) + "\n")
		}
		out.WriteString(styles.Hint.Render("tip: "+hintFor(info.SessionID)) + "\n")
	}

	fmt.Fprint(w, out.String())
}

// hintFor picks a hint deterministically from the session id so that
// consecutive sessions tend to show different tips.
func hintFor(sessionID string) string {
	sum := 0
	for _, r := range sessionID {
		sum += int(r)
	}
	return hints[sum%len(hints)]
}
