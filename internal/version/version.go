package version

import (
	"fmt"
	"log"
	"strings"

	"github.com/thushan/holocron/theme"
)

var (
	Name        = "holocron"
	ShortName   = "holocron"
	Authors     = "Thushan Fernando"
	Description = "A terminal catalog for the Star Wars API"
	Version     = "v0.0.1"
	Commit      = "none"
	Date        = "nowish"
	User        = "local"
)

const (
	GithubHomeText  = "github.com/thushan/holocron"
	GithubHomeUri   = "https://github.com/thushan/holocron"
	GithubLatestUri = "https://github.com/thushan/holocron/releases/latest"
)

// UserAgent is sent with every outbound request
func UserAgent() string {
	return fmt.Sprintf("%s/%s", ShortName, Version)
}

func PrintVersionInfo(extendedInfo bool, vlog *log.Logger) {
	githubUri := theme.Hyperlink(GithubHomeUri, GithubHomeText)
	latestUri := theme.Hyperlink(GithubLatestUri, Version)
	padLatest := fmt.Sprintf("%*s", max(1, 25-len(Version)), "")

	var b strings.Builder

	b.WriteString(theme.ColourSplash(`
╔───────────────────────────────────────────────────────╗
│  ██╗  ██╗ ██████╗ ██╗      ██████╗  ██████╗██████╗    │
│  ██║  ██║██╔═══██╗██║     ██╔═══██╗██╔════╝██╔══██╗   │
│  ███████║██║   ██║██║     ██║   ██║██║     ██████╔╝   │
│  ██╔══██║██║   ██║██║     ██║   ██║██║     ██╔══██╗   │
│  ██║  ██║╚██████╔╝███████╗╚██████╔╝╚██████╗██║  ██║   │
│  ╚═╝  ╚═╝ ╚═════╝ ╚══════╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝ ON│` + "\n"))

	b.WriteString(theme.ColourSplash("│ "))
	b.WriteString(theme.StyleUrl(githubUri))
	b.WriteString(padLatest)
	b.WriteString(theme.ColourVersion(latestUri))
	b.WriteString(theme.ColourSplash("  │\n"))
	b.WriteString(theme.ColourSplash("╚───────────────────────────────────────────────────────╝"))

	if extendedInfo {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(" Commit: %s\n", Commit))
		b.WriteString(fmt.Sprintf("  Built: %s\n", Date))
		b.WriteString(fmt.Sprintf("  Using: %s\n", User))
	}

	vlog.Println(b.String())
}
