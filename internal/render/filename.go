package render

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	reUnsafe      = regexp.MustCompile(`[\\/:*?"<>|&]`)
	reUnderscores = regexp.MustCompile(`_+`)
)

// SanitizeBaseName makes title safe to use in a file name and cuts it to
// maxLen characters.
func SanitizeBaseName(title string, maxLen int) string {
	if title == "" {
		title = "untitled_audio"
	}
	title = reUnsafe.ReplaceAllString(title, "_")
	title = strings.ReplaceAll(title, " ", "_")
	title = reUnderscores.ReplaceAllString(title, "_")
	title = strings.Trim(title, "_")
	if strings.HasPrefix(title, ".") {
		title = "_" + title[1:]
	}
	if title == "" {
		title = "untitled_audio"
	}
	if maxLen > 0 && utf8.RuneCountInString(title) > maxLen {
		title = string([]rune(title)[:maxLen])
	}
	return title
}

// SanitizeModelID strips the "models/" prefix and path separators.
func SanitizeModelID(modelID string) string {
	s := strings.ReplaceAll(modelID, "models/", "")
	return strings.ReplaceAll(s, "/", "_")
}

// BaseName is "<source>_<model>_<timestamp>", shared by every artifact of a job.
func BaseName(sourceName, modelID string, at time.Time) string {
	return SanitizeBaseName(sourceName, 30) + "_" + SanitizeModelID(modelID) + "_" + at.Format("20060102150405")
}
