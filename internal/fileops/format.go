package fileops

import "fmt"

// FormatFileSize renders a byte count as a human-readable string with one
// decimal place. TB is the ceiling unit.
func FormatFileSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", value)
}

var languageByExtension = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".html": "html",
	".css":  "css",
	".json": "json",
	".md":   "markdown",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".sh":   "bash",
	".rs":   "rust",
	".go":   "go",
	".java": "java",
	".cpp":  "cpp",
	".c":    "c",
}

// LanguageForExtension maps a file extension to a syntax highlighting tag,
// falling back to "text".
func LanguageForExtension(ext string) string {
	if lang, ok := languageByExtension[ext]; ok {
		return lang
	}
	return "text"
}
