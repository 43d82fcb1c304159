package runner

// runtimes maps logical language names to the provider's runtime identifiers.
var runtimes = map[string]string{
	"javascript": "nodejs",
	"typescript": "typescript",
	"python":     "python",
	"java":       "java",
	"cpp":        "cpp",
	"c":          "c",
	"csharp":     "csharp",
	"go":         "go",
	"rust":       "rust",
	"ruby":       "ruby",
	"php":        "php",
	"swift":      "swift",
	"kotlin":     "kotlin",
}

// versions pins a runtime version per language.
var versions = map[string]string{
	"javascript": "18.17.0",
	"typescript": "5.0.4",
	"python":     "3.10.0",
	"java":       "17.0.2",
	"cpp":        "12.2.0",
	"c":          "12.2.0",
	"csharp":     "7.0.100",
	"go":         "1.20.5",
	"rust":       "1.70.0",
	"ruby":       "3.2.2",
	"php":        "8.2.7",
	"swift":      "5.8.1",
	"kotlin":     "1.8.20",
}

// extensions maps languages to source-file extensions.
var extensions = map[string]string{
	"javascript": ".js",
	"typescript": ".ts",
	"python":     ".py",
	"java":       ".java",
	"cpp":        ".cpp",
	"c":          ".c",
	"csharp":     ".cs",
	"go":         ".go",
	"rust":       ".rs",
	"ruby":       ".rb",
	"php":        ".php",
	"swift":      ".swift",
	"kotlin":     ".kt",
}

// normalize maps a logical language and caller-supplied version to the
// provider's runtime id, a pinned version, and a source filename. An
// unrecognized language passes through unchanged for the provider to reject,
// with the caller's version and a .txt filename.
func normalize(language, version string) (runtime, pinned, filename string) {
	runtime = language
	if rt, ok := runtimes[language]; ok {
		runtime = rt
	}
	pinned = version
	if v, ok := versions[language]; ok {
		pinned = v
	}
	ext := ".txt"
	if e, ok := extensions[language]; ok {
		ext = e
	}
	return runtime, pinned, "main" + ext
}
