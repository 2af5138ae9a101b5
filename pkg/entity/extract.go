package entity

import (
	"regexp"
	"strings"
)

// GitOp captures a git subcommand and its trailing arguments.
type GitOp struct {
	Operation string `json:"operation"`
	Args      string `json:"args,omitempty"`
}

// Entities holds the structured fragments extracted from a request.
// Slices preserve match order and are not deduplicated.
type Entities struct {
	FilePaths []string `json:"file_paths,omitempty"`
	URLs      []string `json:"urls,omitempty"`
	Packages  []string `json:"packages,omitempty"`
	GitOps    []GitOp  `json:"git_ops,omitempty"`
}

// Subcommands recognized for git extraction.
var gitSubcommands = []string{
	"clone", "pull", "push", "commit", "status", "log", "diff",
	"branch", "checkout", "merge", "rebase", "stash", "tag",
}

var (
	reDottedPath = regexp.MustCompile(`[A-Za-z0-9_\-./]*[A-Za-z0-9_\-]+\.[A-Za-z0-9]+`)
	reRootedPath = regexp.MustCompile(`(?:^|\s)(/[A-Za-z0-9_\-./]+)`)
	reURL        = regexp.MustCompile(`https?://[^\s"'<>]+`)
	reInstall    = regexp.MustCompile(`(?i)\b(?:npm|pip)\s+install\s+([A-Za-z0-9@._/\-]+(?:\s+[A-Za-z0-9@._/\-]+)*)`)
	reGit        = regexp.MustCompile(`(?i)\bgit\s+(` + strings.Join(gitSubcommands, "|") + `)\b[ \t]*([^\n]*)`)
)

// Extract pulls file paths, URLs, package names and the first git subcommand
// out of free text. It never fails; unmatched categories stay empty.
// Command keywords match case-insensitively, path literals are taken verbatim.
func Extract(text string) Entities {
	var e Entities

	for _, m := range reDottedPath.FindAllString(text, -1) {
		e.FilePaths = append(e.FilePaths, m)
	}
	for _, m := range reRootedPath.FindAllStringSubmatch(text, -1) {
		e.FilePaths = append(e.FilePaths, m[1])
	}

	e.URLs = append(e.URLs, reURL.FindAllString(text, -1)...)

	for _, m := range reInstall.FindAllStringSubmatch(text, -1) {
		e.Packages = append(e.Packages, strings.Fields(m[1])...)
	}

	// Only the first git subcommand is kept even when several are mentioned.
	if m := reGit.FindStringSubmatch(text); m != nil {
		e.GitOps = append(e.GitOps, GitOp{
			Operation: strings.ToLower(m[1]),
			Args:      strings.TrimSpace(m[2]),
		})
	}

	return e
}
