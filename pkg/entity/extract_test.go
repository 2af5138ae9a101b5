package entity

import (
	"reflect"
	"testing"
)

func TestExtractFilePaths(t *testing.T) {
	e := Extract("read file src/agent.js and /etc/hosts")
	want := []string{"src/agent.js", "/etc/hosts"}
	if !reflect.DeepEqual(e.FilePaths, want) {
		t.Fatalf("file paths mismatch: got %v want %v", e.FilePaths, want)
	}
}

func TestExtractURLs(t *testing.T) {
	e := Extract("fetch https://api.example.com/data please")
	if len(e.URLs) != 1 || e.URLs[0] != "https://api.example.com/data" {
		t.Fatalf("unexpected urls: %v", e.URLs)
	}
}

func TestExtractPackages(t *testing.T) {
	e := Extract("npm install express lodash")
	want := []string{"express", "lodash"}
	if !reflect.DeepEqual(e.Packages, want) {
		t.Fatalf("packages mismatch: got %v want %v", e.Packages, want)
	}

	e = Extract("PIP install requests")
	if len(e.Packages) != 1 || e.Packages[0] != "requests" {
		t.Fatalf("pip install should match case-insensitively: %v", e.Packages)
	}
}

func TestExtractGitFirstMatchOnly(t *testing.T) {
	e := Extract("git commit -m done then git push origin main")
	if len(e.GitOps) != 1 {
		t.Fatalf("expected one git op, got %v", e.GitOps)
	}
	if e.GitOps[0].Operation != "commit" || e.GitOps[0].Args != "-m done then git push origin main" {
		t.Fatalf("unexpected git op: %+v", e.GitOps[0])
	}
}

func TestExtractGitCaseInsensitive(t *testing.T) {
	e := Extract("GIT STATUS")
	if len(e.GitOps) != 1 || e.GitOps[0].Operation != "status" {
		t.Fatalf("unexpected git ops: %v", e.GitOps)
	}
}

func TestExtractUnknownGitSubcommand(t *testing.T) {
	e := Extract("git blame src/main.go")
	if len(e.GitOps) != 0 {
		t.Fatalf("blame is not in the vocabulary: %v", e.GitOps)
	}
}

func TestExtractEmpty(t *testing.T) {
	e := Extract("say hello")
	if len(e.FilePaths) != 0 || len(e.URLs) != 0 || len(e.Packages) != 0 || len(e.GitOps) != 0 {
		t.Fatalf("expected empty entities, got %+v", e)
	}
}
