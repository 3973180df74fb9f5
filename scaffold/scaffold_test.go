package scaffold

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	created, err := Generate(dir, Data{
		ProjectName: "site",
		SiteName:    "Site",
		Author:      "Jane",
		Twitter:     "jane",
		Date:        "2024-01-02",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var rel []string
	for _, p := range created {
		r, err := filepath.Rel(dir, p)
		if err != nil {
			t.Fatal(err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)
	want := []string{
		".env.example",
		"config.yaml",
		"content/blog/hello-world/index.md",
		"static/robots.txt",
	}
	if strings.Join(rel, ",") != strings.Join(want, ",") {
		t.Fatalf("created %v, want %v", rel, want)
	}

	post, err := os.ReadFile(filepath.Join(dir, "content", "blog", "hello-world", "index.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(post), `date: "2024-01-02"`) {
		t.Errorf("post front matter missing date:\n%s", post)
	}
	if strings.Contains(string(post), "{{") {
		t.Errorf("unexpanded template action in post:\n%s", post)
	}
}

func TestGenerateRefusesExistingDir(t *testing.T) {
	if _, err := Generate(t.TempDir(), Data{}); err == nil {
		t.Fatal("expected error for existing directory")
	}
}

func TestToTitle(t *testing.T) {
	tests := map[string]string{
		"my-blog": "My Blog",
		"myblog":  "Myblog",
		"a--b":    "A  B",
	}
	for in, want := range tests {
		if got := ToTitle(in); got != want {
			t.Errorf("ToTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
