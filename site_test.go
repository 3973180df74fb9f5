package starterblog

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	helloPost = `---
title: "Hello World"
date: "2024-03-01"
description: "The very first post."
---

Some **bold** words.
`
	olderPost = `---
title: "Older"
date: "2023-12-24"
---

An older post.
`
	draftPost = `---
title: "Secret"
date: "2024-04-01"
draft: true
---

Not yet.
`
)

// writeTestSite lays out a small site under a temp dir and returns a config
// pointing at it.
func writeTestSite(t *testing.T, prefix string) SiteConfig {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"content/blog/hello/index.md": helloPost,
		"content/blog/older.md":       olderPost,
		"content/blog/secret.md":      draftPost,
		"static/robots.txt":           "User-agent: *\n",
	}
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	avatar := filepath.Join(dir, "assets", "avatar.png")
	if err := os.MkdirAll(filepath.Dir(avatar), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(avatar)
	if err != nil {
		t.Fatal(err)
	}
	if err := WritePlaceholderAvatar(f, 2*AvatarSize); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := SiteConfig{
		PathPrefix: prefix,
		Avatar:     avatar,
		ContentDir: filepath.Join(dir, "content", "blog"),
		StaticDir:  filepath.Join(dir, "static"),
		OutputDir:  filepath.Join(dir, "public"),
	}
	cfg.SiteMetadata.Title = "My Blog"
	cfg.SiteMetadata.Author = "Kyle"
	cfg.SiteMetadata.Description = "Notes and things."
	cfg.SiteMetadata.SiteURL = "https://example.com"
	cfg.SiteMetadata.Social.Twitter = "kylemathews"
	cfg.setDefaults()
	return cfg
}

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
