package classify_test

import (
	"path/filepath"
	"testing"

	"brronson/internal/classify"
	"brronson/internal/testsupport"
)

func TestCompilePatternsRejectsBadRegex(t *testing.T) {
	if _, err := classify.CompilePatterns([]string{"valid", "(["}); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestMatchUnwantedFirstMatchWins(t *testing.T) {
	patterns, err := classify.CompilePatterns([]string{`\.txt$`, `sample`})
	if err != nil {
		t.Fatalf("CompilePatterns: %v", err)
	}

	pattern, ok := classify.MatchUnwanted("sample.txt", patterns)
	if !ok {
		t.Fatal("expected a match")
	}
	if pattern.Source != `\.txt$` {
		t.Fatalf("expected first pattern in caller order, got %q", pattern.Source)
	}

	if _, ok := classify.MatchUnwanted("movie.mkv", patterns); ok {
		t.Fatal("expected no match")
	}
}

func TestMatchUnwantedCaseInsensitive(t *testing.T) {
	patterns, err := classify.CompilePatterns([]string{`^rarbg`})
	if err != nil {
		t.Fatalf("CompilePatterns: %v", err)
	}
	if _, ok := classify.MatchUnwanted("RARBG.txt", patterns); !ok {
		t.Fatal("expected case-insensitive match")
	}
}

func TestExtensionSetNormalizes(t *testing.T) {
	set := classify.NewExtensionSet([]string{"SRT", ".Sub"})
	cases := []struct {
		path string
		want bool
	}{
		{"a/b/movie.srt", true},
		{"a/b/movie.SRT", true},
		{"a/b/movie.sub", true},
		{"a/b/movie.mkv", false},
		{"noextension", false},
	}
	for _, tc := range cases {
		if got := set.Contains(tc.path); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestHasRootSubtitleDirectChildrenOnly(t *testing.T) {
	dir := t.TempDir()
	exts := classify.NewExtensionSet([]string{".srt"})

	testsupport.WriteFile(t, filepath.Join(dir, "nested", "sub.srt"), "x")
	if classify.HasRootSubtitle(dir, exts) {
		t.Fatal("nested subtitle should not count as root subtitle")
	}

	testsupport.WriteFile(t, filepath.Join(dir, "movie.srt"), "x")
	if !classify.HasRootSubtitle(dir, exts) {
		t.Fatal("expected direct child subtitle to match")
	}
}

func TestFolderHasMovie(t *testing.T) {
	dir := t.TempDir()
	exts := classify.NewExtensionSet([]string{".mkv", ".mp4"})

	testsupport.WriteFile(t, filepath.Join(dir, "info.nfo"), "x")
	if classify.FolderHasMovie(dir, exts) {
		t.Fatal("no movie file yet")
	}

	testsupport.WriteFile(t, filepath.Join(dir, "deep", "nested", "film.mkv"), "x")
	if !classify.FolderHasMovie(dir, exts) {
		t.Fatal("expected nested movie file to be found")
	}
}

func TestFolderHasAnyFileAndHasDirectFile(t *testing.T) {
	dir := t.TempDir()
	testsupport.MkdirAll(t, filepath.Join(dir, "empty"))
	if classify.HasDirectFile(dir) {
		t.Fatal("only a subdirectory present")
	}
	testsupport.WriteFile(t, filepath.Join(dir, "a.txt"), "x")
	if !classify.HasDirectFile(dir) {
		t.Fatal("expected direct file")
	}
	if !classify.FolderHasAnyFile(dir) {
		t.Fatal("expected a file somewhere beneath")
	}
}
