package category_test

import (
	"testing"

	"tnivo/internal/category"
)

func TestForName(t *testing.T) {
	cases := []struct {
		name string
		want category.Category
	}{
		{"report.pdf", category.Documents},
		{"movie.MKV", category.Video},
		{"clip.ts", category.Video},
		{"photo.JPeG", category.Images},
		{"song.flac", category.Audio},
		{"bundle.tar", category.Archives},
		{"main.go", category.Code},
		{"mystery.xyz", category.Other},
		{"README", category.Other},
		{".bashrc", category.Other},
	}
	for _, tc := range cases {
		if got := category.ForName(tc.name); got != tc.want {
			t.Errorf("ForName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFolderNameIsTitleCased(t *testing.T) {
	if got := category.FolderName(category.Documents); got != "Documents" {
		t.Fatalf("FolderName(documents) = %q", got)
	}
	if got := category.FolderName(category.Other); got != "Other" {
		t.Fatalf("FolderName(other) = %q", got)
	}
}

func TestAllCategoriesHaveFolderNames(t *testing.T) {
	seen := map[string]bool{}
	for _, cat := range category.All() {
		folder := category.FolderName(cat)
		if folder == "" {
			t.Fatalf("category %q has empty folder name", cat)
		}
		if seen[folder] {
			t.Fatalf("duplicate folder name %q", folder)
		}
		seen[folder] = true
	}
}
