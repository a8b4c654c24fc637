package lookup

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"hello", "hallo", 1},
		{"flaw", "lawn", 2},
		{"café", "cafe", 1},
		{"дом", "дым", 1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := Distance(tt.b, tt.a); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestIndexFoldsKeys(t *testing.T) {
	ix := New()
	ix.Add("café", "french")
	ix.Add("cafe", "english")
	ix.Add("cafe", "spanish")
	ix.Add("  ", "english")

	if ix.Keys() != 1 {
		t.Errorf("Keys() = %d, want 1", ix.Keys())
	}
	if ix.Words() != 2 {
		t.Errorf("Words() = %d, want 2", ix.Words())
	}

	got := ix.Search("CAFE", 0)
	want := []Match{
		{Word: "cafe", Languages: []string{"english", "spanish"}, Distance: 0},
		{Word: "café", Languages: []string{"french"}, Distance: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(CAFE) = %+v, want %+v", got, want)
	}
}

func TestSearchOrdersByDistance(t *testing.T) {
	ix := New()
	ix.AddAll([]string{"book", "back", "books", "boot", "look", "water"}, "english")

	got := ix.Search("book", 1)
	var words []string
	for _, m := range got {
		words = append(words, m.Word)
	}
	want := []string{"book", "books", "boot", "look"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Search(book, 1) = %v, want %v", words, want)
	}
	if got[0].Distance != 0 || got[1].Distance != 1 {
		t.Errorf("unexpected distances: %+v", got)
	}
}

func TestSearchEmpty(t *testing.T) {
	ix := New()
	if got := ix.Search("anything", 2); got != nil {
		t.Errorf("Search on empty index = %v, want nil", got)
	}
	ix.Add("word", "english")
	if got := ix.Search("", 2); got != nil {
		t.Errorf("Search(\"\") = %v, want nil", got)
	}
	if got := ix.Search("word", -1); got != nil {
		t.Errorf("Search with negative distance = %v, want nil", got)
	}
}

func TestLanguageOfFile(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"english_freedict-eng-spa.txt", "english"},
		{"spanish.txt", "spanish"},
		{"manifest.json", ""},
		{"/tmp/out/czech.txt", "czech"},
	}
	for _, tt := range tests {
		if got := LanguageOfFile(tt.name); got != tt.want {
			t.Errorf("LanguageOfFile(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"english_freedict-eng-spa.txt": "horse\nhouse",
		"spanish.txt":                  "casa\ncaso\n",
		"manifest.json":                `{"total": 4}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "consolidated"), 0755); err != nil {
		t.Fatal(err)
	}

	ix, err := LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if ix.Words() != 4 {
		t.Errorf("Words() = %d, want 4", ix.Words())
	}

	got := ix.Search("hose", 1)
	if len(got) != 2 || got[0].Word != "horse" || got[1].Word != "house" {
		t.Errorf("Search(hose, 1) = %+v", got)
	}
	if !reflect.DeepEqual(got[0].Languages, []string{"english"}) {
		t.Errorf("Languages = %v, want [english]", got[0].Languages)
	}

	ix, err = LoadDir(dir, []string{"Spanish"})
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if ix.Words() != 2 {
		t.Errorf("filtered Words() = %d, want 2", ix.Words())
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("expected error for missing dir")
	}
}
