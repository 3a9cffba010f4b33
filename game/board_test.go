package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStandardBoard(t *testing.T) {
	b := StandardBoard()
	if err := b.Validate(); err != nil {
		t.Fatalf("standard board is invalid: %v", err)
	}
	if len(b.Cities()) != 48 {
		t.Errorf("Expected 48 cities, got %d", len(b.Cities()))
	}
	perColor := make(map[Disease]int)
	for _, c := range b.Cities() {
		perColor[b.Color(c)]++
	}
	for _, d := range Diseases() {
		if perColor[d] != 12 {
			t.Errorf("Expected 12 %s cities, got %d", d, perColor[d])
		}
	}
	if !b.Adjacent("atlanta", "chicago") || !b.Adjacent("chicago", "atlanta") {
		t.Error("atlanta and chicago should be connected both ways")
	}
}

func TestBoard_ValidateAsymmetric(t *testing.T) {
	b := pathBoard()
	b.Adjacency["b1"] = append(b.Adjacency["b1"], "y5")
	if err := b.Validate(); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("Expected ErrInvalidBoard, got %v", err)
	}
}

func TestLoadBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := `start: a
colors: {a: blue, b: red, c: yellow}
adjacency:
  a: [b]
  b: [a, c]
  c: [b]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := LoadBoard(path)
	if err != nil {
		t.Fatalf("LoadBoard failed: %v", err)
	}
	if b.Start != "a" || b.Color("b") != Red || !b.Adjacent("b", "c") {
		t.Errorf("Unexpected board %+v", b)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("start: a\ncolors: {a: purple}\nadjacency: {a: []}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBoard(bad); err == nil {
		t.Error("Expected an unknown color to fail")
	}
}
