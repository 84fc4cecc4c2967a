package level

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

const catYAML = `
name: cat
rows: 3
cols: 3
par: 1
goal: {row: 1, col: 2}
seeds:
  - {text: CA, row: 1, col: 0}
specials:
  - {row: 0, col: 0, type: blocked}
deck: [T, S]
allowedWords: [ca, t, cat, cats]
`

func TestLoad(t *testing.T) {
	is := is.New(t)
	lvl, err := Load(strings.NewReader(catYAML))
	is.NoErr(err)

	is.Equal(lvl.Name, "cat")
	is.Equal(lvl.Rows, 3)
	is.Equal(lvl.Goal, Coord{Row: 1, Col: 2})
	// Fragments normalize to lowercase on load.
	is.Equal(lvl.Seeds[0].Text, "ca")
	is.Equal(lvl.Deck, []string{"t", "s"})
}

func TestLoadRejectsBadYAML(t *testing.T) {
	is := is.New(t)
	_, err := Load(strings.NewReader("rows: [not a number"))
	is.True(err != nil)
}

func TestValidate(t *testing.T) {
	base := func() *Level {
		lvl, err := Load(strings.NewReader(catYAML))
		if err != nil {
			t.Fatal(err)
		}
		return lvl
	}

	cases := []struct {
		name   string
		mutate func(*Level)
		msg    string
	}{
		{"rows too big", func(l *Level) { l.Rows = 11 }, "between"},
		{"cols zero", func(l *Level) { l.Cols = 0 }, "between"},
		{"goal out of bounds", func(l *Level) { l.Goal = Coord{Row: 5, Col: 0} }, "goal"},
		{"empty deck", func(l *Level) { l.Deck = nil }, "empty deck"},
		{"junk fragment", func(l *Level) { l.Deck = []string{"t3"} }, "fragment"},
		{"no usable words", func(l *Level) { l.AllowedWords = []string{"123", ""} }, "allowed words"},
		{"seed out of bounds", func(l *Level) { l.Seeds[0].Row = 9 }, "out of bounds"},
		{"seed overlap", func(l *Level) {
			l.Seeds = append(l.Seeds, Seed{Text: "x", Row: 1, Col: 0})
		}, "share cell"},
		{"special on seed", func(l *Level) {
			l.Specials = append(l.Specials, Special{Row: 1, Col: 0, Type: TypeBlocked})
		}, "overlaps a seed"},
		{"special on goal", func(l *Level) {
			l.Specials = append(l.Specials, Special{Row: 1, Col: 2, Type: TypeBlocked})
		}, "overlaps the goal"},
		{"unknown special", func(l *Level) { l.Specials[0].Type = "wormhole" }, "unknown special"},
		{"portal without group", func(l *Level) {
			l.Specials = append(l.Specials, Special{Row: 2, Col: 2, Type: TypePortal})
		}, "no group"},
		{"portal group of one", func(l *Level) {
			l.Specials = append(l.Specials, Special{Row: 2, Col: 2, Type: TypePortal, Group: "A"})
		}, "only one member"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := base()
			c.mutate(lvl)
			err := lvl.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestLoadFileNamesFromPath(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "first.yaml")
	unnamed := strings.Replace(catYAML, "name: cat\n", "", 1)
	is.NoErr(os.WriteFile(path, []byte(unnamed), 0o644))

	lvl, err := LoadFile(path)
	is.NoErr(err)
	is.Equal(lvl.Name, "first")
}

func TestLoadDir(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml"} {
		content := strings.Replace(catYAML, "name: cat", "name: "+name[:1], 1)
		is.NoErr(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	is.NoErr(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	levels, err := LoadDir(dir)
	is.NoErr(err)
	is.Equal(len(levels), 2)
	// Sorted by name regardless of file order.
	is.Equal(levels[0].Name, "a")
	is.Equal(levels[1].Name, "b")
}

func TestLoadDirFailsOnBadFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("rows: 99"), 0o644))
	_, err := LoadDir(dir)
	is.True(err != nil)
}

func TestCached(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cat.yaml")
	is.NoErr(os.WriteFile(path, []byte(catYAML), 0o644))

	first, err := Cached(path)
	is.NoErr(err)
	second, err := Cached(path)
	is.NoErr(err)
	is.True(first == second) // same parsed object both times
}
