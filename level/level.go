// Package level defines the level-data contract the game core consumes,
// plus the YAML loader and the load-time validation the core trusts to
// have already happened: bounds checks, special/seed/goal overlap, and a
// non-empty allowlist.
package level

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mariogerardi/wordgrid/lexicon"
)

// Grid dimensions must each be within [MinDim, MaxDim].
const (
	MinDim = 1
	MaxDim = 10
)

const (
	TypeBlocked = "blocked"
	TypePortal  = "portal"
)

type Coord struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// A Seed is an immutable pre-placed fragment anchoring connectivity.
type Seed struct {
	Text string `yaml:"text"`
	Row  int    `yaml:"row"`
	Col  int    `yaml:"col"`
}

// A Special marks a cell as blocked or as a member of a portal group.
type Special struct {
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Type  string `yaml:"type"`
	Group string `yaml:"group,omitempty"`
}

// A Level is one puzzle's full definition. The game core receives it
// already normalized and validated; it never re-checks these constraints.
type Level struct {
	Name         string    `yaml:"name"`
	Rows         int       `yaml:"rows"`
	Cols         int       `yaml:"cols"`
	Par          int       `yaml:"par"`
	Goal         Coord     `yaml:"goal"`
	Seeds        []Seed    `yaml:"seeds,omitempty"`
	Specials     []Special `yaml:"specials,omitempty"`
	Deck         []string  `yaml:"deck"`
	StartingHand []string  `yaml:"startingHand,omitempty"`
	Shuffle      bool      `yaml:"shuffle,omitempty"`
	AllowedWords []string  `yaml:"allowedWords"`
}

// Load parses a level from YAML, normalizes its fragments, and validates
// it.
func Load(r io.Reader) (*Level, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lvl := &Level{}
	if err := yaml.Unmarshal(raw, lvl); err != nil {
		return nil, fmt.Errorf("bad level file: %w", err)
	}
	lvl.normalize()
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// LoadFile parses and validates the level at the given path.
func LoadFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lvl, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return lvl, nil
}

// LoadDir loads every .yml/.yaml file in a directory concurrently and
// returns the levels sorted by name. One bad file fails the whole load.
func LoadDir(dir string) ([]*Level, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yml" || ext == ".yaml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	levels := make([]*Level, len(paths))
	g := new(errgroup.Group)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			lvl, err := LoadFile(p)
			if err != nil {
				return err
			}
			levels[i] = lvl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Name < levels[j].Name })
	return levels, nil
}

// normalize lowercases and trims every fragment and word so the core can
// compare text directly.
func (l *Level) normalize() {
	lower := func(ss []string) {
		for i := range ss {
			ss[i] = strings.ToLower(strings.TrimSpace(ss[i]))
		}
	}
	lower(l.Deck)
	lower(l.StartingHand)
	lower(l.AllowedWords)
	for i := range l.Seeds {
		l.Seeds[i].Text = strings.ToLower(strings.TrimSpace(l.Seeds[i].Text))
	}
	for i := range l.Specials {
		l.Specials[i].Type = strings.ToLower(strings.TrimSpace(l.Specials[i].Type))
		l.Specials[i].Group = strings.ToUpper(strings.TrimSpace(l.Specials[i].Group))
	}
}

// Validate checks the constraints the game core assumes. It must be called
// (directly or via Load) before handing the level to game.NewSession.
func (l *Level) Validate() error {
	if l.Rows < MinDim || l.Rows > MaxDim || l.Cols < MinDim || l.Cols > MaxDim {
		return fmt.Errorf("grid must be between %dx%d and %dx%d, got %dx%d",
			MinDim, MinDim, MaxDim, MaxDim, l.Rows, l.Cols)
	}
	inBounds := func(r, c int) bool {
		return r >= 0 && r < l.Rows && c >= 0 && c < l.Cols
	}
	if !inBounds(l.Goal.Row, l.Goal.Col) {
		return fmt.Errorf("goal (%d,%d) is out of bounds", l.Goal.Row, l.Goal.Col)
	}
	if len(l.Deck) == 0 {
		return fmt.Errorf("level has an empty deck")
	}
	for _, f := range l.Deck {
		if lexicon.Normalize(f) == "" {
			return fmt.Errorf("deck fragment %q is not one or more letters", f)
		}
	}
	if lexicon.NewAllowlist(l.AllowedWords).Len() == 0 {
		return fmt.Errorf("level has no usable allowed words")
	}

	seedCells := make(map[Coord]bool)
	for _, s := range l.Seeds {
		if lexicon.Normalize(s.Text) == "" {
			return fmt.Errorf("seed fragment %q is not one or more letters", s.Text)
		}
		if !inBounds(s.Row, s.Col) {
			return fmt.Errorf("seed %q at (%d,%d) is out of bounds", s.Text, s.Row, s.Col)
		}
		at := Coord{s.Row, s.Col}
		if seedCells[at] {
			return fmt.Errorf("two seeds share cell (%d,%d)", s.Row, s.Col)
		}
		seedCells[at] = true
	}

	specialCells := make(map[Coord]bool)
	groupSizes := make(map[string]int)
	for _, sp := range l.Specials {
		if !inBounds(sp.Row, sp.Col) {
			return fmt.Errorf("special at (%d,%d) is out of bounds", sp.Row, sp.Col)
		}
		at := Coord{sp.Row, sp.Col}
		if specialCells[at] {
			return fmt.Errorf("two specials share cell (%d,%d)", sp.Row, sp.Col)
		}
		specialCells[at] = true
		if seedCells[at] {
			return fmt.Errorf("special at (%d,%d) overlaps a seed", sp.Row, sp.Col)
		}
		if at == l.Goal {
			return fmt.Errorf("special at (%d,%d) overlaps the goal", sp.Row, sp.Col)
		}
		switch sp.Type {
		case TypeBlocked:
		case TypePortal:
			if sp.Group == "" {
				return fmt.Errorf("portal at (%d,%d) has no group", sp.Row, sp.Col)
			}
			groupSizes[sp.Group]++
		default:
			return fmt.Errorf("unknown special type %q at (%d,%d)", sp.Type, sp.Row, sp.Col)
		}
	}
	for group, n := range groupSizes {
		if n < 2 {
			return fmt.Errorf("portal group %q has only one member", group)
		}
	}
	return nil
}
