// Package dialog provides the lines NPCs and the world speak. Lines are kept
// in named sets; asking for a line from a set picks one at random.
//
// Dialog files are YAML maps from set name to either a list of lines or the
// path of a plain text file holding one line per row:
//
//	default:
//	  - "Hmm?"
//	goblin:
//	  - "Gold! Give it!"
//	old man: oldman.txt
//
// In a text file, blank rows and rows starting with '#' are skipped.
package dialog

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dekarrin/delveq/internal/dice"
	"gopkg.in/yaml.v3"
)

const (
	// Default is the set used for speakers that have no set of their own.
	Default = "default"

	// Echoes is what comes back when the player talks to an empty room.
	Echoes = "echoes"

	// Sounds are what the player hears when listening to a room.
	Sounds = "sounds"
)

// ambient sets belong to the world rather than a speaker and never fall back
// to Default.
var ambient = map[string]bool{
	Echoes: true,
	Sounds: true,
}

// Provider gives random lines from dialog sets.
type Provider struct {
	sets map[string][]string
	dice *dice.Roller
}

// New creates a Provider over the given sets. Set names are matched without
// regard to case. If roller is nil, a time-seeded one is used.
func New(sets map[string][]string, roller *dice.Roller) *Provider {
	if roller == nil {
		roller = dice.New(nil)
	}
	p := &Provider{
		sets: make(map[string][]string, len(sets)),
		dice: roller,
	}
	for name, lines := range sets {
		key := normalize(name)
		p.sets[key] = append(p.sets[key], lines...)
	}
	return p
}

// Load reads a dialog file. Text files it names are found relative to it.
func Load(path string, roller *dice.Roller) (*Provider, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%q: reading from disk: %w", path, err)
	}
	sets, err := parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("dialog file %q: %w", path, err)
	}
	return New(sets, roller), nil
}

// Parse reads dialog sets from YAML. Sets naming a text file are read relative
// to the current directory.
func Parse(data []byte, roller *dice.Roller) (*Provider, error) {
	sets, err := parse(data, ".")
	if err != nil {
		return nil, err
	}
	return New(sets, roller), nil
}

func parse(data []byte, dir string) (map[string][]string, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	sets := make(map[string][]string, len(raw))
	for name, node := range raw {
		switch node.Kind {
		case yaml.SequenceNode:
			var lines []string
			if err := node.Decode(&lines); err != nil {
				return nil, fmt.Errorf("set %q: %w", name, err)
			}
			sets[name] = lines
		case yaml.ScalarNode:
			lines, err := readLines(filepath.Join(dir, node.Value))
			if err != nil {
				return nil, fmt.Errorf("set %q: %w", name, err)
			}
			sets[name] = lines
		default:
			return nil, fmt.Errorf("set %q: must be a list of lines or a file name (line %d)", name, node.Line)
		}
	}
	return sets, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "_", " ")))
}

// Line returns a random line from the speaker's set. Speakers without lines of
// their own use the Default set, except for the ambient Echoes and Sounds
// sets. If there is nothing to say, "" is returned.
func (p *Provider) Line(speaker string) string {
	key := normalize(speaker)
	lines := p.sets[key]
	if len(lines) == 0 && !ambient[key] {
		lines = p.sets[Default]
	}
	return p.dice.Choose(lines)
}

// Has returns whether the speaker has a set of its own.
func (p *Provider) Has(speaker string) bool {
	return len(p.sets[normalize(speaker)]) > 0
}

// Speakers returns the names of every set, sorted.
func (p *Provider) Speakers() []string {
	names := make([]string, 0, len(p.sets))
	for name := range p.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
