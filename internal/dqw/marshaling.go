package dqw

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// readResource decodes the DQW file at path into raw world data. A DATA file
// is returned as it is. A MANIFEST file has every file it lists read in turn,
// relative to the manifest's own directory, and their contents concatenated.
//
// including holds the manifests currently being read, outermost first. A file
// already on it is skipped, and the chain may not grow past
// MaxManifestRecursionDepth. ErrManifestEmpty is only returned for the
// outermost manifest.
func readResource(path string, including []string) (topLevelWorldData, error) {
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return topLevelWorldData{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	info, err := ScanFileInfo(raw)
	if err != nil {
		return topLevelWorldData{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}
	if strings.ToUpper(info.Format) != FormatName {
		return topLevelWorldData{}, fmt.Errorf("%q: file does not have a 'format = \"%s\"' entry", path, FormatName)
	}

	switch strings.ToUpper(info.Type) {
	case "DATA":
		data, err := unmarshalWorldData(raw)
		if err != nil {
			return data, fmt.Errorf("world data file %q: %w", path, err)
		}
		if d := data.Game.Dialog; d != "" && !filepath.IsAbs(d) {
			data.Game.Dialog = filepath.Join(filepath.Dir(path), d)
		}
		return data, nil
	case "MANIFEST":
		return readManifestResource(path, raw, including)
	default:
		return topLevelWorldData{}, fmt.Errorf("%q: file does not have 'type = ' entry set to either \"DATA\" or \"MANIFEST\"", path)
	}
}

func readManifestResource(path string, raw []byte, including []string) (topLevelWorldData, error) {
	if len(including) >= MaxManifestRecursionDepth {
		return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
	}
	for _, p := range including {
		if p == path {
			return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
		}
	}

	decoded, err := unmarshalManifest(raw)
	if err != nil {
		return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, err)
	}
	manif, err := parseManifest(decoded)
	if err != nil {
		return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, err)
	}

	outermost := len(including) == 0
	if outermost && len(manif.Files) < 1 {
		return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
	}

	// fresh slice so sibling includes don't share a backing array
	chain := append(append(make([]string, 0, len(including)+1), including...), path)
	dir := filepath.Dir(path)

	var combined topLevelWorldData
	read := 0
	for _, rel := range manif.Files {
		incPath := filepath.Join(dir, rel)

		inc, err := readResource(incPath, chain)
		if errors.Is(err, ErrManifestCircularRef) {
			continue
		} else if err != nil {
			return topLevelWorldData{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
		}

		if err := combined.Game.merge(inc.Game); err != nil {
			return combined, fmt.Errorf("world data file %q: %w", incPath, err)
		}
		combined.Rooms = append(combined.Rooms, inc.Rooms...)
		combined.Items = append(combined.Items, inc.Items...)
		combined.Monsters = append(combined.Monsters, inc.Monsters...)
		read++
	}

	// a top-level manifest whose every entry was a cycle back to itself
	if outermost && read == 0 {
		return combined, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
	}
	return combined, nil
}

// decodeWithHeader decodes TOML into v and requires the header that
// header() reports to name the DQW format and the given file type.
func decodeWithHeader(raw []byte, v interface{}, fileType string, header func() (string, string)) error {
	if err := toml.Unmarshal(raw, v); err != nil {
		return err
	}
	format, typ := header()
	if strings.ToUpper(format) != FormatName {
		return fmt.Errorf("in header: 'format' key must exist and be set to '%s'", FormatName)
	}
	if strings.ToUpper(typ) != fileType {
		return fmt.Errorf("in header: 'type' must exist and be set to '%s'", fileType)
	}
	return nil
}

// unmarshalWorldData decodes a DATA file without checking its definitions.
func unmarshalWorldData(raw []byte) (topLevelWorldData, error) {
	var data topLevelWorldData
	err := decodeWithHeader(raw, &data, "DATA", func() (string, string) { return data.Format, data.Type })
	return data, err
}

// unmarshalManifest decodes a MANIFEST file without reading the files it lists.
func unmarshalManifest(raw []byte) (topLevelManifest, error) {
	var manif topLevelManifest
	err := decodeWithHeader(raw, &manif, "MANIFEST", func() (string, string) { return manif.Format, manif.Type })
	return manif, err
}
