// Package dqw has functions for loading game data using the DQW (DelveQuest
// World) file format, a TOML-based format that is used to define game worlds
// for the interpreter to run.
//
// A DQW file starts with a header giving its format and type:
//
//	format = "DELVE"
//	type = "DATA"
//
// DATA files hold a [game] table and any number of [[room]], [[item]] and
// [[monster]] definitions. Every key of a definition other than "id" becomes a
// field of the entity. MANIFEST files hold a list of other files to include,
// relative to the manifest.
package dqw

import (
	"errors"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"
)

const (
	// FormatName is the value every DQW file must give for "format".
	FormatName = "DELVE"

	MaxManifestRecursionDepth = 32
)

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recursion level
	// of MaxManifestRecursionDepth is reached and an additional Manifest is
	// then specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies
	// any series of files that with their own manifests refer back to the
	// original manifest, and therefore cannot be followed.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Manifest contains data loaded from one or more DQW Manifest files.
type Manifest struct {
	Files []string
}

// FileInfo contains the essential information all DQW format files must
// contain. It can be obtained from a file by reading it into memory and calling
// ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// LoadResourceBundle loads a world up from the given DQW file. The file's
// type is auto-detected and decoding is handled appropriately; the type can
// either be "DATA" type or "MANIFEST" type; if it's manifest type, the files
// listed in it relative to it will also be loaded. All files included will be
// combined into one single set of data before being checked, and if a manifest
// is encountered, all files in it are recursively included.
func LoadResourceBundle(path string) (*WorldData, error) {
	unmarshaled, err := readResource(path, nil)
	if err != nil {
		return nil, err
	}

	return parseWorldData(unmarshaled)
}

// LoadManifestFile loads manifest data from a DQW file.
func LoadManifestFile(path string) (manif Manifest, err error) {
	manifestData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return manif, loadErr
	}

	unmarshaled, err := unmarshalManifest(manifestData)
	if err != nil {
		return manif, err
	}
	return parseManifest(unmarshaled)
}

// LoadWorldDataFile loads a world from a single data file. Any dialog path in
// it is left as written.
func LoadWorldDataFile(path string) (*WorldData, error) {
	worldBinaryData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return nil, loadErr
	}

	unmarshaled, err := unmarshalWorldData(worldBinaryData)
	if err != nil {
		return nil, err
	}

	return parseWorldData(unmarshaled)
}

// ScanFileInfo takes the given data bytes and attempts to read the DQW format
// common header info from it. The bytes are read up to the first instance of a
// table definition header and those bytes are parsed for the info. If there is
// an error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-lev table
	var topLevelEnd int = -1
	onNewLine := true
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}
