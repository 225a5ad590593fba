package corpus

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

// ManifestName is the integrity manifest's filename inside a corpus
// directory.
const ManifestName = "manifest.json"

// Manifest maps corpus filenames to their BLAKE3 content hashes.
type Manifest struct {
	Files map[string]string `json:"files"`
}

// ChecksumError reports a corpus file whose content does not match the
// manifest.
type ChecksumError struct {
	Path string
	Want string
	Got  string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: manifest has %s, file has %s",
		e.Path, e.Want, e.Got)
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func isCorpusFile(name string) bool {
	return strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".txt.xz")
}

// WriteManifest hashes every corpus file in dir and writes the
// manifest beside them.
func WriteManifest(dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	m := &Manifest{Files: make(map[string]string)}
	for _, entry := range entries {
		if entry.IsDir() || !isCorpusFile(entry.Name()) {
			continue
		}
		sum, err := hashFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("hashing %s: %w", entry.Name(), err)
		}
		m.Files[entry.Name()] = sum
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	return m, nil
}

// ReadManifest loads the manifest from dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Verify checks every file named in dir's manifest against its
// recorded hash. Files in the directory but not in the manifest are
// ignored; files in the manifest but missing from the directory are
// errors.
func Verify(dir string) error {
	m, err := ReadManifest(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		got, err := hashFile(path)
		if err != nil {
			return fmt.Errorf("hashing %s: %w", name, err)
		}
		if want := m.Files[name]; got != want {
			return &ChecksumError{Path: path, Want: want, Got: got}
		}
	}
	return nil
}
