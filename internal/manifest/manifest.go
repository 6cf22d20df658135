package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/drupal-require-core/internal/model"
)

// FileName is the manifest file name expected in the project directory.
const FileName = "composer.json"

// Dependency is a single entry from a manifest section: a package name
// and its declared version constraint. The constraint is carried for
// preview/debug purposes only; update rendering discards it and reuses
// just the name.
type Dependency struct {
	// Name is the Composer package name (manifest key).
	Name string

	// Constraint is the declared version constraint (manifest value).
	Constraint string
}

// Section is an ordered list of dependencies from one manifest section.
// Order matches the manifest's key iteration order.
type Section []Dependency

// Manifest holds the two dependency sections of a parsed composer.json.
// Both sections are optional in the file; a missing section is simply an
// empty slice here.
type Manifest struct {
	// Require holds the "require" section entries in manifest order.
	Require Section

	// RequireDev holds the "require-dev" section entries in manifest order.
	RequireDev Section
}

// Find checks that a composer.json exists in the given project directory
// and returns its full path.
//
// Returns a CLIError if the file is absent, since a missing manifest is a
// terminal environment error for every operation of this tool.
func Find(projectDir string) (string, error) {
	path := filepath.Join(projectDir, FileName)

	// os.Stat checks existence without reading contents.
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", model.NewCLIError(
				model.ExitFailure,
				fmt.Sprintf("%s not found in %s", FileName, projectDir),
			)
		}
		return "", model.WrapCLIError(model.ExitFailure, fmt.Sprintf("cannot access %s", path), err)
	}
	if info.IsDir() {
		return "", model.NewCLIError(
			model.ExitFailure,
			fmt.Sprintf("%s is a directory, expected a file", path),
		)
	}
	return path, nil
}

// Load reads and parses a composer.json file.
//
// The bytes are first run through jsonc.ToJSON to strip comments and
// trailing commas, then the two dependency sections are extracted with
// order-preserving token decoding. Fields other than "require" and
// "require-dev" are ignored.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitFailure,
				fmt.Sprintf("%s not found: %s", FileName, path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses raw manifest bytes into a Manifest. Exposed separately
// from Load so tests and callers holding in-memory manifests don't need
// a file on disk.
func Parse(data []byte) (*Manifest, error) {
	cleanJSON := jsonc.ToJSON(data)

	// First pass: pull out the two sections as raw JSON so the rest of
	// the document can be ignored. encoding/json leaves RawMessage bytes
	// untouched, which preserves the original key order for the second pass.
	var raw struct {
		Require    json.RawMessage `json:"require"`
		RequireDev json.RawMessage `json:"require-dev"`
	}
	if err := json.Unmarshal(cleanJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	m := &Manifest{}

	var err error
	if m.Require, err = parseSection("require", raw.Require); err != nil {
		return nil, err
	}
	if m.RequireDev, err = parseSection("require-dev", raw.RequireDev); err != nil {
		return nil, err
	}

	return m, nil
}

// parseSection decodes one dependency section with json.Decoder tokens.
//
// A map[string]string would be the obvious decode target, but Go maps do
// not preserve insertion order and the preview output must list entries
// in the order the manifest declares them. Walking the token stream keeps
// the order intact: object open, then alternating key tokens and string
// values until the closing delimiter.
func parseSection(name string, raw json.RawMessage) (Section, error) {
	if len(raw) == 0 {
		// Section absent from the manifest. Not an error; both sections
		// are optional.
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q section: %w", name, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%q section must be a JSON object, got %v", name, tok)
	}

	var section Section
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q section: %w", name, err)
		}
		// Inside an object, every alternate token is a key and keys are
		// always strings.
		key := keyTok.(string)

		var constraint string
		if err := dec.Decode(&constraint); err != nil {
			return nil, fmt.Errorf("%q section: constraint for %q must be a string: %w", name, key, err)
		}

		section = append(section, Dependency{Name: key, Constraint: constraint})
	}

	// Consume the closing '}' so malformed trailing content is reported.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse %q section: %w", name, err)
	}

	return section, nil
}

// MatchCore selects the entries of a section whose package name starts
// with drupal/core- and renders each against the target version. Order is
// preserved from the section, i.e. from the manifest. The declared
// constraint is discarded; only the key is reused.
func MatchCore(section Section, version string) []model.MatchedEntry {
	var matched []model.MatchedEntry
	for _, dep := range section {
		if strings.HasPrefix(dep.Name, model.CorePrefix) {
			matched = append(matched, model.NewMatchedEntry(dep.Name, version))
		}
	}
	return matched
}
