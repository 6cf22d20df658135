package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/drupal-require-core/internal/model"
)

// writeManifest writes a composer.json with the given contents into a
// fresh temporary directory and returns the directory path.
func writeManifest(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return dir
}

// --- Find tests ---

// TestFind verifies that Find returns the manifest path when the file exists.
func TestFind(t *testing.T) {
	dir := writeManifest(t, `{}`)

	path, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
}

// TestFind_Missing verifies that a missing composer.json produces a
// CLIError with the failure exit code.
func TestFind_Missing(t *testing.T) {
	dir := t.TempDir()

	_, err := Find(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "error should be a *model.CLIError")
	assert.Equal(t, model.ExitFailure, cliErr.Code)
	assert.Contains(t, cliErr.Message, "composer.json not found")
}

// TestFind_Directory verifies that a composer.json directory (rather than
// a file) is rejected instead of being passed to the parser.
func TestFind_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, FileName), 0o755))

	_, err := Find(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Contains(t, cliErr.Message, "expected a file")
}

// --- Load / Parse tests ---

// TestLoad verifies parsing of a realistic manifest with both sections,
// including key-order preservation within each section.
func TestLoad(t *testing.T) {
	dir := writeManifest(t, `{
		"name": "example/site",
		"require": {
			"drupal/core-composer-scaffold": "^10.3",
			"drupal/core-recommended": "^10.3",
			"drush/drush": "^12.0"
		},
		"require-dev": {
			"drupal/core-dev": "^10.3",
			"phpstan/phpstan": "^1.10"
		}
	}`)

	m, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)

	// Key order must match the manifest, not a sorted or randomized order.
	require.Len(t, m.Require, 3)
	assert.Equal(t, Dependency{Name: "drupal/core-composer-scaffold", Constraint: "^10.3"}, m.Require[0])
	assert.Equal(t, Dependency{Name: "drupal/core-recommended", Constraint: "^10.3"}, m.Require[1])
	assert.Equal(t, Dependency{Name: "drush/drush", Constraint: "^12.0"}, m.Require[2])

	require.Len(t, m.RequireDev, 2)
	assert.Equal(t, "drupal/core-dev", m.RequireDev[0].Name)
	assert.Equal(t, "phpstan/phpstan", m.RequireDev[1].Name)
}

// TestLoad_NotFound verifies the CLIError path when the file vanished
// between Find and Load.
func TestLoad_NotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/composer.json")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitFailure, cliErr.Code)
}

// TestParse_SectionsOptional verifies that both sections may be absent.
func TestParse_SectionsOptional(t *testing.T) {
	m, err := Parse([]byte(`{"name": "example/site"}`))
	require.NoError(t, err)
	assert.Empty(t, m.Require)
	assert.Empty(t, m.RequireDev)
}

// TestParse_JSONCComments verifies that comments and trailing commas are
// tolerated, matching the jsonc front end used for loading.
func TestParse_JSONCComments(t *testing.T) {
	m, err := Parse([]byte(`{
		// pinned during the 10.3 security window
		"require": {
			"drupal/core-recommended": "10.3.6",
		},
	}`))
	require.NoError(t, err)

	require.Len(t, m.Require, 1)
	assert.Equal(t, "drupal/core-recommended", m.Require[0].Name)
	assert.Equal(t, "10.3.6", m.Require[0].Constraint)
}

// TestParse_InvalidJSON verifies that unparseable bytes report an error.
func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"require": [1, 2`))
	assert.Error(t, err)
}

// TestParse_SectionNotObject verifies that an array-valued section is
// rejected with a section-specific message.
func TestParse_SectionNotObject(t *testing.T) {
	_, err := Parse([]byte(`{"require": ["drupal/core-recommended"]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"require" section must be a JSON object`)
}

// TestParse_NonStringConstraint verifies that a non-string constraint
// value names the offending package in the error.
func TestParse_NonStringConstraint(t *testing.T) {
	_, err := Parse([]byte(`{"require-dev": {"drupal/core-dev": {"version": "^10"}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"drupal/core-dev"`)
}

// --- MatchCore tests ---

// TestMatchCore verifies prefix filtering, constraint rendering, and the
// round-trip property from the original script: the declared constraint
// is discarded and the caret form is always used.
func TestMatchCore(t *testing.T) {
	section := Section{
		{Name: "drupal/core-recommended", Constraint: "^10.3"},
		{Name: "other/pkg", Constraint: "^1.0"},
	}

	matched := MatchCore(section, "10.4")
	require.Len(t, matched, 1)
	assert.Equal(t, "drupal/core-recommended:^10.4", matched[0].String())
}

// TestMatchCore_OrderPreserved verifies that matched entries keep their
// manifest order rather than being sorted.
func TestMatchCore_OrderPreserved(t *testing.T) {
	section := Section{
		{Name: "drupal/core-recommended", Constraint: "~10.3.0"},
		{Name: "vendor/tooling", Constraint: "*"},
		{Name: "drupal/core-composer-scaffold", Constraint: ">=10"},
		{Name: "drupal/core-project-message", Constraint: "10.3.6"},
	}

	matched := MatchCore(section, "11.0")
	require.Len(t, matched, 3)
	assert.Equal(t, "drupal/core-recommended", matched[0].Name)
	assert.Equal(t, "drupal/core-composer-scaffold", matched[1].Name)
	assert.Equal(t, "drupal/core-project-message", matched[2].Name)

	// Every rendered constraint uses the caret operator, regardless of
	// the operators declared in the manifest (~, >=, exact).
	for _, e := range matched {
		assert.Equal(t, "^11.0", e.Constraint)
	}
}

// TestMatchCore_NoMatches verifies the empty result for manifests without
// any drupal/core-* keys.
func TestMatchCore_NoMatches(t *testing.T) {
	section := Section{
		{Name: "drush/drush", Constraint: "^12.0"},
		{Name: "drupal/admin_toolbar", Constraint: "^3.4"},
	}
	assert.Empty(t, MatchCore(section, "10.4"))
}

// TestMatchCore_PrefixIsLiteral verifies that the prefix match is a
// literal string prefix: "drupal/core" without the trailing hyphen does
// not match, and the bare meta-package "drupal/core" is excluded.
func TestMatchCore_PrefixIsLiteral(t *testing.T) {
	section := Section{
		{Name: "drupal/core", Constraint: "^10.3"},
		{Name: "drupal/corefake", Constraint: "^1.0"},
		{Name: "drupal/core-recommended", Constraint: "^10.3"},
	}

	matched := MatchCore(section, "10.4")
	require.Len(t, matched, 1)
	assert.Equal(t, "drupal/core-recommended", matched[0].Name)
}
