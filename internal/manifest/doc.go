// Package manifest handles locating and parsing Composer manifest files
// (composer.json) for the drupal-require-core CLI.
//
// Composer manifests are plain JSON, but hand-edited files occasionally
// carry comments or trailing commas, so this package runs the bytes through
// github.com/tidwall/jsonc before parsing with the standard encoding/json
// library.
//
// The "require" and "require-dev" sections are decoded token by token
// rather than into Go maps, because the manifest's key order is significant
// for preview output and command generation and map decoding would
// randomize it.
//
// The manifest is strictly read-only for this tool. The external package
// manager is the only thing that ever rewrites it.
package manifest
