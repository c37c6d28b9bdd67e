// Package assets handles model path validation and texture reference
// resolution.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Path validation errors.
var (
	ErrEmptyPath       = errors.New("empty path")
	ErrPathTooLong     = errors.New("path too long")
	ErrNotAbsolute     = errors.New("path must be absolute")
	ErrTextureNotFound = errors.New("texture file not found")
)

// MaxPathLen is the longest accepted path in bytes.
const MaxPathLen = 256

// builtinAliases maps short tokens to bundled assets. Aliases resolve
// before validation, so they are exempt from the absolute-path rule.
var builtinAliases = map[string]string{
	"cube": "/usr/share/objview/models/cube.obj",
}

// Table resolves short aliases to canonical model paths. The zero
// value uses only the builtin aliases.
type Table struct {
	aliases map[string]string
}

// NewTable builds an alias table from the builtin entries merged with
// extra (typically from config); extra entries win on collision.
func NewTable(extra map[string]string) *Table {
	t := &Table{aliases: make(map[string]string, len(builtinAliases)+len(extra))}
	for k, v := range builtinAliases {
		t.aliases[k] = v
	}
	for k, v := range extra {
		t.aliases[k] = v
	}
	return t
}

// Clean normalizes and validates a user-supplied model path: trims
// whitespace and surrounding quotes, resolves aliases, converts
// backslashes to the native separator, and enforces the length and
// absoluteness rules. Pure function over the input and alias table.
func (t *Table) Clean(path string) (string, error) {
	p := strings.TrimSpace(path)
	p = strings.Trim(p, `"'`)
	p = strings.TrimSpace(p)

	if p == "" {
		return "", ErrEmptyPath
	}

	if t != nil && t.aliases != nil {
		if resolved, ok := t.aliases[p]; ok {
			p = resolved
		}
	}

	if len(p) >= MaxPathLen {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrPathTooLong, len(p), MaxPathLen)
	}

	p = filepath.Clean(filepath.FromSlash(strings.ReplaceAll(p, `\`, `/`)))
	if !filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: %q", ErrNotAbsolute, p)
	}

	return p, nil
}

// ResolveTexture locates a texture referenced by a material file. The
// reference is tried as written first; if no file exists there it is
// joined with baseDir (the directory of the geometry file).
func ResolveTexture(ref, baseDir string) (string, error) {
	ref = filepath.FromSlash(strings.ReplaceAll(strings.TrimSpace(ref), `\`, `/`))

	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}

	joined := filepath.Join(baseDir, ref)
	if _, err := os.Stat(joined); err == nil {
		return joined, nil
	}

	return "", fmt.Errorf("%w: %q (also tried %q)", ErrTextureNotFound, ref, joined)
}
