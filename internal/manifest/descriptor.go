// Package manifest describes the file selected for an import without ever
// reading its contents. Only the name and byte size leave this package.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vasquezjesus2710/next-form-project/internal/apperrors"
)

// Descriptor identifies a selected manifest file. A nil *Descriptor means
// no file has been selected yet; validation treats nil as missing.
type Descriptor struct {
	Name string
	Size int64
	Path string
}

// KB returns size rounded to whole kilobytes, halves rounding up.
func KB(size int64) int64 {
	if size < 0 {
		return 0
	}
	return (size + 512) / 1024
}

// SizeLabel renders the descriptor size for display, e.g. "12 KB".
func (d *Descriptor) SizeLabel() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%d KB", KB(d.Size))
}

// HasAllowedExt reports whether path carries one of the given extensions.
// Extensions are matched case-insensitively and must include the dot.
func HasAllowedExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range exts {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// FromPath stats path and builds a Descriptor. maxBytes <= 0 disables the
// size cap. The file contents are never opened.
func FromPath(path string, maxBytes int64) (*Descriptor, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, apperrors.New(apperrors.KindIO, "no file path given", nil)
	}
	if err := RejectSymlinkPath(path); err != nil {
		return nil, apperrors.New(apperrors.KindIO, "refusing to use a symlinked file", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.New(apperrors.KindIO, fmt.Sprintf("cannot read %s", filepath.Base(path)), err)
	}
	if info.IsDir() {
		return nil, apperrors.New(apperrors.KindIO, fmt.Sprintf("%s is a directory, not a manifest file", filepath.Base(path)), nil)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, apperrors.New(apperrors.KindValidation,
			fmt.Sprintf("%s is too large (%d KB, limit %d KB)", filepath.Base(path), KB(info.Size()), KB(maxBytes)), nil)
	}
	return &Descriptor{
		Name: info.Name(),
		Size: info.Size(),
		Path: path,
	}, nil
}
