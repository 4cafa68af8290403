// Package paths maps a node's place in the tree to its logical path and picks names for new nodes.
// Paths always use "/" regardless of the host platform; nothing here touches storage.
package paths

import (
	"errors"
	"fmt"
	"strings"

	"menedzer-plikow/internal/models"
)

const DefaultRootPrefix = "uploads"

var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrInvalidName = errors.New("name contains a path separator or is reserved")
	ErrNoFreeName  = errors.New("no free name left")
)

var typeByExt = map[string]string{
	"pdf":  models.TypePDF,
	"doc":  models.TypeDocument,
	"docx": models.TypeDocument,
	"txt":  models.TypeDocument,
	"xls":  models.TypeSpreadsheet,
	"xlsx": models.TypeSpreadsheet,
	"ppt":  models.TypePresentation,
	"pptx": models.TypePresentation,
	"jpg":  models.TypeImage,
	"jpeg": models.TypeImage,
	"png":  models.TypeImage,
	"gif":  models.TypeImage,
}

// ValidateName trims the name and rejects anything that cannot be a single path segment.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

// Child joins a parent path (or the root prefix) with one name.
func Child(parentPath, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	parentPath = strings.TrimRight(parentPath, "/")
	if parentPath == "" {
		return name, nil
	}
	return parentPath + "/" + name, nil
}

// Resolve returns the canonical path of a child called name under parent; a nil parent means root level.
func Resolve(rootPrefix string, parent *models.Node, name string) (string, error) {
	if parent == nil {
		return Child(rootPrefix, name)
	}
	return Child(parent.Path, name)
}

// ReplaceLast swaps only the last segment of p.
func ReplaceLast(p, name string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return name
	}
	return p[:i+1] + name
}

// Parent returns everything before the last segment, or "" for a single segment.
func Parent(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Rebase moves p from under oldPrefix to under newPrefix. Paths outside oldPrefix are returned unchanged.
func Rebase(p, oldPrefix, newPrefix string) string {
	if p == oldPrefix {
		return newPrefix
	}
	if strings.HasPrefix(p, oldPrefix+"/") {
		return newPrefix + p[len(oldPrefix):]
	}
	return p
}

// IsWithin reports whether p equals root or lies below it.
func IsWithin(p, root string) bool {
	return p == root || strings.HasPrefix(p, root+"/")
}

// SplitExt splits off the last ".ext". Names without a dot and dot-files have no extension.
func SplitExt(name string) (base, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}

// ClassifyType maps the lowercase extension to a node type; unknown extensions are plain files.
func ClassifyType(name string) string {
	_, ext := SplitExt(name)
	if ext == "" {
		return models.TypeFile
	}
	if t, ok := typeByExt[strings.ToLower(ext[1:])]; ok {
		return t
	}
	return models.TypeFile
}

// UploadCandidate is the n-th name tried for an upload; 0 is the original name.
func UploadCandidate(name string, n int) string {
	if n == 0 {
		return name
	}
	base, ext := SplitExt(name)
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}

// CopyCandidate is the n-th name tried for a copy of name.
func CopyCandidate(name string, isFolder bool, n int) string {
	if n == 0 {
		return "Copy of " + name
	}
	if isFolder {
		return fmt.Sprintf("Copy of %s (%d)", name, n)
	}
	base, ext := SplitExt(name)
	return fmt.Sprintf("Copy of %s (%d)%s", base, n, ext)
}

// maxCandidates bounds the search for a free name.
const maxCandidates = 10000

// Unique returns the first candidate for which taken reports false.
func Unique(candidate func(n int) string, taken func(name string) (bool, error)) (string, error) {
	for n := 0; n < maxCandidates; n++ {
		name := candidate(n)
		used, err := taken(name)
		if err != nil {
			return "", err
		}
		if !used {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrNoFreeName, maxCandidates)
}
