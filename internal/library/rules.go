package library

import (
	"path/filepath"
	"strings"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Folders never shown or walked
var ignoredFolders = map[string]bool{
	"screenshots":  true,
	"images":       true,
	"assets":       true,
	"__pycache__":  true,
	".git":         true,
	"translations": true,
	"config":       true,
	"node_modules": true,
}

// Extensions of support files that never become items
var ignoredExtensions = map[string]bool{
	".json": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".tmp":  true,
	".log":  true,
	".xml":  true,
	".ini":  true,
	".db":   true,
}

// Files owned by the sentinel sections
var forbiddenNames = map[string]bool{
	"intro.pptx":        true,
	"outro.pptx":        true,
	"translations.json": true,
}

// IsIgnoredFolder reports whether a directory is skipped entirely
func IsIgnoredFolder(name string) bool {
	return ignoredFolders[strings.ToLower(name)]
}

// IsBaseFile reports whether a file is a base version shown in the library.
// Hidden files, support files, sentinel decks and variants (stem containing
// an underscore, e.g. deck_NL.pptx) are not.
func IsBaseFile(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, ".") {
		return false
	}
	ext := filepath.Ext(lower)
	if ignoredExtensions[ext] {
		return false
	}
	if forbiddenNames[lower] {
		return false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return !strings.Contains(stem, "_")
}

// FileType maps a file name to one of the domain.FileType* constants
func FileType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pptx", ".ppt":
		return domain.FileTypePresentation
	case ".docx", ".doc":
		return domain.FileTypeDocument
	case ".xlsx", ".xls", ".csv":
		return domain.FileTypeSpreadsheet
	case ".pdf":
		return domain.FileTypePDF
	default:
		return domain.FileTypeGeneric
	}
}

// Descriptor builds the resolver output for a file
func Descriptor(path string) domain.FileDescriptor {
	return domain.FileDescriptor{
		Name: filepath.Base(path),
		Path: path,
		Type: FileType(path),
	}
}
