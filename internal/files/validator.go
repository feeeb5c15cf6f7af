package files

import (
	"strings"
)

// NewFileValidator creates a new file validator
func NewFileValidator() FileValidator {
	return &fileValidator{}
}

// ValidateName validates a file or folder name
func (v *fileValidator) ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" || len(name) > 255 {
		return ErrInvalidName
	}

	// Path separators and traversal are not allowed in names
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return ErrInvalidName
	}

	return nil
}

// ValidateMimeType checks that a declared MIME type is well formed.
// Parameters after a semicolon are allowed, the base must be type/subtype.
func (v *fileValidator) ValidateMimeType(mimeType string) error {
	base := strings.TrimSpace(mimeType)
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}

	if base == "" || len(base) > 255 {
		return ErrInvalidMimeType
	}

	major, minor, found := strings.Cut(base, "/")
	if !found || major == "" || minor == "" || strings.ContainsAny(base, " \t") {
		return ErrInvalidMimeType
	}

	return nil
}

// ValidateCreate validates creation parameters
func (v *fileValidator) ValidateCreate(userID, name string) error {
	if userID == "" {
		return ErrInvalidInput
	}

	return v.ValidateName(name)
}
