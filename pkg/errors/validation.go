package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// elementIDRegex matches well-formed element identifiers: XML NCName-compatible,
// starting with a letter or underscore.
var elementIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// ValidateElementID validates an element identifier for use in a pathway
// document. Empty identifiers are allowed at the model level (they are
// assigned lazily), so callers should only validate non-empty values.
//
// The validation rules are intentionally conservative:
//   - No control characters
//   - Must be NCName-compatible (usable as an XML attribute value and id)
//   - Maximum length of 64 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "element id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidID, "element id too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "element id contains control characters")
		}
	}

	if !elementIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid element id: %q", id)
	}

	return nil
}

// hexColorRegex matches 6- or 8-digit hexadecimal color values.
var hexColorRegex = regexp.MustCompile(`^[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ValidateColor validates a serialized color value. Colors are either the
// keyword "Transparent" (case-insensitive) or a 6/8-digit hex string.
func ValidateColor(value string) error {
	if value == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}

	if strings.EqualFold(value, "Transparent") {
		return nil
	}

	if !hexColorRegex.MatchString(strings.TrimPrefix(value, "#")) {
		return New(ErrCodeInvalidColor, "invalid color value: %q", value)
	}

	return nil
}

// ValidateDataSourceName validates the full name of a cross-reference data
// source before it is handed to the resolver. Names come from documents,
// so reject anything that could not be a database name.
func ValidateDataSourceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "data source name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "data source name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "data source name contains control characters")
		}
	}

	return nil
}
