package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// sceneNamePattern matches registry names such as "gd-quadratic-bound".
var sceneNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateSceneName checks that name is a well-formed scene registry name.
// It does not check that the scene exists.
func ValidateSceneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "scene name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "scene name too long (max 64 characters)")
	}
	if !sceneNamePattern.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid scene name %q (lowercase letters, digits and dashes)", name)
	}
	return nil
}

// ValidateOutputDir validates the directory frames and videos are written to.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No parent-directory segments after cleaning
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}
	for _, r := range dir {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains control characters")
		}
	}
	clean := filepath.Clean(dir)
	for _, seg := range strings.Split(filepath.ToSlash(clean), "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "output directory cannot contain '..'")
		}
	}
	return nil
}

// ValidateDimensions checks pixel dimensions and frame rate.
func ValidateDimensions(width, height int, fps float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidConfig, "frame size must be positive, got %dx%d", width, height)
	}
	if width > 7680 || height > 4320 {
		return New(ErrCodeInvalidConfig, "frame size %dx%d exceeds 7680x4320", width, height)
	}
	if width%2 != 0 || height%2 != 0 {
		return New(ErrCodeInvalidConfig, "frame size must be even for video encoding, got %dx%d", width, height)
	}
	if fps <= 0 || fps > 240 {
		return New(ErrCodeInvalidConfig, "fps must be in (0, 240], got %v", fps)
	}
	return nil
}
