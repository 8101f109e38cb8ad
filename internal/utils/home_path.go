package utils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	homeShortcutConstant       = "~"
	homeShortcutPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// ExpandHomePath replaces a leading "~" or "~/" with the home directory reported by provider.
// Paths such as "~user/x" and paths the provider cannot resolve are returned unchanged.
func ExpandHomePath(candidatePath string, provider HomeDirectoryProvider) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if !strings.HasPrefix(trimmedPath, homeShortcutConstant) {
		return candidatePath
	}
	if provider == nil {
		provider = os.UserHomeDir
	}

	var relativePath string
	switch {
	case trimmedPath == homeShortcutConstant:
	case strings.HasPrefix(trimmedPath, homeShortcutPrefixConstant):
		relativePath = strings.TrimPrefix(trimmedPath, homeShortcutPrefixConstant)
	case strings.HasPrefix(trimmedPath, homeShortcutConstant+string(os.PathSeparator)):
		relativePath = strings.TrimPrefix(trimmedPath, homeShortcutConstant+string(os.PathSeparator))
	default:
		return candidatePath
	}

	homeDirectory, homeDirectoryError := provider()
	if homeDirectoryError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}
	if len(relativePath) == 0 {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, relativePath)
}
