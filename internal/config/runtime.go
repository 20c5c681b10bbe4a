package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	return resolvePath(os.Getenv("PRUNER_RUNTIME_PATH"))
}

func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}

// resolvePath anchors relative runtime paths at the user's home directory.
func resolvePath(path string) string {
	if path == "" {
		path = ".chatpruner"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
