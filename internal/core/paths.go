package core

import (
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the data directory when set.
const HomeEnvVar = "JEL_HOME"

type Paths struct {
	HomeDir     string
	DataDir     string
	LogFile     string
	HistoryFile string
	RcFile      string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		dataDir := filepath.Join(homeDir, ".jel")
		if override := os.Getenv(HomeEnvVar); override != "" {
			dataDir = override
		}

		defaultPaths = &Paths{
			HomeDir:     homeDir,
			DataDir:     dataDir,
			LogFile:     filepath.Join(dataDir, "jel.log"),
			HistoryFile: filepath.Join(dataDir, "history.db"),
			RcFile:      filepath.Join(homeDir, ".jelrc"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

// RcFile is the user's startup file, evaluated before the first prompt.
func RcFile() string {
	ensureDefaultPaths()
	return defaultPaths.RcFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
