package pathing

import (
	"log"
	"os"
	"path/filepath"
)

// Ensure directories exist on startup
func init() {
	// Directories that must exist:
	dirs := []string{
		GetDataDir(),
	}

	// Create all directories
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			err := os.MkdirAll(dir, 0755)
			if err != nil {
				log.Fatal(err)
			}
		}
	}
}

func GetConfigPath(filename string) string {
	return filepath.Join(GetConfigDir(), filename)
}

func GetDataDir() string {
	return "/var/lib/linky_tic"
}

func GetConfigDir() string {
	return "/etc/linky_tic"
}
