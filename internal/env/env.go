// Package env loads a .env file into the process environment, so endpoint
// URLs with API keys can live in a gitignored file rather than in the shell
// profile or the YAML config.
package env

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultFile is read from the working directory.
const DefaultFile = ".env"

// Load reads KEY=VALUE pairs from the given files (DefaultFile when none)
// into the environment. Variables already set in the process environment
// win over the file. A missing file is not an error.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
