package cmd

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Prompt overrides the default `$ ` prompt.
	Prompt string `yaml:"prompt"`
	// HistoryFile is handed to the line editor; empty keeps history
	// in-memory for the session only.
	HistoryFile string `yaml:"historyfile"`
	// Watch rebuilds the executable index when a search-path directory
	// changes; off, the index is built once at startup.
	Watch bool `yaml:"watch"`
}

// LoadConfig reads mysh.yaml from the working directory, falling back to
// .mysh.yaml in the home directory. No file at all is not an error.
func LoadConfig() (Config, error) {
	var result Config

	candidates := []string{"mysh.yaml"}
	if home, err := homedir.Dir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mysh.yaml"))
	}

	for _, name := range candidates {
		buf, err := os.ReadFile(name)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(buf, &result); err != nil {
			return Config{}, err
		}
		return result, nil
	}
	return result, nil
}
