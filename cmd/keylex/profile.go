package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const noKeylexTomlMessage = "no keylex.toml found\npass keywords explicitly, e.g.:\n  keylex tokenize --keywords '->,<-,{,}' input.txt"

type profileConfig struct {
	Profile map[string]keywordProfile `toml:"profile"`
}

type keywordProfile struct {
	Keywords []string `toml:"keywords"`
}

// findKeylexToml ищет keylex.toml вверх от стартовой директории.
func findKeylexToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "keylex.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProfileConfig(path string) (profileConfig, error) {
	var cfg profileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return profileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("profile") {
		return profileConfig{}, fmt.Errorf("%s: missing [profile.<name>] tables", path)
	}
	return cfg, nil
}

// resolveProfile возвращает набор ключевых слов для именованного профиля
// из ближайшего keylex.toml.
func resolveProfile(startDir, name string) ([]string, error) {
	path, ok, err := findKeylexToml(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(noKeylexTomlMessage)
	}
	cfg, err := loadProfileConfig(path)
	if err != nil {
		return nil, err
	}
	prof, ok := cfg.Profile[name]
	if !ok {
		return nil, fmt.Errorf("%s: no [profile.%s]", path, name)
	}
	if len(prof.Keywords) == 0 {
		return nil, fmt.Errorf("%s: [profile.%s] has no keywords", path, name)
	}
	return prof.Keywords, nil
}

// resolveKeywords выбирает ключевые слова из флагов: явный список имеет
// приоритет над профилем.
func resolveKeywords(cmd *cobra.Command) ([]string, error) {
	keywords, err := cmd.Flags().GetStringSlice("keywords")
	if err != nil {
		return nil, fmt.Errorf("failed to get keywords flag: %w", err)
	}
	if len(keywords) > 0 {
		return keywords, nil
	}

	profile, err := cmd.Flags().GetString("profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get profile flag: %w", err)
	}
	if profile == "" {
		return nil, errors.New("no keyword set: pass --keywords or --profile")
	}
	return resolveProfile(".", profile)
}
