// Package yaml loads pre-commit hook configurations from their YAML form.
package yaml

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/docdex/docdex"
)

// wire structs mirror the .pre-commit-config.yaml schema. Decoding is
// strict: unknown fields are rejected, matching pre-commit's own schema
// validation.
type configWire struct {
	Repos                   []repoWire        `yaml:"repos"`
	DefaultStages           []string          `yaml:"default_stages"`
	DefaultLanguageVersion  map[string]string `yaml:"default_language_version"`
	Exclude                 string            `yaml:"exclude"`
	Files                   string            `yaml:"files"`
	FailFast                bool              `yaml:"fail_fast"`
	MinimumPreCommitVersion string            `yaml:"minimum_pre_commit_version"`
	CI                      map[string]any    `yaml:"ci"`
}

type repoWire struct {
	Repo  string     `yaml:"repo"`
	Rev   string     `yaml:"rev"`
	Hooks []hookWire `yaml:"hooks"`
}

type hookWire struct {
	ID                     string   `yaml:"id"`
	Name                   string   `yaml:"name"`
	Alias                  string   `yaml:"alias"`
	Entry                  string   `yaml:"entry"`
	Language               string   `yaml:"language"`
	LanguageVersion        string   `yaml:"language_version"`
	Files                  string   `yaml:"files"`
	Exclude                string   `yaml:"exclude"`
	Types                  []string `yaml:"types"`
	TypesOr                []string `yaml:"types_or"`
	ExcludeTypes           []string `yaml:"exclude_types"`
	Args                   []string `yaml:"args"`
	AdditionalDependencies []string `yaml:"additional_dependencies"`
	PassFilenames          *bool    `yaml:"pass_filenames"`
	AlwaysRun              bool     `yaml:"always_run"`
	RequireSerial          bool     `yaml:"require_serial"`
	Stages                 []string `yaml:"stages"`
	Verbose                bool     `yaml:"verbose"`
	LogFile                string   `yaml:"log_file"`
}

// LoadConfig reads and parses a pre-commit configuration file.
func LoadConfig(path string) (*docdex.HookConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, docdex.Errorf(docdex.ENOTFOUND, "config file %q does not exist", path)
		}
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses a pre-commit configuration from YAML bytes.
// Unknown fields are rejected.
func ParseConfig(data []byte) (*docdex.HookConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var wire configWire
	if err := dec.Decode(&wire); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "config is not valid YAML: %v", err)
	}

	cfg := &docdex.HookConfig{
		DefaultStages: wire.DefaultStages,
		Exclude:       wire.Exclude,
	}
	for _, repo := range wire.Repos {
		r := docdex.HookRepo{
			Repo: repo.Repo,
			Rev:  repo.Rev,
		}
		for _, hook := range repo.Hooks {
			r.Hooks = append(r.Hooks, docdex.Hook{
				ID:                     hook.ID,
				Name:                   hook.Name,
				Entry:                  hook.Entry,
				Language:               hook.Language,
				Files:                  hook.Files,
				Exclude:                hook.Exclude,
				Types:                  hook.Types,
				TypesOr:                hook.TypesOr,
				Args:                   hook.Args,
				AdditionalDependencies: hook.AdditionalDependencies,
				PassFilenames:          hook.PassFilenames,
			})
		}
		cfg.Repos = append(cfg.Repos, r)
	}

	return cfg, nil
}
