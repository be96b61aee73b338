package docdex

import (
	"path"
	"regexp"
	"strings"
)

// HookConfig represents a pre-commit hook configuration: an ordered list
// of hook repositories whose hooks run against matching files before a
// commit is finalized.
type HookConfig struct {
	Repos         []HookRepo `json:"repos"`
	DefaultStages []string   `json:"defaultStages,omitempty"`
	Exclude       string     `json:"exclude,omitempty"`
}

// HookRepo is one hook repository at a pinned revision.
// Repo is a URL, or the sentinels "local" and "meta".
type HookRepo struct {
	Repo  string `json:"repo"`
	Rev   string `json:"rev,omitempty"`
	Hooks []Hook `json:"hooks"`
}

// Local reports whether the repo is a sentinel rather than a remote URL.
func (r *HookRepo) Local() bool {
	return r.Repo == "local" || r.Repo == "meta"
}

// Hook is a single check or formatter invocation.
type Hook struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Entry    string `json:"entry,omitempty"`
	Language string `json:"language,omitempty"`

	// Files and Exclude are regular expressions applied to repo-relative
	// paths with unanchored search semantics. Empty Files matches all.
	Files   string `json:"files,omitempty"`
	Exclude string `json:"exclude,omitempty"`

	// Types restricts the hook to files carrying every listed type tag,
	// e.g. "python". TypesOr requires at least one of its tags instead.
	Types   []string `json:"types,omitempty"`
	TypesOr []string `json:"typesOr,omitempty"`

	Args                   []string `json:"args,omitempty"`
	AdditionalDependencies []string `json:"additionalDependencies,omitempty"`
	PassFilenames          *bool    `json:"passFilenames,omitempty"`
}

// ResolvedHook pairs a hook with the repo it came from.
type ResolvedHook struct {
	Repo string `json:"repo"`
	Hook *Hook  `json:"hook"`
}

// Validate checks that the configuration is structurally sound: every
// repo resolvable (URL plus rev, or a local sentinel with entry/language),
// hook IDs present and unique within their repo, and all file patterns
// compiling as regular expressions.
func (c *HookConfig) Validate() error {
	if len(c.Repos) == 0 {
		return Errorf(EINVALID, "config declares no hook repos")
	}
	if _, err := regexp.Compile(c.Exclude); err != nil {
		return Errorf(EINVALID, "top-level exclude pattern does not compile: %v", err)
	}

	for i := range c.Repos {
		repo := &c.Repos[i]
		if repo.Repo == "" {
			return Errorf(EINVALID, "repo %d has no repo URL", i)
		}
		if !repo.Local() && repo.Rev == "" {
			return Errorf(EINVALID, "repo %q has no rev", repo.Repo)
		}
		if len(repo.Hooks) == 0 {
			return Errorf(EINVALID, "repo %q declares no hooks", repo.Repo)
		}

		seen := make(map[string]bool, len(repo.Hooks))
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			if hook.ID == "" {
				return Errorf(EINVALID, "repo %q hook %d has no id", repo.Repo, j)
			}
			if seen[hook.ID] {
				return Errorf(EINVALID, "repo %q declares hook %q twice", repo.Repo, hook.ID)
			}
			seen[hook.ID] = true

			if repo.Repo == "local" {
				if hook.Entry == "" {
					return Errorf(EINVALID, "local hook %q has no entry", hook.ID)
				}
				if hook.Language == "" {
					return Errorf(EINVALID, "local hook %q has no language", hook.ID)
				}
			}

			if _, err := regexp.Compile(hook.Files); err != nil {
				return Errorf(EINVALID, "hook %q files pattern does not compile: %v", hook.ID, err)
			}
			if _, err := regexp.Compile(hook.Exclude); err != nil {
				return Errorf(EINVALID, "hook %q exclude pattern does not compile: %v", hook.ID, err)
			}
		}
	}

	return nil
}

// Matches reports whether the hook would run for the given repo-relative
// path. Patterns use unanchored search semantics; Files is checked before
// Exclude, and an empty Files pattern matches every path.
func (h *Hook) Matches(filePath string) bool {
	p := strings.TrimPrefix(path.Clean(filePath), "./")

	if h.Files != "" {
		re, err := regexp.Compile(h.Files)
		if err != nil || !re.MatchString(p) {
			return false
		}
	}
	if h.Exclude != "" {
		re, err := regexp.Compile(h.Exclude)
		if err == nil && re.MatchString(p) {
			return false
		}
	}
	if len(h.Types) > 0 && !matchesAllTypes(p, h.Types) {
		return false
	}
	if len(h.TypesOr) > 0 && !matchesAnyType(p, h.TypesOr) {
		return false
	}
	return true
}

// HooksFor returns the hooks that would run for the given path, in
// configuration order. The top-level exclude pattern is applied first.
func (c *HookConfig) HooksFor(filePath string) []ResolvedHook {
	p := strings.TrimPrefix(path.Clean(filePath), "./")

	if c.Exclude != "" {
		re, err := regexp.Compile(c.Exclude)
		if err == nil && re.MatchString(p) {
			return nil
		}
	}

	var resolved []ResolvedHook
	for i := range c.Repos {
		repo := &c.Repos[i]
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			if hook.Matches(p) {
				resolved = append(resolved, ResolvedHook{Repo: repo.Repo, Hook: hook})
			}
		}
	}
	return resolved
}

// typeExtensions approximates pre-commit's file type tags by extension.
var typeExtensions = map[string][]string{
	"python":   {".py", ".pyi"},
	"pyi":      {".pyi"},
	"go":       {".go"},
	"yaml":     {".yaml", ".yml"},
	"json":     {".json"},
	"toml":     {".toml"},
	"markdown": {".md", ".markdown"},
	"rst":      {".rst"},
}

// matchesType reports whether the path carries the given file type tag.
// "file" and "text" apply to everything this tool resolves.
func matchesType(filePath, tag string) bool {
	if tag == "file" || tag == "text" {
		return true
	}
	ext := strings.ToLower(path.Ext(filePath))
	for _, e := range typeExtensions[tag] {
		if ext == e {
			return true
		}
	}
	return false
}

func matchesAllTypes(filePath string, tags []string) bool {
	for _, tag := range tags {
		if !matchesType(filePath, tag) {
			return false
		}
	}
	return true
}

func matchesAnyType(filePath string, tags []string) bool {
	for _, tag := range tags {
		if matchesType(filePath, tag) {
			return true
		}
	}
	return false
}
