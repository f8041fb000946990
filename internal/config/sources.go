package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// source looks up a dotted key and reports whether a value is present.
// The resolver consults sources in precedence order and the first hit
// wins, so precedence is auditable as a plain ordered list.
type source func(key string) (any, bool)

type resolver struct {
	sources []source
}

func (r *resolver) lookup(key string, def any) any {
	for _, s := range r.sources {
		if v, ok := s(key); ok {
			return v
		}
	}
	return def
}

// lookupMap resolves a free-form nested group. Keys found in the file
// under the group extend the defaults; individual entries can still be
// overridden per-key through the higher-precedence sources.
func (r *resolver) lookupMap(key string, def map[string]any) map[string]any {
	merged := make(map[string]any, len(def))
	for k, v := range def {
		merged[k] = v
	}
	if v, ok := fileValue(r, key); ok {
		if sub, ok := toStringMap(v); ok {
			for k, val := range sub {
				merged[k] = val
			}
		}
	}
	for k := range merged {
		merged[k] = r.lookup(key+"."+k, merged[k])
	}
	return merged
}

// fileValue returns the lowest-precedence (file) source's value for key.
func fileValue(r *resolver, key string) (any, bool) {
	if len(r.sources) == 0 {
		return nil, false
	}
	return r.sources[len(r.sources)-1](key)
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprintf("%v", k)] = val
		}
		return out, true
	}
	return nil, false
}

// cliSource serves values the user explicitly supplied on the command
// line. Absent keys fall through to the next source.
func cliSource(values map[string]any) source {
	return func(key string) (any, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// envSource maps dotted keys to environment variable names
// ("openai.api_key" -> "OPENAI_API_KEY") and coerces the textual value.
func envSource(getenv func(string) string) source {
	return func(key string) (any, bool) {
		v := getenv(envName(key))
		if v == "" {
			return nil, false
		}
		return coerce(v), true
	}
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// coerce converts environment variable text to a typed value. Boolean
// tokens are checked before numeric parses; the order is part of the
// contract.
func coerce(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// fileSource traverses the parsed YAML document by dotted path. Nesting
// depth is arbitrary; no fixed schema is required.
func fileSource(doc map[string]any) source {
	return func(key string) (any, bool) {
		var current any = doc
		for _, part := range strings.Split(key, ".") {
			m, ok := toStringMap(current)
			if !ok {
				return nil, false
			}
			current, ok = m[part]
			if !ok {
				return nil, false
			}
		}
		if current == nil {
			return nil, false
		}
		return current, true
	}
}

var defaultFilePaths = []string{"config.yml", "config.yaml"}

// loadFile reads the YAML config file. An explicitly named file that
// does not exist is a fatal error; if no file was requested, the default
// locations are searched and absence simply means defaults apply.
func loadFile(path string) (map[string]any, string, error) {
	if path == "" {
		for _, p := range defaultFilePaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return nil, "", nil
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, "", fmt.Errorf("config: config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("config: reading %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("config: parsing %s: %w", filepath.Base(path), err)
	}
	return doc, path, nil
}
