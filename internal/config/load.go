package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/inlinechrome/internal/config/loader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INLINECHROME_"

// Load assembles options from defaults, the file at path (if any) and the
// process environment, then validates them.
func Load(path string) (Options, error) {
	return LoadWith(path, loader.NewEnvLoader(EnvPrefix))
}

// LoadWith is Load with an explicit environment layer. A nil env skips it.
func LoadWith(path string, env loader.Loader) (Options, error) {
	merged, err := toMap(Default())
	if err != nil {
		return Options{}, err
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return Options{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return Options{}, fmt.Errorf("checking config file: %w", err)
		}
		l, err := loader.ForPath(path)
		if err != nil {
			return Options{}, err
		}
		layer, err := l.Load()
		if err != nil {
			return Options{}, err
		}
		merged = loader.DeepMerge(merged, layer)
	}

	if env != nil {
		layer, err := env.Load()
		if err != nil {
			return Options{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, layer)
	}

	opts, err := decode(merged)
	if err != nil {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Dump renders options as YAML.
func Dump(o Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("encoding options: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding options: %w", err)
	}
	return buf.Bytes(), nil
}

func toMap(o Options) (map[string]any, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	return m, nil
}

// decode turns a merged layer map into Options. Unknown keys are rejected
// so a misspelt option fails loudly instead of being ignored.
func decode(m map[string]any) (Options, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return Options{}, fmt.Errorf("encoding merged config: %w", err)
	}
	var o Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		return Options{}, fmt.Errorf("decoding config: %w", err)
	}
	return o, nil
}
