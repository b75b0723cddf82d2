package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates partial configs from independent sources and
// merges them into one. Sources are appended in priority order: mergo only
// fills fields that are still zero, so the first source to set a field wins.
type configBuilder struct {
	layers []*StructuredConfig
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{layers: make([]*StructuredConfig, 0, 4)}
}

// withEnv appends the layer parsed from environment variables.
func (b *configBuilder) withEnv() *configBuilder {
	layer := new(StructuredConfig)
	if err := parseEnv(layer); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.layers = append(b.layers, layer)
	return b
}

// withFlags appends the layer parsed from command-line flags.
func (b *configBuilder) withFlags() *configBuilder {
	b.layers = append(b.layers, ParseFlags())
	return b
}

// withJSON appends the layer read from the JSON config file, when any
// earlier layer named one. The last named path wins, so a flag can point the
// register at a different file than the environment does.
func (b *configBuilder) withJSON() *configBuilder {
	var path string
	for _, layer := range b.layers {
		if layer.JSONFilePath != "" {
			path = layer.JSONFilePath
		}
	}
	if path == "" {
		return b
	}

	layer, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.layers = append(b.layers, layer)
	return b
}

// build merges the accumulated layers and validates the result. Any error
// collected while loading sources aborts the build.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("load config sources: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, layer := range b.layers {
		if err := mergo.Merge(merged, layer); err != nil {
			return nil, fmt.Errorf("merge config layers: %w", err)
		}
	}

	return merged, merged.validate()
}
