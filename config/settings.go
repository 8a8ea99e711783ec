// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProduct    = "collection"
	DefaultAPIUserURI = "https://sandbox.momodeveloper.mtn.com/v1_0/apiuser"
	DefaultEnvFile    = ".env"
)

// ProductSettings holds the per-product values.
type ProductSettings struct {
	ID              string `mapstructure:"id"`
	CallbackURI     string `mapstructure:"callback_uri"`
	SubscriptionKey string `mapstructure:"subscription_key"`
	Secret          string `mapstructure:"secret"`
}

// Settings is the content of the settings file.
type Settings struct {
	Environment           string                     `mapstructure:"environment"`
	ProtectedEnvironments []string                   `mapstructure:"protected_environments"`
	Product               string                     `mapstructure:"product"`
	APIUserURI            string                     `mapstructure:"api_user_uri"`
	CallbackURI           string                     `mapstructure:"callback_uri"`
	Products              map[string]ProductSettings `mapstructure:"products"`
}

// DefaultSettings returns the settings used when no file is supplied.
func DefaultSettings() Settings {
	return Settings{
		Environment:           "local",
		ProtectedEnvironments: []string{"production"},
		Product:               DefaultProduct,
		APIUserURI:            DefaultAPIUserURI,
		Products:              map[string]ProductSettings{},
	}
}

// LoadSettings reads the settings file at path over DefaultSettings. An empty
// path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path == "" {
		return s, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading settings: %w", err)
	}

	data, err := parseContent(content, filepath.Ext(path))
	if err != nil {
		return s, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	if err := s.decode(data); err != nil {
		return s, fmt.Errorf("decoding settings %s: %w", path, err)
	}

	return s, nil
}

func parseContent(content []byte, ext string) (map[string]interface{}, error) {
	var data map[string]interface{}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	case ".toml", "":
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported settings format %q", ext)
	}

	return data, nil
}

func (o *Settings) decode(data map[string]interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           o,
		ErrorUnused:      true,
		ZeroFields:       true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return dec.Decode(data)
}

// Flatten turns the settings into live configuration keys.
func (o Settings) Flatten() map[string]string {
	m := map[string]string{
		KeyEnvironment:           o.Environment,
		KeyProtectedEnvironments: strings.Join(o.ProtectedEnvironments, ","),
		KeyProduct:               o.Product,
		KeyAPIUserURI:            o.APIUserURI,
		KeyCallbackURI:           o.CallbackURI,
	}

	for name, p := range o.Products {
		m[ProductKey(name, SuffixID)] = p.ID
		m[ProductKey(name, SuffixCallbackURI)] = p.CallbackURI
		m[ProductKey(name, SuffixSubscriptionKey)] = p.SubscriptionKey
		m[ProductKey(name, SuffixSecret)] = p.Secret
	}

	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}

	return m
}
