// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
)

// Store combines the live configuration with the durable env file.
type Store struct {
	Live *Config
	File *EnvFile
}

// LoadOptions locates the configuration sources.
type LoadOptions struct {
	SettingsPath string
	EnvFilePath  string
	Environ      []string // os.Environ() style entries
}

// Load builds a Store from the settings file, the env file and the process
// environment, in increasing order of precedence.
func Load(opts LoadOptions) (*Store, error) {
	settings, err := LoadSettings(opts.SettingsPath)
	if err != nil {
		return nil, err
	}

	path := opts.EnvFilePath
	if path == "" {
		path = DefaultEnvFile
	}

	file, err := OpenEnvFile(path)
	if err != nil {
		return nil, err
	}

	live := New(settings.Flatten())
	live.Overlay(file.Values())
	live.Overlay(EnvironMap(opts.Environ))

	return &Store{Live: live, File: file}, nil
}

func (o *Store) Get(key string) string {
	return o.Live.Get(key)
}

func (o *Store) EnvName(key string) string {
	return EnvName(key)
}

// Set writes name=value to the env file and then to the live configuration.
func (o *Store) Set(envName, value string) error {
	return o.SetAll(map[string]string{envName: value})
}

// SetAll writes every entry of values to the env file in one update and then
// to the live configuration. Nothing is written if a name is outside the
// provisioner namespace.
func (o *Store) SetAll(values map[string]string) error {
	keys := make(map[string]string, len(values))
	for name := range values {
		key, ok := KeyForEnv(name)
		if !ok {
			return fmt.Errorf("%s is not a provisioner variable", name)
		}
		keys[name] = key
	}

	if err := o.File.SetAll(values); err != nil {
		return err
	}

	for name, v := range values {
		o.Live.Set(keys[name], v)
	}

	return nil
}

// SetLive only updates the live configuration.
func (o *Store) SetLive(envName, value string) {
	if key, ok := KeyForEnv(envName); ok {
		o.Live.Set(key, value)
	}
}
