// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"sync"
)

// Config is the live, in-memory configuration.
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates a Config holding a copy of values.
func New(values map[string]string) *Config {
	c := &Config{values: make(map[string]string, len(values))}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

func (o *Config) Get(key string) string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.values[key]
}

func (o *Config) Set(key, value string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.values[key] = value
}

// Overlay applies environment variables (by variable name) on top of the
// current values. Variables outside the provisioner namespace are ignored.
func (o *Config) Overlay(env map[string]string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for name, v := range env {
		if key, ok := KeyForEnv(name); ok {
			o.values[key] = v
		}
	}
}

// EnvironMap converts os.Environ style entries into a map.
func EnvironMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
