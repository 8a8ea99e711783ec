// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package provisioning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momokit/provisioner/config"
	"github.com/momokit/provisioner/prompt"
)

var ErrNoProduct = errors.New("no product selected")

var defaultProtectedEnvironments = []string{"production"}

// protectedEnvironment returns the configured environment and whether
// destructive commands need --force to run in it.
func protectedEnvironment(cfg ConfigStore) (string, bool) {
	env := strings.TrimSpace(cfg.Get(config.KeyEnvironment))
	if env == "" {
		return "", false
	}

	protected := defaultProtectedEnvironments
	if v := cfg.Get(config.KeyProtectedEnvironments); v != "" {
		protected = strings.Split(v, ",")
	}

	for _, p := range protected {
		if strings.EqualFold(strings.TrimSpace(p), env) {
			return env, true
		}
	}

	return env, false
}

// guard reports whether the command may proceed, telling the operator why
// not when it may not.
func guard(cfg ConfigStore, p prompt.Prompter, force bool) bool {
	env, protected := protectedEnvironment(cfg)
	if !protected {
		return true
	}

	if force {
		p.Warn(fmt.Sprintf("Application in %s, proceeding because of --force.", env))
		return true
	}

	p.Warn(fmt.Sprintf("Application in %s. Command cancelled, use --force to run it anyway.", env))

	return false
}

func resolveProduct(cfg ConfigStore, override string) (string, error) {
	product := strings.TrimSpace(override)
	if product == "" {
		product = strings.TrimSpace(cfg.Get(config.KeyProduct))
	}

	if product == "" {
		return "", ErrNoProduct
	}

	return strings.ToLower(product), nil
}

func apiUserURI(cfg ConfigStore) string {
	if v := cfg.Get(config.KeyAPIUserURI); v != "" {
		return v
	}
	return config.DefaultAPIUserURI
}
