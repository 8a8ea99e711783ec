// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

const (
	KeyEnvironment           = "ENVIRONMENT"
	KeyProtectedEnvironments = "PROTECTED_ENVIRONMENTS"
	KeyProduct               = "PRODUCT"
	KeyAPIUserURI            = "API_USER_URI"
	KeyCallbackURI           = "CALLBACK_URI"

	SuffixID              = "ID"
	SuffixCallbackURI     = "CALLBACK_URI"
	SuffixSubscriptionKey = "SUBSCRIPTION_KEY"
	SuffixSecret          = "SECRET"

	EnvPrefix      = "MOMO_"
	EnvEnvironment = "APP_ENV"
)

// ProductKey derives the live key <PRODUCT>_<SUFFIX> for a product.
func ProductKey(product, suffix string) string {
	p := strings.ToUpper(strings.TrimSpace(product))
	p = strings.NewReplacer("-", "_", " ", "_", ".", "_").Replace(p)
	return p + "_" + suffix
}

// EnvName maps a live key to its environment variable name.
func EnvName(key string) string {
	if key == KeyEnvironment {
		return EnvEnvironment
	}
	return EnvPrefix + key
}

// KeyForEnv maps an environment variable name back to its live key. ok is
// false for variables outside the provisioner namespace.
func KeyForEnv(name string) (key string, ok bool) {
	if name == EnvEnvironment {
		return KeyEnvironment, true
	}
	if strings.HasPrefix(name, EnvPrefix) && len(name) > len(EnvPrefix) {
		return strings.TrimPrefix(name, EnvPrefix), true
	}
	return "", false
}
