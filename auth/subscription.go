// Copyright 2023 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// SubscriptionKeyHeader is the API gateway header carrying the product
// subscription key.
const SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// SubscriptionKeyAuthenticator authenticates requests with a per-product
// subscription key.
type SubscriptionKeyAuthenticator struct {
	Key string
}

// ForSubscriptionKey returns a SubscriptionKeyAuthenticator configured with
// key, or a NullAuthenticator if key is empty.
func ForSubscriptionKey(key string) IAuthenticator {
	a := &SubscriptionKeyAuthenticator{}

	err := a.Configure(map[string]interface{}{
		"subscription_key": strings.TrimSpace(key),
	})
	if err != nil {
		return &NullAuthenticator{}
	}

	return a
}

func (o *SubscriptionKeyAuthenticator) Configure(cfg map[string]interface{}) error {
	decoded := struct {
		Key  string                 `mapstructure:"subscription_key"`
		Rest map[string]interface{} `mapstructure:",remain"`
	}{}

	if err := mapstructure.Decode(cfg, &decoded); err != nil {
		return err
	}

	o.Key = decoded.Key

	if err := o.validate(); err != nil {
		return err
	}

	if len(decoded.Rest) > 0 {
		var unexpected []string
		for k := range decoded.Rest {
			unexpected = append(unexpected, k)
		}
		sort.Strings(unexpected)
		return fmt.Errorf("unexpected fields in config: %s",
			strings.Join(unexpected, ", "))
	}

	return nil
}

func (o *SubscriptionKeyAuthenticator) HeaderName() string {
	return SubscriptionKeyHeader
}

func (o *SubscriptionKeyAuthenticator) EncodeHeader() (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}

	return o.Key, nil
}

func (o *SubscriptionKeyAuthenticator) validate() error {
	if o.Key == "" {
		return errors.New("missing subscription_key")
	}

	return nil
}
