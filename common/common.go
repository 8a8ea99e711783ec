// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ParseAbsoluteURI parses uri and checks that it carries both a scheme and a
// host.
func ParseAbsoluteURI(uri string) (*url.URL, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("malformed URI: %w", err)
	}

	if !u.IsAbs() {
		return nil, errors.New("uri is not absolute")
	}

	if u.Host == "" {
		return nil, errors.New("uri has no host")
	}

	return u, nil
}

func DecodeJSONBody(res *http.Response, j interface{}) error {
	defer res.Body.Close()

	return json.NewDecoder(res.Body).Decode(&j)
}
