// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/momokit/provisioner/auth"
)

const (
	JSONMediaType = "application/json"

	// DefaultTimeout bounds a single request when the caller does not supply
	// its own http.Client.
	DefaultTimeout = 30 * time.Second
)

// Client holds configuration data associated with the HTTP(s) session
type Client struct {
	HTTPClient http.Client
	Auth       auth.IAuthenticator
}

// NewClient instantiates a new Client using the supplied authenticator.  A nil
// authenticator is replaced with auth.NullAuthenticator.
func NewClient(a auth.IAuthenticator) *Client {
	if a == nil {
		a = &auth.NullAuthenticator{}
	}

	return &Client{
		HTTPClient: http.Client{
			Timeout: DefaultTimeout,
		},
		Auth: a,
	}
}

// WithAuth returns a shallow copy of the client that authenticates with a.
func (c Client) WithAuth(a auth.IAuthenticator) *Client {
	c.Auth = a
	return &c
}

func (c Client) PostResource(
	ctx context.Context,
	body []byte,
	ct, accept, uri string,
	header http.Header,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("POST %q, request creation failed: %w", uri, err)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	if err := c.addAuth(req); err != nil {
		return nil, err
	}

	hc := &c.HTTPClient

	return hc.Do(req)
}

// PostJSON serializes v and POSTs it to uri as application/json.
func (c Client) PostJSON(
	ctx context.Context,
	v interface{},
	uri string,
	header http.Header,
) (*http.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("POST %q, body serialization failed: %w", uri, err)
	}

	return c.PostResource(ctx, body, JSONMediaType, JSONMediaType, uri, header)
}

func (c Client) addAuth(req *http.Request) error {
	if c.Auth == nil {
		return nil
	}

	value, err := c.Auth.EncodeHeader()
	if err != nil {
		return fmt.Errorf("could not get auth header: %w", err)
	}

	if value != "" {
		req.Header.Set(c.Auth.HeaderName(), value)
	}

	return nil
}
