// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

// Package secret requests the API key (the client secret) of a registered API
// user.
package secret

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/momokit/provisioner/auth"
	"github.com/momokit/provisioner/common"
)

type apiKeyResponse struct {
	APIKey string `json:"apiKey"`
}

// Client requests API keys from the provisioning API.
type Client struct {
	HTTP *common.Client // HTTP(s) client connection configuration
}

// Request POSTs to <endpoint>/<id>/apikey and returns the issued key.
// endpoint is the API user collection URI used for registration.
func (o Client) Request(
	ctx context.Context,
	endpoint string,
	id uuid.UUID,
	a auth.IAuthenticator,
) (string, error) {
	base, err := common.ParseAbsoluteURI(endpoint)
	if err != nil {
		return "", fmt.Errorf("bad configuration: API user endpoint: %w", err)
	}

	if id == uuid.Nil {
		return "", errors.New("no client identifier supplied")
	}

	hc := o.HTTP
	if hc == nil {
		hc = common.NewClient(nil)
	}
	if a != nil {
		hc = hc.WithAuth(a)
	}

	uri := base.JoinPath(id.String(), "apikey")

	res, err := hc.PostResource(ctx, nil, "", common.JSONMediaType, uri.String(), nil)
	if err != nil {
		return "", fmt.Errorf("api key request failed: %w", err)
	}

	if err := common.CheckResponse(res, http.StatusOK, http.StatusCreated); err != nil {
		res.Body.Close()
		return "", err
	}

	var j apiKeyResponse

	if err := common.DecodeJSONBody(res, &j); err != nil {
		return "", fmt.Errorf("failure decoding api key response: %w", err)
	}

	if j.APIKey == "" {
		return "", errors.New("api key response carries no apiKey")
	}

	return j.APIKey, nil
}
