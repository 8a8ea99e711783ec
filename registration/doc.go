// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

/*
Package registration implements the API user registration exchange of the
sandbox provisioning API.

The whole exchange is a single POST to the registration endpoint, carrying the
client identifier in the X-Reference-Id header and the callback host in the
JSON body:

	POST /v1_0/apiuser
	X-Reference-Id: 123e4567-e89b-42d3-a456-426614174000
	Ocp-Apim-Subscription-Key: ...
	Content-Type: application/json

	{"providerCallbackHost": "https://example.com/cb"}

The user creates a Client, optionally supplying a custom common.Client, for
example to configure the underlying TLS transport:

	c := registration.Client{HTTP: common.NewClient(nil)}

and submits a Request:

	outcome, err := c.Register(ctx, registration.Request{
		ID:          id,
		CallbackURI: "https://example.com/cb",
		Endpoint:    "https://sandbox.momodeveloper.mtn.com/v1_0/apiuser",
		Auth:        auth.ForSubscriptionKey(key),
	})

err is only set for failures outside the modelled outcomes (bad request
configuration, unreadable response). Everything else is classified into one of
Success, ClientRejected, ServerFailure or TransportFailure. No retries are
attempted.
*/
package registration
