// Copyright 2023 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0
package auth

// IAuthenticator supplies the credential header attached to outgoing API
// requests.
type IAuthenticator interface {
	Configure(cfg map[string]interface{}) error
	HeaderName() string
	EncodeHeader() (string, error)
}
