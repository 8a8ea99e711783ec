// Copyright 2024 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
)

// TLSOptions configures the transport used to reach the provisioning API.
type TLSOptions struct {
	// CACertPaths are PEM files appended to the system pool.
	CACertPaths []string
	// Insecure disables server certificate verification. Only meant for
	// local mock sandboxes.
	Insecure bool
}

// NewTLSTransport returns a pointer to a new http.Transport whose TLS config
// trusts the system certs plus the configured CA files.
func NewTLSTransport(opts TLSOptions) (*http.Transport, error) {
	certPool, err := x509.SystemCertPool()
	if err != nil {
		certPool = x509.NewCertPool()
	}

	for _, certPath := range opts.CACertPaths {
		rawCert, err := os.ReadFile(certPath)
		if err != nil {
			return nil, fmt.Errorf("could not read cert: %w", err)
		}

		if ok := certPool.AppendCertsFromPEM(rawCert); !ok {
			return nil, fmt.Errorf("invalid cert in %s", certPath)
		}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		RootCAs:            certPool,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.Insecure, // #nosec G402
	}

	return transport, nil
}
