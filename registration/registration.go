// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package registration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/momokit/provisioner/auth"
	"github.com/momokit/provisioner/common"
)

const (
	ReferenceIDHeader = "X-Reference-Id"

	// maxBodySize bounds the diagnostic body kept from a failed response.
	maxBodySize = 1 << 20
)

// Request describes one registration attempt.
type Request struct {
	ID          uuid.UUID           // client identifier, sent as X-Reference-Id
	CallbackURI string              // sent as providerCallbackHost
	Endpoint    string              // URI of the registration endpoint
	Auth        auth.IAuthenticator // optional; overrides the client's own
}

type requestBody struct {
	ProviderCallbackHost string `json:"providerCallbackHost"`
}

// Client submits registration requests.
type Client struct {
	HTTP *common.Client // HTTP(s) client connection configuration
}

// Register issues a single POST for req and classifies the response.
func (o Client) Register(ctx context.Context, req Request) (Outcome, error) {
	if err := req.check(); err != nil {
		return nil, err
	}

	hc := o.HTTP
	if hc == nil {
		hc = common.NewClient(nil)
	}
	if req.Auth != nil {
		hc = hc.WithAuth(req.Auth)
	}

	hdr := http.Header{}
	hdr.Set(ReferenceIDHeader, req.ID.String())

	res, err := hc.PostJSON(
		ctx,
		requestBody{ProviderCallbackHost: req.CallbackURI},
		req.Endpoint,
		hdr,
	)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return TransportFailure{Message: err.Error()}, nil
		}
		return nil, fmt.Errorf("registration request failed: %w", err)
	}
	defer res.Body.Close()

	return classify(res)
}

func (req Request) check() error {
	if req.Endpoint == "" {
		return errors.New("bad configuration: no API endpoint")
	}

	if _, err := common.ParseAbsoluteURI(req.Endpoint); err != nil {
		return fmt.Errorf("bad configuration: registration endpoint: %w", err)
	}

	if req.ID == uuid.Nil {
		return errors.New("no client identifier supplied")
	}

	return nil
}

func classify(res *http.Response) (Outcome, error) {
	reason := reasonPhrase(res)

	switch {
	case res.StatusCode >= 400 && res.StatusCode < 500:
		body, err := readBody(res)
		if err != nil {
			return nil, err
		}
		return ClientRejected{
			StatusCode: res.StatusCode,
			Reason:     reason,
			Body:       string(body),
			Problem:    common.ProblemFromBody(res, body),
		}, nil
	case res.StatusCode >= 500 && res.StatusCode < 600:
		body, err := readBody(res)
		if err != nil {
			return nil, err
		}
		return ServerFailure{
			StatusCode: res.StatusCode,
			Reason:     reason,
			Body:       string(body),
			Problem:    common.ProblemFromBody(res, body),
		}, nil
	default:
		return Success{StatusCode: res.StatusCode, Reason: reason}, nil
	}
}

func readBody(res *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %d response body: %w", res.StatusCode, err)
	}
	return body, nil
}

// reasonPhrase extracts the reason from the status line, falling back to the
// canonical text for the code.
func reasonPhrase(res *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if reason == "" {
		reason = http.StatusText(res.StatusCode)
	}
	return reason
}
