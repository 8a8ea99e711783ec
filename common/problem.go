// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/moogar0880/problems"
)

type ProblemError struct {
	problems.DefaultProblem
}

func (o *ProblemError) Error() string {
	return fmt.Sprintf("%d %s: %s", o.ProblemStatus(), o.ProblemTitle(), o.Detail)
}

// IsProblem reports whether the response is an RFC 7807 problem document.
func IsProblem(res *http.Response) bool {
	mt, _, err := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return mt == problems.ProblemMediaType
}

// ProblemFromBody decodes an already read problem document.  It returns nil if
// the response is not a problem or the body does not decode.
func ProblemFromBody(res *http.Response, body []byte) *ProblemError {
	if !IsProblem(res) || len(body) == 0 {
		return nil
	}

	var prob ProblemError

	if err := json.Unmarshal(body, &prob.DefaultProblem); err != nil {
		return nil
	}

	return &prob
}

func CheckResponse(res *http.Response, expected ...int) error {
	for _, exp := range expected {
		if res.StatusCode == exp {
			return nil
		}
	}

	if IsProblem(res) {
		var prob ProblemError

		if err := DecodeJSONBody(res, &prob.DefaultProblem); err != nil {
			return fmt.Errorf(
				"could not decode problem response (status %d): %w",
				res.StatusCode,
				err,
			)
		}

		return &prob
	}

	return fmt.Errorf("unexpected HTTP response code %d", res.StatusCode)
}
