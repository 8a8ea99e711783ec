// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package identifier

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/momokit/provisioner/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOverride  = "123e4567-e89b-42d3-a456-426614174000"
	testPersisted = "c72025f5-5cd1-4630-99e4-8ba4722fad56"
)

func newResolver(input string) (Resolver, *bytes.Buffer) {
	var out bytes.Buffer
	return Resolver{Prompter: prompt.NewTerminal(strings.NewReader(input), &out)}, &out
}

func TestResolver_Resolve_override_kept(t *testing.T) {
	r, _ := newResolver("\n")
	r.Generate = func() uuid.UUID {
		t.Fatal("generator must not be called when an override is supplied")
		return uuid.Nil
	}

	id, err := r.Resolve(testOverride, testPersisted)
	require.NoError(t, err)
	assert.Equal(t, testOverride, id.String())
}

func TestResolver_Resolve_persisted(t *testing.T) {
	r, _ := newResolver("\n")

	id, err := r.Resolve("", testPersisted)
	require.NoError(t, err)
	assert.Equal(t, testPersisted, id.String())
}

func TestResolver_Resolve_generated(t *testing.T) {
	generated := uuid.MustParse("7d0d8e1c-8c2e-4bb1-9a8d-5d1ac1c0e9a4")

	r, out := newResolver("\n")
	r.Generate = func() uuid.UUID { return generated }

	id, err := r.Resolve("", "  ")
	require.NoError(t, err)
	assert.Equal(t, generated, id)
	assert.Contains(t, out.String(), "Generated a new client identifier")
}

func TestResolver_Resolve_default_generator(t *testing.T) {
	r, _ := newResolver("\n")

	id, err := r.Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())
}

func TestResolver_Resolve_operator_override(t *testing.T) {
	r, _ := newResolver(testPersisted + "\n")

	id, err := r.Resolve(testOverride, "")
	require.NoError(t, err)
	assert.Equal(t, testPersisted, id.String())
}

func TestResolver_Resolve_reprompts_until_valid(t *testing.T) {
	input := strings.Join([]string{"not-a-uuid", "1234", "-", testOverride}, "\n") + "\n"
	r, out := newResolver(input)

	id, err := r.Resolve("also-bad", "")
	require.NoError(t, err)
	assert.Equal(t, testOverride, id.String())
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid UUID"))
}

func TestResolver_Resolve_invalid_default_reprompted(t *testing.T) {
	r, out := newResolver("\n" + testOverride + "\n")

	id, err := r.Resolve("garbage", "")
	require.NoError(t, err)
	assert.Equal(t, testOverride, id.String())
	assert.Contains(t, out.String(), `Invalid UUID "garbage"`)
}

func TestResolver_Resolve_max_attempts(t *testing.T) {
	r, _ := newResolver("bad\nworse\n" + testOverride + "\n")
	r.MaxAttempts = 2

	_, err := r.Resolve("", "")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestResolver_Resolve_input_exhausted(t *testing.T) {
	r, _ := newResolver("bad\n")

	_, err := r.Resolve("", "")
	assert.ErrorIs(t, err, io.EOF)
}

func TestResolver_Resolve_nil_uuid_reprompted(t *testing.T) {
	r, out := newResolver("\n" + testPersisted + "\n")

	id, err := r.Resolve(uuid.Nil.String(), "")
	require.NoError(t, err)
	assert.Equal(t, testPersisted, id.String())
	assert.Contains(t, out.String(), "the nil UUID cannot be registered")
}

func TestResolver_Resolve_nil_uuid_max_attempts(t *testing.T) {
	r, _ := newResolver("\n")
	r.MaxAttempts = 1

	_, err := r.Resolve(uuid.Nil.String(), "")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestResolver_Resolve_canonical_form(t *testing.T) {
	for _, in := range []string{
		"123E4567-E89B-42D3-A456-426614174000",
		"123e4567e89b42d3a456426614174000",
		"{123e4567-e89b-42d3-a456-426614174000}",
		"urn:uuid:123e4567-e89b-42d3-a456-426614174000",
	} {
		r, _ := newResolver("\n")

		id, err := r.Resolve(in, "")
		require.NoError(t, err, in)
		assert.Equal(t, testOverride, id.String(), in)
	}
}
