// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTOML = `
environment = "staging"
protected_environments = ["production", "live"]
product = "disbursement"
api_user_uri = "https://momo.example/v1_0/apiuser"

[products.disbursement]
subscription_key = "disb-key"
callback_uri = "https://example.com/disb"
`

const testYAML = `
environment: staging
product: remittance
products:
  remittance:
    id: 123e4567-e89b-42d3-a456-426614174000
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettings_defaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_toml(t *testing.T) {
	s, err := LoadSettings(writeFile(t, "momo.toml", testTOML))
	require.NoError(t, err)

	assert.Equal(t, "staging", s.Environment)
	assert.Equal(t, []string{"production", "live"}, s.ProtectedEnvironments)
	assert.Equal(t, "disbursement", s.Product)
	assert.Equal(t, "https://momo.example/v1_0/apiuser", s.APIUserURI)
	assert.Equal(t, "disb-key", s.Products["disbursement"].SubscriptionKey)
}

func TestLoadSettings_yaml(t *testing.T) {
	s, err := LoadSettings(writeFile(t, "momo.yaml", testYAML))
	require.NoError(t, err)

	assert.Equal(t, "remittance", s.Product)
	assert.Equal(t, DefaultAPIUserURI, s.APIUserURI)
	assert.Equal(t, "123e4567-e89b-42d3-a456-426614174000", s.Products["remittance"].ID)
}

func TestLoadSettings_unknown_key(t *testing.T) {
	_, err := LoadSettings(writeFile(t, "momo.toml", "colour = \"blue\"\n"))
	assert.ErrorContains(t, err, "has invalid keys: colour")
}

func TestLoadSettings_bad_format(t *testing.T) {
	_, err := LoadSettings(writeFile(t, "momo.json", "{}"))
	assert.ErrorContains(t, err, `unsupported settings format ".json"`)

	_, err = LoadSettings(writeFile(t, "momo.toml", "product = \n"))
	assert.ErrorContains(t, err, "TOML parse error")

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "reading settings")
}

func TestSettings_Flatten(t *testing.T) {
	s, err := LoadSettings(writeFile(t, "momo.toml", testTOML))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"ENVIRONMENT":                   "staging",
		"PROTECTED_ENVIRONMENTS":        "production,live",
		"PRODUCT":                       "disbursement",
		"API_USER_URI":                  "https://momo.example/v1_0/apiuser",
		"DISBURSEMENT_SUBSCRIPTION_KEY": "disb-key",
		"DISBURSEMENT_CALLBACK_URI":     "https://example.com/disb",
	}, s.Flatten())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "COLLECTION_ID", ProductKey("collection", SuffixID))
	assert.Equal(t, "COLLECTION_WIDGETS_CALLBACK_URI", ProductKey(" collection-widgets ", SuffixCallbackURI))

	assert.Equal(t, "APP_ENV", EnvName(KeyEnvironment))
	assert.Equal(t, "MOMO_COLLECTION_ID", EnvName("COLLECTION_ID"))

	key, ok := KeyForEnv("MOMO_COLLECTION_ID")
	assert.True(t, ok)
	assert.Equal(t, "COLLECTION_ID", key)

	key, ok = KeyForEnv("APP_ENV")
	assert.True(t, ok)
	assert.Equal(t, KeyEnvironment, key)

	_, ok = KeyForEnv("HOME")
	assert.False(t, ok)

	_, ok = KeyForEnv("MOMO_")
	assert.False(t, ok)
}

func TestLoad_precedence(t *testing.T) {
	settings := writeFile(t, "momo.toml", testTOML)
	envFile := writeFile(t, ".env", "MOMO_PRODUCT=collection\nMOMO_COLLECTION_ID=c72025f5-5cd1-4630-99e4-8ba4722fad56\nAPP_ENV=qa\n")

	store, err := Load(LoadOptions{
		SettingsPath: settings,
		EnvFilePath:  envFile,
		Environ:      []string{"APP_ENV=production", "PATH=/usr/bin"},
	})
	require.NoError(t, err)

	assert.Equal(t, "collection", store.Get(KeyProduct))
	assert.Equal(t, "c72025f5-5cd1-4630-99e4-8ba4722fad56", store.Get("COLLECTION_ID"))
	assert.Equal(t, "production", store.Get(KeyEnvironment))
	assert.Equal(t, "https://momo.example/v1_0/apiuser", store.Get(KeyAPIUserURI))
	assert.Equal(t, "", store.Get("PATH"))
}

func TestStore_Set(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")

	store, err := Load(LoadOptions{EnvFilePath: envFile})
	require.NoError(t, err)

	require.NoError(t, store.Set("MOMO_COLLECTION_ID", "123e4567-e89b-42d3-a456-426614174000"))
	require.NoError(t, store.Set("MOMO_COLLECTION_CALLBACK_URI", "https://example.com/cb"))

	assert.Equal(t, "123e4567-e89b-42d3-a456-426614174000", store.Get("COLLECTION_ID"))
	assert.Equal(t, "https://example.com/cb", store.Get("COLLECTION_CALLBACK_URI"))

	onDisk, err := godotenv.Read(envFile)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"MOMO_COLLECTION_ID":           "123e4567-e89b-42d3-a456-426614174000",
		"MOMO_COLLECTION_CALLBACK_URI": "https://example.com/cb",
	}, onDisk)

	err = store.Set("HOME", "/tmp")
	assert.EqualError(t, err, "HOME is not a provisioner variable")
}

func TestStore_SetLive(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")

	store, err := Load(LoadOptions{EnvFilePath: envFile})
	require.NoError(t, err)

	store.SetLive("MOMO_COLLECTION_ID", "123e4567-e89b-42d3-a456-426614174000")
	assert.Equal(t, "123e4567-e89b-42d3-a456-426614174000", store.Get("COLLECTION_ID"))

	_, err = os.Stat(envFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvFile_Set_preserves_existing(t *testing.T) {
	path := writeFile(t, ".env", "APP_NAME=shop\nMOMO_PRODUCT=collection\n")

	f, err := OpenEnvFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("MOMO_PRODUCT", "remittance"))

	onDisk, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"APP_NAME": "shop", "MOMO_PRODUCT": "remittance"}, onDisk)
}

func TestEnvFile_Set_write_failure(t *testing.T) {
	f, err := OpenEnvFile(filepath.Join(t.TempDir(), "missing-dir", ".env"))
	require.NoError(t, err)

	err = f.Set("MOMO_PRODUCT", "collection")
	assert.ErrorContains(t, err, "writing env file")
	assert.Empty(t, f.Values())
}

func TestEnvFile_Set_keeps_other_lines(t *testing.T) {
	original := "# app settings\n" +
		"DB_PASSWORD=pa$word\n" +
		"DB_URL=postgres://${DB_USER}@db/app\n" +
		"\n" +
		"export APP_KEY='lit$eral'\n" +
		"MOMO_COLLECTION_ID=old\n"
	path := writeFile(t, ".env", original)

	f, err := OpenEnvFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("MOMO_COLLECTION_ID", "123e4567-e89b-42d3-a456-426614174000"))
	require.NoError(t, f.Set("MOMO_COLLECTION_SECRET", "f1db798c98df4bcf83b538175893bbf0"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# app settings\n"+
		"DB_PASSWORD=pa$word\n"+
		"DB_URL=postgres://${DB_USER}@db/app\n"+
		"\n"+
		"export APP_KEY='lit$eral'\n"+
		`MOMO_COLLECTION_ID="123e4567-e89b-42d3-a456-426614174000"`+"\n"+
		`MOMO_COLLECTION_SECRET="f1db798c98df4bcf83b538175893bbf0"`+"\n",
		string(content))

	assert.Equal(t, "123e4567-e89b-42d3-a456-426614174000", f.Values()["MOMO_COLLECTION_ID"])
}

func TestEnvFile_SetAll_single_update(t *testing.T) {
	path := writeFile(t, ".env", "APP_NAME=shop\n")

	f, err := OpenEnvFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetAll(map[string]string{
		"MOMO_COLLECTION_ID":           "123e4567-e89b-42d3-a456-426614174000",
		"MOMO_COLLECTION_CALLBACK_URI": "https://example.com/cb",
	}))

	onDisk, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"APP_NAME":                     "shop",
		"MOMO_COLLECTION_ID":           "123e4567-e89b-42d3-a456-426614174000",
		"MOMO_COLLECTION_CALLBACK_URI": "https://example.com/cb",
	}, onDisk)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEnvFile_SetAll_multiline_target(t *testing.T) {
	original := "MOMO_COLLECTION_ID=\"first\nsecond\"\nAPP_NAME=shop\n"
	path := writeFile(t, ".env", original)

	f, err := OpenEnvFile(path)
	require.NoError(t, err)

	err = f.SetAll(map[string]string{
		"APP_NAME":           "store",
		"MOMO_COLLECTION_ID": "123e4567-e89b-42d3-a456-426614174000",
	})
	assert.ErrorContains(t, err, "MOMO_COLLECTION_ID holds a multi-line value")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
	assert.Equal(t, "shop", f.Values()["APP_NAME"])
}

func TestEnvFile_Set_creates_private_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	f, err := OpenEnvFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("MOMO_COLLECTION_SECRET", "f1db798c98df4bcf83b538175893bbf0"))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestEnvFile_Set_keeps_existing_mode(t *testing.T) {
	path := writeFile(t, ".env", "APP_NAME=shop\n")
	require.NoError(t, os.Chmod(path, 0o640))

	f, err := OpenEnvFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("MOMO_PRODUCT", "collection"))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())
}

func TestStore_SetAll_rejects_foreign_name(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")

	store, err := Load(LoadOptions{EnvFilePath: envFile})
	require.NoError(t, err)

	err = store.SetAll(map[string]string{
		"MOMO_COLLECTION_ID": "123e4567-e89b-42d3-a456-426614174000",
		"HOME":               "/tmp",
	})
	assert.EqualError(t, err, "HOME is not a provisioner variable")
	assert.Equal(t, "", store.Get("COLLECTION_ID"))

	_, err = os.Stat(envFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
