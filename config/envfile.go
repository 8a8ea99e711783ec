// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// envFileMode is the permission of env files created by the provisioner.
const envFileMode fs.FileMode = 0o600

// EnvFile is the durable key/value store backed by a dotenv file.
//
// Updates only touch the assignments of the variables being set: comments,
// blank lines, ordering and the raw text of every other entry (including
// ${VAR} references) are written back as read.
type EnvFile struct {
	Path string

	mu     sync.Mutex
	lines  []string
	mode   fs.FileMode
	values map[string]string
}

// OpenEnvFile reads the dotenv file at path. A missing file yields an empty
// store that is created on the first Set.
func OpenEnvFile(path string) (*EnvFile, error) {
	f := &EnvFile{Path: path, mode: envFileMode, values: map[string]string{}}

	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading env file %s: %w", path, err)
		}
		return f, nil
	}

	values, err := godotenv.UnmarshalBytes(content)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	if fi, err := os.Stat(path); err == nil {
		f.mode = fi.Mode().Perm()
	}

	f.values = values
	f.lines = splitLines(string(content))

	return f, nil
}

// Values returns a copy of the stored variables.
func (o *EnvFile) Values() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()

	m := make(map[string]string, len(o.values))
	for k, v := range o.values {
		m[k] = v
	}
	return m
}

// Set stores name=value in the file.
func (o *EnvFile) Set(name, value string) error {
	return o.SetAll(map[string]string{name: value})
}

// SetAll stores every entry of values with a single file update. Either all
// entries reach the disk or none does.
func (o *EnvFile) SetAll(values map[string]string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	lines, err := assign(o.lines, values)
	if err != nil {
		return fmt.Errorf("writing env file %s: %w", o.Path, err)
	}

	if err := writeAtomic(o.Path, joinLines(lines), o.mode); err != nil {
		return fmt.Errorf("writing env file %s: %w", o.Path, err)
	}

	o.lines = lines
	for k, v := range values {
		o.values[k] = v
	}

	return nil
}

// assign returns a copy of lines where the assignments of the names in values
// are replaced, and missing names are appended in sorted order.
func assign(lines []string, values map[string]string) ([]string, error) {
	rendered := make(map[string]string, len(values))
	for name, v := range values {
		line, err := godotenv.Marshal(map[string]string{name: v})
		if err != nil {
			return nil, err
		}
		rendered[name] = line
	}

	out := make([]string, 0, len(lines)+len(values))
	seen := map[string]bool{}

	var quote byte
	for _, line := range lines {
		if quote != 0 {
			// continuation of a multi-line quoted value
			if closesQuote(line, quote) {
				quote = 0
			}
			out = append(out, line)
			continue
		}

		name, value, ok := parseAssignment(line)
		if !ok {
			out = append(out, line)
			continue
		}

		quote = openQuote(value)

		if r, found := rendered[name]; found {
			if quote != 0 {
				return nil, fmt.Errorf("%s holds a multi-line value", name)
			}
			seen[name] = true
			out = append(out, r)
			continue
		}

		out = append(out, line)
	}

	var missing []string
	for name := range rendered {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	for _, name := range missing {
		out = append(out, rendered[name])
	}

	return out, nil
}

// parseAssignment splits a NAME=value (or NAME: value) line, ignoring an
// optional export prefix.
func parseAssignment(line string) (name, value string, ok bool) {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return "", "", false
	}

	s = strings.TrimPrefix(s, "export ")

	i := strings.IndexAny(s, "=:")
	if i <= 0 {
		return "", "", false
	}

	name = strings.TrimSpace(s[:i])
	if strings.ContainsAny(name, " \t") {
		return "", "", false
	}

	return name, strings.TrimSpace(s[i+1:]), true
}

// openQuote returns the quote character of a value that continues on the
// next line, or 0.
func openQuote(value string) byte {
	if value == "" || (value[0] != '"' && value[0] != '\'') {
		return 0
	}

	q := value[0]
	if closesQuote(value[1:], q) {
		return 0
	}
	return q
}

func closesQuote(s string, q byte) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if q == '"' {
				i++
			}
		case q:
			return true
		}
	}
	return false
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// writeAtomic replaces path with content through a temporary file in the
// same directory.
func writeAtomic(path string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
