package eval_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/eval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fixture is one script in a testdata/*.yaml file. A script either
// runs cleanly, fails at runtime, or is rejected statically.
type fixture struct {
	Name         string `yaml:"name"`
	Source       string `yaml:"source"`
	Output       string `yaml:"output"`
	RuntimeError string `yaml:"runtime_error"`
	StaticError  string `yaml:"static_error"`
}

func loadFixtures(path string) ([]fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: open %s: %w", path, err)
	}
	defer file.Close()

	var fixtures []fixture
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("fixtures: parse %s: %w", path, err)
	}
	return fixtures, nil
}

func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		fixtures, err := loadFixtures(path)
		require.NoError(t, err)
		group := strings.TrimSuffix(filepath.Base(path), ".yaml")
		for _, fx := range fixtures {
			t.Run(group+"/"+fx.Name, func(t *testing.T) {
				runFixture(t, fx)
			})
		}
	}
}

func runFixture(t *testing.T, fx fixture) {
	var out bytes.Buffer
	s := eval.NewSession(fx.Name, &out, nil)
	_, errs := s.Run(fx.Source)

	switch {
	case fx.StaticError != "":
		require.NotEmpty(t, errs, "expected a static error")
		assert.Empty(t, out.String(), "nothing runs after a static error")
		found := false
		for _, err := range errs {
			var rerr *eval.RuntimeError
			require.False(t, errors.As(err, &rerr), "unexpected runtime error: %v", err)
			if strings.Contains(err.Error(), fx.StaticError) {
				found = true
			}
		}
		assert.True(t, found, "no error contains %q: %v", fx.StaticError, errs)
	case fx.RuntimeError != "":
		require.Len(t, errs, 1)
		var rerr *eval.RuntimeError
		require.True(t, errors.As(errs[0], &rerr), "expected a runtime error, got: %v", errs[0])
		assert.Equal(t, fx.RuntimeError, rerr.Message)
		assert.Equal(t, fx.Output, out.String())
	default:
		require.Empty(t, errs)
		assert.Equal(t, fx.Output, out.String())
	}
}
