package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, src string) string {
	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runLox(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = execute(append([]string{"--no-color"}, args...), strings.NewReader(""), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunScript(t *testing.T) {
	path := writeScript(t, "var a = 1; { var a = a + 1; print a; } print a;")
	code, stdout, stderr := runLox(path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "2\n1\n", stdout)
	assert.Empty(t, stderr)
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		code   int
		stdout string
		stderr string
	}{
		{"static", "print 1; { var a = a; }", exitStatic, "", "own initializer"},
		{"parse", "print 1 print 2;", exitStatic, "", "expected ; after value"},
		{"lex", `print "oops;`, exitStatic, "", "unterminated string"},
		{"runtime", "print 1;\nprint -nil;", exitRuntime, "1\n", "[line 2]"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, stdout, stderr := runLox(writeScript(t, test.src))
			assert.Equal(t, test.code, code)
			assert.Equal(t, test.stdout, stdout)
			assert.Contains(t, stderr, test.stderr)
		})
	}
}

func TestMissingFile(t *testing.T) {
	code, _, stderr := runLox(filepath.Join(t.TempDir(), "missing.lox"))
	assert.Equal(t, exitIO, code)
	assert.Contains(t, stderr, "error:")
}

func TestUsage(t *testing.T) {
	code, _, _ := runLox("a.lox", "b.lox")
	assert.Equal(t, exitUsage, code)
	code, _, _ = runLox("--nope")
	assert.Equal(t, exitUsage, code)
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runLox("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "lox dev\n", stdout)
	assert.Equal(t, "0123456789", sliceVersion("0123456789abcdef"))
}

func TestASTCommand(t *testing.T) {
	path := writeScript(t, "for (;;) print 1 + 2 * 3;")
	code, stdout, _ := runLox("ast", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "while (true) print (1 + (2 * 3));\n", stdout)

	code, _, stderr := runLox("ast", writeScript(t, "var;"))
	assert.Equal(t, exitStatic, code)
	assert.Contains(t, stderr, "expected variable name")
}

func TestTokensCommand(t *testing.T) {
	path := writeScript(t, "print 1;")
	code, stdout, _ := runLox("tokens", path)
	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "1:1\t"))
	assert.True(t, strings.HasPrefix(lines[1], "1:7\t"))
}
