package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFacts(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(c *cobra.Command, args ...string) (string, error) {
	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestUnifyCmd(t *testing.T) {
	testCases := []struct {
		name     string
		facts    string
		flags    []string
		expected string
		err      string
	}{
		{
			name: "records are merged",
			facts: `
facts:
  - record: {a: u32, b: unknown}
  - record: {b: string, c: bool}
`,
			expected: "record{a: u32, b: string, c: bool}\n",
		},
		{
			name: "yaml output",
			facts: `
facts:
  - option: unknown
  - list: char
`,
			flags:    []string{"--yaml"},
			expected: "option:\n    list: char\n",
		},
		{
			name: "numeric ambiguity is reported",
			facts: `
facts: [u32, u64]
`,
			err: "could not unify all-of(u32 & u64):\n  cannot be all-of(u32 & u64)",
		},
		{
			name: "numeric ambiguity passes the check",
			facts: `
facts: [u32, u64]
`,
			flags:    []string{"--check"},
			expected: "all-of(u32 & u64)\n",
		},
		{
			name: "contradicting facts",
			facts: `
facts: [string, bool]
`,
			flags: []string{"--check"},
			err:   "could not unify all-of(string & bool):\n  type mismatch: inferred to be both string and bool",
		},
		{
			name:  "no facts",
			facts: "facts: []\n",
			err:   "no facts found in",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFacts(t, tc.facts)
			args := append([]string{"--check=false", "--yaml=false"}, tc.flags...)
			out, err := execute(UnifyCmd, append(args, path)...)
			if tc.err != "" {
				assert.ErrorContains(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestUnifyCmdMissingFile(t *testing.T) {
	_, err := execute(UnifyCmd, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "could not read facts")
}

func TestCheckCmd(t *testing.T) {
	path := writeFacts(t, `
facts:
  - one-of: [u8, u16]
  - record: {a: u8}
  - all-of: [u8, string]
`)
	out, err := execute(CheckCmd, path)
	assert.EqualError(t, err, "1 of 3 types failed to type check")
	assert.Equal(t, ""+
		"0: one-of(u8 | u16): ok, unresolved: cannot resolve one-of(u8 | u16)\n"+
		"1: record{a: u8}: ok\n"+
		"2: all-of(u8 & string): incompatible types: all-of(u8 & string), unresolved: cannot be all-of(u8 & string)\n",
		out)
}
