package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/token"
)

const teamJSON = `[
  {"name": "Alice", "icon": "https://example.com/a.png", "social": "@alice"},
  {"name": "Bob", "icon": "b.png"}
]`

var team = []card.Card{
	{Name: "Alice", Icon: "https://example.com/a.png", Social: "@alice"},
	{Name: "Bob", Icon: "b.png"},
}

func init() {
	colorize.NoColor = true
}

// resetFlags restores every flag of c and its children to its default so
// state does not leak between runs of the shared command tree.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

// run executes the CLI with isolated XDG directories and returns its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { resetFlags(RootCmd) })

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)

	err := Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "", "decode", token.Encode(team))
	require.NoError(t, err)

	want, err := card.MarshalIndent(team)
	require.NoError(t, err)
	assert.Equal(t, string(want)+"\n", out)
}

func TestDecodeCommandMalformed(t *testing.T) {
	_, err := run(t, "", "decode", "invalid-base64!!")
	assert.ErrorIs(t, err, token.ErrMalformed)
}

func TestShareTokenFromStdin(t *testing.T) {
	out, err := run(t, teamJSON, "share", "-", "--token")
	require.NoError(t, err)
	assert.Equal(t, token.Encode(team)+"\n", out)
}

func TestShareURLAndCopy(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	out, err := run(t, teamJSON, "share", "-", "--base-url", "https://cards.example/", "--copy")
	require.NoError(t, err)

	first := strings.SplitN(out, "\n", 2)[0]
	assert.True(t, strings.HasPrefix(first, "https://cards.example/?data="), first)
	assert.Equal(t, first, copied)

	cards, err := token.FromURL(first)
	require.NoError(t, err)
	assert.Equal(t, team, cards)
}

func TestShareRejectsEmptyList(t *testing.T) {
	_, err := run(t, "[]", "share", "-")
	assert.EqualError(t, err, "no cards to share")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, `[{"name":"A|B","icon":"x.png"}]`, "validate", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "'stdin' is valid: 1 cards on 1 pages.")
	assert.Contains(t, out, "Warnings:")

	out, err = run(t, `[{"icon":"x.png"}]`, "validate", "-")
	assert.EqualError(t, err, "validation failed")
	assert.Contains(t, out, `1. element 1 is missing "name"`)
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, teamJSON, "render", "-")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, `<div class="page"`))
	assert.Contains(t, out, "Alice")

	out, err = run(t, "", "render", "--data", token.Encode(team), "--page", "3")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, `<div class="page"`))
	assert.Contains(t, out, "Bob")
}

func TestRenderCommandToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "team.json")
	require.NoError(t, os.WriteFile(input, []byte(teamJSON), 0644))
	outPath := filepath.Join(dir, "team.html")

	_, err := run(t, "", "render", input, "-o", outPath, "--auto-print")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "window.print()")
}

type failingCloser struct {
	bytes.Buffer
}

func (f *failingCloser) Close() error {
	return errors.New("disk full")
}

func TestRenderCommandReportsCloseError(t *testing.T) {
	file := &failingCloser{}
	orig := createOutput
	createOutput = func(string) (io.WriteCloser, error) {
		return file, nil
	}
	t.Cleanup(func() { createOutput = orig })

	_, err := run(t, teamJSON, "render", "-", "-o", "team.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error writing output file: disk full")
	assert.Contains(t, file.String(), "Alice")
}

func TestShowAlignsWideNames(t *testing.T) {
	input := `[{"name": "山田 太郎", "icon": "t.png", "social": "@太郎"}, {"name": "Bob", "icon": "b.png"}]`
	out, err := run(t, input, "show", "-", "--width", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "山田 太郎")

	var widths []int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") || strings.HasPrefix(line, "+") {
			widths = append(widths, runewidth.StringWidth(line))
		}
	}
	require.NotEmpty(t, widths)
	for _, w := range widths {
		assert.Equal(t, 39, w)
	}
}

func TestTruncateWide(t *testing.T) {
	got := truncate("太郎太郎太郎", 5)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 5)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, "Bob", truncate("Bob", 5))
}

func TestShowDefaultsToSample(t *testing.T) {
	out, err := run(t, "", "show", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1/2")
	assert.Contains(t, out, "Page 2/2")
	assert.Contains(t, out, "Felix")
	assert.Contains(t, out, "@jasmine")
}

func TestSetCommands(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { resetFlags(RootCmd) })

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)

	RootCmd.SetArgs([]string{"set", "ls"})
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, out.String(), "does not exist")

	RootCmd.SetArgs([]string{"set", "init"})
	require.NoError(t, RootCmd.Execute())

	out.Reset()
	RootCmd.SetArgs([]string{"set", "ls"})
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, out.String(), "* sample (9 cards) [DEFAULT]")

	teamPath := filepath.Join(os.Getenv("XDG_DATA_HOME"), "namecards", "sets", "team.json")
	require.NoError(t, os.WriteFile(teamPath, []byte(teamJSON), 0644))

	RootCmd.SetArgs([]string{"set", "set-default", "team"})
	require.NoError(t, RootCmd.Execute())

	out.Reset()
	RootCmd.SetArgs([]string{"set", "ls"})
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, out.String(), "  sample (9 cards)")
	assert.Contains(t, out.String(), "* team (2 cards) [DEFAULT]")

	out.Reset()
	RootCmd.SetArgs([]string{"share", "--token"})
	require.NoError(t, RootCmd.Execute())
	assert.Equal(t, token.Encode(team)+"\n", out.String())
}
