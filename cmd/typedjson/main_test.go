package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/typedjson/internal/wire"
)

const doc = `{"name":"Alice","tags":{"py/set":["a","b"]},"pos":{"py/tuple":[1,2.5]},"ids":{"py/dict":[[1,"x"],[2,"y"]]}}`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeDoc(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestConvertThroughCBORFrame(t *testing.T) {
	in := writeDoc(t, "in.json", doc)
	framed := filepath.Join(t.TempDir(), "out.tj")

	_, _, err := run(t, "", "convert", in, "--to", "cbor", "--frame", "-o", framed)
	require.NoError(t, err)
	raw, err := os.ReadFile(framed)
	require.NoError(t, err)
	name, _, err := wire.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "cbor", name)

	// the frame names its format, so --from is not needed
	out, _, err := run(t, "", "convert", framed)
	require.NoError(t, err)
	assert.JSONEq(t, doc, out)

	out, _, err = run(t, "", "equal", in, framed)
	require.NoError(t, err)
	assert.Equal(t, "equal\n", out)
}

func TestConvertFromStdin(t *testing.T) {
	out, _, err := run(t, doc, "convert", "-", "--to", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "py/set")

	back, _, err := run(t, out, "convert", "-", "--from", "yaml")
	require.NoError(t, err)
	assert.JSONEq(t, doc, back)
}

func TestConvertUnknownFormat(t *testing.T) {
	_, _, err := run(t, doc, "convert", "-", "--to", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestFmt(t *testing.T) {
	out, _, err := run(t, `{"py/tuple":[1,2]}`, "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"py/tuple\": [\n    1,\n    2\n  ]\n}\n", out)

	p := writeDoc(t, "x.json", "{\n \"py/tuple\": [1, 2]\n}")
	_, _, err = run(t, "", "fmt", "--indent", "", "-w", p)
	require.NoError(t, err)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{\"py/tuple\":[1,2]}\n", string(b))
}

func TestFingerprintIgnoresCarrierAndOrder(t *testing.T) {
	a := writeDoc(t, "a.json", `{"py/set":[1,2,3]}`)
	b := writeDoc(t, "b.json", `{"py/set":[3,1,2.0]}`)
	out, _, err := run(t, "", "fingerprint", a, b)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Fields(lines[0])[0], strings.Fields(lines[1])[0])
	assert.Len(t, strings.Fields(lines[0])[0], 64)
}

func TestEqualDiffers(t *testing.T) {
	a := writeDoc(t, "a.json", `{"py/tuple":[1,2]}`)
	b := writeDoc(t, "b.json", `[1,2]`)
	_, _, err := run(t, "", "equal", a, b)
	assert.ErrorIs(t, err, errDiffer)
}

func TestAttrs(t *testing.T) {
	p := writeDoc(t, "worm.json", `[["name","Alice"],["age",30],["tags",{"py/set":["a"]}],["pos",{"py/tuple":[1,2]}]]`)
	out, _, err := run(t, "", "attrs", p)
	require.NoError(t, err)
	assert.Equal(t, "name\tstring\nage\tnumber\ntags\tset\npos\ttuple\n", out)
}

func TestFormats(t *testing.T) {
	out, _, err := run(t, "", "formats")
	require.NoError(t, err)
	for _, n := range []string{"bson", "cbor", "json", "msgpack", "protobuf", "yaml"} {
		assert.Contains(t, out, n+"\n")
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	_, errOut, err := run(t, doc, "-v", "convert", "-", "--to", "msgpack")
	require.NoError(t, err)
	assert.Contains(t, errOut, "typedjson.cli.converted")
}
