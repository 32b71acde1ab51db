package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"

	"github.com/unkn0wn-root/typedjson"
)

func TestLoggerSortsFieldsAndHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo})
	l := Logger{L: stdslog.New(h)}
	f := typedjson.Fields{"size": 3, "key_hash": "abc", "format": "json"}

	l.Debug("dropped", f)
	assert.Empty(t, buf.String())

	l.Info("typedjson.store.loaded", f)
	line := buf.String()
	assert.Contains(t, line, "msg=typedjson.store.loaded")
	assert.Less(t, strings.Index(line, "format="), strings.Index(line, "key_hash="))
	assert.Less(t, strings.Index(line, "key_hash="), strings.Index(line, "size="))
}

func TestLoggerWithSlogt(t *testing.T) {
	l := Logger{L: slogt.New(t)}
	l.Warn("typedjson.store.save_failed", typedjson.Fields{"key_hash": "abc"})
	l.Error("typedjson.store.decode_failed", nil)
}
