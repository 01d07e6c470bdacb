package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcbilson/mdconvert/usage"
	"gotest.tools/assert"
)

func TestReport(t *testing.T) {
	dbfile := filepath.Join(t.TempDir(), "usage.db")
	db, err := usage.NewRepo(dbfile)
	assert.NilError(t, err)
	ctx := context.Background()
	assert.NilError(t, db.Record(ctx, usage.Usage{Mode: "html", LengthIn: 8, LengthOut: 21}))
	assert.NilError(t, db.Record(ctx, usage.Usage{Mode: "text", LengthIn: 8, LengthOut: 4}))
	db.Close()

	var stdout, stderr bytes.Buffer
	assert.NilError(t, run([]string{"--db", dbfile}, &stdout, &stderr))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, 3, len(lines))
	assert.DeepEqual(t, []string{"MODE", "CONVERSIONS", "LENGTH", "IN", "LENGTH", "OUT"}, strings.Fields(lines[0]))
	assert.DeepEqual(t, []string{"html", "1", "8", "21"}, strings.Fields(lines[1]))
	assert.DeepEqual(t, []string{"text", "1", "8", "4"}, strings.Fields(lines[2]))
}

func TestMissingDatabase(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(nil, &stdout, &stderr)
	assert.ErrorContains(t, err, "--db is required")

	err = run([]string{"--db", filepath.Join(t.TempDir(), "none.db")}, &stdout, &stderr)
	assert.Assert(t, os.IsNotExist(err))
}
