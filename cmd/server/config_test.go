package main

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestLoadSpecDefaults(t *testing.T) {
	spec, err := loadSpec()
	assert.NilError(t, err)
	assert.Equal(t, 8000, spec.Port)
	assert.Equal(t, int64(1048576), spec.MaxBodyBytes)
	assert.Equal(t, 0, spec.MaxConnections)
	assert.Equal(t, 5*time.Second, spec.RequestTimeout)
	assert.Equal(t, "", spec.DbFile)
	assert.Equal(t, "info", spec.LogLevel)
}

func TestLoadSpecEnvironment(t *testing.T) {
	t.Setenv("MDCONVERT_PORT", "9001")
	t.Setenv("MDCONVERT_MAXBODYBYTES", "4096")
	t.Setenv("MDCONVERT_REQUESTTIMEOUT", "250ms")
	t.Setenv("MDCONVERT_LOGLEVEL", "debug")

	spec, err := loadSpec()
	assert.NilError(t, err)
	assert.Equal(t, 9001, spec.Port)
	assert.Equal(t, int64(4096), spec.MaxBodyBytes)
	assert.Equal(t, 250*time.Millisecond, spec.RequestTimeout)
	assert.Equal(t, "debug", spec.LogLevel)
}

func TestLoadSpecInvalid(t *testing.T) {
	tests := []struct {
		env, value, field string
	}{
		{"MDCONVERT_PORT", "70000", "Port"},
		{"MDCONVERT_MAXCONNECTIONS", "-1", "MaxConnections"},
		{"MDCONVERT_LOGLEVEL", "loud", "LogLevel"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := loadSpec()
			assert.ErrorContains(t, err, tt.field)
		})
	}

	t.Run("unparseable", func(t *testing.T) {
		t.Setenv("MDCONVERT_PORT", "eighty")
		_, err := loadSpec()
		assert.ErrorContains(t, err, "error reading environment variables")
	})
}

func TestServeShutdown(t *testing.T) {
	spec := testSpec()
	spec.Host = "127.0.0.1"
	spec.Port = 0
	spec.MaxConnections = 4

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NilError(t, serve(ctx, spec, http.NotFoundHandler()))
}

func TestServePortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NilError(t, err)
	defer ln.Close()

	spec := testSpec()
	spec.Host = "127.0.0.1"
	spec.Port = ln.Addr().(*net.TCPAddr).Port
	err = serve(context.Background(), spec, http.NotFoundHandler())
	assert.ErrorContains(t, err, strconv.Itoa(spec.Port))
}
