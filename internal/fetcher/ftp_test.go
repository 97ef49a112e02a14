package fetcher

import (
	"context"
	"net"
	"net/textproto"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFTPURL(t *testing.T) {
	host, path, err := parseFTPURL("ftp://data.example.gov/exports/liens.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "data.example.gov:21", host)
	assert.Equal(t, "/exports/liens.xlsx", path)

	host, _, err = parseFTPURL("ftp://data.example.gov:2121/exports/")
	require.NoError(t, err)
	assert.Equal(t, "data.example.gov:2121", host)

	_, _, err = parseFTPURL("https://example.com/file.xlsx")
	assert.Error(t, err)

	_, _, err = parseFTPURL("ftp://example.com")
	assert.Error(t, err)
}

func TestIsTransientFTP(t *testing.T) {
	assert.True(t, isTransientFTP(&textproto.Error{Code: 421, Msg: "service not available"}))
	assert.True(t, isTransientFTP(&textproto.Error{Code: 450, Msg: "file busy"}))
	assert.False(t, isTransientFTP(&textproto.Error{Code: 550, Msg: "no such file"}))
	assert.False(t, isTransientFTP(eris.New("parse failure")))

	assert.True(t, isTransientFTP(&net.OpError{Op: "dial", Err: context.DeadlineExceeded}))

	// wrapped errors still match
	wrapped := eris.Wrap(&textproto.Error{Code: 425, Msg: "cannot open data connection"}, "fetcher: retrieve")
	assert.True(t, isTransientFTP(wrapped))
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		Multiplier:     1.0,
	}
}

func TestRetryDoRecoversFromTransientError(t *testing.T) {
	calls := 0
	err := retryDo(context.Background(), fastRetry(3), "test", func() error {
		calls++
		if calls < 3 {
			return &textproto.Error{Code: 421, Msg: "busy"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryDoStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := retryDo(context.Background(), fastRetry(3), "test", func() error {
		calls++
		return &textproto.Error{Code: 550, Msg: "no such file"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := retryDo(context.Background(), fastRetry(3), "test", func() error {
		calls++
		return &textproto.Error{Code: 421, Msg: "busy"}
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryDoHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retryDo(ctx, fastRetry(5), "test", func() error {
		calls++
		cancel()
		return &textproto.Error{Code: 421, Msg: "busy"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
