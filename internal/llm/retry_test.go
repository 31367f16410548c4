package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsAfterTransientFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("flaky")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	boom := &ErrProviderUnavailable{Err: errors.New("down")}
	mock := NewMockProvider(
		MockResponse{Err: boom},
		MockResponse{Err: boom},
		MockResponse{Err: boom},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	invalid := &ErrInvalidResponse{Err: errors.New("bad shape")}
	mock := NewMockProvider(
		MockResponse{Err: invalid},
		MockResponse{Err: invalid},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetryConfig(5))

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err, "second invalid response must not be retried")
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ContextCancelNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: context.Canceled},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	_, err := p.Generate(context.Background(), Request{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_RateLimitHonorsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 2 * time.Millisecond, Err: errors.New("slow down")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
}
