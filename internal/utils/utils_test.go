package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURLIsDeterministicAndNormalized(t *testing.T) {
	a := GravatarURL("ada@example.com")
	b := GravatarURL("  ADA@Example.COM ")

	assert.Equal(t, a, b)
	assert.Contains(t, a, "https://www.gravatar.com/avatar/")
	assert.Contains(t, a, "s=200&r=pg&d=mm")

	assert.NotEqual(t, a, GravatarURL("bob@example.com"))
}

func TestAppErrorToHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrNotFound:           404,
		ErrUserNotFound:       404,
		ErrInvalidInput:       400,
		ErrInvalidCredentials: 400,
		ErrUserAlreadyExists:  400,
		ErrAlreadyLiked:       400,
		ErrNotLiked:           400,
		ErrNoProfile:          400,
		ErrInvalidEntry:       400,
		ErrUnauthorized:       401,
		ErrInvalidToken:       401,
		ErrDatabase:           500,
		ErrUpstream:           500,
		"SOMETHING_UNKNOWN":   500,
	}

	for code, want := range cases {
		assert.Equal(t, want, AppErrorToHTTPStatus(code), code)
	}
}

func TestAppErrorMessage(t *testing.T) {
	plain := NewAppError(ErrNotFound, "Post not found", nil)
	assert.Equal(t, "Post not found", plain.Error())

	wrapped := NewAppError(ErrDatabase, "query failed", errors.New("boom"))
	assert.Equal(t, "query failed: boom", wrapped.Error())

	assert.True(t, IsErrorCode(plain, ErrNotFound))
	assert.False(t, IsErrorCode(plain, ErrDatabase))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrNotFound))
}

func TestMetricsCollector(t *testing.T) {
	mc := NewMetricsCollector()

	mc.IncrementRequests()
	mc.IncrementRequests()
	mc.IncrementErrors()
	mc.AddOperationLatency("GET /posts", 10*time.Millisecond)
	mc.AddOperationLatency("GET /posts", 30*time.Millisecond)

	assert.Equal(t, uint64(2), mc.RequestCount())
	assert.Equal(t, uint64(1), mc.ErrorCount())
	assert.Equal(t, 20*time.Millisecond, mc.AverageLatency("GET /posts"))
	assert.Equal(t, time.Duration(0), mc.AverageLatency("never-seen"))
	assert.GreaterOrEqual(t, mc.Uptime(), time.Duration(0))
}
