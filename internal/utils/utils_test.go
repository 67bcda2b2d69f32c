package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"single", []string{"root"}, "root"},
		{"nested", []string{"root", "src", "App.js"}, "root/src/App.js"},
		{"strips slashes", []string{"/root/", "/src/"}, "root/src"},
		{"drops empty", []string{"root", "", "a"}, "root/a"},
		{"nothing", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPath(tt.parts...))
		})
	}
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitPath("a//b/./c/"))
	assert.Equal(t, []string{"a", "b"}, SplitPath(`a\b`))
	assert.Empty(t, SplitPath("/"))
	assert.Equal(t, "c", BaseName("a/b/c"))
	assert.Equal(t, "", BaseName(""))
}

func TestDataURI(t *testing.T) {
	uri := EncodeDataURI("text/plain", []byte("hello"))
	assert.Equal(t, "data:text/plain;base64,aGVsbG8=", uri)

	mimeType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, "hello", string(data))

	assert.Contains(t, EncodeDataURI("", nil), "application/octet-stream")

	for _, bad := range []string{"hello", "data:text/plain;base64", "data:text/plain,abc", "data:text/plain;base64,!!"} {
		_, _, err := DecodeDataURI(bad)
		assert.True(t, errors.Is(err, ErrInvalidDataURI), bad)
	}
}
