package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		key   string
		want  string
		noObj bool
	}{
		{"plain", `{"title": "Go"}`, "title", "Go", false},
		{"line breaks", "{\n\"title\":\r\n \"Go\"\n}", "title", "Go", false},
		{"wrapped in prose", `Sure! Here it is: {"title": "Go"} Enjoy.`, "title", "Go", false},
		{"fenced", "```json\n{\"title\": \"Go\"}\n```", "title", "Go", false},
		{"no braces", "nothing here", "", "", true},
		{"broken", `{"title": }`, "", "", true},
		{"array only", `["a"]`, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ParseObject(tt.in)
			if tt.noObj {
				assert.ErrorIs(t, err, ErrNoJSON)
				return
			}
			require.NoError(t, err)
			got, ok := String(obj, tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessors(t *testing.T) {
	obj, err := ParseObject(`{"titles": ["a", 2, "b"], "n": 3, "success": true}`)
	require.NoError(t, err)

	titles, ok := Strings(obj, "titles")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, titles)

	_, ok = Strings(obj, "n")
	assert.False(t, ok)
	_, ok = String(obj, "n")
	assert.False(t, ok)
	_, ok = String(obj, "missing")
	assert.False(t, ok)

	b, ok := Bool(obj, "success")
	assert.True(t, ok)
	assert.True(t, b)
}

func TestVerifyKey(t *testing.T) {
	reply := func(s string, err error) Client {
		return ClientFunc(func(ctx context.Context, req Request) (string, error) { return s, err })
	}

	ok, err := VerifyKey(context.Background(), reply(`{"success": true}`, nil))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyKey(context.Background(), reply(`Success: true`, nil))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyKey(context.Background(), reply(`{"success": false}`, nil))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyKey(context.Background(), reply("", ErrInvalidAPIKey))
	require.NoError(t, err)
	assert.False(t, ok)

	boom := errors.New("network down")
	_, err = VerifyKey(context.Background(), reply("", boom))
	assert.ErrorIs(t, err, boom)
}
