package llm

import (
	"context"
	"testing"

	"slidegen/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := NewClientFromConfig(context.Background(), cfg, nil)
	assert.Error(t, err, "missing key must fail")

	cfg.LLM.APIKey = "k"
	c, err := NewClientFromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	io, ok := c.(*IONetClient)
	require.True(t, ok)
	assert.Equal(t, DefaultIONetModel, io.Model())
	assert.Equal(t, DefaultIONetBaseURL, io.baseURL)

	cfg.LLM.Provider = "openai"
	c, err = NewClientFromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	oa := c.(*IONetClient)
	assert.Equal(t, DefaultOpenAIModel, oa.Model())
	assert.Equal(t, DefaultOpenAIBaseURL, oa.baseURL)
	assert.Equal(t, ProviderOpenAI, oa.provider)

	cfg.LLM.Provider = "carrier-pigeon"
	_, err = NewClientFromConfig(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
