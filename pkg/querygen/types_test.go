package querygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryType(t *testing.T) {
	tests := []struct {
		in   string
		want QueryType
	}{
		{"", QueryTypeQuery},
		{"query", QueryTypeQuery},
		{"Mutation", QueryTypeMutation},
		{" SUBSCRIPTION ", QueryTypeSubscription},
	}
	for _, tt := range tests {
		got, err := ParseQueryType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseQueryType("fragment")
	assert.ErrorContains(t, err, "fragment")
}

func TestParseNullGenerationStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want NullGenerationStrategy
	}{
		{"", NeverNull},
		{"never_null", NeverNull},
		{"Always_Null", AlwaysNull},
		{"SOMETIMES_NULL", SometimesNull},
	}
	for _, tt := range tests {
		got, err := ParseNullGenerationStrategy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseNullGenerationStrategy("MAYBE")
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, QueryTypeQuery, cfg.QueryType)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, NeverNull, cfg.NullGenerationStrategy)
}
