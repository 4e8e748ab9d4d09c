package zease

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zigrok/zease/store"
)

// TestOptions_Validate covers the accepted and rejected configurations.
func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "zero value", opts: Options{}},
		{name: "locked", opts: Options{Engine: EngineLocked}},
		{name: "sharded", opts: Options{Engine: EngineSharded, ShardCount: 8}},
		{name: "budgets", opts: Options{MaxEntries: 10, MaxKeyBytes: 100}},
		{name: "unknown engine", opts: Options{Engine: "bolt"}, wantErr: ErrInvalidEngine},
		{name: "negative shards", opts: Options{ShardCount: -2}, wantErr: store.ErrInvalidShardCount},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.opts.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestOptions_Equal verifies field-wise comparison, including logger
// identity.
func TestOptions_Equal(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()

	base := Options{Engine: EngineSharded, ShardCount: 4, MaxEntries: 10, Logger: logger}

	assert.True(t, base.Equal(base))
	assert.True(t, base.Equal(Options{Engine: EngineSharded, ShardCount: 4, MaxEntries: 10, Logger: logger}))

	assert.False(t, base.Equal(Options{Engine: EngineLocked, ShardCount: 4, MaxEntries: 10, Logger: logger}))
	assert.False(t, base.Equal(Options{Engine: EngineSharded, ShardCount: 2, MaxEntries: 10, Logger: logger}))
	assert.False(t, base.Equal(Options{Engine: EngineSharded, ShardCount: 4, MaxEntries: 11, Logger: logger}))
	assert.False(t, base.Equal(Options{Engine: EngineSharded, ShardCount: 4, MaxEntries: 10, Logger: zap.NewNop()}),
		"loggers compare by identity")
}
