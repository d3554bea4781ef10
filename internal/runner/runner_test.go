package runner

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/watchfiles-go/internal/watcher"
)

func TestChangesEnvEmptyBatch(t *testing.T) {
	env, err := changesEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, ChangesEnvVar+"=[]", env)
}

func TestChangesEnvEncodesPairs(t *testing.T) {
	batch := watcher.NewChangeBatch(watcher.ChangeRecord{Kind: watcher.Modified, Path: "/tmp/a.go"})
	env, err := changesEnv(batch)
	require.NoError(t, err)

	prefix := ChangesEnvVar + "="
	require.True(t, len(env) > len(prefix) && env[:len(prefix)] == prefix)

	var pairs [][2]string
	require.NoError(t, json.Unmarshal([]byte(env[len(prefix):]), &pairs))
	require.Len(t, pairs, 1)
	assert.Equal(t, "modified", pairs[0][0])
	assert.Equal(t, "/tmp/a.go", pairs[0][1])
}

func TestRunnerStartAndStop(t *testing.T) {
	r := New(Config{
		Command:        "sleep",
		Args:           []string{"5"},
		InterruptGrace: 200 * time.Millisecond,
		KillGrace:      200 * time.Millisecond,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, r.Start(ctx))
	r.Stop()
}
