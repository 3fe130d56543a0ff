package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/zenecs/zenecs/internal/components"
	"github.com/zenecs/zenecs/internal/ecs"
)

func writeSampleSnapshot(t *testing.T, path string) {
	t.Helper()
	w := ecs.NewWorld(1, "demo", nil, ecs.DefaultWorldConfig(), ecs.WorldOptions{})
	assert.NoError(t, components.Register(w))
	w.BeginFrame(0)

	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	ecs.AddComponent(cb, e, components.PositionType, components.Position{X: 1, Y: 2})
	assert.NoError(t, cb.EndWrite())

	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()
	assert.NoError(t, ecs.SaveFull(w, f))
}

func Test_InspectCmd_PrintsSummaryOfSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.bin")
	writeSampleSnapshot(t, path)

	cmd := inspectCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	assert.NoError(t, cmd.Execute())

	var got inspectSummary
	assert.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.AliveCount)
	assert.Equal(t, "com.zenecs.position.v1", got.Pools[0].StableID)
	assert.Equal(t, 1, got.Pools[0].EntityCount)
}

func Test_InspectCmd_MissingFileReturnsError(t *testing.T) {
	cmd := inspectCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.bin")})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	assert.Error(t, err)
}

func Test_InspectCmd_RequiresExactlyOneArg(t *testing.T) {
	cmd := inspectCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	assert.Error(t, err)
}
