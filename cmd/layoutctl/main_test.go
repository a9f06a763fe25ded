package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beltforge/layoutcore/exchange"
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/router"
)

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	gs := grid.NewState(12, 12)
	a := machine.Machine{ID: gs.NextMachineID(), Type: machine.Small3x3, Pos: machine.Point{X: 0, Y: 0}, Orientation: machine.North}
	require.True(t, gs.Place(a))
	b := machine.Machine{ID: gs.NextMachineID(), Type: machine.Small3x3, Pos: machine.Point{X: 0, Y: 6}, Orientation: machine.South}
	require.True(t, gs.Place(b))

	conn, err := gs.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 1, TargetMachine: b.ID, TargetPort: 1})
	require.NoError(t, err)
	_, err = router.Route(gs, conn.ID)
	require.NoError(t, err)

	data, err := exchange.MarshalYAML(gs)
	require.NoError(t, err)

	path := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestEvalCommand_ScoresFixtureWithoutMutatingIt(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir)
	before, err := os.ReadFile(input)
	require.NoError(t, err)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"eval", "--input", input})
	require.NoError(t, cmd.Execute())

	after, err := os.ReadFile(input)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestRunCommand_NormalModeWritesEveryMachineAndConnection(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir)
	output := filepath.Join(dir, "optimized.yaml")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--input", input, "--output", output, "--seed", "7", "--quiet"})
	require.NoError(t, cmd.Execute())

	gs, err := loadLayout(output, false)
	require.NoError(t, err)
	require.Len(t, gs.Machines(), 2)
	require.Len(t, gs.Connections(), 1)
}

func TestRunCommand_RejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--input", input, "--mode", "bogus", "--quiet"})
	err := cmd.Execute()
	require.Error(t, err)
}
