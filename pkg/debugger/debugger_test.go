package debugger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abernard/procvm/pkg/debugger"
	"github.com/abernard/procvm/pkg/machine"
)

func TestAskStepReturnsTrue(t *testing.T) {
	var out bytes.Buffer
	d := &debugger.Debugger{In: strings.NewReader("s\n"), Out: &out}
	m := machine.New(nil, nil, 0)

	cont, err := d.Ask(m)
	require.NoError(t, err)
	assert.True(t, cont)
}

func TestAskEmptyLineStepsToo(t *testing.T) {
	var out bytes.Buffer
	d := &debugger.Debugger{In: strings.NewReader("\n"), Out: &out}
	m := machine.New(nil, nil, 0)

	cont, err := d.Ask(m)
	require.NoError(t, err)
	assert.True(t, cont)
}

func TestAskContinueLeavesDebugMode(t *testing.T) {
	var out bytes.Buffer
	d := &debugger.Debugger{In: strings.NewReader("c\n"), Out: &out}
	m := machine.New(nil, nil, 0)

	cont, err := d.Ask(m)
	require.NoError(t, err)
	assert.False(t, cont)
}

func TestAskPrintsRegistersThenSteps(t *testing.T) {
	var out bytes.Buffer
	d := &debugger.Debugger{In: strings.NewReader("r\ns\n"), Out: &out}
	m := machine.New(nil, nil, 0)

	cont, err := d.Ask(m)
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Contains(t, out.String(), "*** CPU ***")
}

func TestAskUnknownCommandReprompts(t *testing.T) {
	var out bytes.Buffer
	d := &debugger.Debugger{In: strings.NewReader("z\nc\n"), Out: &out}
	m := machine.New(nil, nil, 0)

	cont, err := d.Ask(m)
	require.NoError(t, err)
	assert.False(t, cont)
	assert.Equal(t, 2, strings.Count(out.String(), "DEBUG?"))
}

func TestPrintProgramListsEachInstruction(t *testing.T) {
	var out bytes.Buffer
	text := []machine.Instruction{machine.DecodeFields(0x08000000)}
	m := machine.New(text, nil, 0)
	debugger.PrintProgram(&out, m)
	assert.Contains(t, out.String(), "0x0000:")
}
