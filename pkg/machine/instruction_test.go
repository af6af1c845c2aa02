package machine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abernard/procvm/pkg/machine"
)

func TestDecodeFieldsIsTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		w := machine.Word(rng.Uint32())
		require.NotPanics(t, func() {
			machine.DecodeFields(w)
		})
	}
}

func TestDecodeFieldsImmediate(t *testing.T) {
	w := encodeImmediate(machine.OpLOAD, 3, -7)
	got := machine.DecodeFields(w)
	assert.Equal(t, machine.OpLOAD, got.Op)
	assert.True(t, got.Immediate)
	assert.False(t, got.Indexed)
	assert.Equal(t, uint8(3), got.Register())
	assert.Equal(t, int32(-7), got.Value)
}

func TestDecodeFieldsAbsolute(t *testing.T) {
	w := encodeAbsolute(machine.OpSTORE, 5, 0x1234)
	got := machine.DecodeFields(w)
	assert.False(t, got.Immediate)
	assert.False(t, got.Indexed)
	assert.Equal(t, uint32(0x1234), got.Address)
}

func TestDecodeFieldsIndexed(t *testing.T) {
	w := encodeIndexed(machine.OpADD, 2, 4, -3)
	got := machine.DecodeFields(w)
	assert.False(t, got.Immediate)
	assert.True(t, got.Indexed)
	assert.Equal(t, uint8(4), got.RIndex)
	assert.Equal(t, int8(-3), got.Offset)
}

func TestEffectiveAddressIndexed(t *testing.T) {
	m := machine.New(nil, nil, 0)
	m.Registers[4] = 100
	i := instr(encodeIndexed(machine.OpADD, 0, 4, -3))
	assert.Equal(t, uint32(97), machine.EffectiveAddress(m, i))
}

func TestEffectiveAddressAbsolute(t *testing.T) {
	m := machine.New(nil, nil, 0)
	i := instr(encodeAbsolute(machine.OpSTORE, 0, 42))
	assert.Equal(t, uint32(42), machine.EffectiveAddress(m, i))
}
