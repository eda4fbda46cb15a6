package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickIRQOnTarget(t *testing.T) {
	var c Channel
	c.writeReg(0x8, 5) // target = 5
	c.writeReg(0x4, modeIRQOnTarget)

	for i := 0; i < 5; i++ {
		c.Tick()
	}

	assert.EqualValues(t, 5, c.counter)
	assert.True(t, c.IRQPending())
}

func TestTickResetOnTarget(t *testing.T) {
	var c Channel
	c.writeReg(0x8, 3)
	c.writeReg(0x4, modeResetOnTarget)

	for i := 0; i < 3; i++ {
		c.Tick()
	}

	assert.EqualValues(t, 0, c.counter)
}

func TestTickIRQOnWrap(t *testing.T) {
	var c Channel
	c.writeReg(0x0, 0xFFFF)
	c.writeReg(0x4, modeIRQOnWrap)

	c.Tick()

	assert.EqualValues(t, 0, c.counter)
	assert.True(t, c.IRQPending())
}

func TestAckIRQClearsFlag(t *testing.T) {
	var c Channel
	c.writeReg(0x8, 1)
	c.writeReg(0x4, modeIRQOnTarget)
	c.Tick()
	assert.True(t, c.IRQPending())

	c.AckIRQ()
	assert.False(t, c.IRQPending())
}

func TestReadModeClearsLatchedBits(t *testing.T) {
	var c Channel
	c.writeReg(0x8, 1)
	c.Tick()

	mode := c.readReg(0x4)
	assert.NotZero(t, mode&modeReachedTarget)

	again := c.readReg(0x4)
	assert.Zero(t, again&modeReachedTarget)
}

func TestTimersRoutesByChannel(t *testing.T) {
	ts := New()
	ts.Write(0x10+0x8, 10) // channel 1 target
	assert.EqualValues(t, 10, ts.Channels[1].target)
	assert.EqualValues(t, 10, ts.Read(0x10+0x8))
}

func TestTimersIRQPendingAggregates(t *testing.T) {
	ts := New()
	assert.False(t, ts.IRQPending())

	ts.Channels[2].writeReg(0x8, 1)
	ts.Channels[2].writeReg(0x4, modeIRQOnTarget)
	ts.Tick(2)

	assert.True(t, ts.IRQPending())
	ts.AckAll()
	assert.False(t, ts.IRQPending())
}
