package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgStateSingleUniversalArgDefaultsToTwo(t *testing.T) {
	var a ArgState
	a.Begin(ArgUniversal)
	outcome := a.Feed(ArgOther, 0)
	assert.Equal(t, ArgExecute, outcome)
	assert.Equal(t, int64(2), a.Finish())
}

func TestArgStateDoubleUniversalArg(t *testing.T) {
	// main.c's documented ^U sequence is 2, 0, 3, 4, ...: the first ^U
	// (Begin) yields 2, the second yields 0.
	var a ArgState
	a.Begin(ArgUniversal)
	assert.Equal(t, ArgContinue, a.Feed(ArgUniversal, 0))
	assert.Equal(t, ArgExecute, a.Feed(ArgOther, 0))
	assert.Equal(t, int64(0), a.Finish())
}

func TestArgStateTripleUniversalArg(t *testing.T) {
	var a ArgState
	a.Begin(ArgUniversal)
	assert.Equal(t, ArgContinue, a.Feed(ArgUniversal, 0))
	assert.Equal(t, ArgContinue, a.Feed(ArgUniversal, 0))
	assert.Equal(t, ArgExecute, a.Feed(ArgOther, 0))
	assert.Equal(t, int64(3), a.Finish())
}

func TestArgStateDigitsBuildNumber(t *testing.T) {
	var a ArgState
	a.Begin(ArgUniversal)
	assert.Equal(t, ArgContinue, a.Feed(ArgDigit, 4))
	assert.Equal(t, ArgContinue, a.Feed(ArgDigit, 2))
	assert.Equal(t, ArgExecute, a.Feed(ArgOther, 0))
	assert.Equal(t, int64(42), a.Finish())
}

func TestArgStateNegativeArgAlone(t *testing.T) {
	var a ArgState
	a.Begin(ArgNegative)
	assert.Equal(t, ArgExecute, a.Feed(ArgOther, 0))
	assert.Equal(t, int64(-1), a.Finish())
}

func TestArgStateSignThenDigits(t *testing.T) {
	var a ArgState
	a.Begin(ArgUniversal)
	assert.Equal(t, ArgContinue, a.Feed(ArgSign, 0))
	assert.Equal(t, ArgContinue, a.Feed(ArgDigit, 7))
	assert.Equal(t, ArgExecute, a.Feed(ArgOther, 0))
	assert.Equal(t, int64(-7), a.Finish())
}

func TestArgStateSignAfterDigitsInserts(t *testing.T) {
	var a ArgState
	a.Begin(ArgUniversal)
	a.Feed(ArgDigit, 5)
	assert.Equal(t, ArgInsert, a.Feed(ArgSign, 0))
}

func TestClassifyArgInput(t *testing.T) {
	kind, _ := ClassifyArgInput(0x15, 0x15, 0x1F)
	assert.Equal(t, ArgUniversal, kind)
	kind, _ = ClassifyArgInput(0x1F, 0x15, 0x1F)
	assert.Equal(t, ArgNegative, kind)
	kind, digit := ClassifyArgInput('7', 0x15, 0x1F)
	assert.Equal(t, ArgDigit, kind)
	assert.Equal(t, int64(7), digit)
	kind, _ = ClassifyArgInput('-', 0x15, 0x1F)
	assert.Equal(t, ArgSign, kind)
	kind, _ = ClassifyArgInput('x', 0x15, 0x1F)
	assert.Equal(t, ArgOther, kind)
}
