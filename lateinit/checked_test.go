package lateinit_test

import (
	"fmt"
	"testing"

	"github.com/on-the-ground/late_init_go/lateinit"
	"github.com/on-the-ground/late_init_go/shared/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_WithIsPresentImmediately(t *testing.T) {
	cell := lateinit.With("hello")

	assert.True(t, cell.Present())
	v, ok := cell.TryGet()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestCell_EmptyThenInit(t *testing.T) {
	cell := lateinit.New[int]()

	assert.False(t, cell.Present())
	_, ok := cell.TryGet()
	assert.False(t, ok)

	cell.Init(42)

	assert.True(t, cell.Present())
	v, ok := cell.TryGet()
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 42, cell.Get())
}

func TestCell_ZeroValueIsAbsent(t *testing.T) {
	var cell lateinit.Cell[string]
	assert.False(t, cell.Present())
}

func TestCell_DoubleInitIsFlagged(t *testing.T) {
	var got string
	restore := contract.SetFailureHandler(func(msg string) { got = msg })
	defer restore()

	cell := lateinit.New[int]()
	cell.Init(1)
	cell.Init(2)

	if got == "" {
		t.Fatalf("expected double Init to be flagged")
	}
}

func TestCell_DoubleInitPanicsWithoutHandler(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on double Init, but didn't panic")
		}
	}()
	cell := lateinit.With(1)
	cell.Init(2)
}

func TestCell_GetOnAbsentIsFlagged(t *testing.T) {
	var got string
	restore := contract.SetFailureHandler(func(msg string) { got = msg })
	defer restore()

	cell := lateinit.New[int]()
	_ = cell.Get()

	if got == "" {
		t.Fatalf("expected Get on absent cell to be flagged")
	}
}

func TestCell_PtrSentinel(t *testing.T) {
	cell := lateinit.New[int]()
	assert.Nil(t, cell.Ptr())

	cell.Init(7)
	p := cell.Ptr()
	require.NotNil(t, p)
	assert.Equal(t, 7, *p)
}

func TestCell_MutableAndImmutableAccessorsAlias(t *testing.T) {
	cell := lateinit.With(10)

	*cell.Ref() = 11
	assert.Equal(t, 11, cell.Get())

	p, ok := cell.TryPtr()
	require.True(t, ok)
	*p = 12
	assert.Equal(t, 12, cell.Get())

	cell.Set(13)
	assert.Equal(t, 13, *cell.Ptr())
}

func TestCell_StringRendersPlaceholderNeverRawStorage(t *testing.T) {
	cell := lateinit.New[int]()
	assert.Equal(t, "Cell(<uninit>)", cell.String())

	cell.Init(42)
	assert.Equal(t, "Cell(42)", cell.String())
	assert.Equal(t, "Cell(42)", fmt.Sprintf("%v", &cell))
}

type port int

func (p port) Into() string { return fmt.Sprintf(":%d", int(p)) }

func TestCell_InitFromConvertsBeforeStore(t *testing.T) {
	cell := lateinit.New[string]()
	lateinit.InitFrom(&cell, port(8080))

	assert.Equal(t, ":8080", cell.Get())
}

type tracked struct {
	closed *int
}

func (r tracked) Close() error {
	*r.closed++
	return nil
}

func TestCell_CloseHonorsTeardownWhenPresent(t *testing.T) {
	closed := 0
	cell := lateinit.With(tracked{closed: &closed})

	require.NoError(t, cell.Close())
	assert.Equal(t, 1, closed)
}

func TestCell_CloseOnAbsentIsNoop(t *testing.T) {
	cell := lateinit.New[tracked]()
	assert.NoError(t, cell.Close())
}

// The end-to-end shape from the contract docs: probe absent, one write,
// probe present, read through.
func TestCell_LifecycleScenario(t *testing.T) {
	cell := lateinit.New[int32]()

	_, ok := cell.TryGet()
	require.False(t, ok)

	cell.Init(42)

	v, ok := cell.TryGet()
	require.True(t, ok)
	assert.Equal(t, int32(42), v)
	assert.Equal(t, int32(42), cell.Get())
}
