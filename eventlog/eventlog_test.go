package eventlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casper-network/go-highway/common/types"
)

func TestAppend_PreservesEmissionOrder(t *testing.T) {
	var l EventLog
	l = l.Append(types.CreatedOmegaMessage{})
	l = l.Append(types.CreatedEra{})

	require.Equal(t, 2, l.Len())
	_, ok := l.Events()[0].(types.CreatedOmegaMessage)
	assert.True(t, ok)
	_, ok = l.Events()[1].(types.CreatedEra)
	assert.True(t, ok)
}

func TestAppend_DoesNotMutateReceiver(t *testing.T) {
	l := EventLog{}.Append(types.CreatedEra{})
	l2 := l.Append(types.CreatedOmegaMessage{})

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 2, l2.Len())
}

func TestMerge_ConcatenatesInOrder(t *testing.T) {
	a := EventLog{}.Append(types.CreatedEra{})
	b := EventLog{}.Append(types.CreatedOmegaMessage{})

	merged := a.Merge(b)
	require.Equal(t, 2, merged.Len())
	_, ok := merged.Events()[0].(types.CreatedEra)
	assert.True(t, ok)
	_, ok = merged.Events()[1].(types.CreatedOmegaMessage)
	assert.True(t, ok)
}
