// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value_test

import (
	"testing"

	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSendBeforeReceive(t *testing.T) {
	ch := value.NewChannel("t")
	ch.Send(value.Number(1))
	ch.Send(value.Number(2))

	var got []value.Value
	ch.Receive(value.Receiver{Resolve: func(v value.Value) { got = append(got, v) }})
	ch.Receive(value.Receiver{Resolve: func(v value.Value) { got = append(got, v) }})

	require.Len(t, got, 2)
	assert.Equal(t, value.Number(1), got[0])
	assert.Equal(t, value.Number(2), got[1])
}

func TestChannelReceiveBeforeSend(t *testing.T) {
	ch := value.NewChannel("t")
	var got value.Value
	resolved := false
	ch.Receive(value.Receiver{Resolve: func(v value.Value) { got = v; resolved = true }})
	assert.False(t, resolved)

	ch.Send(value.Number(42))
	assert.True(t, resolved)
	assert.Equal(t, value.Number(42), got)
}

func TestChannelFIFO(t *testing.T) {
	ch := value.NewChannel("t")
	var order []int
	for i := 0; i < 3; i++ {
		ch.Receive(value.Receiver{Resolve: func(v value.Value) { order = append(order, int(v.(value.Number))) }})
	}
	ch.Send(value.Number(1))
	ch.Send(value.Number(2))
	ch.Send(value.Number(3))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestChannelCloseRejectsPendingReceivers(t *testing.T) {
	ch := value.NewChannel("t")
	var rejectErr error
	ch.Receive(value.Receiver{
		Resolve: func(value.Value) {},
		Reject:  func(err error) { rejectErr = err },
	})
	ch.Close()
	require.Error(t, rejectErr)
	assert.True(t, value.IsChannelClosed(rejectErr))
}

func TestChannelTrySendReceive(t *testing.T) {
	ch := value.NewChannel("t")
	_, status := ch.TryReceive()
	assert.Equal(t, value.SymNone, status)

	status = ch.TrySend(value.Number(1))
	assert.Equal(t, value.SymOk, status)

	v, status := ch.TryReceive()
	assert.Equal(t, value.SymOk, status)
	assert.Equal(t, value.Number(1), v)

	ch.Close()
	status = ch.TrySend(value.Number(2))
	assert.Equal(t, value.SymClosed, status)
	_, status = ch.TryReceive()
	assert.Equal(t, value.SymClosed, status)
}
