package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/folkways/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteMessageRoundTrip(t *testing.T) {
	in := protocol.NewTextMessage(protocol.MessagePublish, "intent-1").
		WithChecksum().
		WithFooter(protocol.NewFooter().WithTopic("room/1"))

	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, in, DefaultLimits()))

	out, err := ReadMessage(&buf, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, in.Encode(), out.Encode())

	_, err = ReadMessage(&buf, DefaultLimits())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadMessageShortHeaderIsDeterministic(t *testing.T) {
	_, err := ReadMessage(bytes.NewReader([]byte{1, 2, 3}), DefaultLimits())
	assert.True(t, errors.Is(err, ErrShortHeader))
}

func TestReadMessageShortBody(t *testing.T) {
	raw := protocol.NewTextMessage(protocol.MessagePublish, "abcdef").Encode()
	_, err := ReadMessage(bytes.NewReader(raw[:len(raw)-2]), DefaultLimits())
	assert.True(t, errors.Is(err, ErrShortMessage))
}

func TestReadMessageRejectsOversizedBody(t *testing.T) {
	raw := protocol.NewMessage(protocol.MessagePublish, make([]byte, 100)).Encode()
	_, err := ReadMessage(bytes.NewReader(raw), Limits{MaxBodyBytes: 99, MaxFooterBytes: 10})
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestReadMessageRejectsOversizedFooter(t *testing.T) {
	raw := protocol.NewTextMessage(protocol.MessagePublish, "x").
		WithFooter(protocol.NewFooter().WithTopic("abcdefgh")).
		Encode()
	_, err := ReadMessage(bytes.NewReader(raw), Limits{MaxBodyBytes: 10, MaxFooterBytes: 4})
	assert.ErrorIs(t, err, ErrFooterTooLarge)
}

func TestReadMessagePropagatesHeaderErrors(t *testing.T) {
	raw := protocol.NewTextMessage(protocol.MessagePing, "").Encode()
	raw[0] = 0
	_, err := ReadMessage(bytes.NewReader(raw), DefaultLimits())
	assert.ErrorIs(t, err, protocol.ErrInvalidMagic)
}

func TestWriteMessageEnforcesLimits(t *testing.T) {
	var buf bytes.Buffer
	big := protocol.NewMessage(protocol.MessagePublish, make([]byte, protocol.MaxBodySize+1))
	assert.ErrorIs(t, WriteMessage(&buf, big, DefaultLimits()), ErrBodyTooLarge)

	withFooter := protocol.NewTextMessage(protocol.MessagePublish, "x").
		WithFooter(protocol.NewFooter().WithTopic(string(make([]byte, protocol.MaxFooterSize))))
	assert.ErrorIs(t, WriteMessage(&buf, withFooter, DefaultLimits()), ErrFooterTooLarge)
	assert.Zero(t, buf.Len())

	assert.Error(t, WriteMessage(&buf, nil, DefaultLimits()))
}

func TestReadAllStream(t *testing.T) {
	var buf bytes.Buffer
	types := []protocol.MessageType{protocol.MessagePing, protocol.MessagePublish, protocol.MessageDisconnect}
	for _, mt := range types {
		require.NoError(t, WriteMessage(&buf, protocol.NewTextMessage(mt, mt.String()), DefaultLimits()))
	}

	var got []protocol.MessageType
	err := ReadAll(&buf, DefaultLimits(), func(m *protocol.Message) error {
		mt, _ := m.MessageType()
		got = append(got, mt)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, types, got)
}

func TestReadAllStopsOnCallbackError(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 3; i++ {
		require.NoError(t, WriteMessage(&buf, protocol.NewTextMessage(protocol.MessageAck, "ok"), DefaultLimits()))
	}
	stop := errors.New("stop")
	calls := 0
	err := ReadAll(&buf, DefaultLimits(), func(*protocol.Message) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestLimitsCheck(t *testing.T) {
	h := protocol.NewHeader(protocol.MessagePublish, 10)
	h.FooterLen = 5
	assert.NoError(t, Limits{MaxBodyBytes: 10, MaxFooterBytes: 5}.Check(h))
	assert.ErrorIs(t, Limits{MaxBodyBytes: 9, MaxFooterBytes: 5}.Check(h), ErrBodyTooLarge)
	assert.ErrorIs(t, Limits{MaxBodyBytes: 10, MaxFooterBytes: 4}.Check(h), ErrFooterTooLarge)
}

func TestDecodeAll(t *testing.T) {
	first := protocol.NewTextMessage(protocol.MessageAuth, "token").WithChecksum()
	second := protocol.NewTextMessage(protocol.MessagePublish, "hi").
		WithFooter(protocol.NewFooter().WithTopic("news"))
	raw := append(first.Encode(), second.Encode()...)

	msgs, err := DecodeAll(raw, DefaultLimits())
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, first.Encode(), msgs[0].Encode())
	assert.Equal(t, second.Encode(), msgs[1].Encode())

	_, err = DecodeAll(append(raw, 1, 2, 3), DefaultLimits())
	var bts *protocol.BufferTooSmallError
	require.True(t, errors.As(err, &bts))
	assert.Equal(t, 64, bts.Expected)
	assert.Equal(t, 3, bts.Actual)
	assert.Contains(t, err.Error(), "message 2")

	_, err = DecodeAll(raw, Limits{MaxBodyBytes: 4, MaxFooterBytes: 64})
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	msgs, err = DecodeAll(nil, DefaultLimits())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
