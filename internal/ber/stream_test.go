package ber

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder logs handler events as strings.
type recorder struct {
	events []string
	failOn string
}

func (r *recorder) Open(f *Frame) error {
	return r.add(fmt.Sprintf("open %02x len=%d", f.Tag, f.Length))
}

func (r *recorder) Primitive(t *TLV) error {
	return r.add(fmt.Sprintf("prim %02x %x", t.Tag, t.Value.Bytes()))
}

func (r *recorder) Close(f *Frame) error {
	return r.add(fmt.Sprintf("close %02x size=%d", f.Tag, f.Size()))
}

func (r *recorder) add(ev string) error {
	r.events = append(r.events, ev)
	if r.failOn != "" && ev == r.failOn {
		return fmt.Errorf("handler rejected %s", ev)
	}
	return nil
}

// decodeAll feeds data in chunks of the given size and returns the events
// and the number of completed elements.
func decodeAll(t *testing.T, opts StreamOptions, data []byte, chunk int) ([]string, int, error) {
	t.Helper()
	d := NewStreamDecoder(opts)
	r := &recorder{}
	completed := 0
	for start := 0; start < len(data); start += chunk {
		end := start + chunk
		if end > len(data) {
			end = len(data)
		}
		buf := data[start:end]
		for len(buf) > 0 {
			n, done, err := d.Decode(buf, r)
			if err != nil {
				return r.events, completed, err
			}
			buf = buf[n:]
			if done {
				completed++
			}
		}
	}
	return r.events, completed, nil
}

func TestStreamDecoderEvents(t *testing.T) {
	// SEQUENCE { INTEGER 5, [APPLICATION 2] NULL-like, SEQUENCE { OCTET STRING "ab" } }
	data := []byte{
		0x30, 0x0B,
		0x02, 0x01, 0x05,
		0x42, 0x00,
		0x30, 0x04, 0x04, 0x02, 'a', 'b',
	}

	events, completed, err := decodeAll(t, StreamOptions{}, data, len(data))
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, []string{
		"open 30 len=11",
		"prim 02 05",
		"prim 42 ",
		"open 30 len=4",
		"prim 04 6162",
		"close 30 size=6",
		"close 30 size=13",
	}, events)
}

func TestStreamDecoderSplitAnywhere(t *testing.T) {
	data := []byte{
		0x30, 0x81, 0x10,
		0x02, 0x02, 0x01, 0xC8,
		0x78, 0x80,
		0x0A, 0x01, 0x02,
		0x04, 0x00,
		0x04, 0x01, 'x',
		0x00, 0x00,
	}

	want, completed, err := decodeAll(t, StreamOptions{}, data, len(data))
	require.NoError(t, err)
	require.Equal(t, 1, completed)

	for chunk := 1; chunk < len(data); chunk++ {
		got, completed, err := decodeAll(t, StreamOptions{}, data, chunk)
		require.NoError(t, err, "chunk %d", chunk)
		assert.Equal(t, 1, completed, "chunk %d", chunk)
		assert.Equal(t, want, got, "chunk %d", chunk)
	}
}

func TestStreamDecoderIndefiniteLength(t *testing.T) {
	data := []byte{
		0x30, 0x80,
		0x31, 0x80,
		0x04, 0x01, 'v',
		0x00, 0x00,
		0x00, 0x00,
	}

	events, completed, err := decodeAll(t, StreamOptions{}, data, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, []string{
		"open 30 len=-1",
		"open 31 len=-1",
		"prim 04 76",
		"close 31 size=7",
		"close 30 size=11",
	}, events)
}

func TestStreamDecoderConsecutiveElements(t *testing.T) {
	data := []byte{0x30, 0x00, 0x30, 0x03, 0x02, 0x01, 0x01, 0x04, 0x00}

	events, completed, err := decodeAll(t, StreamOptions{}, data, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, completed)
	assert.Equal(t, []string{
		"open 30 len=0",
		"close 30 size=2",
		"open 30 len=3",
		"prim 02 01",
		"close 30 size=5",
		"prim 04 ",
	}, events)
}

func TestStreamDecoderNeedMore(t *testing.T) {
	d := NewStreamDecoder(StreamOptions{})
	r := &recorder{}

	n, done, err := d.Decode([]byte{0x30, 0x05, 0x04, 0x03, 'a'}, r)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.False(t, done)
	assert.True(t, d.InProgress())
	assert.Len(t, r.events, 1)

	n, done, err = d.Decode([]byte{'b', 'c', 0x30}, r)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, done)
	assert.False(t, d.InProgress())
	assert.Equal(t, 7, d.Offset())
}

func TestStreamDecoderErrors(t *testing.T) {
	tests := []struct {
		name string
		opts StreamOptions
		data []byte
		want error
	}{
		{
			name: "too many length octets",
			data: []byte{0x30, 0x85, 0x00, 0x00, 0x00, 0x00, 0x01},
			want: ErrMalformedLength,
		},
		{
			name: "length octets above configured max",
			opts: StreamOptions{MaxLengthBytes: 1},
			data: []byte{0x30, 0x82, 0x01, 0x00},
			want: ErrMalformedLength,
		},
		{
			name: "indefinite primitive",
			data: []byte{0x04, 0x80},
			want: ErrMalformedLength,
		},
		{
			name: "child exceeds parent",
			data: []byte{0x30, 0x03, 0x04, 0x05, 'a'},
			want: ErrMalformedLength,
		},
		{
			name: "grandchild exceeds definite ancestor through indefinite frame",
			data: []byte{0x30, 0x06, 0x31, 0x80, 0x04, 0x09},
			want: ErrMalformedLength,
		},
		{
			name: "message too large",
			opts: StreamOptions{MaxPDUSize: 8},
			data: []byte{0x30, 0x07, 0x04, 0x05},
			want: ErrMessageTooLarge,
		},
		{
			name: "indefinite message too large",
			opts: StreamOptions{MaxPDUSize: 6},
			data: []byte{0x30, 0x80, 0x04, 0x03, 'a', 'b', 'c'},
			want: ErrMessageTooLarge,
		},
		{
			name: "too deep",
			opts: StreamOptions{MaxDepth: 2},
			data: []byte{0x30, 0x06, 0x30, 0x04, 0x30, 0x02, 0x30, 0x00},
			want: ErrMaxDepth,
		},
		{
			name: "end of contents in definite element",
			data: []byte{0x30, 0x02, 0x00, 0x00},
			want: ErrInvalidEndOfContents,
		},
		{
			name: "end of contents with content",
			data: []byte{0x30, 0x80, 0x00, 0x01, 0x00},
			want: ErrInvalidEndOfContents,
		},
		{
			name: "high tag number",
			data: []byte{0x1F, 0x81, 0x00},
			want: ErrUnsupportedTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeAll(t, tt.opts, tt.data, 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var decErr *DecodeError
			assert.ErrorAs(t, err, &decErr)
		})
	}
}

func TestMessageTooLargeIsMalformedLength(t *testing.T) {
	assert.ErrorIs(t, ErrMessageTooLarge, ErrMalformedLength)
}

func TestStreamDecoderHandlerError(t *testing.T) {
	d := NewStreamDecoder(StreamOptions{})
	r := &recorder{failOn: "prim 02 05"}

	_, done, err := d.Decode([]byte{0x30, 0x03, 0x02, 0x01, 0x05}, r)
	require.Error(t, err)
	assert.False(t, done)
	assert.Contains(t, err.Error(), "handler rejected")

	d.Reset()
	assert.False(t, d.InProgress())
	assert.Equal(t, 0, d.Offset())
}
