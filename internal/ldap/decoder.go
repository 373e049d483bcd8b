package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
	"github.com/KilimcininKorOglu/ldapcodec/internal/logging"
)

// Decoder turns a byte stream into LDAP messages. Feed may be called with
// chunks of any size; the same bytes yield the same messages however they
// are split.
//
// A Decoder is not safe for concurrent use. After Feed returns an error the
// Decoder rejects further input until Reset.
type Decoder struct {
	opts   Options
	stream *ber.StreamDecoder
	c      *container
	log    logging.Logger
	err    error
}

// NewDecoder creates a Decoder for one connection.
func NewDecoder(opts Options) *Decoder {
	if opts.Registry == nil {
		opts.Registry = NewDefaultValueRegistry(opts.Schema)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	log := opts.Logger.WithSessionID(logging.GenerateSessionID())

	d := &Decoder{
		opts: opts,
		stream: ber.NewStreamDecoder(ber.StreamOptions{
			MaxLengthBytes: opts.MaxLengthBytes,
			MaxPDUSize:     opts.MaxPDUSize,
			MaxDepth:       opts.MaxDepth,
		}),
		log: log,
	}
	d.c = newContainer(grammar, &d.opts, opts.Registry, log)
	return d
}

// Feed decodes data and returns the messages completed by it, in stream
// order. Bytes of an incomplete trailing message are retained for the next
// call.
//
// On error the messages completed before the failure are returned together
// with a *DecodeError; the partial message is discarded.
func (d *Decoder) Feed(data []byte) ([]*Message, error) {
	if d.err != nil {
		return nil, d.err
	}
	var msgs []*Message
	for len(data) > 0 {
		n, done, err := d.stream.Decode(data, d.c)
		if err != nil {
			return msgs, d.fail(err)
		}
		data = data[n:]
		if !done {
			break
		}
		msg := d.c.finish()
		d.log.Debug("decoded message",
			"messageID", msg.MessageID,
			"op", msg.OperationType().String(),
			"controls", len(msg.Controls),
			"warnings", len(msg.Warnings))
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (d *Decoder) fail(err error) error {
	derr := &DecodeError{
		Offset:       d.stream.Offset(),
		MessageID:    d.c.msg.MessageID,
		HasMessageID: d.c.hasMessageID,
		Err:          err,
	}
	d.log.Error("decode failed", "offset", derr.Offset, "error", err)
	d.c.reset()
	d.err = derr
	return derr
}

// Pending reports whether a message has been started but not completed.
func (d *Decoder) Pending() bool {
	return d.err == nil && d.stream.InProgress()
}

// Err returns the error that stopped the Decoder, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Reset discards partial input and any error. The stream offset restarts
// at zero.
func (d *Decoder) Reset() {
	d.stream.Reset()
	d.c.reset()
	d.err = nil
}
