package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/ldapcodec/internal/config"
	"github.com/KilimcininKorOglu/ldapcodec/internal/ldap"
)

// messageView is the JSON form of a decoded message.
type messageView struct {
	MessageID int32          `json:"messageID"`
	Operation string         `json:"operation"`
	Op        any            `json:"op"`
	Filter    string         `json:"filter,omitempty"`
	Controls  []ldap.Control `json:"controls,omitempty"`
	Warnings  []ldap.Warning `json:"warnings,omitempty"`
}

func newMessageView(msg *ldap.Message) messageView {
	v := messageView{
		MessageID: msg.MessageID,
		Operation: msg.OperationType().String(),
		Op:        msg.Op,
		Controls:  msg.Controls,
		Warnings:  msg.Warnings,
	}
	if req, ok := msg.Op.(*ldap.SearchRequest); ok {
		cp := *req
		if cp.Filter != nil {
			v.Filter = cp.Filter.String()
		}
		cp.Filter = nil
		v.Op = &cp
	}
	return v
}

// decodeCmd handles the decode command.
func decodeCmd(args []string) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	hexInput := fs.Bool("hex", false, "Input is hex text")
	chunk := fs.Int("chunk", 0, "Bytes fed per call (0 feeds all at once)")
	configFile := fs.String("config", "", "Path to configuration file")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printDecodeUsage(stdout)
		return 0
	}

	if *chunk < 0 {
		fmt.Fprintln(stderr, "Error: -chunk must be non-negative")
		return 1
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(stderr, "Invalid configuration: %s\n", e)
		}
		return 1
	}
	opts, err := cfg.ToOptions()
	if err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	data, err := readInput(fs.Arg(0), *hexInput)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	n, err := decodeStream(ldap.NewDecoder(opts), data, *chunk, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error after %d messages: %v\n", n, err)
		return 1
	}
	return 0
}

// decodeStream feeds data to d in chunks of size chunk and writes each
// message as a JSON line. It returns the number of messages written.
func decodeStream(d *ldap.Decoder, data []byte, chunk int, w io.Writer) (int, error) {
	if chunk == 0 {
		chunk = len(data)
	}
	enc := json.NewEncoder(w)

	count := 0
	for off := 0; off < len(data); off += chunk {
		end := min(off+chunk, len(data))
		msgs, err := d.Feed(data[off:end])
		for _, msg := range msgs {
			if encErr := enc.Encode(newMessageView(msg)); encErr != nil {
				return count, errors.Wrap(encErr, "write message")
			}
			count++
		}
		if err != nil {
			return count, err
		}
	}

	if d.Pending() {
		return count, errors.New("input ends inside a message")
	}
	return count, nil
}

// readInput reads path, or stdin for "" and "-", decoding hex text when
// isHex is set.
func readInput(path string, isHex bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	if !isHex {
		return data, nil
	}
	text := strings.Join(strings.Fields(string(data)), "")
	raw, err := hex.DecodeString(text)
	if err != nil {
		return nil, errors.Wrap(err, "decode hex input")
	}
	return raw, nil
}
