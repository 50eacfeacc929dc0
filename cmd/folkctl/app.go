package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/folkways/internal/inspect"
	"github.com/danmuck/folkways/internal/protocol"
	"github.com/danmuck/folkways/internal/protocol/frame"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "folkctl",
		Usage: "encode and inspect folkways wire messages",
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			typesCommand(),
			crcCommand(),
		},
	}
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "build a message and print it as hex",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "message type name", Required: true},
			&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "utf-8 body"},
			&cli.StringFlag{Name: "body-hex", Usage: "hex-encoded body"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "low|normal|high|critical"},
			&cli.StringSliceFlag{Name: "flag", Aliases: []string{"f"}, Usage: "named flag, repeatable"},
			&cli.StringFlag{Name: "topic", Usage: "attach a footer carrying this topic"},
			&cli.BoolFlag{Name: "checksum", Aliases: []string{"c"}, Usage: "fill the CRC32 of the body"},
			&cli.StringFlag{Name: "timestamp", Usage: "override the header timestamp (ms)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write raw bytes to this path instead of printing hex"},
		},
		Action: runEncode,
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode one or more back-to-back messages",
		ArgsUsage: "[HEX]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "read raw bytes from this path (- for stdin)"},
			&cli.BoolFlag{Name: "dump", Usage: "print decoded structures with spew"},
		},
		Action: runDecode,
	}
}

func typesCommand() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "list message types",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return printTypes(cmd.Root().Writer)
		},
	}
}

func crcCommand() *cli.Command {
	return &cli.Command{
		Name:      "crc",
		Usage:     "print the CRC32 of a string",
		ArgsUsage: "TEXT",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "hex", Usage: "treat TEXT as hex"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("crc: expected exactly one argument")
			}
			data := []byte(cmd.Args().First())
			if cmd.Bool("hex") {
				raw, err := inspect.DecodeHex(cmd.Args().First())
				if err != nil {
					return err
				}
				data = raw
			}
			sum := protocol.CRC32Compute(data)
			_, err := fmt.Fprintf(cmd.Root().Writer, "0x%08x %d\n", sum, sum)
			return err
		},
	}
}

func runEncode(_ context.Context, cmd *cli.Command) error {
	req, err := encodeRequest(cmd)
	if err != nil {
		return err
	}
	msg, err := req.Build()
	if err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	raw := msg.Encode()
	log.Debug().
		Str("type", req.Type).
		Int("size", len(raw)).
		Msg("encoded message")

	if out := cmd.String("out"); out != "" {
		return os.WriteFile(out, raw, 0o644)
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "%x\n", raw)
	return err
}

func encodeRequest(cmd *cli.Command) (inspect.EncodeRequest, error) {
	req := inspect.EncodeRequest{
		Type:     cmd.String("type"),
		Body:     cmd.String("body"),
		BodyHex:  cmd.String("body-hex"),
		Priority: cmd.String("priority"),
		Flags:    cmd.StringSlice("flag"),
		Checksum: cmd.Bool("checksum"),
	}
	if cmd.IsSet("topic") {
		topic := cmd.String("topic")
		req.Topic = &topic
	}
	if cmd.IsSet("timestamp") {
		ts, err := parseTimestamp(cmd.String("timestamp"))
		if err != nil {
			return inspect.EncodeRequest{}, err
		}
		req.Timestamp = &ts
	}
	return req, nil
}

func parseTimestamp(raw string) (uint64, error) {
	ts, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp: %w", err)
	}
	return ts, nil
}

func runDecode(_ context.Context, cmd *cli.Command) error {
	raw, err := decodeInput(cmd.String("in"), cmd.Args().First(), os.Stdin)
	if err != nil {
		return err
	}
	msgs, err := frame.DecodeAll(raw, frame.DefaultLimits())
	if err != nil {
		log.Debug().Err(err).Str("kind", protocol.KindOf(err)).Msg("decode failed")
		return err
	}
	w := cmd.Root().Writer
	if cmd.Bool("dump") {
		spew.Fdump(w, msgs)
		return nil
	}
	return printViews(w, msgs)
}

// decodeInput resolves wire bytes from --in (a path, or - for stdin) or from
// a hex argument. Exactly one source must be given.
func decodeInput(path, hexArg string, stdin io.Reader) ([]byte, error) {
	switch {
	case path != "" && hexArg != "":
		return nil, fmt.Errorf("decode: --in and a hex argument are exclusive")
	case path == "-":
		return io.ReadAll(stdin)
	case path != "":
		return os.ReadFile(path)
	case hexArg != "":
		return inspect.DecodeHex(hexArg)
	default:
		return nil, fmt.Errorf("decode: no input (pass HEX or --in)")
	}
}

func printViews(w io.Writer, msgs []*protocol.Message) error {
	views := make([]inspect.MessageView, 0, len(msgs))
	for _, msg := range msgs {
		views = append(views, inspect.NewView(msg))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

func printTypes(w io.Writer) error {
	for _, mt := range protocol.AllMessageTypes() {
		var tags []string
		if mt.RequiresResponse() {
			tags = append(tags, "requires-response")
		}
		if mt.IsControl() {
			tags = append(tags, "control")
		}
		if _, err := fmt.Fprintf(w, "0x%02x  %-12s %s\n", uint8(mt), mt, strings.Join(tags, ",")); err != nil {
			return err
		}
	}
	return nil
}
