package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"
)

func (a *app) readCmd() *Command {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	dump := fs.Bool("dump", false, "Print a hex dump with offsets instead of a plain hex string")
	decode := fs.Bool("record", false, "Decode the bytes at offset as a record")

	return &Command{
		Flags: fs,
		Usage: "read <capture> <offset> <size> [flags]",
		Short: "Print bytes at an offset",
		Long: `Print size bytes starting at offset as hex. Reads of up to 64 bytes are
served through the read cache.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("%w: want <capture> <offset> <size>", errUsage)
			}
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid offset: %w", err)
			}
			size, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid size: %w", err)
			}

			s, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			b, err := s.ReadCached(offset, size)
			if err != nil {
				return err
			}

			switch {
			case *decode:
				r, ok := s.DecodeAt(offset)
				if !ok {
					return fmt.Errorf("no record at offset %d", offset)
				}
				o.Println(formatRecord(r))
			case *dump:
				o.Printf("%s", hex.Dump(b))
			default:
				o.Println(hex.EncodeToString(b))
			}
			return nil
		},
	}
}
