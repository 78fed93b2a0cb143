package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	flag "github.com/spf13/pflag"
)

var errUsage = errors.New("wrong number of arguments")

func (a *app) findCmd() *Command {
	fs := flag.NewFlagSet("find", flag.ContinueOnError)
	asHex := fs.Bool("hex", false, "Interpret pattern as hex bytes")
	start := fs.Int("start", 0, "First byte offset to search")
	end := fs.Int("end", math.MaxInt, "Byte offset to stop at (clamped to the capture size)")
	count := fs.Bool("count", false, "Print only the number of matches")

	return &Command{
		Flags: fs,
		Usage: "find <capture> <pattern> [flags]",
		Short: "Print offsets of a byte pattern",
		Long: `Print the offset of every occurrence of pattern that lies entirely
inside [start, end), one per line in ascending order.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: want <capture> <pattern>", errUsage)
			}

			needle := []byte(args[1])
			if *asHex {
				b, err := hex.DecodeString(args[1])
				if err != nil {
					return fmt.Errorf("invalid hex pattern: %w", err)
				}
				needle = b
			}

			s, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			offsets, err := s.Find(needle, *start, *end)
			if err != nil {
				return err
			}

			if *count {
				o.Println(len(offsets))
				return nil
			}
			for _, ofs := range offsets {
				o.Println(ofs)
			}
			return nil
		},
	}
}
