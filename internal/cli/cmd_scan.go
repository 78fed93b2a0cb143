package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/sonarscan"
	"github.com/hupe1980/sonarscan/record"
	flag "github.com/spf13/pflag"
)

func (a *app) scanCmd() *Command {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	chunkSize := fs.Int("chunk-size", 0, "Bytes per scan range (default from config)")
	ranges := fs.StringArray("range", nil, "Scan only `start:end` (repeatable)")
	channels := fs.UintSlice("channel", nil, "Keep only records of these channels")
	limit := fs.Int("limit", 0, "Print at most n records (0 = all)")
	summary := fs.Bool("summary", false, "Print per-channel record counts instead of records")

	return &Command{
		Flags: fs,
		Usage: "scan <capture> [flags]",
		Short: "Decode records",
		Long: `Decode every record whose start lies inside the scanned ranges.

Without --range the whole capture is cut into chunks and records are printed
in file order. With --range each range is reported separately, in the order
given. Invalid ranges report zero records.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: want <capture>", errUsage)
			}

			rs, err := parseRanges(*ranges)
			if err != nil {
				return err
			}

			s, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			if len(rs) == 0 {
				size := *chunkSize
				if size == 0 {
					size = a.cfg.ChunkSize
				}
				rs, err = s.SplitRanges(size)
				if err != nil {
					return err
				}
			}

			results, err := s.ScanRanges(ctx, rs)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					return err
				}
				o.Warn("scan interrupted: %v; results are partial", err)
			}

			var chs []uint32
			for _, c := range *channels {
				chs = append(chs, uint32(c))
			}

			p := recordPrinter{o: o, limit: *limit}
			if *summary {
				var all []record.Record
				for _, recs := range results {
					all = append(all, recs...)
				}
				printSummary(o, record.NewChannelIndex(all))
				return nil
			}

			for i, recs := range results {
				if len(chs) > 0 {
					recs = record.NewChannelIndex(recs).Select(recs, chs...)
				}
				if len(*ranges) > 0 {
					o.Printf("range %d [%d,%d): %d record(s)\n", i, rs[i].Start, rs[i].End, len(recs))
				}
				p.print(recs)
			}
			return nil
		},
	}
}

func parseRanges(args []string) ([]sonarscan.Range, error) {
	out := make([]sonarscan.Range, 0, len(args))
	for _, arg := range args {
		lo, hi, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("invalid range %q: want start:end", arg)
		}
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", arg, err)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", arg, err)
		}
		out = append(out, sonarscan.Range{Start: start, End: end})
	}
	return out, nil
}

type recordPrinter struct {
	o       *IO
	limit   int
	printed int
}

func (p *recordPrinter) print(recs []record.Record) {
	for _, r := range recs {
		if p.limit > 0 && p.printed >= p.limit {
			return
		}
		p.o.Println(formatRecord(r))
		p.printed++
	}
}

func formatRecord(r record.Record) string {
	return fmt.Sprintf("ofs=%d ch=%d seq=%d time_ms=%d lat=%.6f lon=%.6f depth=%.2f samples=%d sonar=%d+%d beam=%.2f pitch=%.2f roll=%.2f heave=%.2f color=%d",
		r.Offset, r.ChannelID, r.Sequence, r.TimestampMS, r.Latitude, r.Longitude, r.DepthM, r.SampleCount,
		r.SonarOffset, r.SonarSize, r.BeamAngle, r.Pitch, r.Roll, r.Heave, r.ColorID)
}

func printSummary(o *IO, idx *record.ChannelIndex) {
	o.Printf("records: %d\n", idx.Len())
	for _, ch := range idx.Channels() {
		o.Printf("channel %d: %d\n", ch, idx.Count(ch))
	}
}
