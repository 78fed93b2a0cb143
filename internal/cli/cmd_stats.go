package cli

import (
	"context"
	"fmt"
)

func (a *app) statsCmd() *Command {
	return &Command{
		Usage: "stats <capture>",
		Short: "Show capture and engine statistics",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: want <capture>", errUsage)
			}

			s, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			st := s.Stats()
			o.Printf("path:           %s\n", s.Path())
			o.Printf("file size:      %d bytes (%.2f MB)\n", st.FileSize, st.FileSizeMB)
			o.Printf("memory mapped:  %t\n", st.MemoryMapped)
			o.Printf("isa:            %s\n", st.ISA)
			o.Printf("strategy:       %s (lane width %d)\n", st.Strategy, st.LaneWidth)
			o.Printf("workers:        %d\n", st.Workers)
			o.Printf("cache:          %d/%d entries, %d hits, %d misses\n",
				st.CacheEntries, st.CacheCapacity, st.CacheHits, st.CacheMisses)

			p := s.Policy()
			o.Printf("decoder gate:   channel <= %d, samples <= %d\n", p.MaxChannelID, p.MaxSampleCount)
			return nil
		},
	}
}
