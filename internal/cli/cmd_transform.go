package cli

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/sonarscan/geo"
	flag "github.com/spf13/pflag"
)

func (a *app) transformCmd() *Command {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	heading := fs.Float64("heading", 0, "Rotation applied to the offset, in degrees")
	radians := fs.Bool("radians", false, "Interpret --heading as radians")
	dx := fs.Float64("dx", 0, "Body-frame x offset in metres")
	dy := fs.Float64("dy", 0, "Body-frame y offset in metres")

	return &Command{
		Flags: fs,
		Usage: "transform [flags] < points",
		Short: "Shift lat/lon points by a rotated offset",
		Long: `Read "lat lon" pairs, one per line, from stdin and print them shifted by
the body-frame offset (dx, dy) rotated by heading. At heading 0, dx points
east and dy north. Blank lines and lines starting with # are skipped.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("%w: transform reads points from stdin", errUsage)
			}

			lats, lons, err := readPoints(o)
			if err != nil {
				return err
			}

			h := *heading
			if !*radians {
				h = h * math.Pi / 180
			}

			start := time.Now()
			outLat, outLon, err := geo.RotateAndOffset(lats, lons, h, *dx, *dy)
			a.metrics.RecordTransform(len(lats), time.Since(start), err)
			if err != nil {
				return err
			}

			for i := range outLat {
				o.Printf("%.8f %.8f\n", outLat[i], outLon[i])
			}
			return nil
		},
	}
}

func readPoints(o *IO) ([]float64, []float64, error) {
	if o.In() == nil {
		return nil, nil, nil
	}

	var lats, lons []float64

	sc := bufio.NewScanner(o.In())
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
		if len(fields) != 2 {
			return nil, nil, fmt.Errorf("line %d: want \"lat lon\", got %q", line, text)
		}
		lat, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		lon, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		lats = append(lats, lat)
		lons = append(lons, lon)
	}

	return lats, lons, sc.Err()
}
