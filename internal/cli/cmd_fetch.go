package cli

import (
	"context"
	"fmt"
)

func (a *app) fetchCmd() *Command {
	return &Command{
		Usage: "fetch <name>...",
		Short: "Spool captures from the configured store",
		Long: `Download and decompress captures into the spool directory and print
their local paths. Captures that are already spooled are reused.
Uncompressed local files are printed in place.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: want <name>...", errUsage)
			}

			sp := a.spooler()
			for _, name := range args {
				st, objName, err := a.store(ctx, name)
				if err != nil {
					return err
				}

				path, err := sp.Fetch(ctx, st, objName)
				a.logger.LogFetch(ctx, name, path, err)
				if err != nil {
					return err
				}
				o.Println(path)
			}
			return nil
		},
	}
}
