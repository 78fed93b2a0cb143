package cli

import "context"

func (a *app) printConfigCmd() *Command {
	return &Command{
		Usage: "print-config",
		Short: "Show resolved configuration",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			formatted, err := FormatConfig(a.cfg)
			if err != nil {
				return err
			}

			o.Println(formatted)
			o.Println()
			o.Println("# Sources:")
			if a.source != "" {
				o.Println("#   file:", a.source)
			} else {
				o.Println("#   (using defaults only)")
			}
			return nil
		},
	}
}
