package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/recera/vango-atomic/pkg/renderer/html"
	"github.com/recera/vango-atomic/pkg/styling"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		rtl       bool
		ltr       bool
		when      []string
		className string
		asHTML    bool
	)

	cmd := &cobra.Command{
		Use:   "render <bundle.json>",
		Short: "Show the classes and rules a bundle injects for a state",
		Long: `Runs a compiled bundle against an empty stylesheet and prints the class
attribute the component receives followed by the injected rules.`,
		Example: `  vatomic render public/styles/image.json --when avatar=true --rtl`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read bundle: %w", err)
			}
			bundle, err := styling.LoadBundle(data)
			if err != nil {
				return err
			}

			state, err := parseState(when)
			if err != nil {
				return err
			}

			direction := a.config.Styling.Atomic.RTL
			if cmd.Flags().Changed("rtl") {
				direction = rtl
			}
			if ltr {
				direction = false
			}

			sheet := styling.NewMemorySheet()
			target := styling.NewRenderTarget(sheet)

			class, err := bundle.Hook().ClassName(target, direction, state, bundle.ClassName, className)
			if err != nil {
				return err
			}

			a.log.Debug().
				Str("bundle", bundle.Name).
				Bool("rtl", direction).
				Int("rules", sheet.Len()).
				Msg("rendered bundle")

			out := cmd.OutOrStdout()
			if asHTML {
				fmt.Fprintf(out, "class=%q\n", class)
				if err := html.WriteStyleTag(out, a.config.Styling.Atomic.StyleID, sheet); err != nil {
					return err
				}
				_, err := fmt.Fprintln(out)
				return err
			}
			return printRender(out, bundle.Name, class, sheet)
		},
	}

	cmd.Flags().BoolVar(&rtl, "rtl", false, "Render right-to-left (defaults to styling.atomic.rtl)")
	cmd.Flags().BoolVar(&ltr, "ltr", false, "Render left-to-right, overriding the configured direction")
	cmd.Flags().StringArrayVar(&when, "when", nil, "Component state as key=bool, repeatable")
	cmd.Flags().StringVar(&className, "class", "", "Extra class names appended to the result")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Print the rules as a <style> element")

	return cmd
}

// parseState turns ["avatar=true", "fluid"] into a state map
func parseState(pairs []string) (map[string]bool, error) {
	state := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid --when %q: missing key", pair)
		}
		if !found {
			state[key] = true
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid --when %q: %w", pair, err)
		}
		state[key] = b
	}
	return state, nil
}

func printRender(w io.Writer, name, class string, sheet *styling.MemorySheet) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	muted := r.NewStyle().Faint(true)

	var b strings.Builder
	b.WriteString(heading.Render("🎨 " + name))
	b.WriteString("\n")
	b.WriteString(muted.Render("class"))
	b.WriteString("  ")
	b.WriteString(class)
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("rules  %d", sheet.Len())))
	b.WriteString("\n")
	for _, rule := range sheet.Rules() {
		b.WriteString("  ")
		b.WriteString(rule)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
