// Command shapes builds, prints, saves and draws shape trees from the
// command line.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/formes/backend-go/internal/auth"
	"github.com/formes/backend-go/internal/canvas"
	"github.com/formes/backend-go/internal/config"
	"github.com/formes/backend-go/internal/export"
	"github.com/formes/backend-go/internal/load"
	"github.com/formes/backend-go/internal/shape"
)

const cliSubject = "shapes-cli"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "shapes",
		Short:        "Build, print, save and draw 2D shape trees",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()})))
			return nil
		},
	}
	root.AddCommand(a.demoCmd(), a.loadCmd(), a.drawCmd(), a.tokenCmd())
	return root
}

func (a *app) demoCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Transform the sample drawing, save it and read it back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.cfg.OutputPath
			}
			return runDemo(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to save the drawing to (default $OUTPUT_PATH)")
	return cmd
}

func runDemo(w io.Writer, path string) error {
	root, err := shape.NewSample()
	if err != nil {
		return err
	}
	report(w, "sample", root)

	root.Translate(shape.Pt(1, 1))
	report(w, "translated by (1,1)", root)

	root.Rotate(shape.Pt(0, 0), math.Pi/2)
	report(w, "rotated a quarter turn around (0,0)", root)

	if err := root.Scale(shape.Pt(0, 0), 2); err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	report(w, "scaled by 2 from (0,0)", root)

	tw, err := export.Create(path)
	if err != nil {
		return err
	}
	if err := root.Accept(tw); err != nil {
		tw.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	slog.Info("drawing saved", "path", path)

	shapes, err := load.File(path)
	if err != nil {
		return err
	}
	for _, s := range shapes {
		report(w, "reloaded", s)
	}
	if len(shapes) != 1 || shapes[0].String() != root.String() {
		return fmt.Errorf("reloaded drawing differs from the saved one")
	}
	return nil
}

func report(w io.Writer, label string, s shape.Shape) {
	fmt.Fprintf(w, "%s:\n  %s\n  area %s\n", label, s, shape.FormatFloat(s.Area()))
}

func (a *app) loadCmd() *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Print the shapes of a saved drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shapes, err := readFile(args[0], lenient)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			var total float64
			for _, s := range shapes {
				fmt.Fprintln(w, s)
				total += s.Area()
			}
			fmt.Fprintf(w, "%d shapes, total area %s\n", len(shapes), shape.FormatFloat(total))
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip lines that do not parse instead of failing")
	return cmd
}

func readFile(path string, lenient bool) ([]shape.Shape, error) {
	if !lenient {
		return load.File(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return load.Loader{Lenient: true}.Load(f)
}

func (a *app) drawCmd() *cobra.Command {
	var (
		canvasURL string
		token     string
		dryRun    bool
	)
	cmd := &cobra.Command{
		Use:   "draw <file>",
		Short: "Send a saved drawing to a canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shapes, err := load.File(args[0])
			if err != nil {
				return err
			}

			var sender export.Sender = canvas.LogSender{}
			if !dryRun {
				if canvasURL == "" {
					canvasURL = a.cfg.CanvasURL
				}
				if token == "" {
					token, err = auth.NewService(a.cfg.JWTSecret).IssueToken(cliSubject)
					if err != nil {
						return err
					}
				}
				remote, err := canvas.Dial(cmd.Context(), canvasURL, token)
				if err != nil {
					return err
				}
				defer remote.Close()
				sender = remote
			}

			d := export.NewDrawer(sender)
			if err := shape.Walk(d, shapes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d draw requests\n", d.Sent())
			return nil
		},
	}
	cmd.Flags().StringVar(&canvasURL, "canvas", "", "canvas websocket URL (default $CANVAS_URL)")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (default: one signed with $JWT_SECRET)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the requests instead of sending them")
	return cmd
}

func (a *app) tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <subject>",
		Short: "Print a bearer token for the drawing API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.NewService(a.cfg.JWTSecret).IssueToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
