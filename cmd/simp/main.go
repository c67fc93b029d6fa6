package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/clarete/simp"
)

type args struct {
	inputPath   *string
	interactive *bool
	gcThreshold *int
	noBanner    *bool
	prompt      *string
}

func readArgs() *args {
	a := &args{
		inputPath:   flag.String("input", "", "Path to a file to evaluate"),
		interactive: flag.Bool("interactive", false, "Drop into a REPL after evaluating -input, or instead of it"),
		gcThreshold: flag.Int("gc-threshold", 10000, "Live object count that triggers a collection"),
		noBanner:    flag.Bool("no-banner", false, "Suppress the REPL banner"),
		prompt:      flag.String("prompt", "> ", "REPL prompt string"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()

	cfg := simp.NewConfig()
	cfg.SetInt(simp.ConfigGCThreshold, *a.gcThreshold)
	cfg.SetBool(simp.ConfigREPLBanner, !*a.noBanner)
	cfg.SetString(simp.ConfigREPLPrompt, *a.prompt)

	ctx := simp.NewContext(cfg, simp.NewInputPort(os.Stdin), simp.NewOutputPort(os.Stdout), simp.NewOutputPort(os.Stderr))
	simp.BootstrapGlobals(ctx)

	ranFile := false
	if *a.inputPath != "" {
		if err := runFile(ctx, *a.inputPath); err != nil {
			log.Fatal(err)
		}
		ranFile = true
	}

	if *a.interactive || !ranFile {
		repl(ctx, cfg)
	}
}

func runFile(ctx *simp.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("can't open input file: %w", err)
	}
	defer f.Close()

	port := simp.NewInputPort(f)
	for {
		expr, err := ctx.Read(port)
		if err != nil {
			return err
		}
		if expr.IsEOF() {
			return nil
		}
		if _, err := simp.Eval(ctx, expr, ctx.GlobalEnv); err != nil {
			return err
		}
	}
}

func repl(ctx *simp.Context, cfg *simp.Config) {
	if cfg.GetBool(simp.ConfigREPLBanner) {
		fmt.Fprintln(os.Stdout, "simp - a tiny Lisp")
	}

	prompt := cfg.GetString(simp.ConfigREPLPrompt)
	in := simp.NewInputPort(os.Stdin)
	out := simp.NewOutputPort(os.Stdout)

	for {
		fmt.Fprint(os.Stdout, prompt)

		expr, err := ctx.Read(in)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if expr.IsEOF() {
			fmt.Fprintln(os.Stdout)
			return
		}

		val, err := simp.Eval(ctx, expr, ctx.GlobalEnv)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if err := simp.Write(out, val); err != nil && err != io.EOF {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Fprintln(os.Stdout)
	}
}
