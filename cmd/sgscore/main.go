// sgscore reads a diagram JSON document, optionally lays it out, and prints
// the readability score with its full quality breakdown. External tuning
// loops consume the JSON output.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts"
	"github.com/slidegraph/slidegraph/sglayouts/sgscore"
	"github.com/slidegraph/slidegraph/sgpatch"
)

func main() {
	var (
		runLayout bool
		optsPath  string
		patchPath string
		seed      int
		pretty    bool
		quiet     bool
	)
	pflag.BoolVar(&runLayout, "layout", false, "run the full layout pipeline before scoring")
	pflag.StringVar(&optsPath, "opts", "", "TOML file of layout parameters")
	pflag.StringVar(&patchPath, "patch", "", "JSON file of layout overrides")
	pflag.IntVar(&seed, "seed", -1, "jitter seed, overrides the opts file")
	pflag.BoolVar(&pretty, "pretty", false, "indent the JSON output")
	pflag.BoolVar(&quiet, "quiet", false, "suppress progress logging")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: sgscore [flags] [diagram.json]\n\nReads the diagram from the given file or stdin.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if err := run(runLayout, optsPath, patchPath, seed, pretty, quiet); err != nil {
		fmt.Fprintf(os.Stderr, "sgscore: %v\n", err)
		os.Exit(1)
	}
}

func run(runLayout bool, optsPath, patchPath string, seed int, pretty, quiet bool) error {
	ctx := log.WithDefault(context.Background())
	if quiet {
		ctx = log.WithDiscard(ctx)
	}

	d, err := readDiagram(pflag.Arg(0))
	if err != nil {
		return err
	}

	var patch *sgpatch.Patch
	if patchPath != "" {
		patch, err = readPatch(patchPath)
		if err != nil {
			return err
		}
	}

	if runLayout {
		defaults := sglayouts.DefaultOpts
		opts := &defaults
		if optsPath != "" {
			opts, err = sglayouts.LoadOpts(optsPath)
			if err != nil {
				return err
			}
		}
		if seed >= 0 {
			opts.Seed = seed
		}
		patch.ApplyPre(d, opts)
		if err := sglayouts.Layout(ctx, d, opts); err != nil {
			return err
		}
		patch.ApplyPost(d)
	} else {
		if d.Bounds == nil || (d.Bounds.Width == 0 && d.Bounds.Height == 0) {
			d.RecomputeGeometry()
		}
		patch.ApplyPost(d)
	}

	res := sgscore.Score(d)

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

func readDiagram(path string) (*sggraph.Diagram, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var d sggraph.Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding diagram: %w", err)
	}
	return &d, nil
}

func readPatch(path string) (*sgpatch.Patch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p sgpatch.Patch
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decoding patch %s: %w", path, err)
	}
	return &p, nil
}
