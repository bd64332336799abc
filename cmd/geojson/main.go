// Command geojson parses, validates, converts and indexes GeoJSON geometries.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/beetlebugorg/geojson/pkg/geojson"
)

const (
	appName     = "geojson"
	version     = "0.1.0"
	historyFile = ".geojson_history"
	promptMain  = "geojson> "
	promptCont  = "....... "
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(appName + ": ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "parse":
		os.Exit(cmdParse(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "index":
		os.Exit(cmdIndex(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		log.Printf("unknown command %q", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`GeoJSON geometry tool %s

Usage:
  %s parse [flags] <file|-> ...             Parse and print geometries.
  %s check [flags] <file> ...               Validate files in parallel.
  %s index [flags] -box x0,y0,x1,y1 <dir>   Find geometries intersecting a box.
  %s repl                                   Parse documents interactively.
  %s version                                Print the version

Files ending in .gz are decompressed. Run "%s <command> -h" for flags.
`, version, appName, appName, appName, appName, appName, appName)
}

// parseFlags are shared by every command that parses.
type parseFlags struct {
	lenient      bool
	checkBBox    bool
	maxFragments int
}

func (p *parseFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&p.lenient, "lenient", false, "check linestring and ring sizes after parsing instead of while reading")
	fs.BoolVar(&p.checkBBox, "check-bbox", false, "require a declared bbox to enclose the geometry")
	fs.IntVar(&p.maxFragments, "max-fragments", 0, "limit on intermediate objects per document (0 = unlimited)")
}

func (p *parseFlags) options() geojson.ParseOptions {
	opts := geojson.DefaultParseOptions()
	opts.Strict = !p.lenient
	opts.CheckBBox = p.checkBBox
	opts.MaxFragments = p.maxFragments
	return opts
}

// -----------------------------------------------------------------------------
// parse
// -----------------------------------------------------------------------------

func cmdParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	var pf parseFlags
	pf.register(fs)
	format := fs.String("format", "summary", "output format: summary, geojson or wkt")
	precision := fs.Int("precision", 15, "decimal digits for geojson output (-1 = shortest exact)")
	crs := fs.String("crs", "none", "crs member for geojson output: none, short or long")
	bbox := fs.Bool("bbox", false, "write a bbox member in geojson output")
	trace := fs.Bool("trace", false, "print every parser step to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		log.Print("parse: no input files")
		return 2
	}

	encOpts := geojson.EncodeOptions{Precision: *precision, BBox: *bbox}
	switch *crs {
	case "none":
		encOpts.CRS = geojson.CRSNone
	case "short":
		encOpts.CRS = geojson.CRSShort
	case "long":
		encOpts.CRS = geojson.CRSLong
	default:
		log.Printf("parse: unknown crs form %q", *crs)
		return 2
	}

	opts := pf.options()
	if *trace {
		opts.Trace = os.Stderr
	}

	status := 0
	for _, path := range fs.Args() {
		var g *geojson.Geometry
		var err error
		if path == "-" {
			g, err = geojson.ParseReader(os.Stdin, opts)
		} else {
			g, err = geojson.ParseFile(path, opts)
		}
		if err != nil {
			log.Printf("%s: %v", path, err)
			status = 1
			continue
		}
		if err := printGeometry(os.Stdout, path, g, *format, encOpts); err != nil {
			log.Printf("%s: %v", path, err)
			status = 1
		}
	}
	return status
}

func printGeometry(w io.Writer, name string, g *geojson.Geometry, format string, encOpts geojson.EncodeOptions) error {
	switch format {
	case "summary":
		fmt.Fprintln(w, summary(name, g))
	case "geojson":
		out, err := geojson.Encode(g, encOpts)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
	case "wkt":
		s, err := geojson.WKT(g)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func summary(name string, g *geojson.Geometry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v %v", name, g.Type(), g.Dimension())
	if g.HasSRID() {
		fmt.Fprintf(&b, " SRID=%d", g.SRID())
	}
	fmt.Fprintf(&b, " points=%d linestrings=%d polygons=%d",
		len(g.Points()), len(g.LineStrings()), len(g.Polygons()))
	bounds := g.Bounds()
	fmt.Fprintf(&b, " bounds=[%g %g %g %g]", bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY)
	return b.String()
}

// -----------------------------------------------------------------------------
// check
// -----------------------------------------------------------------------------

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var pf parseFlags
	pf.register(fs)
	workers := fs.Int("workers", 0, "parallel workers (0 = number of CPUs)")
	quiet := fs.Bool("q", false, "only report failures")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 {
		log.Print("check: no input files")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := geojson.DefaultLoadOptions()
	opts.Workers = *workers
	opts.Parse = pf.options()
	opts.ErrorLog = os.Stderr

	geoms, errs := geojson.LoadFilesParallel(ctx, paths, opts)
	if !*quiet {
		for i, g := range geoms {
			if g != nil {
				fmt.Printf("ok   %s\n", paths[i])
			}
		}
	}
	fmt.Printf("%d/%d valid\n", len(paths)-len(errs), len(paths))
	if len(errs) > 0 {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// index
// -----------------------------------------------------------------------------

func cmdIndex(args []string) int {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	var pf parseFlags
	pf.register(fs)
	box := fs.String("box", "", "query box as minx,miny,maxx,maxy (default: everything)")
	srid := fs.Int("srid", 0, "only geometries with this SRID")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		log.Print("index: expected one directory")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := geojson.DefaultLoadOptions()
	opts.Parse = pf.options()
	opts.ErrorLog = os.Stderr

	idx, _, err := geojson.BuildIndexFromDir(ctx, fs.Arg(0), opts)
	if err != nil {
		log.Printf("index: %v", err)
		return 1
	}

	query := idx.Bounds()
	if *box != "" {
		query, err = parseBox(*box)
		if err != nil {
			log.Printf("index: %v", err)
			return 2
		}
	}

	hits := idx.Search(query, geojson.QueryOptions{SRID: *srid})
	for _, h := range hits {
		rel, err := filepath.Rel(fs.Arg(0), h.Name)
		if err != nil {
			rel = h.Name
		}
		fmt.Println(summary(rel, h.Geometry))
	}
	fmt.Printf("%d of %d geometries intersect [%g %g %g %g]\n",
		len(hits), idx.Count(), query.MinX, query.MinY, query.MaxX, query.MaxY)
	return 0
}

func parseBox(s string) (geojson.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geojson.Bounds{}, fmt.Errorf("box needs 4 numbers, got %d", len(parts))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geojson.Bounds{}, fmt.Errorf("box: %w", err)
		}
		v[i] = f
	}
	if v[0] > v[2] || v[1] > v[3] {
		return geojson.Bounds{}, errors.New("box minimum exceeds maximum")
	}
	return geojson.Bounds{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}, nil
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Printf("GeoJSON geometry REPL %s. Enter a document; :help for commands.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	parser := geojson.NewParser()
	opts := geojson.DefaultParseOptions()
	format := "summary"
	encOpts := geojson.DefaultEncodeOptions()

	for {
		src, ok := readDocument(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			fields := strings.Fields(trimmed)
			switch strings.ToLower(fields[0]) {
			case ":quit", ":q":
				return 0
			case ":trace":
				if opts.Trace == nil {
					opts.Trace = os.Stdout
					opts.TracePrompt = "  "
				} else {
					opts.Trace = nil
				}
				fmt.Printf("trace %v\n", opts.Trace != nil)
			case ":lenient":
				opts.Strict = !opts.Strict
				fmt.Printf("strict %v\n", opts.Strict)
			case ":format":
				if len(fields) == 2 {
					format = fields[1]
				}
				fmt.Printf("format %s\n", format)
			case ":help":
				fmt.Println(":trace  toggle parser trace\n:lenient  toggle strict size checks\n:format summary|geojson|wkt\n:quit")
			default:
				fmt.Println("unknown command. Type :help for commands.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		g, err := parser.ParseWithOptions([]byte(src), opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if err := printGeometry(os.Stdout, "ok", g, format, encOpts); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// readDocument reads lines until brackets and braces balance.
func readDocument(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C discards the pending document.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if nesting(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// nesting returns the number of unclosed '{' and '[' outside strings.
func nesting(src string) int {
	depth := 0
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
		}
	}
	return depth
}
