package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"routeboard/config"
	"routeboard/connections"
	"routeboard/diagram"
	"routeboard/export"
	"routeboard/terminal"
	"routeboard/validation"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	format      string
	output      string
	configPath  string
	zoom        float64
	debug       bool
	validate    bool
	interactive bool
	standoff    float64
	margin      float64
	radius      float64
	set         map[string]bool // Flags given explicitly
	scene       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("routeboard", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.format, "format", "", "Export format: png, svg, text, json (default: from -o extension, else text)")
	fs.StringVar(&opts.output, "o", "", "Output file (default: stdout)")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default: ~/"+config.FileName+" when present)")
	fs.Float64Var(&opts.zoom, "zoom", 1, "Output scale; routing distances are divided by it")
	fs.BoolVar(&opts.debug, "debug", false, "Print the routing trace of every connection to stderr")
	fs.BoolVar(&opts.validate, "validate", false, "Check routes and the text drawing for defects")
	fs.BoolVar(&opts.interactive, "i", false, "Open the scene in the terminal viewer")
	fs.Float64Var(&opts.standoff, "standoff", 0, "Override routing standoff")
	fs.Float64Var(&opts.margin, "margin", 0, "Override obstacle margin")
	fs.Float64Var(&opts.radius, "radius", 0, "Override connector corner radius")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: routeboard [options] scene.json\n\n")
		fmt.Fprintf(stderr, "Routes the connectors of a scene and draws it.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nFormats:\n")
		descriptions := export.FormatDescriptions()
		for _, f := range export.Formats() {
			fmt.Fprintf(stderr, "  %-6s %s\n", f, descriptions[f])
		}
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  routeboard scene.json                   # Text drawing to stdout\n")
		fmt.Fprintf(stderr, "  routeboard -o scene.png scene.json      # PNG, format from extension\n")
		fmt.Fprintf(stderr, "  routeboard -format svg -zoom 2 scene.json\n")
		fmt.Fprintf(stderr, "  routeboard -i scene.json                # Interactive viewer\n")
		fmt.Fprintf(stderr, "  routeboard -debug -o /dev/null scene.json\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	switch fs.NArg() {
	case 0:
		if !opts.interactive {
			fs.Usage()
			return nil, errors.New("please provide a scene file")
		}
	case 1:
		opts.scene = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected one scene file, got %d arguments", fs.NArg())
	}
	return opts, nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, err
	}

	if opts.set["standoff"] {
		cfg.Routing.Standoff = opts.standoff
	}
	if opts.set["margin"] {
		cfg.Routing.Margin = opts.margin
	}
	if opts.set["radius"] {
		cfg.Render.CornerRadius = opts.radius
	}
	if opts.set["zoom"] {
		cfg.Render.Scale = opts.zoom
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	var routerOpts []connections.Option
	if opts.debug {
		routerOpts = append(routerOpts, connections.WithLogger(log.New(stderr, "routeboard: ", log.LstdFlags)))
	}
	router := connections.NewRouter(cfg.RouterConfig(), routerOpts...)

	scene, err := openScene(opts)
	if err != nil {
		return err
	}

	if opts.debug {
		for _, conn := range scene.Connections {
			trace, ok := router.Debug(scene, conn, cfg.Render.Scale)
			if !ok {
				fmt.Fprintf(stderr, "connection %d: endpoint shape missing\n", conn.ID)
				continue
			}
			if _, err := trace.WriteTo(stderr); err != nil {
				return err
			}
		}
	}

	if opts.interactive {
		return terminal.Run(scene, opts.scene, cfg, router)
	}
	if err := exportScene(opts, cfg, router, scene, stdout); err != nil {
		return err
	}
	if opts.validate {
		return validateScene(cfg, router, scene, stderr)
	}
	return nil
}

// validateScene reports route defects and broken lines in the text drawing.
func validateScene(cfg config.Config, router *connections.Router, scene *diagram.Scene, stderr io.Writer) error {
	count := 0
	for _, issue := range validation.CheckRoutes(scene, router, cfg.Render.Scale) {
		fmt.Fprintln(stderr, issue)
		count++
	}

	cells, err := export.Text(router, scene, cfg.ExportSettings())
	if err != nil {
		return err
	}
	for _, e := range validation.NewLineValidator().Validate(cells.String()) {
		fmt.Fprintln(stderr, e)
		count++
	}

	if count > 0 {
		return fmt.Errorf("validation found %d issues", count)
	}
	fmt.Fprintln(stderr, "validation passed")
	return nil
}

// openScene loads the scene file. In the viewer a missing file starts an empty scene
// that is saved to that path.
func openScene(opts *options) (*diagram.Scene, error) {
	if opts.scene == "" {
		return &diagram.Scene{}, nil
	}
	scene, err := export.LoadSceneFile(opts.scene)
	if err != nil {
		if opts.interactive && errors.Is(err, os.ErrNotExist) {
			return &diagram.Scene{}, nil
		}
		return nil, err
	}
	return scene, nil
}

func exportScene(opts *options, cfg config.Config, router *connections.Router, scene *diagram.Scene, stdout io.Writer) error {
	format := export.FormatText
	switch {
	case opts.format != "":
		f, err := export.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		format = f
	case opts.output != "":
		if f, err := export.FormatForPath(opts.output); err == nil {
			format = f
		}
	}

	exporter, err := export.NewExporter(format, router, cfg.ExportSettings())
	if err != nil {
		return err
	}

	if opts.output == "" {
		return exporter.Export(stdout, scene)
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := exporter.Export(f, scene); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
