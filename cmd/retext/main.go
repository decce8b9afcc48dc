// Command retext lists the text regions of a page image and redraws them
// with replacement text.
//
// Usage:
//
//	retext -in page.png -detections words.json -list
//	retext -in page.png -detections words.json -set 0="New title" -out edited.png
//	retext -in page.png -ocr -set 2=Total -out edited.png
//
// The -ocr flag needs a binary built with -tags ocr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tsawler/retext"
	"github.com/tsawler/retext/config"
	"github.com/tsawler/retext/internal/logging"
	"github.com/tsawler/retext/layout"
	"github.com/tsawler/retext/model"
	"github.com/tsawler/retext/ocr"
	"github.com/tsawler/retext/pages"
)

// stringList is a repeatable string flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type options struct {
	configPath string
	inputs     []string
	page       int
	detections string
	useOCR     bool
	policy     string
	threshold  float64
	list       bool
	sets       []string
	fontSize   int
	thickness  int
	wrap       int
	out        string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "retext: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "retext: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	var inputs, sets stringList

	fs := flag.NewFlagSet("retext", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: retext -in <image> [-detections file | -ocr] [-list | -set id=text ... -out file]\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Configuration file (.yaml, .yml or .json)")
	fs.Var(&inputs, "in", "Page image; repeat for several pages")
	fs.IntVar(&opts.page, "page", 0, "Index of the page to list or edit")
	fs.StringVar(&opts.detections, "detections", "", "Detections file (.json, .yaml or .yml) used instead of OCR")
	fs.BoolVar(&opts.useOCR, "ocr", false, "Detect text with Tesseract (requires a build with -tags ocr)")
	fs.StringVar(&opts.policy, "policy", "", fmt.Sprintf("Merge policy: %s (overrides config)", mergePolicies()))
	fs.Float64Var(&opts.threshold, "threshold", 0, "Merge threshold in pixels (overrides config)")
	fs.BoolVar(&opts.list, "list", false, "Print the page's regions")
	fs.Var(&sets, "set", "Replace a region's text: id=text, where id is a region ID or index; repeatable")
	fs.IntVar(&opts.fontSize, "font-size", 0, "Font size for edited regions (default: estimated per region)")
	fs.IntVar(&opts.thickness, "thickness", 0, "Stroke thickness (overrides config)")
	fs.IntVar(&opts.wrap, "wrap", 0, "Wrap width in pixels (default: region width)")
	fs.StringVar(&opts.out, "out", "", "Output PNG for the edited page")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.inputs = inputs
	opts.sets = sets

	if len(opts.inputs) == 0 {
		fs.Usage()
		return options{}, fmt.Errorf("missing -in page image")
	}
	if opts.detections == "" && !opts.useOCR {
		return options{}, fmt.Errorf("one of -detections or -ocr is required")
	}
	if len(opts.sets) > 0 && opts.out == "" {
		return options{}, fmt.Errorf("-set requires -out")
	}
	if !opts.list && len(opts.sets) == 0 {
		opts.list = true
	}

	return opts, nil
}

func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(config.EnvPrefix); err != nil {
		return cfg, err
	}

	if opts.policy != "" {
		cfg.Merge.Policy = opts.policy
	}
	if opts.threshold != 0 {
		cfg.Merge.Threshold = opts.threshold
	}
	if opts.thickness != 0 {
		cfg.Render.Thickness = opts.thickness
	}

	return cfg, cfg.Validate()
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)

	docOpts := []retext.Option{
		retext.WithConfig(cfg),
		retext.WithLogger(logger),
	}
	if opts.useOCR && opts.detections == "" {
		client, err := ocr.NewWithOptions(cfg.OCROptions())
		if err != nil {
			return err
		}
		docOpts = append(docOpts, retext.WithDetector(client))
	}

	doc, err := retext.New(docOpts...)
	if err != nil {
		return err
	}
	defer doc.Close()

	for _, path := range opts.inputs {
		if _, err := doc.LoadPage(path); err != nil {
			return err
		}
	}

	regions, err := detect(ctx, doc, opts)
	if err != nil {
		return err
	}

	if len(opts.sets) > 0 {
		if err := applyEdits(ctx, doc, opts, regions, logger); err != nil {
			return err
		}
		if regions, err = doc.Regions(opts.page); err != nil {
			return err
		}
	}

	if opts.list {
		if err := printRegions(stdout, regions); err != nil {
			return err
		}
	}

	return nil
}

func detect(ctx context.Context, doc *retext.Document, opts options) ([]model.Region, error) {
	if opts.detections != "" {
		dets, err := loadDetections(opts.detections)
		if err != nil {
			return nil, err
		}
		return doc.SetDetections(opts.page, dets)
	}
	return doc.Detect(ctx, opts.page)
}

func applyEdits(ctx context.Context, doc *retext.Document, opts options, regions []model.Region, logger *slog.Logger) error {
	for _, set := range opts.sets {
		id, text, err := parseSet(set, regions)
		if err != nil {
			return err
		}

		edit := retext.Edit{
			Text:      text,
			FontSize:  opts.fontSize,
			WrapWidth: opts.wrap,
		}
		if err := doc.StageEdit(opts.page, id, edit); err != nil {
			return err
		}
	}

	img, warnings, err := doc.Apply(ctx, opts.page)
	if err != nil {
		return err
	}
	if len(warnings) > 0 {
		logger.Warn("edits applied with warnings", "count", len(warnings))
	}

	return pages.SavePNG(opts.out, img)
}

// parseSet splits an id=text argument. The id may be a region ID or a
// zero-based index into regions. A literal \n in the text is a line break.
func parseSet(arg string, regions []model.Region) (string, string, error) {
	key, text, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid -set %q: want id=text", arg)
	}
	text = strings.ReplaceAll(text, `\n`, "\n")

	if i, err := strconv.Atoi(key); err == nil {
		if i < 0 || i >= len(regions) {
			return "", "", fmt.Errorf("invalid -set %q: region index %d out of range [0,%d)", arg, i, len(regions))
		}
		return regions[i].ID, text, nil
	}

	for _, r := range regions {
		if r.ID == key {
			return key, text, nil
		}
	}
	return "", "", fmt.Errorf("invalid -set %q: %w", arg, retext.ErrRegionNotFound)
}

func printRegions(w io.Writer, regions []model.Region) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tBOX\tSIZE\tTEXT")
	for i, r := range regions {
		fmt.Fprintf(tw, "%d\t%s\t%.0f,%.0f %.0fx%.0f\t%d\t%q\n",
			i, r.ID, r.BBox.X, r.BBox.Y, r.BBox.Width, r.BBox.Height, r.FontSize, r.Text)
	}
	return tw.Flush()
}

// mergePolicies lists the accepted -policy values for error messages
func mergePolicies() string {
	return strings.Join([]string{string(layout.PolicyCentroid), string(layout.PolicyAlignment)}, ", ")
}
