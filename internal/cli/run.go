package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"zedx2txt/internal/glossary"
	"zedx2txt/internal/outpath"
	"zedx2txt/internal/plaintext"
	"zedx2txt/internal/report"
	"zedx2txt/internal/source"
	"zedx2txt/internal/version"
)

const (
	documentsDir = "documents"

	envInput  = "ZEDX2TXT_INPUT"
	envOutput = "ZEDX2TXT_OUTPUT"
	envErrors = "ZEDX2TXT_ERRORS"
)

type options struct {
	InputRoot   string
	OutputRoot  string
	ErrorLog    string
	ShowVersion bool
	ShowHelp    bool
}

type runSummary struct {
	Converted int
	Skipped   int
	Expanded  int
	Untitled  int
	Malformed int
}

type fileResult struct {
	outputPath string
	skipped    bool
	expanded   int
	untitled   int
	errors     *report.Collector
}

type pipeline struct {
	outputRoot string
	extractor  *plaintext.Extractor
	logger     *logrus.Logger
}

func Run(args []string, stdout io.Writer, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.ShowHelp {
		return nil
	}
	if opts.ShowVersion {
		_, _ = fmt.Fprintln(stdout, version.String())
		return nil
	}

	documentsRoot, err := prepareDirs(opts)
	if err != nil {
		return err
	}

	files, err := source.Discover(documentsRoot)
	if err != nil {
		return err
	}

	p := &pipeline{
		outputRoot: opts.OutputRoot,
		extractor:  plaintext.New(),
		logger:     newLogger(stderr),
	}

	runStart := time.Now()
	_, _ = fmt.Fprintf(stdout, "Found %d document(s) under %s\n", len(files), documentsRoot)

	summary, errs, err := p.convertAll(files, opts.InputRoot, stdout, stderr)
	if err != nil {
		return err
	}

	summary.Malformed = errs.Len()
	written, err := errs.WriteFile(opts.ErrorLog)
	if err != nil {
		return err
	}
	if written {
		_, _ = fmt.Fprintf(stdout, "Error log: %s\n", opts.ErrorLog)
	}

	_, _ = fmt.Fprintf(
		stdout,
		"Done: %d converted, %d skipped, %d gloss(es) expanded, %d untitled, %d malformed marker(s), total %s\n",
		summary.Converted,
		summary.Skipped,
		summary.Expanded,
		summary.Untitled,
		summary.Malformed,
		time.Since(runStart).Round(time.Millisecond),
	)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("zedx2txt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := options{}
	fs.StringVar(&opts.InputRoot, "input", os.Getenv(envInput), "Extracted zedx archive root containing a documents/ folder (env "+envInput+")")
	fs.StringVar(&opts.OutputRoot, "output", os.Getenv(envOutput), "Directory that receives the .txt tree (env "+envOutput+")")
	fs.StringVar(&opts.ErrorLog, "errors", os.Getenv(envErrors), "JSON file listing documents with malformed gloss titles (env "+envErrors+")")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Print version information and exit")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: zedx2txt -input <dir> -output <dir> -errors <file>")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Example:")
		fmt.Fprintln(stderr, "  zedx2txt -input director -output output/director -errors output/director.json")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.ShowHelp = true
			return opts, nil
		}
		return options{}, err
	}
	if opts.ShowVersion {
		return opts, nil
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.InputRoot = strings.TrimSpace(opts.InputRoot)
	opts.OutputRoot = strings.TrimSpace(opts.OutputRoot)
	opts.ErrorLog = strings.TrimSpace(opts.ErrorLog)

	var missing []string
	if opts.InputRoot == "" {
		missing = append(missing, "--input")
	}
	if opts.OutputRoot == "" {
		missing = append(missing, "--output")
	}
	if opts.ErrorLog == "" {
		missing = append(missing, "--errors")
	}
	if len(missing) > 0 {
		fs.Usage()
		return options{}, fmt.Errorf("%s required", strings.Join(missing, ", "))
	}

	return opts, nil
}

// convertAll processes files in order and merges each file's collector into
// the run's. The first fatal error stops the batch.
func (p *pipeline) convertAll(files []string, label string, stdout io.Writer, stderr io.Writer) (runSummary, *report.Collector, error) {
	var summary runSummary
	errs := &report.Collector{}
	if len(files) == 0 {
		return summary, errs, nil
	}

	bar := progressbar.NewOptions(
		len(files),
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
	)
	for _, file := range files {
		result, err := p.processFile(file)
		if err != nil {
			_ = bar.Exit()
			return summary, errs, err
		}
		_ = bar.Add(1)

		errs.Merge(result.errors)
		if result.skipped {
			summary.Skipped++
			continue
		}
		summary.Converted++
		summary.Expanded += result.expanded
		summary.Untitled += result.untitled
		_, _ = fmt.Fprintf(stdout, "Output: %s\n", result.outputPath)
	}
	_ = bar.Finish()
	_, _ = fmt.Fprintln(stderr)

	return summary, errs, nil
}

// prepareDirs checks the archive layout and creates the output root. It
// returns the directory the walk starts from.
func prepareDirs(opts options) (string, error) {
	info, err := os.Stat(opts.InputRoot)
	if err != nil {
		return "", fmt.Errorf("open input root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("input root %s is not a directory", opts.InputRoot)
	}

	documentsRoot := filepath.Join(opts.InputRoot, documentsDir)
	info, err = os.Stat(documentsRoot)
	if err != nil {
		return "", fmt.Errorf("open documents folder: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", documentsRoot)
	}

	if err := os.MkdirAll(opts.OutputRoot, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return documentsRoot, nil
}

func newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

// processFile converts one source document. Malformed markers are collected
// into the returned result, everything else is fatal.
func (p *pipeline) processFile(path string) (fileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		p.logger.WithField("file", path).Debug("skip empty document")
		return fileResult{skipped: true}, nil
	}

	loaded, err := source.Load(path)
	if err != nil {
		return fileResult{}, err
	}
	if loaded.Encoding != source.DefaultEncoding {
		p.logger.WithFields(logrus.Fields{"file": path, "encoding": loaded.Encoding}).Info("decoded with detected encoding")
	}

	doc, err := glossary.Parse(path, loaded.Text)
	if err != nil {
		return fileResult{}, err
	}

	resolved := doc.Resolve()
	errs := &report.Collector{}
	for _, title := range resolved.Malformed {
		errs.Record(path)
		p.logger.WithFields(logrus.Fields{"file": path, "title": title}).Warn("gloss title is not an English--Chinese pair")
	}

	rendered, err := doc.HTML()
	if err != nil {
		return fileResult{}, err
	}
	text, err := p.extractor.FromHTML(rendered)
	if err != nil {
		return fileResult{}, fmt.Errorf("convert %s: %w", path, err)
	}

	outPath, err := outpath.Map(p.outputRoot, path)
	if err != nil {
		return fileResult{}, err
	}
	if err := writeOutput(outPath, text); err != nil {
		return fileResult{}, err
	}

	return fileResult{
		outputPath: outPath,
		expanded:   resolved.Expanded,
		untitled:   resolved.Untitled,
		errors:     errs,
	}, nil
}

func writeOutput(path string, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if text != "" {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write output file %s: %w", path, err)
	}
	return nil
}
