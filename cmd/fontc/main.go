// Command fontc compiles a font description into a glyph atlas texture and
// a metadata file.
//
// Usage:
//
//	fontc -i fonts/vera.fontinfo -o build/vera.fntb [-d datadir] [-e little|big] [-v] [-l log]
//
// The output path names the files written: its extension is replaced by the
// texture format and by the metadata writer's extension. With -w the text
// (or the contents of the file it names) is drawn with the compiled font
// and saved to the output path instead.
package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/fontc"
	"github.com/gogpu/fontc/fontinfo"
	"github.com/gogpu/fontc/internal/image"
	"github.com/gogpu/fontc/output"
	"github.com/gogpu/fontc/text"
)

type config struct {
	input     string
	output    string
	dataDir   string
	endian    string
	verbose   bool
	logFile   string
	writeText string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "i", "", "the font description (.fontinfo)")
	flag.StringVar(&cfg.output, "o", "", "the output font; its extension is replaced per file")
	flag.StringVar(&cfg.dataDir, "d", "", "directory resource paths are also resolved against")
	flag.StringVar(&cfg.endian, "e", "little", "byte order of binary formats: little or big")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.StringVar(&cfg.logFile, "l", "", "also write the log to this file")
	flag.StringVar(&cfg.writeText, "w", "", "draw this text (or the contents of this file) into the output image")
	flag.Parse()

	if err := validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "fontc: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontc: %v\n", err)
		os.Exit(1)
	}
	fontc.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		logger.Error("compile failed", "input", cfg.input, "err", err)
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func validate(cfg config) error {
	switch {
	case cfg.input == "":
		return errors.New("you must specify an input file")
	case cfg.output == "":
		return errors.New("you must specify an output file")
	case cfg.endian != "little" && cfg.endian != "big":
		return fmt.Errorf("invalid byte order %q", cfg.endian)
	}
	if _, err := os.Stat(cfg.input); err != nil {
		return fmt.Errorf("the input file doesn't exist: %s", cfg.input)
	}
	return nil
}

func newLogger(cfg config) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.logFile != "" {
		f, err := os.Create(filepath.Clean(cfg.logFile))
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closeLog = func() { _ = f.Close() }
	}
	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}

func run(ctx context.Context, cfg config) error {
	desc, err := fontinfo.Load(cfg.input, cfg.dataDir)
	if err != nil {
		return err
	}
	writer, err := output.Lookup(desc.Writer)
	if err != nil {
		return err
	}

	path, err := text.Locate(desc.FontName, desc.SearchDirs...)
	if err != nil {
		return err
	}
	opts := desc.Font.Options
	face, err := text.Open(path,
		text.WithKerningSize(float64(opts.RenderSize()), float64(opts.DPI)),
		text.WithGPOSKerning(),
	)
	if err != nil {
		return err
	}
	defer func() { _ = face.Close() }()
	fontc.Logger().Info("loaded font", "path", path, "family", face.Name())

	var compileOpts []fontc.CompileOption
	str := cfg.writeText
	if str != "" {
		if data, err := os.ReadFile(filepath.Clean(str)); err == nil {
			str = string(data)
		}
		compileOpts = append(compileOpts, fontc.WithOnly(str))
	}

	res, err := fontc.Compile(ctx, desc.Font, face, compileOpts...)
	if err != nil {
		return err
	}

	if str != "" {
		return writePreview(cfg.output, res, str)
	}

	base := strings.TrimSuffix(cfg.output, filepath.Ext(cfg.output))
	texture := base + desc.TextureFormat
	if err := os.MkdirAll(filepath.Dir(texture), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := output.SaveTexture(texture, res.Atlas.Image, desc.TextureChannels); err != nil {
		return err
	}
	meta := output.Meta{
		Name:    filepath.Base(cfg.input),
		Texture: filepath.Base(texture),
		Order:   binary.LittleEndian,
	}
	if cfg.endian == "big" {
		meta.Order = binary.BigEndian
	}
	_, err = output.Save(base, writer, res, meta)
	return err
}

// writePreview draws str with the compiled font and saves it to path,
// creating the directory if needed.
func writePreview(path string, res *fontc.Result, str string) error {
	img, err := output.RenderText(res, str)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := image.Save(path, img.ToNRGBA()); err != nil {
		return err
	}
	fontc.Logger().Info("wrote text", "path", path)
	return nil
}
