// photo-watermark stamps every image in a directory with its capture date,
// taken from EXIF metadata or, failing that, the file's modification time.
package main

import (
	"bufio"
	"context"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/nju-xjk/Photo-Watermark-1/pkg/watermark"
)

var positions = []string{
	"top-left", "top-right", "top-center", "center",
	"bottom-left", "bottom-right", "bottom-center",
}

func main() {
	klog.InitFlags(nil)

	input := flag.StringP("input", "i", "", "directory of images to watermark (interactive mode when omitted)")
	fontSize := flag.IntP("font-size", "s", 24, "watermark font size in points")
	colorSpec := flag.StringP("color", "c", "white", "watermark color: name, #RRGGBB or rgb(r,g,b)")
	position := flag.StringP("position", "p", "bottom-right", "watermark position: "+strings.Join(positions, "|"))
	opacity := flag.Float64P("opacity", "o", 0.8, "watermark opacity between 0 and 1")
	output := flag.String("output", "", "output directory (default <input>/<name>_watermark)")
	fontPath := flag.String("font", "", "path to a .ttf/.otf font file")
	maxEdge := flag.Int("max-edge", 0, "downscale the longest image edge to this size before watermarking (0 keeps the original)")
	useExiftool := flag.Bool("exiftool", false, "extract capture dates with the external exiftool binary")
	watchMode := flag.Bool("watch", false, "keep running and watermark images added to the input directory")
	logPath := flag.String("log-file", "watermark.log", "append log lines to this file (empty disables)")

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	flag.Parse()

	setupLogging(*logPath)
	defer klog.Flush()

	opts := watermark.Options{
		FontSize: *fontSize,
		Color:    *colorSpec,
		Position: *position,
		Opacity:  *opacity,
		FontPath: *fontPath,
		MaxEdge:  *maxEdge,
	}

	inDir := *input
	outDir := *output
	if inDir == "" {
		inDir, opts = interactiveSetup(opts)
		outDir = ""
	} else {
		if !slices.Contains(positions, *position) {
			fmt.Fprintf(os.Stderr, "error: invalid --position %q (choose one of %s)\n", *position, strings.Join(positions, ", "))
			os.Exit(2)
		}
		fi, err := os.Stat(inDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: directory does not exist: %s\n", inDir)
			os.Exit(1)
		}
		if !fi.IsDir() {
			fmt.Fprintf(os.Stderr, "error: not a directory: %s\n", inDir)
			os.Exit(1)
		}
	}

	if outDir == "" {
		clean := filepath.Clean(inDir)
		outDir = filepath.Join(clean, filepath.Base(clean)+"_watermark")
	}

	fmt.Printf("input directory:  %s\n", inDir)
	fmt.Printf("output directory: %s\n", outDir)
	fmt.Printf("font size: %d\n", opts.FontSize)
	fmt.Printf("color:     %s\n", opts.Color)
	fmt.Printf("position:  %s\n", opts.Position)
	fmt.Printf("opacity:   %.2f\n", opts.Opacity)
	fmt.Println(strings.Repeat("-", 50))

	reader := watermark.NewReader(*useExiftool)
	defer reader.Close()

	p := watermark.NewProcessor(inDir, outDir, opts, reader)
	success, fail, err := p.Run()
	if err != nil {
		klog.Exitf("batch failed: %v", err)
	}

	fmt.Printf("\ndone: %d succeeded, %d failed\n", success, fail)
	fmt.Printf("output directory: %s\n", outDir)

	if *watchMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := p.Watch(ctx); err != nil {
			klog.Exitf("watch failed: %v", err)
		}
	}
}

// setupLogging mirrors klog output into an append-only log file.
func setupLogging(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		klog.Warningf("cannot open log file %s: %v", path, err)
		return
	}
	klog.LogToStderr(false)
	klog.SetOutput(io.MultiWriter(os.Stderr, f))
}

// interactiveSetup prompts for a configuration, keeping the flag defaults
// on empty or unparsable answers.
func interactiveSetup(opts watermark.Options) (string, watermark.Options) {
	fmt.Println("photo-watermark interactive mode")
	fmt.Println(strings.Repeat("=", 50))

	in := bufio.NewReader(os.Stdin)

	var dir string
	for {
		dir = prompt(in, "image directory: ")
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			break
		}
		fmt.Println("directory does not exist, try again")
	}

	if s := prompt(in, "font size (default 24): "); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			opts.FontSize = v
		}
	}
	if s := prompt(in, "color (default white): "); s != "" {
		opts.Color = s
	}
	if s := prompt(in, "position (default bottom-right): "); s != "" {
		opts.Position = s
	}
	if s := prompt(in, "opacity (default 0.8): "); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			opts.Opacity = v
		}
	}

	return dir, opts
}

func prompt(r *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}
