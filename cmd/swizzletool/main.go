// swizzletool converts raw texture dumps between linear and swizzled
// memory layouts.
//
// Usage:
//
//	swizzletool [options] -w W -h H <input> <output>
//
// Options:
//
//	-w, -h, -d    Texture width, height, depth in pixels (depth defaults to 1).
//	-b            Bytes per pixel (default 4).
//	-u            Unswizzle (swizzled -> linear). Default is linear -> swizzled.
//	-z            Input and output are zstd-compressed dumps.
//	-png          Unswizzle and write an RGBA PNG preview (requires -b 4).
//	-hash         Print the content hash and cache key of the input payload.
//	-v            Verbose: debug logging to stderr.
//	-help         Show this help message.
//
// Exit codes:
//
//	0: Success
//	1: Conversion failed (bad dimensions, short file, ...)
//	2: Usage or I/O error
package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strconv"

	"github.com/klauspost/compress/zstd"

	"github.com/NZJenkins/xemu/swizzle"
	"github.com/NZJenkins/xemu/texture"
)

const usage = `usage: swizzletool [options] -w W -h H <input> <output>

Converts raw texture dumps between linear and swizzled layouts.

  -w, -h, -d   texture extents in pixels (depth defaults to 1)
  -b           bytes per pixel (default 4)
  -u           unswizzle (swizzled -> linear); default swizzles
  -z           input and output are zstd-compressed dumps
  -png         unswizzle and write an RGBA PNG preview (requires -b 4)
  -hash        print the content hash and cache key of the input payload
  -v           debug logging to stderr
`

type options struct {
	desc      texture.Desc
	unswizzle bool
	compress  bool
	toPNG     bool
	hashOnly  bool
	verbose   bool
	input     string
	output    string
}

func parseArgs(args []string) (*options, error) {
	opts := &options{
		desc: texture.Desc{Depth: 1, BytesPerPixel: 4},
	}
	var paths []string

	intArg := func(i int) (int, error) {
		if i+1 >= len(args) {
			return 0, fmt.Errorf("%s needs a value", args[i])
		}
		v, err := strconv.Atoi(args[i+1])
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", args[i], args[i+1])
		}
		return v, nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "-w":
			opts.desc.Width, err = intArg(i)
			i++
		case "-h":
			opts.desc.Height, err = intArg(i)
			i++
		case "-d":
			opts.desc.Depth, err = intArg(i)
			i++
		case "-b":
			opts.desc.BytesPerPixel, err = intArg(i)
			i++
		case "-u":
			opts.unswizzle = true
		case "-z":
			opts.compress = true
		case "-png":
			opts.toPNG = true
		case "-hash":
			opts.hashOnly = true
		case "-v":
			opts.verbose = true
		case "-help", "--help":
			fmt.Print(usage)
			os.Exit(0)
		default:
			if len(args[i]) > 0 && args[i][0] == '-' {
				return nil, fmt.Errorf("unknown option %s", args[i])
			}
			paths = append(paths, args[i])
		}
		if err != nil {
			return nil, err
		}
	}

	wantPaths := 2
	if opts.hashOnly {
		wantPaths = 1
	}
	if len(paths) != wantPaths {
		return nil, fmt.Errorf("expected %d file argument(s), got %d", wantPaths, len(paths))
	}
	opts.input = paths[0]
	if wantPaths == 2 {
		opts.output = paths[1]
	}
	if opts.desc.Width == 0 || opts.desc.Height == 0 {
		return nil, fmt.Errorf("-w and -h are required")
	}
	if opts.toPNG && opts.desc.BytesPerPixel != 4 {
		return nil, fmt.Errorf("-png requires 4 bytes per pixel")
	}
	return opts, nil
}

// readPayload loads the input dump, transparently decompressing it
// into a pooled staging buffer when -z is set. Callers must hand the
// returned buffer back via texture.PutBuffer.
func readPayload(opts *options, want int) ([]byte, error) {
	raw, err := os.ReadFile(opts.input)
	if err != nil {
		return nil, err
	}
	if !opts.compress {
		return raw, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	buf := texture.GetBuffer(want)
	out, err := dec.DecodeAll(raw, buf[:0])
	if err != nil {
		texture.PutBuffer(buf)
		return nil, fmt.Errorf("decompress %s: %w", opts.input, err)
	}
	return out, nil
}

func writePayload(opts *options, data []byte) error {
	if !opts.compress {
		return os.WriteFile(opts.output, data, 0o644)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	defer enc.Close()
	return os.WriteFile(opts.output, enc.EncodeAll(data, nil), 0o644)
}

func writePNG(path string, linear []byte, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, linear[:width*height*4])

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(opts *options) error {
	d := opts.desc
	if err := d.Validate(); err != nil {
		return err
	}

	want := d.LinearSize()
	if opts.unswizzle || opts.toPNG || opts.hashOnly {
		want = d.SwizzledSize()
	}
	payload, err := readPayload(opts, want)
	if err != nil {
		return err
	}
	defer texture.PutBuffer(payload)

	if len(payload) < want {
		return &texture.BufferSizeError{Op: "read " + opts.input, Got: len(payload), Want: want}
	}

	if opts.hashOnly {
		fmt.Printf("hash  %016x\n", texture.Hash(payload[:want]))
		fmt.Printf("key   %016x\n", d.CacheKey(payload[:want]))
		return nil
	}

	if opts.toPNG {
		linear := texture.GetBuffer(d.LinearSize())
		defer texture.PutBuffer(linear)
		if err := d.Unswizzle(linear, payload); err != nil {
			return err
		}
		// PNG only makes sense slice by slice; export the first one.
		return writePNG(opts.output, linear, d.Width, d.Height)
	}

	var out []byte
	if opts.unswizzle {
		out = make([]byte, d.LinearSize())
		err = d.Unswizzle(out, payload)
	} else {
		out = make([]byte, d.SwizzledSize())
		err = d.Swizzle(out, payload)
	}
	if err != nil {
		return err
	}
	return writePayload(opts, out)
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "swizzletool: %v\n", err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if opts.verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		swizzle.SetLogger(l)
		l.Debug("hardware bit deposit", "available", swizzle.HardwareAccelerated())
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "swizzletool: %v\n", err)
		if _, ok := err.(*os.PathError); ok {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
