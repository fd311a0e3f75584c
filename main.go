// main.go - Main entry point for the IntuitionLoop exporter

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func boilerPlate() {
	fmt.Println("\nIntuition Loop - seamless-loop frame capture and retro effects exporter.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionLoop")
	fmt.Println("Buy me a coffee: https://ko-fi.com/intuition/tip")
	fmt.Println("License: GPLv3 or later")
	fmt.Println()
}

var paletteNames = map[string]PaletteID{
	"mono":    PALETTE_MONO,
	"gameboy": PALETTE_GAMEBOY,
	"gray4":   PALETTE_GRAYSCALE4,
	"cga":     PALETTE_CGA,
	"c64":     PALETTE_C64,
}

var charsetNames = map[string]CharsetID{
	"standard": CHARSET_STANDARD,
	"blocks":   CHARSET_BLOCKS,
	"dense":    CHARSET_DENSE,
}

func main() {
	boilerPlate()

	var (
		width    int
		height   int
		fps      int
		duration float64
		loops    int
		outPath  string
		format   string
		script   string

		dither      bool
		ditherType  string
		intensity   float64
		ditherRes   float64
		paletteName string
		reduce      bool

		pixelate  bool
		pixelSize int

		ascii       bool
		charsetName string
		asciiCols   int
		contrast    float64
		gamma       float64
		invert      bool
		mono        bool
		boost       float64

		preview     bool
		asciiStdout bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&width, "width", 320, "Export width in pixels")
	flagSet.IntVar(&height, "height", 240, "Export height in pixels")
	flagSet.IntVar(&fps, "fps", 30, "Capture and playback frame rate")
	flagSet.Float64Var(&duration, "duration", 2.0, "Loop duration in seconds")
	flagSet.IntVar(&loops, "loops", 1, "Number of loops to capture")
	flagSet.StringVar(&outPath, "out", "loop.gif", "Output artifact path")
	flagSet.StringVar(&format, "format", "", "Output format: gif, apng or zraw (default from -out extension)")
	flagSet.StringVar(&script, "script", "", "Lua scene script (built-in plasma scene when empty)")
	flagSet.BoolVar(&dither, "dither", false, "Enable palette dithering")
	flagSet.StringVar(&ditherType, "dither-type", "ordered", "Dithering algorithm: ordered or diffusion")
	flagSet.Float64Var(&intensity, "intensity", 0.8, "Dithering intensity 0..1")
	flagSet.Float64Var(&ditherRes, "dither-res", 1.0, "Dithering working-resolution fraction 0.05..1")
	flagSet.StringVar(&paletteName, "palette", "gameboy", "Palette: mono, gameboy, gray4, cga or c64")
	flagSet.BoolVar(&reduce, "reduce", false, "Snap to palette without dithering")
	flagSet.BoolVar(&pixelate, "pixelate", false, "Enable pixelation")
	flagSet.IntVar(&pixelSize, "pixel-size", 4, "Pixelation block edge in pixels")
	flagSet.BoolVar(&ascii, "ascii", false, "Render frames as ASCII art (supersedes other effects)")
	flagSet.StringVar(&charsetName, "charset", "standard", "ASCII charset: standard, blocks or dense")
	flagSet.IntVar(&asciiCols, "ascii-cols", ASCII_DEFAULT_COLUMNS, "ASCII character columns")
	flagSet.Float64Var(&contrast, "contrast", 1.0, "ASCII brightness contrast")
	flagSet.Float64Var(&gamma, "gamma", 1.0, "ASCII brightness gamma")
	flagSet.BoolVar(&invert, "invert", false, "Invert ASCII brightness mapping")
	flagSet.BoolVar(&mono, "mono", false, "Monochrome ASCII glyphs instead of source color")
	flagSet.Float64Var(&boost, "boost", 1.0, "ASCII color brightness boost")
	flagSet.BoolVar(&preview, "preview", false, "Show frames in a window during encoding")
	flagSet.BoolVar(&asciiStdout, "ascii-stdout", false, "Play ASCII frames on the terminal during encoding")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./intuition_loop [-dither|-reduce] [-pixelate] [-ascii] [-out loop.gif] [options]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	paletteID, ok := paletteNames[strings.ToLower(paletteName)]
	if !ok {
		fmt.Printf("Error: unknown palette %q (mono, gameboy, gray4, cga, c64)\n", paletteName)
		os.Exit(1)
	}
	charsetID, ok := charsetNames[strings.ToLower(charsetName)]
	if !ok {
		fmt.Printf("Error: unknown charset %q (standard, blocks, dense)\n", charsetName)
		os.Exit(1)
	}

	var dType DitherType
	switch strings.ToLower(ditherType) {
	case "ordered":
		dType = DITHER_ORDERED
	case "diffusion":
		dType = DITHER_DIFFUSION
	default:
		fmt.Printf("Error: unknown dither type %q (ordered, diffusion)\n", ditherType)
		os.Exit(1)
	}

	if format == "" {
		switch {
		case strings.HasSuffix(outPath, ".png") || strings.HasSuffix(outPath, ".apng"):
			format = "apng"
		case strings.HasSuffix(outPath, ".zraw") || strings.HasSuffix(outPath, ".ilzr"):
			format = "zraw"
		default:
			format = "gif"
		}
	}

	effects := DefaultEffectConfig()
	effects.DitheringEnabled = dither
	effects.DitheringType = dType
	effects.DitheringIntensity = intensity
	effects.DitheringResolution = ditherRes
	effects.PaletteID = paletteID
	effects.PaletteReductionEnabled = reduce
	effects.PixelationEnabled = pixelate
	effects.PixelSize = pixelSize
	effects.ASCIIEnabled = ascii
	effects.ASCIICharset = charsetID
	effects.ASCIIResolution = asciiCols
	effects.ASCIIContrast = contrast
	effects.ASCIIGamma = gamma
	effects.ASCIIInvert = invert
	effects.ASCIIColorMode = !mono
	effects.BrightnessBoost = boost

	cfg := ExportConfig{
		Width:        width,
		Height:       height,
		FPS:          fps,
		LoopDuration: duration,
		LoopCount:    loops,
		Effects:      effects,
	}

	var surface RenderSurface
	if script != "" {
		scripted, err := NewScriptRenderer(script, width, height, duration)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer scripted.Close()
		surface = scripted
	} else {
		surface = NewLoopRenderer(width, height, duration)
	}

	var encoder StreamEncoder
	switch format {
	case "gif":
		palette, err := PaletteByID(paletteID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		encoder = NewGIFEncoder(outPath, palette)
	case "apng":
		encoder = NewAPNGEncoder(outPath)
	case "zraw":
		encoder = NewZRawEncoder(outPath)
	default:
		fmt.Printf("Error: unknown format %q (gif, apng, zraw)\n", format)
		os.Exit(1)
	}

	pipeline := NewFrameCapturePipeline(surface, encoder, nil)

	if preview {
		win, err := NewPreviewWindow(width, height)
		if err != nil {
			fmt.Printf("Failed to initialize preview: %v\n", err)
			os.Exit(1)
		}
		if err := win.Start(); err != nil {
			fmt.Printf("Failed to start preview: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = win.Stop() }()
		pipeline.SetPreview(win)
	} else if asciiStdout {
		tp := NewTerminalPreview()
		if err := tp.Start(); err != nil {
			fmt.Printf("ASCII preview disabled: %v\n", err)
		} else {
			defer func() { _ = tp.Stop() }()
			pipeline.SetPreview(tp)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nAborting export...")
		pipeline.Abort()
	}()

	fmt.Printf("Exporting %dx%d @ %d fps, %.2fs x %d loop(s) -> %s (%s)\n",
		width, height, fps, duration, loops, outPath, format)

	result, err := pipeline.Export(cfg)
	if err != nil {
		if errors.Is(err, ErrExportAborted) {
			fmt.Println("Export aborted.")
			os.Exit(130)
		}
		fmt.Printf("Export failed: %v\n", err)
		os.Exit(1)
	}

	renderPath := "software"
	if result.Accelerated {
		renderPath = "accelerated"
	}
	fmt.Printf("Wrote %s: %d frames captured, %d encoded (%s effects path)\n",
		result.OutputPath, result.FramesCaptured, result.FramesEncoded, renderPath)
}
