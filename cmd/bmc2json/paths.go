package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pish-pish/bmc2json/internal/palstore"
)

const (
	envOutDir     = "BMC2JSON_OUT_DIR"
	envLibraryDir = "BMC2JSON_LIBRARY_DIR"
)

// stdinIsTTY is a small seam for tests.
var stdinIsTTY = isTTY

// resolveOutputPath picks where a conversion lands. An explicit flag
// wins; otherwise the input's base name takes newExt and the file is
// placed next to the input, or under $BMC2JSON_OUT_DIR when that is set.
// The parent directory is created either way. The bool reports whether
// the path was defaulted.
func resolveOutputPath(inPath, outFlag, newExt string) (string, bool, error) {
	outFlag = strings.TrimSpace(outFlag)
	if outFlag != "" {
		outPath := filepath.Clean(outFlag)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return "", false, err
		}
		return outPath, false, nil
	}

	base := filepath.Base(filepath.Clean(inPath))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", true, fmt.Errorf("invalid input path: %q", inPath)
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}

	outDir := strings.TrimSpace(os.Getenv(envOutDir))
	if outDir == "" {
		outDir = filepath.Dir(filepath.Clean(inPath))
	}

	outPath := filepath.Join(outDir, stem+newExt)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", true, err
	}
	return outPath, true, nil
}

// resolveLibraryDir resolves the palette library directory: the flag
// wins, then the environment, then the config file.
func resolveLibraryDir(cfg Config) (string, error) {
	dir := strings.TrimSpace(libraryDir)
	if dir == "" {
		dir = strings.TrimSpace(os.Getenv(envLibraryDir))
	}
	if dir == "" {
		dir = strings.TrimSpace(cfg.LibraryDir)
	}
	if dir == "" {
		return "", fmt.Errorf("--library is required unless %s is set", envLibraryDir)
	}
	return dir, nil
}

// resolveInputPalette decides which container export reads. An explicit
// input flag wins; otherwise the palette library is consulted, with an
// interactive pick when it holds more than one palette.
func resolveInputPalette(inputFlag string, cfg Config, stdin io.Reader, stderr io.Writer) (string, error) {
	inputFlag = strings.TrimSpace(inputFlag)
	if inputFlag != "" {
		return filepath.Clean(inputFlag), nil
	}

	dir, err := resolveLibraryDir(cfg)
	if err != nil {
		return "", fmt.Errorf("--input is required unless a palette library is configured (%s)", envLibraryDir)
	}
	store, err := palstore.New(dir)
	if err != nil {
		return "", err
	}
	entries, err := store.List()
	if err != nil {
		return "", err
	}

	switch len(entries) {
	case 0:
		return "", fmt.Errorf("no palettes found in %s", dir)
	case 1:
		_, _ = fmt.Fprintf(stderr, "export: using palette %s\n", entries[0].Name)
		return entries[0].Path, nil
	default:
		if !stdinIsTTY() {
			return "", fmt.Errorf(
				"multiple palettes found in %s but stdin is not interactive; set --input",
				dir,
			)
		}
		return selectPaletteInteractively(dir, entries, stdin, stderr)
	}
}

func selectPaletteInteractively(dir string, entries []palstore.Entry, stdin io.Reader, stderr io.Writer) (string, error) {
	_, _ = fmt.Fprintf(stderr, "export: select a palette from %s\n", dir)
	for i, e := range entries {
		if e.Entries >= 0 {
			_, _ = fmt.Fprintf(stderr, "%d. %s (%d colors)\n", i+1, e.Name, e.Entries)
		} else {
			_, _ = fmt.Fprintf(stderr, "%d. %s (unreadable)\n", i+1, e.Name)
		}
	}

	reader := bufio.NewReader(stdin)
	for {
		_, _ = fmt.Fprintf(stderr, "export: enter selection [1-%d]: ", len(entries))
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			if errors.Is(err, io.EOF) {
				return "", errors.New("no selection provided on stdin; set --input")
			}
			continue
		}

		idx, convErr := strconv.Atoi(line)
		if convErr != nil || idx < 1 || idx > len(entries) {
			_, _ = fmt.Fprintf(stderr, "export: invalid selection %q\n", line)
			if errors.Is(err, io.EOF) {
				return "", errors.New("invalid selection provided on stdin; set --input")
			}
			continue
		}
		return entries[idx-1].Path, nil
	}
}

func isTTY() bool {
	st, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}
