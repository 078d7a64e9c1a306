// Package loader reads scheduler simulation output from disk.
package loader

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/minio/highwayhash"
	"github.com/ulikunitz/xz"

	"github.com/user/schedviz/internal/models"
)

// fingerprintKey is the fixed 32-byte HighwayHash key used for input fingerprints.
var fingerprintKey = []byte("schedviz-input-fingerprint-key!!")

// Discover expands pattern into the list of input files. Patterns may use
// doublestar syntax ("runs/**/*.json"); a plain path is returned as is when it
// exists. Directories are skipped.
func Discover(pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("input file '%s' does not exist", pattern)
			}
			return nil, fmt.Errorf("error accessing input file '%s': %w", pattern, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("input path '%s' is a directory", pattern)
		}
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern matching failed for '%s': %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files match '%s'", pattern)
	}
	sort.Strings(files)
	return files, nil
}

// Load reads a scheduler output file. Files ending in .xz are decompressed.
func Load(path string) (*models.SchedulerOutput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".xz") {
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader for %s: %w", path, err)
		}
		r = xzReader
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}
	return Decode(buf.Bytes())
}

// Decode parses scheduler output JSON. Unknown fields are ignored.
func Decode(data []byte) (*models.SchedulerOutput, error) {
	var out models.SchedulerOutput
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode scheduler output: %w", err)
	}
	return &out, nil
}

// Fingerprint returns the hex HighwayHash-256 of the file content.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash, err := highwayhash.New(fingerprintKey)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
