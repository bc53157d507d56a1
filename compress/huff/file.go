// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// EncodeFile compresses the file at inputPath into outputPath.
func EncodeFile(inputPath, outputPath string) error {
	var e Encoder
	return e.EncodeFile(inputPath, outputPath)
}

// EncodeFile compresses the file at inputPath into outputPath. The output
// only appears once it is complete; on error no file is left behind and an
// existing outputPath is untouched.
func (e *Encoder) EncodeFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return ioError("read input", err)
	}
	return writeAtomic(outputPath, func(w io.Writer) error {
		_, err := e.Encode(w, data)
		return err
	})
}

// DecodeFile restores the file encoded at inputPath into outputPath, with
// the same all-or-nothing output guarantee as EncodeFile.
func DecodeFile(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return ioError("open input", err)
	}
	defer in.Close()
	return writeAtomic(outputPath, func(w io.Writer) error {
		_, err := Decode(w, bufio.NewReader(in))
		return err
	})
}

// writeAtomic runs fill against a pending file next to path and renames it
// into place only when fill and the final sync succeed.
func writeAtomic(path string, fill func(w io.Writer) error) error {
	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644))
	if err != nil {
		return ioError("create output", err)
	}
	defer pf.Cleanup()

	if err := fill(pf); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return ioError("finalize output", err)
	}
	return nil
}
