// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex opens and decodes texture images, and prepares
// them for upload to the GPU.
package imagex

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Formats are the supported image decoding formats
type Formats int32

// The supported image decoding formats
const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
	TGA
)

var formatNames = [...]string{"None", "PNG", "JPEG", "GIF", "TIFF", "BMP", "WebP", "TGA"}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formatNames[f]
}

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not
func ExtToFormat(ext string) (Formats, error) {
	if len(ext) == 0 {
		return None, fmt.Errorf("ExtToFormat: ext is empty")
	}
	if ext[0] == '.' {
		ext = ext[1:]
	}
	ext = strings.ToLower(ext)
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	case "tga":
		return TGA, nil
	}
	return None, fmt.Errorf("ExtToFormat: extension %q not recognized", ext)
}

// sniffLen is the number of header bytes filetype needs to match.
const sniffLen = 262

// Sniff returns the format detected from the image header bytes,
// or [None] if the content is not a recognized image.
// TGA has no magic number and is never detected here.
func Sniff(head []byte) Formats {
	if !filetype.IsImage(head) {
		return None
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return None
	}
	f, err := ExtToFormat(kind.Extension)
	if err != nil {
		return None
	}
	return f
}

// Open opens an image from the given filename.
// The format is detected from the file contents, falling
// back on the extension for formats without a signature (tga).
func Open(filename string) (image.Image, Formats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return read(file, filepath.Ext(filename))
}

// OpenFS opens an image from the given filename
// using the given [fs.FS] filesystem (e.g., for embed files).
func OpenFS(fsys fs.FS, filename string) (image.Image, Formats, error) {
	file, err := fsys.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return read(file, filepath.Ext(filename))
}

// Read reads an image from the given reader, detecting the
// format from the contents.
func Read(r io.Reader) (image.Image, Formats, error) {
	return read(r, "")
}

func read(r io.Reader, ext string) (image.Image, Formats, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, _ := br.Peek(sniffLen)
	f := Sniff(head)
	if f == None && ext != "" {
		ef, err := ExtToFormat(ext)
		if err != nil {
			return nil, None, err
		}
		f = ef
	}
	if f == None {
		return nil, None, fmt.Errorf("imagex.Read: unrecognized image content")
	}
	im, err := decode(br, f)
	if err != nil {
		return nil, f, fmt.Errorf("imagex.Read: decoding %v: %w", f, err)
	}
	return im, f, nil
}

// decode decodes r with the decoder for format f.
func decode(r io.Reader, f Formats) (image.Image, error) {
	switch f {
	case PNG:
		return png.Decode(r)
	case JPEG:
		return jpeg.Decode(r)
	case GIF:
		return gif.Decode(r)
	case TIFF:
		return tiff.Decode(r)
	case BMP:
		return bmp.Decode(r)
	case WebP:
		return webp.Decode(r)
	case TGA:
		return tga.Decode(r)
	}
	return nil, fmt.Errorf("no decoder for %v", f)
}
