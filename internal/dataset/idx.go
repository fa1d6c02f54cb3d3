package dataset

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/born-ml/digits/internal/matrix"
)

// IDX magic numbers (big-endian, first four bytes of the file).
const (
	imagesMagic = 2051
	labelsMagic = 2049
)

// ErrBadMagic is returned when an IDX header does not carry the expected
// magic number.
var ErrBadMagic = errors.New("invalid IDX magic number")

// ReadImages reads an IDX image stream into an N×(rows·cols) matrix.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
//
// Pixels are normalized to b/255. A trailing partial record is discarded,
// as are records beyond the count declared in the header.
func ReadImages(r io.Reader) (*matrix.Matrix, error) {
	br := bufio.NewReader(r)

	var header struct {
		Magic, Count, Rows, Cols uint32
	}
	if err := binary.Read(br, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if header.Magic != imagesMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadMagic, header.Magic, imagesMagic)
	}
	recordSize := int(header.Rows * header.Cols)
	if recordSize == 0 {
		return nil, fmt.Errorf("image header declares empty %dx%d records", header.Rows, header.Cols)
	}

	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixels: %w", err)
	}

	n := min(len(payload)/recordSize, int(header.Count))
	if n == 0 {
		return nil, fmt.Errorf("no complete %d-byte image records: %w", recordSize, io.ErrUnexpectedEOF)
	}

	data := make([]float32, n*recordSize)
	for i := range data {
		data[i] = float32(payload[i]) / 255.0
	}
	return matrix.New(matrix.Shape{Rows: n, Cols: recordSize}, data)
}

// ReadLabels reads an IDX label stream.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
//
// The 8-byte header is consumed before any label, so label i pairs with
// image i.
func ReadLabels(r io.Reader) ([]float32, error) {
	br := bufio.NewReader(r)

	var header struct {
		Magic, Count uint32
	}
	if err := binary.Read(br, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read label header: %w", err)
	}
	if header.Magic != labelsMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadMagic, header.Magic, labelsMagic)
	}

	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	n := min(len(payload), int(header.Count))
	labels := make([]float32, n)
	for i := range labels {
		labels[i] = float32(payload[i])
	}
	return labels, nil
}

// LoadImages opens path (or path.gz) and reads it with ReadImages.
func LoadImages(path string) (*matrix.Matrix, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	images, err := ReadImages(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rc.name, err)
	}
	return images, nil
}

// LoadLabels opens path (or path.gz) and reads it with ReadLabels.
func LoadLabels(path string) ([]float32, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	labels, err := ReadLabels(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rc.name, err)
	}
	return labels, nil
}

// idxFile is an opened IDX file, transparently gunzipped when needed.
type idxFile struct {
	io.Reader
	name string
	file *os.File
	gz   *gzip.Reader
}

func (f *idxFile) Close() error {
	if f.gz != nil {
		f.gz.Close()
	}
	return f.file.Close()
}

// open opens path, falling back to path+".gz" when path does not exist.
func open(path string) (*idxFile, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !strings.HasSuffix(path, ".gz") {
		if gzFile, gzErr := os.Open(path + ".gz"); gzErr == nil {
			file, err, path = gzFile, nil, path+".gz"
		}
	}
	if err != nil {
		return nil, err
	}

	f := &idxFile{Reader: file, name: path, file: file}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		f.Reader, f.gz = gz, gz
	}
	return f, nil
}
