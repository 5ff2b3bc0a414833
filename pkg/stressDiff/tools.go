package stressDiff

import (
	"bufio"
	"io"
	"math"
	"os"
	"regexp"

	gzip "github.com/klauspost/pgzip"
)

// regexp
var (
	gz          = regexp.MustCompile(`\.gz$`)
	countSuffix = regexp.MustCompile(`\(\d+\)$`)
)

// fdrFloor clips FDR values before the -log10 transform so an exact zero
// does not produce +Inf.
const fdrFloor = 1e-300

// NegLog10 transforms a significance value to -log10, clipping at fdrFloor.
func NegLog10(v float64) float64 {
	if v < fdrFloor {
		v = fdrFloor
	}
	return -math.Log10(v)
}

// openReader opens path for reading, decompressing transparently when the
// name ends in .gz.
func openReader(path string) (io.Reader, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &NotFoundError{Path: path, Msg: "input file missing"}
		}
		return nil, nil, err
	}
	if gz.MatchString(path) {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		return gzReader, func() {
			gzReader.Close()
			file.Close()
		}, nil
	}
	return file, func() { file.Close() }, nil
}

// openScanner opens path as a line scanner with a buffer large enough for
// wide annotation rows.
func openScanner(path string) (*bufio.Scanner, func(), error) {
	reader, closeFn, err := openReader(path)
	if err != nil {
		return nil, nil, err
	}
	var scanner = bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	return scanner, closeFn, nil
}
