package fetcher

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
)

// CSVOptions controls CSV decoding. Windows1252 handles vendor exports that
// arrive in legacy ANSI encoding rather than UTF-8.
type CSVOptions struct {
	Comma       rune
	Windows1252 bool
}

// ReadCSV loads a delimited file into a Table. The first record is the
// header. A UTF-8 BOM is stripped if present.
func ReadCSV(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open csv %s", path)
	}
	defer f.Close()

	var src io.Reader = f
	if opts.Windows1252 {
		src = charmap.Windows1252.NewDecoder().Reader(f)
	}
	r := csv.NewReader(&bomReader{r: src})
	if opts.Comma != 0 {
		r.Comma = opts.Comma
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	t := &Table{}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: read csv %s", path)
		}
		if t.Header == nil {
			if isBlankRow(rec) {
				continue
			}
			t.Header = rec
			continue
		}
		if isBlankRow(rec) {
			continue
		}
		for len(rec) < len(t.Header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	if t.Header == nil {
		return nil, eris.Errorf("fetcher: csv %s has no header row", path)
	}
	return t, nil
}

// WriteCSV writes a header plus rows with standard quoting.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "fetcher: create csv %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "fetcher: write csv header")
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "fetcher: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "fetcher: flush csv %s", path)
	}
	return nil
}

// bomReader strips a leading UTF-8 byte order mark from the stream.
type bomReader struct {
	r       io.Reader
	checked bool
}

func (b *bomReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if !b.checked {
		b.checked = true
		if n >= 3 && p[0] == 0xEF && p[1] == 0xBB && p[2] == 0xBF {
			copy(p, p[3:n])
			n -= 3
		}
	}
	return n, err
}

// IsSpreadsheet reports whether a filename names a format ReadTable accepts.
func IsSpreadsheet(name string) bool {
	switch strings.ToLower(extOf(name)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// ReadTable dispatches on extension: .xlsx via ReadXLSX, .csv via ReadCSV.
func ReadTable(path string) (*Table, error) {
	switch strings.ToLower(extOf(path)) {
	case ".xlsx":
		return ReadXLSX(path, XLSXOptions{})
	case ".csv":
		return ReadCSV(path, CSVOptions{})
	}
	return nil, eris.Errorf("fetcher: unsupported file type %s", path)
}

func extOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i:]
}
