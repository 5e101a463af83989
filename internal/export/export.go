// Package export serializes computed reports. Nothing here recomputes
// grades; it only formats what the calculator produced.
package export

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spboyer/cgpa/internal/aggregate"
	"github.com/spboyer/cgpa/internal/models"
)

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPNG      Format = "png"
)

var formats = []Format{FormatCSV, FormatJSON, FormatMarkdown, FormatHTML, FormatPNG}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	want := Format(strings.ToLower(strings.TrimSpace(s)))
	if want == "markdown" {
		want = FormatMarkdown
	}
	for _, f := range formats {
		if f == want {
			return f, nil
		}
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unsupported export format %q: must be one of %s", s, strings.Join(names, ", "))
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *models.Report, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r))
		return err
	case FormatHTML:
		return WriteHTML(w, r)
	case FormatPNG:
		return WriteChart(w, r)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// Bytes renders r and optionally gzips the result.
func Bytes(r *models.Report, f Format, compress bool) ([]byte, error) {
	var buf bytes.Buffer
	if !compress {
		if err := Write(&buf, r, f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	zw := gzip.NewWriter(&buf)
	if err := Write(zw, r, f); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing export: %w", err)
	}
	return buf.Bytes(), nil
}

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

// FileName derives an export file name such as "ayesha-transcript.csv.gz".
func FileName(r *models.Report, f Format, compress bool) string {
	base := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(r.Student), "-"), "-")
	if base == "" {
		base = "transcript"
	} else {
		base += "-transcript"
	}
	name := base + "." + string(f)
	if compress {
		name += ".gz"
	}
	return name
}

// fmt2 rounds the same way as the terminal output (aggregate.Round2).
func fmt2(v float64) string {
	return strconv.FormatFloat(aggregate.Round2(v), 'f', 2, 64)
}

func fmtCredits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func semesterStatus(s models.SemesterResult) string {
	switch {
	case s.NoData:
		return "no data"
	case s.Error != "":
		return "rejected: " + s.Error
	default:
		return string(s.Record.Source)
	}
}
