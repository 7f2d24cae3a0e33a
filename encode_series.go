package drip

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// This file contains code to persist series in a way that is still human-readable and git-friendly.
//
// The JSONL format is one object per line: {"on":"2021-01-04","value":"55.12"}.
// The value can be a json string or a json number, strings are preferred since they keep all the digits.
// The CSV format has a "date,value" header and one row per day.

// jpoint is a series point as persisted in a JSONL file.
type jpoint struct {
	On    date.Date       `json:"on"`
	Value decimal.Decimal `json:"value"`
}

// DecodeSeries reads a JSONL series. filename is for error message only.
func DecodeSeries(filename string, r io.Reader) (*Series, error) {
	s := NewSeries()
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		// Start simply ignoring empty lines.
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var p jpoint
		if err := json.Unmarshal(line, &p); err != nil {
			return nil, fmt.Errorf("parse error %s:%v: %w", filename, i, err)
		}
		if p.On.IsZero() {
			return nil, fmt.Errorf("parse error %s:%v: missing the property %q with a date", filename, i, "on")
		}
		if _, exists := s.Get(p.On); exists {
			return nil, fmt.Errorf("parse error %s:%v: %s is defined twice", filename, i, p.On)
		}
		s.Add(p.On, p.Value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return s, nil
}

// EncodeSeries writes s as JSONL, in chronological order.
// Returns bare io errors.
func EncodeSeries(w io.Writer, s *Series) error {
	bw := bufio.NewWriter(w)
	for on, v := range s.Values() {
		data, err := json.Marshal(jpoint{On: on, Value: v})
		if err != nil {
			return fmt.Errorf("persist error: cannot marshal %s: %w", on, err)
		}
		bw.Write(data)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// DecodeSeriesCSV reads a "date,value" CSV series. filename is for error message only.
func DecodeSeriesCSV(filename string, r io.Reader) (*Series, error) {
	s := NewSeries()
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	for i := 1; ; i++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse error %s: %w", filename, err)
		}
		if i == 1 && strings.EqualFold(rec[0], "date") {
			continue // header
		}
		on, err := date.Parse(rec[0])
		if err != nil {
			return nil, fmt.Errorf("parse error %s:%v: %w", filename, i, err)
		}
		v, err := decimal.NewFromString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("parse error %s:%v: invalid value %q: %w", filename, i, rec[1], err)
		}
		if _, exists := s.Get(on); exists {
			return nil, fmt.Errorf("parse error %s:%v: %s is defined twice", filename, i, on)
		}
		s.Add(on, v)
	}
}

// DecodeSeriesFile reads a series file, CSV if its extension is ".csv", JSONL otherwise.
func DecodeSeriesFile(filename string) (*Series, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", filename, err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return DecodeSeriesCSV(filename, f)
	}
	return DecodeSeries(filename, f)
}

// EncodeSeriesFile writes s as JSONL into filename, replacing it.
func EncodeSeriesFile(filename string, s *Series) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot open %q for writing: %w", filename, err)
	}
	if err := EncodeSeries(f, s); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	return f.Close()
}
