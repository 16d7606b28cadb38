package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

// LoadXLSX reads one worksheet of an .xlsx workbook. The first row is the
// header. Shared and inline strings are resolved; numbers keep the text
// stored in the sheet.
func LoadXLSX(filePath string, opt Options) (*Dataset, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	target, err := resolveSheet(zr, opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path.Base(filePath), err)
	}
	sheet, err := readZipEntry(zr, target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	shared, err := readSharedStrings(zr)
	if err != nil {
		return nil, err
	}

	rows := newRowScanner(sheet, shared)
	header, ok := rows.next()
	if !ok {
		ds := newBuilder(filePath, nil, opt).finish()
		return ds, rows.err
	}
	bld := newBuilder(filePath, header, opt)
	for {
		rec, ok := rows.next()
		if !ok {
			break
		}
		bld.add(rec)
	}
	if rows.err != nil {
		return nil, fmt.Errorf("scan sheet: %w", rows.err)
	}
	return bld.finish(), nil
}

type workbookSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// resolveSheet maps a sheet name or 1-based index to its zip entry path.
func resolveSheet(zr *zip.Reader, name string, index int) (string, error) {
	var wb struct {
		Sheets []workbookSheet `xml:"sheets>sheet"`
	}
	if data, err := readZipEntry(zr, "xl/workbook.xml"); err == nil {
		if err := xml.Unmarshal(data, &wb); err != nil {
			return "", fmt.Errorf("parse workbook: %w", err)
		}
	}
	var rels struct {
		Items []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if data, err := readZipEntry(zr, "xl/_rels/workbook.xml.rels"); err == nil {
		if err := xml.Unmarshal(data, &rels); err != nil {
			return "", fmt.Errorf("parse workbook rels: %w", err)
		}
	}
	targets := make(map[string]string, len(rels.Items))
	for _, r := range rels.Items {
		targets[r.ID] = r.Target
	}

	if name != "" {
		available := make([]string, 0, len(wb.Sheets))
		for _, s := range wb.Sheets {
			if strings.EqualFold(s.Name, name) {
				if t, ok := targets[s.RID]; ok {
					return sheetPath(t), nil
				}
			}
			available = append(available, s.Name)
		}
		return "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, name, strings.Join(available, ", "))
	}
	if index <= 0 {
		index = 1
	}
	for _, s := range wb.Sheets {
		if s.SheetID == index {
			if t, ok := targets[s.RID]; ok {
				return sheetPath(t), nil
			}
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", index), nil
}

// sheetPath turns a relationship target into a zip entry name. Targets are
// relative to xl/ unless they start with a slash.
func sheetPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return path.Join("xl", target)
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s: %w", name, os.ErrNotExist)
}

func readSharedStrings(zr *zip.Reader) ([]string, error) {
	data, err := readZipEntry(zr, "xl/sharedStrings.xml")
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read shared strings: %w", err)
	}
	var sst struct {
		Items []struct {
			T    string `xml:"t"`
			Runs []struct {
				T string `xml:"t"`
			} `xml:"r"`
		} `xml:"si"`
	}
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, fmt.Errorf("parse shared strings: %w", err)
	}
	out := make([]string, len(sst.Items))
	for i, si := range sst.Items {
		if len(si.Runs) == 0 {
			out[i] = si.T
			continue
		}
		var sb strings.Builder
		for _, r := range si.Runs {
			sb.WriteString(r.T)
		}
		out[i] = sb.String()
	}
	return out, nil
}

type sheetCell struct {
	Ref    string `xml:"r,attr"`
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline string `xml:"is>t"`
}

// rowScanner streams <row> elements of a worksheet.
type rowScanner struct {
	dec    *xml.Decoder
	shared []string
	err    error
}

func newRowScanner(data []byte, shared []string) *rowScanner {
	return &rowScanner{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

func (s *rowScanner) next() ([]string, bool) {
	for {
		tok, err := s.dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			return nil, false
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "row" {
			continue
		}
		var row struct {
			Cells []sheetCell `xml:"c"`
		}
		if err := s.dec.DecodeElement(&row, &se); err != nil {
			s.err = err
			return nil, false
		}
		var out []string
		for i, c := range row.Cells {
			col := i
			if c.Ref != "" {
				col = columnIndex(c.Ref)
			}
			if col < 0 {
				continue
			}
			for len(out) <= col {
				out = append(out, "")
			}
			out[col] = s.cellText(c)
		}
		return out, true
	}
}

func (s *rowScanner) cellText(c sheetCell) string {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil || idx < 0 || idx >= len(s.shared) {
			return ""
		}
		return s.shared[idx]
	case "inlineStr":
		return c.Inline
	}
	return c.Value
}

// columnIndex converts a cell reference like "C12" to a 0-based column.
func columnIndex(ref string) int {
	idx := 0
	for _, r := range strings.ToUpper(ref) {
		if r < 'A' || r > 'Z' {
			break
		}
		idx = idx*26 + int(r-'A'+1)
	}
	return idx - 1
}
