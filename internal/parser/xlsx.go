package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Read extracts the selected sheet. The first row is the header. If
// SheetName is empty the sheet is chosen by 1-based SheetIndex (default 1).
func (xlsxReader) Read(filename string, content []byte, opt Options) ([]review.RawRecord, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	target, err := resolveSheet(zr, opt)
	if err != nil {
		return nil, err
	}
	sheet := readZipFile(zr, target)
	if sheet == nil {
		return nil, fmt.Errorf("sheet %s not found in %s", target, path.Base(filename))
	}
	shared := parseSharedStrings(readZipFile(zr, "xl/sharedStrings.xml"))
	rows := readSheetRows(sheet, shared)
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	return toRecords(rows[0], rows[1:]), nil
}

type wbSheet struct {
	Name string
	ID   int
	RID  string
}

func resolveSheet(zr *zip.Reader, opt Options) (string, error) {
	sheets := parseWorkbook(readZipFile(zr, "xl/workbook.xml"))
	rels := parseRelationships(readZipFile(zr, "xl/_rels/workbook.xml.rels"))
	if opt.SheetName != "" {
		names := make([]string, 0, len(sheets))
		for _, s := range sheets {
			if strings.EqualFold(s.Name, opt.SheetName) {
				if rel, ok := rels[s.RID]; ok {
					return normalizeRelPath(rel), nil
				}
			}
			names = append(names, s.Name)
		}
		return "", fmt.Errorf("sheet %q not found (available: %s)", opt.SheetName, strings.Join(names, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	for _, s := range sheets {
		if s.ID == idx {
			if rel, ok := rels[s.RID]; ok {
				return normalizeRelPath(rel), nil
			}
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", idx), nil
}

// parseWorkbook lists sheets with their ids and relationship ids.
func parseWorkbook(data []byte) []wbSheet {
	var out []wbSheet
	eachStart(data, func(_ *xml.Decoder, se xml.StartElement) {
		if se.Name.Local != "sheet" {
			return
		}
		var s wbSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.ID = atoiSafe(a.Value)
			case "id":
				s.RID = a.Value
			}
		}
		out = append(out, s)
	})
	return out
}

// parseRelationships maps relationship ids to targets.
func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	eachStart(data, func(_ *xml.Decoder, se xml.StartElement) {
		if se.Name.Local != "Relationship" {
			return
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	})
	return out
}

// parseSharedStrings concatenates every <t> run inside each <si>.
func parseSharedStrings(data []byte) []string {
	var out []string
	eachStart(data, func(dec *xml.Decoder, se xml.StartElement) {
		if se.Name.Local == "si" {
			out = append(out, collectText(dec, "si"))
		}
	})
	return out
}

// readSheetRows returns every row of a worksheet, placing cells by their
// column reference so gaps stay aligned with the header.
func readSheetRows(data []byte, shared []string) [][]string {
	var rows [][]string
	var cur []string
	eachStart(data, func(dec *xml.Decoder, se xml.StartElement) {
		switch se.Name.Local {
		case "row":
			if cur != nil {
				rows = append(rows, cur)
			}
			cur = []string{}
		case "c":
			var ref, typ string
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "r":
					ref = a.Value
				case "t":
					typ = a.Value
				}
			}
			col := len(cur)
			if ref != "" {
				col = colIndexFromRef(ref)
			}
			val := collectText(dec, "c")
			if typ == "s" {
				i := atoiSafe(val)
				val = ""
				if i >= 0 && i < len(shared) {
					val = shared[i]
				}
			}
			for len(cur) <= col {
				cur = append(cur, "")
			}
			cur[col] = val
		}
	})
	if cur != nil {
		rows = append(rows, cur)
	}
	return rows
}

func eachStart(data []byte, fn func(dec *xml.Decoder, se xml.StartElement)) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok {
			fn(dec, se)
		}
	}
}

// collectText reads character data of <v> and <t> children until the end of
// the named element.
func collectText(dec *xml.Decoder, end string) string {
	var sb strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return sb.String()
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "v" || t.Name.Local == "t" {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == "v" || t.Name.Local == "t" {
				depth--
			}
			if t.Name.Local == end {
				return sb.String()
			}
		case xml.CharData:
			if depth > 0 {
				sb.Write(t)
			}
		}
	}
}

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return b
	}
	return nil
}

// colIndexFromRef converts a cell ref such as "C12" to a 0-based column.
func colIndexFromRef(ref string) int {
	idx := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// normalizeRelPath converts relationship targets to ZIP entry paths.
// Targets may be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}
