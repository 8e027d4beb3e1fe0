// Package report reads and writes the tab-separated record report.
//
// The report mirrors the joined record table of one network: one row per
// [network.JoinedRecord], header = [network.Network.Columns]. Target-side
// columns carry the _B suffix. Isolated records leave every _B column
// empty. Reading a written report yields the same records field by field.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/assemble"
	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/network"
)

// Extension is the file extension of report files.
const Extension = ".tsv"

// WriteTSV writes the records of n to w.
func WriteTSV(w io.Writer, n *network.Network) error {
	cols := n.Columns()
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(cols); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for _, r := range n.Records {
		for i, c := range cols {
			row[i] = cell(r, c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Fields returns the report cells of r for cols, keyed by column name.
func Fields(r network.JoinedRecord, cols []string) map[string]string {
	out := make(map[string]string, len(cols))
	for _, c := range cols {
		out[c] = cell(r, c)
	}
	return out
}

func cell(r network.JoinedRecord, col string) string {
	switch col {
	case network.ColEdgeID:
		return r.EdgeID
	case network.ColEdgeType:
		return r.EdgeType
	}
	e := &r.Source
	if base, ok := strings.CutSuffix(col, network.SuffixB); ok {
		if r.Target == nil {
			return ""
		}
		e, col = r.Target, base
	}
	switch col {
	case network.ColNodeName:
		return e.Name
	case network.ColNodeID:
		return e.ID
	case network.ColNodeType:
		return string(e.Kind)
	case network.ColParentID:
		return e.ParentID
	case network.ColParentName:
		return e.ParentName
	case network.ColPosX:
		return formatFloat(e.PosX)
	case network.ColPosY:
		return formatFloat(e.PosY)
	case network.ColMember:
		return assemble.JoinMembers(e.Members)
	}
	return ""
}

// ReadTSV parses a report written by [WriteTSV].
func ReadTSV(r io.Reader) ([]network.JoinedRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeEmptyFile, "report has no header")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedSection, err, "read report header")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	for _, required := range []string{network.ColEdgeID, network.ColNodeID, network.ColNodeID + network.SuffixB} {
		if _, ok := index[required]; !ok {
			return nil, errors.New(errors.ErrCodeMalformedSection, "report has no %s column", required)
		}
	}

	var records []network.JoinedRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedSection, err, "read report row")
		}
		get := func(col string) string {
			if i, ok := index[col]; ok {
				return row[i]
			}
			return ""
		}

		rec := network.JoinedRecord{
			EdgeID:   get(network.ColEdgeID),
			EdgeType: get(network.ColEdgeType),
			Source:   readEndpoint(get, ""),
		}
		if target := readEndpoint(get, network.SuffixB); !isZero(target) {
			rec.Target = &target
		}
		records = append(records, rec)
	}
	return records, nil
}

func readEndpoint(get func(string) string, suffix string) network.Endpoint {
	return network.Endpoint{
		ID:         get(network.ColNodeID + suffix),
		Name:       get(network.ColNodeName + suffix),
		Kind:       network.ParseKind(get(network.ColNodeType + suffix)),
		ParentID:   get(network.ColParentID + suffix),
		ParentName: get(network.ColParentName + suffix),
		PosX:       parseFloat(get(network.ColPosX + suffix)),
		PosY:       parseFloat(get(network.ColPosY + suffix)),
		Members:    assemble.SplitMembers(get(network.ColMember + suffix)),
	}
}

func isZero(e network.Endpoint) bool {
	return e.ID == "" && e.Name == "" && e.Kind == "" && e.ParentID == "" &&
		e.ParentName == "" && e.PosX == nil && e.PosY == nil && e.Members == nil
}

// WriteFile writes the report of n to path, creating parent directories.
func WriteFile(path string, n *network.Network) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTSV(f, n); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a report from path.
func ReadFile(path string) ([]network.JoinedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open report %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadTSV(f)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
