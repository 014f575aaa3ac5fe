package bulk

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/graphload/graphload/cypher"
)

// A set serializes to a content-addressed file pair: a CSV file with one row
// per record and a header naming every observed property key, and a JSON
// metadata descriptor carrying the set's configuration. Cells are
// JSON-encoded so typed values (numbers, bools, arrays) survive a reload;
// an absent property serializes as an empty cell. Note that numbers decode
// as float64, per encoding/json.

type nodeSetMetadata struct {
	Labels    []string `json:"labels"`
	MergeKeys []string `json:"merge_keys"`
}

type endpointProperty struct {
	Key   string `json:"key"`
	Array bool   `json:"array,omitempty"`
}

type relationshipSetMetadata struct {
	RelType             string             `json:"rel_type"`
	StartNodeLabels     []string           `json:"start_node_labels"`
	EndNodeLabels       []string           `json:"end_node_labels"`
	StartNodeProperties []endpointProperty `json:"start_node_properties"`
	EndNodeProperties   []endpointProperty `json:"end_node_properties"`
}

// WriteFiles writes the set's file pair into dir and returns the CSV and
// metadata paths. File names derive from ObjectFileName.
func (ns *NodeSet) WriteFiles(dir string) (csvPath, metaPath string, err error) {
	name := ns.ObjectFileName()
	csvPath = filepath.Join(dir, name+".csv")
	metaPath = filepath.Join(dir, name+".json")

	meta := nodeSetMetadata{Labels: ns.Labels, MergeKeys: ns.MergeKeys}
	if err := writeMetadata(metaPath, meta); err != nil {
		return "", "", err
	}

	header := ns.AllPropertyKeys()
	rows := func(yield func([]string, error) bool) {
		for _, record := range ns.nodes {
			row, err := encodeRow(header, record)
			if !yield(row, err) {
				return
			}
		}
	}
	if err := writeCSV(csvPath, header, rows); err != nil {
		return "", "", err
	}
	return csvPath, metaPath, nil
}

// ReadNodeSetFiles reloads a NodeSet eagerly from its file pair, preserving
// record order.
func ReadNodeSetFiles(csvPath, metaPath string) (*NodeSet, error) {
	ns, rows, err := StreamNodeSetFiles(csvPath, metaPath)
	if err != nil {
		return nil, err
	}
	for props, err := range rows {
		if err != nil {
			return nil, err
		}
		if err := ns.Add(props); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

// StreamNodeSetFiles reloads a NodeSet's configuration eagerly and its
// records as a lazy stream. The returned set holds no records; the stream
// is single-use and opens the CSV file when iterated.
func StreamNodeSetFiles(csvPath, metaPath string) (*NodeSet, iter.Seq2[Properties, error], error) {
	var meta nodeSetMetadata
	if err := readMetadata(metaPath, &meta); err != nil {
		return nil, nil, err
	}
	ns := NewNodeSet(meta.Labels, meta.MergeKeys)

	rows := func(yield func(Properties, error) bool) {
		streamCSV(csvPath, func(header, row []string) (Properties, error) {
			return decodeRow(header, row)
		}, yield)
	}
	return ns, rows, nil
}

// WriteFiles writes the set's file pair into dir and returns the CSV and
// metadata paths. Endpoint match values are stored in start_/end_ prefixed
// columns, relationship properties in plain columns.
func (rs *RelationshipSet) WriteFiles(dir string) (csvPath, metaPath string, err error) {
	name := rs.ObjectFileName()
	csvPath = filepath.Join(dir, name+".csv")
	metaPath = filepath.Join(dir, name+".json")

	meta := relationshipSetMetadata{
		RelType:             rs.RelType,
		StartNodeLabels:     rs.StartNodeLabels,
		EndNodeLabels:       rs.EndNodeLabels,
		StartNodeProperties: toEndpointProperties(rs.StartNodeProperties),
		EndNodeProperties:   toEndpointProperties(rs.EndNodeProperties),
	}
	if err := writeMetadata(metaPath, meta); err != nil {
		return "", "", err
	}

	propKeys := rs.AllPropertyKeys()
	header := make([]string, 0, len(rs.StartNodeProperties)+len(rs.EndNodeProperties)+len(propKeys))
	for _, p := range rs.StartNodeProperties {
		header = append(header, "start_"+p.Key)
	}
	for _, p := range rs.EndNodeProperties {
		header = append(header, "end_"+p.Key)
	}
	header = append(header, propKeys...)

	rows := func(yield func([]string, error) bool) {
		for _, rel := range rs.relationships {
			flat := make(Properties, len(rel.StartNodeProperties)+len(rel.EndNodeProperties)+len(rel.Properties))
			for k, v := range rel.StartNodeProperties {
				flat["start_"+k] = v
			}
			for k, v := range rel.EndNodeProperties {
				flat["end_"+k] = v
			}
			for k, v := range rel.Properties {
				flat[k] = v
			}
			row, err := encodeRow(header, flat)
			if !yield(row, err) {
				return
			}
		}
	}
	if err := writeCSV(csvPath, header, rows); err != nil {
		return "", "", err
	}
	return csvPath, metaPath, nil
}

// ReadRelationshipSetFiles reloads a RelationshipSet eagerly from its file
// pair, preserving record order.
func ReadRelationshipSetFiles(csvPath, metaPath string) (*RelationshipSet, error) {
	rs, rows, err := StreamRelationshipSetFiles(csvPath, metaPath)
	if err != nil {
		return nil, err
	}
	for rel, err := range rows {
		if err != nil {
			return nil, err
		}
		if err := rs.Add(rel.StartNodeProperties, rel.EndNodeProperties, rel.Properties); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// StreamRelationshipSetFiles reloads a RelationshipSet's configuration
// eagerly and its triples as a lazy stream. The returned set holds no
// records; the stream is single-use.
func StreamRelationshipSetFiles(csvPath, metaPath string) (*RelationshipSet, iter.Seq2[Relationship, error], error) {
	var meta relationshipSetMetadata
	if err := readMetadata(metaPath, &meta); err != nil {
		return nil, nil, err
	}
	startDefs := fromEndpointProperties(meta.StartNodeProperties)
	endDefs := fromEndpointProperties(meta.EndNodeProperties)
	rs := NewRelationshipSet(meta.RelType, meta.StartNodeLabels, meta.EndNodeLabels, startDefs, endDefs)

	startCols := make(map[string]string, len(startDefs))
	for _, p := range startDefs {
		startCols["start_"+p.Key] = p.Key
	}
	endCols := make(map[string]string, len(endDefs))
	for _, p := range endDefs {
		endCols["end_"+p.Key] = p.Key
	}

	rows := func(yield func(Relationship, error) bool) {
		streamCSV(csvPath, func(header, row []string) (Relationship, error) {
			flat, err := decodeRow(header, row)
			if err != nil {
				return Relationship{}, err
			}
			rel := Relationship{
				StartNodeProperties: Properties{},
				EndNodeProperties:   Properties{},
				Properties:          Properties{},
			}
			for k, v := range flat {
				switch {
				case startCols[k] != "":
					rel.StartNodeProperties[startCols[k]] = v
				case endCols[k] != "":
					rel.EndNodeProperties[endCols[k]] = v
				default:
					rel.Properties[k] = v
				}
			}
			return rel, nil
		}, yield)
	}
	return rs, rows, nil
}

func toEndpointProperties(props []cypher.Property) []endpointProperty {
	out := make([]endpointProperty, 0, len(props))
	for _, p := range props {
		out = append(out, endpointProperty{Key: p.Key, Array: p.Array})
	}
	return out
}

func fromEndpointProperties(props []endpointProperty) []cypher.Property {
	out := make([]cypher.Property, 0, len(props))
	for _, p := range props {
		out = append(out, cypher.Property{Key: p.Key, Array: p.Array})
	}
	return out
}

func writeMetadata(path string, meta any) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func readMetadata(path string, meta any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read metadata: %w", err)
	}
	if err := json.Unmarshal(data, meta); err != nil {
		return fmt.Errorf("parse metadata: %w", err)
	}
	return nil
}

func writeCSV(path string, header []string, rows iter.Seq2[[]string, error]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for row, err := range rows {
		if err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// streamCSV reads path row by row, decoding each row with decode and
// passing it to yield. Errors are yielded in-stream with a zero value.
func streamCSV[T any](path string, decode func(header, row []string) (T, error), yield func(T, error) bool) {
	var zero T

	f, err := os.Open(path)
	if err != nil {
		yield(zero, fmt.Errorf("open csv: %w", err))
		return
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		yield(zero, fmt.Errorf("read csv header: %w", err))
		return
	}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			if !yield(zero, fmt.Errorf("read csv row: %w", err)) {
				return
			}
			continue
		}
		v, err := decode(header, row)
		if err != nil {
			v = zero
		}
		if !yield(v, err) {
			return
		}
	}
}

func encodeRow(header []string, record Properties) ([]string, error) {
	row := make([]string, len(header))
	for i, key := range header {
		v, ok := record[key]
		if !ok {
			continue
		}
		cell, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode property %q: %w", key, err)
		}
		row[i] = string(cell)
	}
	return row, nil
}

func decodeRow(header, row []string) (Properties, error) {
	props := make(Properties, len(row))
	for i, cell := range row {
		if i >= len(header) || cell == "" {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(cell), &v); err != nil {
			return nil, fmt.Errorf("decode property %q: %w", header[i], err)
		}
		props[header[i]] = v
	}
	return props, nil
}
