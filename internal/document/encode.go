package document

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Encode converts m into a protobuf Struct tree:
//
//	{"kind": ..., "title": ..., "sections": [{"type": "heading", ...}, ...]}
//
// Every section carries a "type" discriminator matching SectionType.
func Encode(m *Model) (*structpb.Struct, error) {
	sections := make([]any, 0, len(m.Sections))
	for i, s := range m.Sections {
		tree, err := encodeSection(s)
		if err != nil {
			return nil, fmt.Errorf("document: section %d: %w", i, err)
		}
		sections = append(sections, tree)
	}
	return structpb.NewStruct(map[string]any{
		"kind":     string(m.Kind),
		"title":    m.Title,
		"sections": sections,
	})
}

// MarshalJSON encodes m as protojson. The output is not byte-stable across
// runs; use MarshalBinary when bytes must be compared.
func MarshalJSON(m *Model) ([]byte, error) {
	s, err := Encode(m)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

// MarshalBinary encodes m as deterministic protobuf wire bytes.
func MarshalBinary(m *Model) ([]byte, error) {
	s, err := Encode(m)
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(s)
}

func encodeSection(s Section) (map[string]any, error) {
	switch v := s.(type) {
	case Heading:
		return map[string]any{
			"type":     string(TypeHeading),
			"id":       v.ID,
			"level":    v.Level,
			"text":     v.Text,
			"subtitle": v.Subtitle,
		}, nil
	case KeyValueBlock:
		pairs := make([]any, 0, len(v.Pairs))
		for _, kv := range v.Pairs {
			pairs = append(pairs, map[string]any{"key": kv.Key, "value": kv.Value})
		}
		return map[string]any{
			"type":  string(TypeKeyValue),
			"id":    v.ID,
			"title": v.Title,
			"pairs": pairs,
		}, nil
	case Paragraph:
		return map[string]any{
			"type":  string(TypeParagraph),
			"id":    v.ID,
			"style": string(v.Style),
			"lines": anyStrings(v.Lines),
		}, nil
	case Table:
		widths := make([]any, len(v.Widths))
		for i, w := range v.Widths {
			widths[i] = w
		}
		rows := make([]any, 0, len(v.Rows))
		for _, r := range v.Rows {
			rows = append(rows, map[string]any{"cells": anyStrings(r.Cells), "flagged": r.Flagged})
		}
		return map[string]any{
			"type":    string(TypeTable),
			"id":      v.ID,
			"caption": v.Caption,
			"header":  anyStrings(v.Header),
			"widths":  widths,
			"rows":    rows,
		}, nil
	case PageBreak:
		return map[string]any{"type": string(TypePageBreak)}, nil
	case SignatureBlock:
		sigs := make([]any, 0, len(v.Signatures))
		for _, sig := range v.Signatures {
			sigs = append(sigs, map[string]any{"role": sig.Role, "name": sig.Name})
		}
		return map[string]any{
			"type":       string(TypeSignature),
			"title":      v.Title,
			"signatures": sigs,
		}, nil
	case Footer:
		return map[string]any{
			"type":         string(TypeFooter),
			"document_id":  v.DocumentID,
			"generated_at": v.GeneratedAt.UTC().Format(time.RFC3339),
			"page_label":   v.PageLabel,
			"note":         v.Note,
		}, nil
	}
	return nil, fmt.Errorf("unsupported section %T", s)
}

func anyStrings(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
