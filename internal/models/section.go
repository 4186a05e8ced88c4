// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// section.go defines the page section variants. On disk every section is a
// flat JSON object discriminated by its "type" field; in Go each variant is
// its own struct behind the Section interface.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionType discriminates page section variants.
type SectionType string

const (
	SectionText          SectionType = "text"
	SectionCasinoList    SectionType = "casino_list"
	SectionExpertOpinion SectionType = "expert_opinion"
)

// Section is one block of page content.
type Section interface {
	Type() SectionType
	Validate() error
}

// TextSection is a titled block of HTML.
type TextSection struct {
	Title   string
	Content string
}

// CasinoListSection renders the referenced casinos in order.
type CasinoListSection struct {
	Title     string
	CasinoIDs []string
}

// ExpertOpinionSection quotes a named expert with a portrait.
type ExpertOpinionSection struct {
	ExpertName    string
	ExpertImage   string
	ExpertContent string
}

func (*TextSection) Type() SectionType          { return SectionText }
func (*CasinoListSection) Type() SectionType    { return SectionCasinoList }
func (*ExpertOpinionSection) Type() SectionType { return SectionExpertOpinion }

// Validate always succeeds; an empty text block is allowed.
func (*TextSection) Validate() error { return nil }

// Validate rejects blank casino references.
func (s *CasinoListSection) Validate() error {
	for i, id := range s.CasinoIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("casino_list: empty casino id at position %d", i)
		}
	}
	return nil
}

// Validate always succeeds; the editor creates expert blocks with every
// field blank and fills them in later.
func (*ExpertOpinionSection) Validate() error { return nil }

// sectionJSON is the flat on-disk shape shared by all variants.
type sectionJSON struct {
	Type          SectionType `json:"type"`
	Title         string      `json:"title,omitempty"`
	Content       string      `json:"content,omitempty"`
	CasinoIDs     []string    `json:"casinoIds,omitempty"`
	ExpertName    string      `json:"expertName,omitempty"`
	ExpertImage   string      `json:"expertImage,omitempty"`
	ExpertContent string      `json:"expertContent,omitempty"`
}

// Sections is an ordered list of page sections with JSON support.
type Sections []Section

// MarshalJSON encodes every section in its flat form.
func (ss Sections) MarshalJSON() ([]byte, error) {
	out := make([]sectionJSON, 0, len(ss))
	for _, s := range ss {
		raw := sectionJSON{Type: s.Type()}
		switch v := s.(type) {
		case *TextSection:
			raw.Title, raw.Content = v.Title, v.Content
		case *CasinoListSection:
			raw.Title = v.Title
			raw.CasinoIDs = v.CasinoIDs
			if raw.CasinoIDs == nil {
				raw.CasinoIDs = []string{}
			}
		case *ExpertOpinionSection:
			raw.ExpertName, raw.ExpertImage, raw.ExpertContent = v.ExpertName, v.ExpertImage, v.ExpertContent
		default:
			return nil, fmt.Errorf("unknown section type %T", s)
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes flat sections, rejecting unknown types and
// sections that fail validation.
func (ss *Sections) UnmarshalJSON(data []byte) error {
	var raws []sectionJSON
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(Sections, 0, len(raws))
	for i, raw := range raws {
		var s Section
		switch raw.Type {
		case SectionText:
			s = &TextSection{Title: raw.Title, Content: raw.Content}
		case SectionCasinoList:
			s = &CasinoListSection{Title: raw.Title, CasinoIDs: raw.CasinoIDs}
		case SectionExpertOpinion:
			s = &ExpertOpinionSection{
				ExpertName:    raw.ExpertName,
				ExpertImage:   raw.ExpertImage,
				ExpertContent: raw.ExpertContent,
			}
		default:
			return fmt.Errorf("section %d: unknown type %q", i, raw.Type)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
		out = append(out, s)
	}
	*ss = out
	return nil
}

// CasinoIDs returns every casino referenced by the sections, in order.
func (ss Sections) CasinoIDs() []string {
	var ids []string
	for _, s := range ss {
		if cl, ok := s.(*CasinoListSection); ok {
			ids = append(ids, cl.CasinoIDs...)
		}
	}
	return ids
}
