// Package catalog provides the read-only lookup tables that map record type,
// category and payment type codes to display labels.
//
// A Catalog is built once at startup (Default or Load) and shared by pointer;
// nothing mutates it afterwards and all accessors return copies.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
)

var ErrEmptyCatalog = errors.New("catalog has no entries")

// Entry is a code with its label.
type Entry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// CategoryEntry also remembers the record types the category was declared
// under. It is only used to group choices; categories share one code space.
type CategoryEntry struct {
	Entry
	Types []models.RecordType `json:"types,omitempty"`
}

type Catalog struct {
	recordTypes  []Entry
	categories   []CategoryEntry
	paymentTypes []Entry

	recordTypeLabels  map[string]string
	categoryLabels    map[string]string
	paymentTypeLabels map[string]string
}

// file is the JSON layout accepted by Load.
type file struct {
	RecordTypes  []Entry         `json:"record_types"`
	Categories   []CategoryEntry `json:"categories"`
	PaymentTypes []Entry         `json:"payment_types"`
}

// New builds a catalog. Category entries with the same code are merged: the
// first label wins and record types are accumulated.
func New(recordTypes []Entry, categories []CategoryEntry, paymentTypes []Entry) (*Catalog, error) {
	if len(recordTypes) == 0 || len(categories) == 0 || len(paymentTypes) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		recordTypes:       append([]Entry(nil), recordTypes...),
		paymentTypes:      append([]Entry(nil), paymentTypes...),
		recordTypeLabels:  labels(recordTypes),
		paymentTypeLabels: labels(paymentTypes),
		categoryLabels:    make(map[string]string, len(categories)),
	}

	index := make(map[string]int, len(categories))
	for _, ce := range categories {
		if i, ok := index[ce.Code]; ok {
			c.categories[i].Types = appendTypes(c.categories[i].Types, ce.Types)
			continue
		}
		index[ce.Code] = len(c.categories)
		c.categories = append(c.categories, CategoryEntry{
			Entry: ce.Entry,
			Types: append([]models.RecordType(nil), ce.Types...),
		})
		c.categoryLabels[ce.Code] = ce.Label
	}
	return c, nil
}

// Load reads a catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.RecordTypes, f.Categories, f.PaymentTypes)
}

func (c *Catalog) RecordTypeLabel(code models.RecordType) (string, bool) {
	l, ok := c.recordTypeLabels[string(code)]
	return l, ok
}

func (c *Catalog) CategoryLabel(code string) (string, bool) {
	l, ok := c.categoryLabels[code]
	return l, ok
}

func (c *Catalog) PaymentTypeLabel(code models.PaymentType) (string, bool) {
	l, ok := c.paymentTypeLabels[string(code)]
	return l, ok
}

func (c *Catalog) HasRecordType(code models.RecordType) bool {
	_, ok := c.recordTypeLabels[string(code)]
	return ok
}

func (c *Catalog) HasCategory(code string) bool {
	_, ok := c.categoryLabels[code]
	return ok
}

func (c *Catalog) HasPaymentType(code models.PaymentType) bool {
	_, ok := c.paymentTypeLabels[string(code)]
	return ok
}

func (c *Catalog) RecordTypes() []Entry {
	return append([]Entry(nil), c.recordTypes...)
}

func (c *Catalog) PaymentTypes() []Entry {
	return append([]Entry(nil), c.paymentTypes...)
}

// Categories returns every category in declaration order.
func (c *Catalog) Categories() []CategoryEntry {
	out := make([]CategoryEntry, len(c.categories))
	for i, ce := range c.categories {
		out[i] = CategoryEntry{Entry: ce.Entry, Types: append([]models.RecordType(nil), ce.Types...)}
	}
	return out
}

// CategoriesFor lists categories declared under t, falling back to all of
// them when t is empty or unknown.
func (c *Catalog) CategoriesFor(t models.RecordType) []Entry {
	var out []Entry
	for _, ce := range c.categories {
		for _, ct := range ce.Types {
			if ct == t {
				out = append(out, ce.Entry)
				break
			}
		}
	}
	if len(out) == 0 {
		for _, ce := range c.categories {
			out = append(out, ce.Entry)
		}
	}
	return out
}

func labels(entries []Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, ok := m[e.Code]; !ok {
			m[e.Code] = e.Label
		}
	}
	return m
}

func appendTypes(dst, src []models.RecordType) []models.RecordType {
	for _, t := range src {
		found := false
		for _, d := range dst {
			if d == t {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, t)
		}
	}
	return dst
}
