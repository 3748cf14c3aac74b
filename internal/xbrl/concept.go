package xbrl

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// ConceptKey names a semantic financial quantity independent of the tag
// spelling a taxonomy vendor chose for it. The set is closed: these eight
// keys are the full vocabulary of the extraction.
type ConceptKey string

const (
	ConceptRevenue       ConceptKey = "revenue"
	ConceptNetIncome     ConceptKey = "net_income"
	ConceptTotalAssets   ConceptKey = "total_assets"
	ConceptEquity        ConceptKey = "equity"
	ConceptShortTermDebt ConceptKey = "short_term_debt"
	ConceptLongTermDebt  ConceptKey = "long_term_debt"
	ConceptEntityName    ConceptKey = "entity_name"
	ConceptTaxID         ConceptKey = "tax_id"
)

// Concept describes how one financial quantity is located in a document:
// an ordered list of acceptable tag spellings, and whether resolution must
// be bound to the authoritative reporting context. Monetary, period-bound
// facts are contextual; identity facts (legal name, tax identifier) are not.
type Concept struct {
	Key        ConceptKey `yaml:"key"`
	Aliases    []string   `yaml:"aliases"`
	Contextual bool       `yaml:"contextual"`
}

//go:embed aliases.yaml
var aliasesYAML []byte

// conceptTable is process-wide read-only configuration, loaded once at
// package init and never mutated.
var conceptTable = mustLoadConcepts(aliasesYAML)

func mustLoadConcepts(raw []byte) []Concept {
	var table struct {
		Concepts []Concept `yaml:"concepts"`
	}
	if err := yaml.Unmarshal(raw, &table); err != nil {
		panic(fmt.Sprintf("xbrl: embedded alias table is invalid: %v", err))
	}
	if len(table.Concepts) == 0 {
		panic("xbrl: embedded alias table is empty")
	}
	for _, c := range table.Concepts {
		if len(c.Aliases) == 0 {
			panic(fmt.Sprintf("xbrl: concept %q has no aliases", c.Key))
		}
	}
	return table.Concepts
}

// conceptByKey returns the table entry for key. The table is closed, so a
// miss is a programming error and panics.
func conceptByKey(key ConceptKey) Concept {
	for _, c := range conceptTable {
		if c.Key == key {
			return c
		}
	}
	panic(fmt.Sprintf("xbrl: unknown concept %q", key))
}

// ResolveConcept locates the raw text value of a concept in the document.
//
// For a contextual concept each alias is tried in priority order: the first
// node (in document order) whose local name equals the alias, whose
// contextRef attribute equals contextID, and whose trimmed text is non-empty
// wins, and later aliases are never consulted. For a non-contextual concept
// the contextRef filter is skipped.
//
// A concept that resolves nowhere returns nil; a missing fact is data, not
// an error. There is no distinction between an absent tag and a present but
// empty one.
func ResolveConcept(doc *Document, concept Concept, contextID string) *string {
	for _, alias := range concept.Aliases {
		node := doc.find(func(n *Node) bool {
			if n.Local != alias {
				return false
			}
			if concept.Contextual && n.Attr("contextRef") != contextID {
				return false
			}
			return strings.TrimSpace(n.Text) != ""
		})
		if node != nil {
			value := node.Text
			return &value
		}
	}
	return nil
}
