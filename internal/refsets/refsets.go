// Package refsets holds the static PRIMEROS/SIGUIENTES/PREDICCION reference
// tables emitted after a successful analysis. They are fixed data
// determined at implementation time, not computed from the grammar, so
// they are carried as an embedded YAML resource and decoded once at
// package init.
package refsets

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed refsets.yaml
var raw []byte

// Entry pairs a grammar non-terminal with its associated set.
type Entry struct {
	Nonterminal string   `yaml:"nonterminal"`
	Set         []string `yaml:"set"`
}

// PredictEntry pairs a production with the token set that predicts it.
type PredictEntry struct {
	Production string   `yaml:"produccion"`
	Set        []string `yaml:"set"`
}

type table struct {
	Primeros   []Entry        `yaml:"primeros"`
	Siguientes []Entry        `yaml:"siguientes"`
	Prediccion []PredictEntry `yaml:"prediccion"`
}

var tables table

func init() {
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		panic(fmt.Sprintf("refsets: malformed embedded table: %v", err))
	}
	sortEntries(tables.Primeros)
	sortEntries(tables.Siguientes)
	sort.Slice(tables.Prediccion, func(i, j int) bool {
		return tables.Prediccion[i].Production < tables.Prediccion[j].Production
	})
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Nonterminal < entries[j].Nonterminal
	})
}

// Render formats the three titled sub-blocks in alphabetical non-terminal
// order. The result is byte-identical across runs.
func Render() string {
	var b strings.Builder

	b.WriteString("PRIMEROS:\n")
	for _, e := range tables.Primeros {
		fmt.Fprintf(&b, "  %s: { %s }\n", e.Nonterminal, strings.Join(e.Set, ", "))
	}

	b.WriteString("SIGUIENTES:\n")
	for _, e := range tables.Siguientes {
		fmt.Fprintf(&b, "  %s: { %s }\n", e.Nonterminal, strings.Join(e.Set, ", "))
	}

	b.WriteString("PREDICCION\n")
	for _, e := range tables.Prediccion {
		fmt.Fprintf(&b, "  %s: { %s }\n", e.Production, strings.Join(e.Set, ", "))
	}

	return b.String()
}
