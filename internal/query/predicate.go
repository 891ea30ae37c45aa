// Package query builds the candidate-set predicates for the list
// endpoints. Filters arriving as raw query parameters are validated into
// typed param structs, composed into a predicate tree with explicit
// AND/OR combinators, and handed to a storage implementation. A predicate
// renders to a SQL WHERE fragment for the Postgres store and evaluates
// directly against a field map for the in-memory store.
package query

import (
	"fmt"
	"strings"
)

type Predicate interface {
	// SQL renders the predicate with $n placeholders, appending bind
	// values to args. Numbering continues from whatever the caller has
	// already bound.
	SQL(args *[]any) string
	// Match evaluates the predicate against a row represented as a
	// column→value map.
	Match(row map[string]any) bool
}

type eq struct {
	field string
	value any
}

// Eq matches rows whose column equals value exactly.
func Eq(field string, value any) Predicate { return eq{field, value} }

func (p eq) SQL(args *[]any) string {
	*args = append(*args, p.value)
	return fmt.Sprintf("%s = $%d", p.field, len(*args))
}

func (p eq) Match(row map[string]any) bool { return row[p.field] == p.value }

type containsFold struct {
	field  string
	needle string
}

// ContainsFold matches rows whose column contains needle,
// case-insensitively.
func ContainsFold(field, needle string) Predicate { return containsFold{field, needle} }

func (p containsFold) SQL(args *[]any) string {
	*args = append(*args, "%"+escapeLike(p.needle)+"%")
	return fmt.Sprintf("%s ILIKE $%d", p.field, len(*args))
}

func (p containsFold) Match(row map[string]any) bool {
	s, _ := row[p.field].(string)
	return strings.Contains(strings.ToLower(s), strings.ToLower(p.needle))
}

// escapeLike neutralizes LIKE metacharacters so user input only ever
// matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type and []Predicate

// And combines predicates conjunctively. Nil members are skipped; with
// no members it returns nil (match everything).
func And(ps ...Predicate) Predicate { return combine(ps, and{}) }

func (p and) SQL(args *[]any) string {
	parts := make([]string, len(p))
	for i, sub := range p {
		parts[i] = sub.SQL(args)
	}
	return "(" + strings.Join(parts, " AND ") + ")"
}

func (p and) Match(row map[string]any) bool {
	for _, sub := range p {
		if !sub.Match(row) {
			return false
		}
	}
	return true
}

type or []Predicate

// Or combines predicates disjunctively, with the same nil handling as And.
func Or(ps ...Predicate) Predicate { return combine(ps, or{}) }

func (p or) SQL(args *[]any) string {
	parts := make([]string, len(p))
	for i, sub := range p {
		parts[i] = sub.SQL(args)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func (p or) Match(row map[string]any) bool {
	for _, sub := range p {
		if sub.Match(row) {
			return true
		}
	}
	return false
}

func combine(ps []Predicate, into Predicate) Predicate {
	kept := ps[:0:0]
	for _, p := range ps {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	switch into.(type) {
	case and:
		return and(kept)
	default:
		return or(kept)
	}
}
