package igdb

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

// Predicate is one condition of a where clause.
type Predicate string

// InSet matches records whose field shares at least one value with ids.
func InSet(field string, ids ...int) Predicate {
	parts := lo.Map(ids, func(id int, _ int) string { return strconv.Itoa(id) })
	return Predicate(field + " = (" + strings.Join(parts, ",") + ")")
}

// Equals matches records whose field is exactly id.
func Equals(field string, id int) Predicate {
	return Predicate(field + " = " + strconv.Itoa(id))
}

// NameContains is a case-insensitive substring match on name.
func NameContains(text string) Predicate {
	return Predicate(`name ~ *"` + escapeText(text) + `"*`)
}

// Query is a structured request body. String is the only serialization step.
type Query struct {
	Fields []string
	Where  []Predicate
	Sort   string
	Limit  int
	Offset int
}

// String renders q. Empty clauses are omitted; predicates are joined with AND.
func (q Query) String() string {
	var b strings.Builder
	if len(q.Fields) > 0 {
		b.WriteString("fields ")
		b.WriteString(strings.Join(q.Fields, ", "))
		b.WriteString(";")
	}
	where := lo.Filter(q.Where, func(p Predicate, _ int) bool { return p != "" })
	if len(where) > 0 {
		b.WriteString(" where ")
		b.WriteString(strings.Join(lo.Map(where, func(p Predicate, _ int) string { return string(p) }), " & "))
		b.WriteString(";")
	}
	if q.Sort != "" {
		b.WriteString(" sort ")
		b.WriteString(q.Sort)
		b.WriteString(";")
	}
	if q.Limit > 0 {
		b.WriteString(" limit ")
		b.WriteString(strconv.Itoa(q.Limit))
		b.WriteString(";")
	}
	if q.Offset > 0 {
		b.WriteString(" offset ")
		b.WriteString(strconv.Itoa(q.Offset))
		b.WriteString(";")
	}
	return strings.TrimSpace(b.String())
}

func escapeText(text string) string {
	text = norm.NFC.String(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(text, `"`, `\"`)
}
