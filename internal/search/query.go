package search

// Field names a searchable book attribute.
type Field string

// Searchable fields.
const (
	FieldTitle       Field = "title"
	FieldAuthor      Field = "author"
	FieldGenre       Field = "genre"
	FieldNarrator    Field = "narrator"
	FieldDescription Field = "description"
)

// Query is a conjunction of clauses. Limit 0 returns every match.
type Query struct {
	Clauses []Clause
	Limit   int
}

// Clause matches when Needle is a substring of any of Fields.
// A clause with an empty needle is ignored.
type Clause struct {
	Fields []Field
	Needle string
}

// active returns the clauses that constrain the result, with folded needles.
func (q Query) active() []Clause {
	out := make([]Clause, 0, len(q.Clauses))
	for _, c := range q.Clauses {
		if c.Needle == "" || len(c.Fields) == 0 {
			continue
		}
		out = append(out, Clause{Fields: c.Fields, Needle: Fold(c.Needle)})
	}
	return out
}
