// Package gormafm compiles AFM filters into gorm clause expressions so a
// SQL-backed consumer can restrict its queries the way the model describes.
// It only builds conditions; running the query stays with the caller.
package gormafm

import (
	"cmp"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/theplant/afm"
)

// Mapping resolves AFM object references to database columns.
type Mapping struct {
	// Columns maps a resolved qualifier identity (attribute display form or
	// date dataset) to the column holding its values. Scope additionally
	// accepts Go field names here and resolves them against the model schema.
	Columns map[string]string
	// Table qualifies generated column references. Scope fills it from the
	// statement when empty.
	Table string
	// Now supplies the reference instant for relative date filters.
	// time.Now is used when nil.
	Now func() time.Time
}

func (m Mapping) column(q afm.ObjQualifier) (clause.Column, error) {
	id, ok := q.ResolveID()
	if !ok {
		return clause.Column{}, errors.New("qualifier resolves to nothing")
	}
	name, ok := m.Columns[id]
	if !ok {
		return clause.Column{}, errors.Errorf("no column mapped for %q", id)
	}
	return clause.Column{Table: m.Table, Name: name}, nil
}

func (m Mapping) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// FilterExpr compiles filters into a single expression. Filters that impose
// no restriction (all-time date filters, negative attribute filters with
// nothing to exclude) are skipped; the expression is nil when nothing
// restricts.
func FilterExpr(m Mapping, filters ...afm.Filter) (clause.Expression, error) {
	var exprs []clause.Expression
	for i, f := range filters {
		expr, err := filterExpr(m, f)
		if err != nil {
			return nil, errors.Wrapf(err, "filter %d", i)
		}
		if expr != nil {
			exprs = append(exprs, expr)
		}
	}
	return combineExprs(exprs...), nil
}

func filterExpr(m Mapping, f afm.Filter) (clause.Expression, error) {
	switch f := f.(type) {
	case afm.PositiveAttributeFilter:
		column, err := m.column(f.DisplayForm)
		if err != nil {
			return nil, err
		}
		// an empty IN matches nothing, which is what an empty selection means
		return clause.IN{Column: column, Values: lo.ToAnySlice(f.In)}, nil

	case afm.NegativeAttributeFilter:
		if len(f.NotIn) == 0 {
			return nil, nil
		}
		column, err := m.column(f.DisplayForm)
		if err != nil {
			return nil, err
		}
		return clause.Not(clause.IN{Column: column, Values: lo.ToAnySlice(f.NotIn)}), nil

	case afm.AbsoluteDateFilter:
		column, err := m.column(f.DataSet)
		if err != nil {
			return nil, err
		}
		start, end, err := absoluteRange(f)
		if err != nil {
			return nil, err
		}
		return rangeExpr(column, start, end), nil

	case afm.RelativeDateFilter:
		if f.Granularity == afm.AllTimeGranularity {
			return nil, nil
		}
		column, err := m.column(f.DataSet)
		if err != nil {
			return nil, err
		}
		start, end, err := periodRange(m.now(), f.Granularity, f.From, f.To)
		if err != nil {
			return nil, err
		}
		return rangeExpr(column, start, end), nil

	case nil:
		return nil, nil

	default:
		return nil, errors.Errorf("unsupported filter type %T", f)
	}
}

// rangeExpr restricts column to the half-open range [start, end).
func rangeExpr(column clause.Column, start, end time.Time) clause.Expression {
	return clause.And(
		clause.Gte{Column: column, Value: start},
		clause.Lt{Column: column, Value: end},
	)
}

func combineExprs(exprs ...clause.Expression) clause.Expression {
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return clause.And(exprs...)
	}
}

// Scope restricts db by the AFM-level filters. Use with db.Scopes.
func Scope(m Mapping, a afm.AFM) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if db == nil {
			return nil
		}
		fdb, err := addFilters(db, m, a)
		if err != nil {
			db.AddError(err)
			return db
		}
		return fdb
	}
}

func addFilters(db *gorm.DB, m Mapping, a afm.AFM) (*gorm.DB, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	filters := afm.Normalize(a).Filters
	if len(filters) == 0 {
		return db, nil
	}

	model := cmp.Or(db.Statement.Model, db.Statement.Dest)
	if model == nil {
		return nil, errors.New("model is nil")
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrap(err, "parse schema with db")
	}

	resolved := Mapping{
		Columns: make(map[string]string, len(m.Columns)),
		Table:   cmp.Or(m.Table, stmt.Table),
		Now:     m.Now,
	}
	for id, name := range m.Columns {
		field := stmt.Schema.LookUpField(name)
		if field == nil {
			return nil, errors.Errorf("missing field %q in schema", name)
		}
		resolved.Columns[id] = field.DBName
	}

	expr, err := FilterExpr(resolved, filters...)
	if err != nil {
		return nil, err
	}
	if expr != nil {
		db = db.Where(expr)
	}
	return db, nil
}
