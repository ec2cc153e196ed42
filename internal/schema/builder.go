package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/glimpsedb/glimpse/internal/catalog"
	"github.com/glimpsedb/glimpse/internal/sqlparse"
)

// ExprPlaceholder stands in for a generated column expression that could not
// be recovered from the stored CREATE statement.
const ExprPlaceholder = "…"

// Builder assembles Descriptions from catalog reads.
type Builder struct {
	reader *catalog.Reader
}

// NewBuilder returns a Builder over an open catalog reader.
func NewBuilder(r *catalog.Reader) *Builder {
	return &Builder{reader: r}
}

// Describe builds the description of every table and view in the database,
// in catalog listing order. Shadow tables and sqlite_* system tables are
// described only when includeHidden is set, and land in their own groups
// instead of the main listing.
func (b *Builder) Describe(ctx context.Context, includeHidden bool) (*Description, error) {
	objs, err := b.reader.Objects(ctx)
	if err != nil {
		return nil, err
	}

	desc := &Description{Path: b.reader.Path()}
	for _, obj := range objs {
		if obj.Type == "view" {
			view, err := b.describeView(ctx, obj.Name)
			if err != nil {
				return nil, fmt.Errorf("describe view %q: %w", obj.Name, err)
			}
			desc.Views = append(desc.Views, *view)
			continue
		}

		system := strings.HasPrefix(obj.Name, "sqlite_")
		if system && !includeHidden {
			continue
		}

		meta, err := b.reader.TableMeta(ctx, obj.Name)
		if err != nil {
			return nil, fmt.Errorf("describe table %q: %w", obj.Name, err)
		}
		if meta.Kind == KindShadow && !includeHidden {
			continue
		}

		table, err := b.describeTable(ctx, meta)
		if err != nil {
			return nil, fmt.Errorf("describe table %q: %w", obj.Name, err)
		}

		switch {
		case system:
			desc.SystemTables = append(desc.SystemTables, *table)
		case meta.Kind == KindShadow:
			desc.ShadowTables = append(desc.ShadowTables, *table)
		default:
			desc.Tables = append(desc.Tables, *table)
		}
	}
	return desc, nil
}

func (b *Builder) describeTable(ctx context.Context, meta catalog.TableMeta) (*Table, error) {
	name := meta.Name

	rawCols, err := b.reader.Columns(ctx, name)
	if err != nil {
		return nil, err
	}

	rawIdxs, err := b.reader.Indexes(ctx, name)
	if err != nil {
		return nil, err
	}
	indexes := make([]Index, 0, len(rawIdxs))
	for _, ix := range rawIdxs {
		keyCols, err := b.reader.IndexColumns(ctx, ix.Name)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, Index{
			Name:    ix.Name,
			Origin:  ix.Origin,
			Unique:  ix.Unique != 0,
			Partial: ix.Partial != 0,
			Columns: keyCols,
		})
	}

	fkRows, err := b.reader.ForeignKeys(ctx, name)
	if err != nil {
		return nil, err
	}
	fks := ResolveForeignKeys(fkRows)

	count, err := b.reader.Count(ctx, name)
	if err != nil {
		return nil, err
	}

	triggers, err := b.reader.Triggers(ctx, name)
	if err != nil {
		return nil, err
	}

	// The stored CREATE statement is only needed to recover text the
	// pragmas do not expose. Failure to fetch it degrades the report, it
	// does not abort it.
	var createSQL string
	if needsCreateSQL(meta, rawCols) {
		createSQL, _ = b.reader.CreateSQL(ctx, name)
	}

	columns := make([]Column, 0, len(rawCols))
	for _, rc := range rawCols {
		columns = append(columns, Column{
			Name:      rc.Name,
			Type:      rc.Type,
			NotNull:   rc.NotNull != 0,
			Default:   rc.Default,
			PKOrdinal: rc.PKOrdinal,
			Hidden:    rc.Hidden,
		})
	}

	cls := ClassifyIndexes(indexes, columns)
	for i := range columns {
		col := &columns[i]
		cls.annotate(col)
		if fk := fks.ForName(col.Name); fk != nil {
			col.Ref = &Ref{Table: fk.Table, Column: fk.To[0]}
		}
		if col.Hidden == catalog.HiddenVirtual || col.Hidden == catalog.HiddenStored {
			expr := sqlparse.GeneratedExpr(createSQL, col.Name)
			if expr == "" {
				expr = ExprPlaceholder
			}
			col.Generated = expr
			col.Stored = col.Hidden == catalog.HiddenStored
		}
	}

	table := &Table{
		Name:         name,
		Kind:         meta.Kind,
		Strict:       meta.Strict,
		WithoutRowid: meta.WithoutRowid,
		RowCount:     count,
		Columns:      columns,
		PKColumns:    cls.PKColumns,
		ForeignKeys:  fks,
		OtherIndexes: cls.Other,
		Triggers:     triggers,
	}
	if meta.Kind == KindVirtual {
		table.Module = sqlparse.VirtualModule(createSQL)
	}
	return table, nil
}

func (b *Builder) describeView(ctx context.Context, name string) (*View, error) {
	rawCols, err := b.reader.Columns(ctx, name)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rawCols))
	for _, rc := range rawCols {
		names = append(names, rc.Name)
	}

	// Counting evaluates the view, so a broken view body fails here.
	count, err := b.reader.Count(ctx, name)
	if err != nil {
		return nil, err
	}

	createSQL, _ := b.reader.CreateSQL(ctx, name)

	return &View{
		Name:     name,
		RowCount: count,
		Columns:  names,
		Select:   sqlparse.ViewSelect(createSQL),
	}, nil
}

func needsCreateSQL(meta catalog.TableMeta, cols []catalog.Column) bool {
	if meta.Kind == KindVirtual {
		return true
	}
	for _, c := range cols {
		if c.Hidden == catalog.HiddenVirtual || c.Hidden == catalog.HiddenStored {
			return true
		}
	}
	return false
}
