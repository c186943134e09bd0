package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyammistari/schemadoc/internal/schema"
)

func TestBuildConstraintFactsCompositeKeys(t *testing.T) {
	keys := []keyColumn{
		{Constraint: "order_items_pkey", Kind: "PRIMARY KEY", Column: "order_id"},
		{Constraint: "order_items_pkey", Kind: "PRIMARY KEY", Column: "product_id"},
		{Constraint: "order_items_sku_fkey", Kind: "FOREIGN KEY", Column: "vendor_id"},
		{Constraint: "order_items_sku_fkey", Kind: "FOREIGN KEY", Column: "sku"},
	}
	refs := []refColumn{
		{Constraint: "order_items_sku_fkey", DeleteRule: "CASCADE", Table: "products", Column: "vendor_id"},
		{Constraint: "order_items_sku_fkey", DeleteRule: "CASCADE", Table: "products", Column: "sku"},
	}
	facts := buildConstraintFacts("order_items", keys, refs, nil)
	require.Len(t, facts, 2)

	pk := facts[0].(schema.ConstraintFact).Constraint
	assert.Equal(t, schema.KindPrimaryKey, pk.Kind)
	assert.Equal(t, []string{"order_id", "product_id"}, pk.Columns,
		"each key column appears exactly once, in key order")

	fk := facts[1].(schema.ConstraintFact).Constraint
	assert.Equal(t, schema.KindForeignKey, fk.Kind)
	assert.Equal(t, []string{"vendor_id", "sku"}, fk.Columns)
	assert.Equal(t, "products", fk.RefTable)
	assert.Equal(t, []string{"vendor_id", "sku"}, fk.RefColumns,
		"referenced columns follow key position, not name order")
	assert.Equal(t, "CASCADE", fk.OnDelete)
}

func TestBuildConstraintFactsNoActionElided(t *testing.T) {
	keys := []keyColumn{{Constraint: "t_fk", Kind: "FOREIGN KEY", Column: "a"}}
	refs := []refColumn{{Constraint: "t_fk", DeleteRule: "NO ACTION", Table: "p", Column: "id"}}
	facts := buildConstraintFacts("t", keys, refs, nil)
	require.Len(t, facts, 1)
	assert.Empty(t, facts[0].(schema.ConstraintFact).Constraint.OnDelete)
}

func TestBuildConstraintFactsChecksAndOrdering(t *testing.T) {
	keys := []keyColumn{{Constraint: "t_pkey", Kind: "PRIMARY KEY", Column: "id"}}
	checks := []checkClause{{Constraint: "t_age_check", Clause: " (age >= 0) "}}
	facts := buildConstraintFacts("t", keys, nil, checks)
	require.Len(t, facts, 2)

	// sorted by constraint name
	assert.Equal(t, "t_age_check", facts[0].(schema.ConstraintFact).Constraint.Name)
	assert.Equal(t, "(age >= 0)", facts[0].(schema.ConstraintFact).Constraint.Check)
	assert.Equal(t, "t_pkey", facts[1].(schema.ConstraintFact).Constraint.Name)
}

func TestBuildConstraintFactsIgnoresForeignRefRows(t *testing.T) {
	// the ref query spans the whole schema; rows for other tables' foreign
	// keys must not leak into this table's facts
	keys := []keyColumn{{Constraint: "t_pkey", Kind: "PRIMARY KEY", Column: "id"}}
	refs := []refColumn{{Constraint: "other_fkey", DeleteRule: "", Table: "p", Column: "id"}}
	facts := buildConstraintFacts("t", keys, refs, nil)
	require.Len(t, facts, 1)
	assert.Equal(t, "t_pkey", facts[0].(schema.ConstraintFact).Constraint.Name)
}

func TestDisplayType(t *testing.T) {
	assert.Equal(t, "varchar(50)", displayType("character varying", "varchar", 50))
	assert.Equal(t, "varchar", displayType("character varying", "varchar", 0))
	assert.Equal(t, "char(2)", displayType("character", "bpchar", 2))
	assert.Equal(t, "timestamptz", displayType("timestamp with time zone", "timestamptz", 0))
	assert.Equal(t, "timestamp", displayType("timestamp without time zone", "timestamp", 0))
	assert.Equal(t, "mood", displayType("USER-DEFINED", "mood", 0))
	assert.Equal(t, "text[]", displayType("ARRAY", "_text", 0))
	assert.Equal(t, "integer", displayType("integer", "int4", 0))
}
