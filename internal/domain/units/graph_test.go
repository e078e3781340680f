package units_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/units"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: catálogo mínimo pieza (base) / caja (1 caja = 12 piezas).
// ──────────────────────────────────────────────────────────────────────────────

// tolerancia para leyes de ida y vuelta: la división decimal trunca a la
// precisión por defecto de shopspring/decimal.
var tolerance = decimal.New(1, -10) // 1e-10

func baseUnit(id, name string) *entity.Unit {
	return &entity.Unit{ID: id, Name: name, AllowsFractional: false}
}

func subUnit(id, name, baseID string, factor int64) *entity.Unit {
	m := decimal.NewFromInt(factor)
	return &entity.Unit{ID: id, Name: name, BaseUnitID: &baseID, BaseUnitMultiplier: &m}
}

// ──────────────────────────────────────────────────────────────────────────────
// Multiplier
// ──────────────────────────────────────────────────────────────────────────────

func TestMultiplier_MismaUnidad(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")

	m, err := units.Multiplier(pieza, pieza)
	require.NoError(t, err)
	assert.True(t, m.Equal(decimal.NewFromInt(1)), "misma unidad debe dar multiplicador 1")
}

func TestMultiplier_SubUnidadABase(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")
	caja := subUnit("u-caja", "Caja", pieza.ID, 12)

	m, err := units.Multiplier(caja, pieza)
	require.NoError(t, err)
	assert.True(t, m.Equal(decimal.NewFromInt(12)), "1 caja = 12 piezas")
}

func TestMultiplier_BaseASubUnidad(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")
	caja := subUnit("u-caja", "Caja", pieza.ID, 12)

	m, err := units.Multiplier(pieza, caja)
	require.NoError(t, err)

	// 1 pieza = 1/12 caja; el inverso del factor, dentro de la tolerancia decimal.
	expected := decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
	assert.True(t, m.Sub(expected).Abs().LessThan(tolerance))
}

func TestMultiplier_SinRelacionDirecta(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")
	litro := baseUnit("u-litro", "Litro")
	caja := subUnit("u-caja", "Caja", pieza.ID, 12)
	docena := subUnit("u-docena", "Docena", pieza.ID, 12)

	// Dos bases distintas no se relacionan.
	_, err := units.Multiplier(pieza, litro)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)

	// Dos sub-unidades de la misma base tampoco: el grafo no camina dos saltos.
	_, err = units.Multiplier(caja, docena)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)
}

func TestMultiplier_MultiplicadorNoPositivo(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")

	zero := decimal.Zero
	mala := &entity.Unit{ID: "u-mala", Name: "Mala", BaseUnitID: &pieza.ID, BaseUnitMultiplier: &zero}
	_, err := units.Multiplier(mala, pieza)
	assert.ErrorIs(t, err, domain.ErrInvalidUnitDefinition, "multiplicador cero es error de integridad, no se coacciona")

	neg := decimal.NewFromInt(-3)
	mala.BaseUnitMultiplier = &neg
	_, err = units.Multiplier(mala, pieza)
	assert.ErrorIs(t, err, domain.ErrInvalidUnitDefinition)
}

func TestMultiplier_DefinicionAMedias(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")

	// BaseUnitID sin multiplicador: par incompleto.
	incompleta := &entity.Unit{ID: "u-incompleta", Name: "Incompleta", BaseUnitID: &pieza.ID}
	_, err := units.Multiplier(incompleta, pieza)
	assert.ErrorIs(t, err, domain.ErrInvalidUnitDefinition)

	// Multiplicador sin BaseUnitID: también incompleto.
	m := decimal.NewFromInt(12)
	suelta := &entity.Unit{ID: "u-suelta", Name: "Suelta", BaseUnitMultiplier: &m}
	_, err = units.Multiplier(suelta, pieza)
	assert.ErrorIs(t, err, domain.ErrInvalidUnitDefinition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Convert y leyes de ida y vuelta
// ──────────────────────────────────────────────────────────────────────────────

func TestConvert_CajasAPiezas(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")
	caja := subUnit("u-caja", "Caja", pieza.ID, 12)

	got, err := units.Convert(decimal.NewFromInt(11), caja, pieza)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(132)), "11 cajas = 132 piezas, got %s", got)
}

func TestConvert_IdaYVuelta(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")
	caja := subUnit("u-caja", "Caja", pieza.ID, 12)

	cases := []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromInt(11),
		decimal.NewFromFloat(2.5),
		decimal.NewFromInt(1000),
	}
	for _, x := range cases {
		enPiezas, err := units.Convert(x, caja, pieza)
		require.NoError(t, err)
		vuelta, err := units.Convert(enPiezas, pieza, caja)
		require.NoError(t, err)
		assert.True(t, vuelta.Sub(x).Abs().LessThan(tolerance),
			"convert(convert(%s)) debe volver al origen, got %s", x, vuelta)
	}
}

func TestMultiplier_Reciproco(t *testing.T) {
	pieza := baseUnit("u-pieza", "Pieza")
	caja := subUnit("u-caja", "Caja", pieza.ID, 12)

	ab, err := units.Multiplier(caja, pieza)
	require.NoError(t, err)
	ba, err := units.Multiplier(pieza, caja)
	require.NoError(t, err)

	assert.True(t, ab.Mul(ba).Sub(decimal.NewFromInt(1)).Abs().LessThan(tolerance),
		"m(a,b) * m(b,a) debe ser 1")
}
