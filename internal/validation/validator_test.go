package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanmiceli/dialect/internal/dataset"
	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

func yearParsers() map[string]ColumnParser {
	return map[string]ColumnParser{
		"year": ParserForUnit("year"),
	}
}

func TestValidateOK(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"country", "year", "value"},
		Rows: []dataset.Row{
			{"country": "usa", "year": "2000", "value": "3.5"},
		},
	}

	err := Validate(ds, 1, yearParsers())
	assert.NoError(t, err)
}

func TestValidateEmptyHeaders(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"", "  ", ""},
		Rows: []dataset.Row{
			{"": "1"},
		},
	}

	err := Validate(ds, 0, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeEmptyHeaders))
}

func TestValidateNoRowsSkipsTimeCheck(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"country", "year"},
	}

	// Even an out-of-range time column passes when there is no row to
	// check it against.
	assert.NoError(t, Validate(ds, 99, yearParsers()))
}

func TestValidateTimeColumnOutOfRange(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"country", "year"},
		Rows: []dataset.Row{
			{"country": "usa", "year": "2000"},
		},
	}

	for _, idx := range []int{-1, 2, 99} {
		e := Validate(ds, idx, yearParsers())
		require.Error(t, e)
		assert.True(t, apperr.IsCode(e, apperr.CodeWrongTimeColumnOrUnits))
	}
}

func TestValidateRejectsBadTimeValue(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"country", "year"},
		Rows: []dataset.Row{
			{"country": "usa", "year": "two thousand"},
		},
	}

	e := Validate(ds, 1, yearParsers())
	require.Error(t, e)
	assert.True(t, apperr.IsCode(e, apperr.CodeWrongTimeColumnOrUnits))
}

func TestValidateTrimsTimeValue(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"country", "year"},
		Rows: []dataset.Row{
			{"country": "usa", "year": " 2000 "},
		},
	}

	assert.NoError(t, Validate(ds, 1, yearParsers()))
}

func TestValidateUnregisteredColumnNotChecked(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"country", "week"},
		Rows: []dataset.Row{
			{"country": "usa", "week": "not a time"},
		},
	}

	// No parser is registered for "week", so its value is not inspected.
	assert.NoError(t, Validate(ds, 1, yearParsers()))
}

func TestParserForUnitYear(t *testing.T) {
	parser := ParserForUnit("year")
	require.NotNil(t, parser)

	assert.True(t, parser("2000"))
	assert.True(t, parser("5"))
	assert.False(t, parser(""))
	assert.False(t, parser("20000"))
	assert.False(t, parser("abcd"))
}

func TestParserForUnitDate(t *testing.T) {
	parser := ParserForUnit("date")
	require.NotNil(t, parser)

	assert.True(t, parser("2023-01-02"))
	assert.True(t, parser("01/02/2023"))
	assert.True(t, parser("20230102"))
	assert.False(t, parser("yesterday"))
}

func TestParserForUnitNumber(t *testing.T) {
	parser := ParserForUnit("number")
	require.NotNil(t, parser)

	assert.True(t, parser("3.14"))
	assert.True(t, parser("-7"))
	assert.False(t, parser("pi"))
}

func TestParserForUnitUnknown(t *testing.T) {
	assert.Nil(t, ParserForUnit("lightyear"))
	assert.Nil(t, ParserForUnit(""))
}
