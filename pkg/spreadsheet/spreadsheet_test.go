package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/collably/pkg/apierrors"
)

func sampleTable() Table {
	return Table{
		Sheet:   "Brands",
		Headers: []string{"brandName", "contactEmail"},
		Rows: [][]string{
			{"Acme", "a@acme.io"},
			{"Zeta", "z@zeta.io"},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatXLSX, FormatCSV} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, format, sampleTable()))

			table, err := Read(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, sampleTable().Headers, table.Headers)
			assert.Equal(t, sampleTable().Rows, table.Rows)
			if format == FormatXLSX {
				assert.Equal(t, "Brands", table.Sheet)
			}
		})
	}
}

func TestRead_CSVRecords(t *testing.T) {
	input := "\uFEFFbrandName, contactEmail\nAcme,a@acme.io\n,\nZeta\n"

	table, err := Read(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{
		{"brandName": "Acme", "contactEmail": "a@acme.io"},
		{"brandName": "Zeta", "contactEmail": ""},
	}, table.Records())
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader("not a workbook"), FormatXLSX)
	assert.Equal(t, apierrors.KindParse, apierrors.KindOf(err))

	_, err = Read(strings.NewReader("a,\"b\nc"), FormatCSV)
	assert.Equal(t, apierrors.KindParse, apierrors.KindOf(err))

	_, err = Read(strings.NewReader("\n\n"), FormatCSV)
	assert.Equal(t, apierrors.KindParse, apierrors.KindOf(err))
}

func TestFormatFromName(t *testing.T) {
	format, err := FormatFromName("brands.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	format, err = FormatFromName("/tmp/products.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = FormatFromName("notes.txt")
	assert.True(t, apierrors.IsValidation(err))

	_, err = ParseFormat("pdf")
	assert.True(t, apierrors.IsValidation(err))
}
