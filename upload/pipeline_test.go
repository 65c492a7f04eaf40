package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
	"github.com/uhppoted/uhppoted-app-xlsx/xlsx"
	"github.com/uhppoted/uhppoted-app-xlsx/xlsx/xlsxtest"
)

// workbook creates a modern workbook with the rows in the first worksheet.
func workbook(t *testing.T, path string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	require.NoError(t, f.SaveAs(path))
}

// converter returns a Converter that 'converts' a legacy workbook by writing
// the rows to a modern workbook.
func converter(t *testing.T, rows [][]any) xlsx.Converter {
	return xlsx.ConverterFunc(func(ctx context.Context, src, dst string) error {
		workbook(t, dst, rows)
		return nil
	})
}

func destination() *gsheets.Fake {
	fake := gsheets.NewFake()
	fake.AddTab("Quarterly", "Summary", [][]any{{"stale"}})

	return fake
}

func TestUploadBoundsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.xlsx")

	rows := make([][]any, 1200)
	for i := range rows {
		rows[i] = make([]any, 10)
		for j := range rows[i] {
			rows[i][j] = fmt.Sprintf("R%vC%v", i+1, j+1)
		}
	}

	workbook(t, path, rows)

	fake := destination()
	pipeline := Pipeline{Service: fake}

	summary, err := pipeline.Upload(context.Background(), Args{File: path, Spreadsheet: "Quarterly", Worksheet: "Summary"})
	require.NoError(t, err)

	contents := fake.Contents("Quarterly", "Summary")
	require.Len(t, contents, 1086)

	for _, row := range contents {
		assert.Len(t, row, 10)
	}

	assert.Equal(t, "R1086C10", contents[1085][9])
	assert.Equal(t, 1086, summary.Rows)
	assert.Equal(t, 10, summary.Columns)

	_, err = os.Stat(path)
	assert.NoError(t, err, "operator supplied file should not be deleted")
}

func TestUploadDropsEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.xlsx")

	workbook(t, path, [][]any{
		{"a", "b"},
		{"", ""},
		{"c", "d"},
	})

	fake := destination()
	pipeline := Pipeline{Service: fake}

	_, err := pipeline.Upload(context.Background(), Args{File: path, Spreadsheet: "Quarterly", Worksheet: "Summary"})
	require.NoError(t, err)

	expected := [][]any{
		{"a", "b"},
		{"c", "d"},
	}

	assert.Equal(t, expected, fake.Contents("Quarterly", "Summary"))
}

func TestUploadWithLegacyWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.xls")
	intermediate := filepath.Join(dir, "legacy.xlsx")

	require.NoError(t, os.WriteFile(path, []byte("legacy"), 0660))

	fake := destination()
	pipeline := Pipeline{
		Service:   fake,
		Converter: converter(t, [][]any{{"Region", "Units"}, {"North", 12}}),
	}

	summary, err := pipeline.Upload(context.Background(), Args{File: path, Spreadsheet: "Quarterly", Worksheet: "Summary"})
	require.NoError(t, err)

	assert.Equal(t, intermediate, summary.Source)
	assert.Equal(t, [][]any{{"Region", "Units"}, {"North", int64(12)}}, fake.Contents("Quarterly", "Summary"))

	_, err = os.Stat(intermediate)
	assert.True(t, errors.Is(err, os.ErrNotExist), "intermediate file should be deleted")

	_, err = os.Stat(path)
	assert.NoError(t, err, "legacy source should not be deleted")
}

func TestUploadWithDirectLegacyReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.xls")

	w := xlsxtest.Workbook{}
	w.Sheet("Sheet1",
		w.Shared(0, 0, "Region"),
		w.Shared(0, 1, "Units"),
		w.Shared(0, 2, "Shipped"),
		w.Shared(0, 3, "Active"),
		w.Shared(2, 0, "North"),
		xlsxtest.RK(2, 1, xlsxtest.IntRK(12)),
		xlsxtest.Number(2, 2, 45292),
		xlsxtest.Bool(2, 3, true))

	require.NoError(t, w.Save(path))

	fake := destination()
	pipeline := Pipeline{
		Service: fake,
		Converter: xlsx.ConverterFunc(func(ctx context.Context, src, dst string) error {
			return fmt.Errorf("unexpected conversion of %v", src)
		}),
		Direct: true,
	}

	summary, err := pipeline.Upload(context.Background(), Args{File: path, Spreadsheet: "Quarterly", Worksheet: "Summary"})
	require.NoError(t, err)

	expected := [][]any{
		{"Region", "Units", "Shipped", "Active"},
		{"North", int64(12), int64(45292), true},
	}

	assert.Equal(t, path, summary.Source)
	assert.Equal(t, expected, fake.Contents("Quarterly", "Summary"))

	_, err = os.Stat(path)
	assert.NoError(t, err, "legacy source should not be deleted")
}

func TestUploadWithLegacyWorkbookAndDestinationError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.xls")
	intermediate := filepath.Join(dir, "legacy.xlsx")

	require.NoError(t, os.WriteFile(path, []byte("legacy"), 0660))

	pipeline := Pipeline{
		Service:   gsheets.NewFake(),
		Converter: converter(t, [][]any{{"a"}}),
	}

	_, err := pipeline.Upload(context.Background(), Args{File: path, Spreadsheet: "Quarterly", Worksheet: "Summary"})
	require.Error(t, err)

	_, err = os.Stat(intermediate)
	assert.True(t, errors.Is(err, os.ErrNotExist), "intermediate file should be deleted after a replace attempt")
}

func TestUploadWithConversionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.xls")
	require.NoError(t, os.WriteFile(path, []byte("legacy"), 0660))

	fake := destination()
	pipeline := Pipeline{
		Service: fake,
		Converter: xlsx.ConverterFunc(func(ctx context.Context, src, dst string) error {
			return errors.New("soffice: not found")
		}),
	}

	_, err := pipeline.Upload(context.Background(), Args{File: path, Spreadsheet: "Quarterly", Worksheet: "Summary"})

	var conversion *xlsx.ConversionError
	require.ErrorAs(t, err, &conversion)
	assert.Empty(t, fake.Calls)
}

func TestUploadWithMissingSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	workbook(t, path, [][]any{{"a"}})

	fake := destination()
	pipeline := Pipeline{Service: fake}

	_, err := pipeline.Upload(context.Background(), Args{File: path, Spreadsheet: "Annual", Worksheet: "Summary"})

	var destination *gsheets.DestinationError
	require.ErrorAs(t, err, &destination)
	assert.Equal(t, gsheets.NotFound, destination.Kind)
	assert.False(t, fake.Called("clear"))
	assert.False(t, fake.Called("write"))
}

func TestUploadWithMissingFile(t *testing.T) {
	fake := destination()
	pipeline := Pipeline{Service: fake}

	_, err := pipeline.Upload(context.Background(), Args{File: filepath.Join(t.TempDir(), "missing.xlsx"), Spreadsheet: "Quarterly", Worksheet: "Summary"})

	assert.ErrorIs(t, err, xlsx.ErrFileNotFound)
	assert.Empty(t, fake.Calls)
}

func TestUploadWithDelimitedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ACL.tsv")
	require.NoError(t, os.WriteFile(path, []byte("Card Number\tFrom\n6001001\t2020-01-01\n\t\n"), 0660))

	fake := destination()
	pipeline := Pipeline{Service: fake}

	_, err := pipeline.Upload(context.Background(), Args{File: path, Spreadsheet: "Quarterly", Worksheet: "Summary"})
	require.NoError(t, err)

	assert.Equal(t, [][]any{{"Card Number", "From"}, {"6001001", "2020-01-01"}}, fake.Contents("Quarterly", "Summary"))
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	modern := filepath.Join(dir, "report.xlsx")

	require.NoError(t, os.WriteFile(modern, []byte("xlsx"), 0660))

	cleanup(modern, modern)

	_, err := os.Stat(modern)
	assert.NoError(t, err, "operator supplied file should not be deleted")

	cleanup(filepath.Join(dir, "report.xls"), filepath.Join(dir, "report.xls"))
	cleanup(filepath.Join(dir, "report.xls"), "")

	cleanup(filepath.Join(dir, "report.xls"), modern)

	_, err = os.Stat(modern)
	assert.True(t, errors.Is(err, os.ErrNotExist), "intermediate file should be deleted")
}
