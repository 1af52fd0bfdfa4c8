package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/tallerfix/internal/adapters/report"
	"github.com/phenrril/tallerfix/internal/usecase"
)

func sampleRows() []usecase.OrderSummary {
	return []usecase.OrderSummary{
		{
			OrderID:      "202401150001",
			CustomerName: "Alice",
			Phone:        "555-0100",
			Gender:       "F",
			Device:       "PhoneX",
			FixAmount:    120.00,
			Status:       "en reparación",
			Date:         "2024/01/15",
			Time:         "10:30",
			UpdateTime:   "2024/01/15 10:30:00",
		},
		{
			OrderID:      "202401150002",
			CustomerName: "Bruno",
			Phone:        "555-0200",
			Gender:       "M",
			Device:       "TabletY",
			FixAmount:    80.50,
			Status:       "reparado",
			Date:         "2024/01/15",
			Time:         "11:00",
			UpdateTime:   "2024/01/15 11:45:12",
		},
	}
}

func TestWriteOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordenes.xlsx")

	got, err := report.WriteOrders(path, sampleRows())
	require.NoError(t, err)
	assert.Equal(t, path, got)

	f, err := excelize.OpenFile(got)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Órdenes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Orden", rows[0][0])
	assert.Equal(t, "Cliente", rows[0][1])
	assert.Equal(t, "202401150001", rows[1][0])
	assert.Equal(t, "Alice", rows[1][1])
	assert.Equal(t, "202401150002", rows[2][0])
}

func TestWriteOrders_DefaultName(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	got, err := report.WriteOrders("", sampleRows())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "ordenes-"))
	_, err = os.Stat(got)
	assert.NoError(t, err)
}
