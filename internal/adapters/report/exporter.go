package report

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/tallerfix/internal/usecase"
)

const sheetName = "Órdenes"

var headers = []string{
	"Orden", "Cliente", "Teléfono", "Género", "Equipo", "IMEI", "Color",
	"PIN", "Importe", "Falla", "Nota", "Estado", "Fecha", "Hora", "Actualizado",
}

// WriteOrders vuelca el listado a un xlsx y devuelve la ruta escrita.
// Con path vacío genera un nombre único en el directorio actual.
func WriteOrders(path string, rows []usecase.OrderSummary) (string, error) {
	if path == "" {
		path = fmt.Sprintf("ordenes-%s.xlsx", uuid.New().String()[:8])
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", err
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", err
		}
	}

	for i, r := range rows {
		values := []interface{}{
			r.OrderID, r.CustomerName, r.Phone, r.Gender, r.Device, r.IMEI,
			r.Color, r.DevicePin, r.FixAmount, r.ErrorDesc, r.Memo, r.Status,
			r.Date, r.Time, r.UpdateTime,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
