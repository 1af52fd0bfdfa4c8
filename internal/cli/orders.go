package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phenrril/tallerfix/internal/adapters/report"
	"github.com/phenrril/tallerfix/internal/domain"
	"github.com/phenrril/tallerfix/internal/usecase"
)

const flagDateLayout = "2006-01-02"

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Alta, consulta y actualización de órdenes",
	}
	cmd.AddCommand(newOrderCreateCmd())
	cmd.AddCommand(newOrderListCmd())
	cmd.AddCommand(newOrderUpdateCmd())
	cmd.AddCommand(newOrderExportCmd())
	return cmd
}

func newOrderCreateCmd() *cobra.Command {
	var name, phone, gender string
	var device, color, pin, imei string
	var amount float64
	var errorDesc, memo string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Da de alta una orden de reparación",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := domain.GenderFromCode(gender)
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			res, err := a.OrderUC.Create(cmd.Context(), usecase.CreateOrderInput{
				CustomerName: name,
				Phone:        phone,
				Gender:       g,
				Device:       device,
				DeviceColor:  color,
				Pin:          pin,
				IMEI:         imei,
				Amount:       amount,
				ErrorDesc:    errorDesc,
				Memo:         memo,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "orden %s creada el %s a las %s\n", res.OrderID, res.Date, res.Time)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nombre del cliente")
	cmd.Flags().StringVar(&phone, "phone", "", "teléfono del cliente")
	cmd.Flags().StringVar(&gender, "gender", string(domain.GenderMale), "género (M/F)")
	cmd.Flags().StringVar(&device, "device", "", "equipo")
	cmd.Flags().StringVar(&color, "color", "", "color del equipo")
	cmd.Flags().StringVar(&pin, "pin", "", "PIN del equipo")
	cmd.Flags().StringVar(&imei, "imei", "", "IMEI")
	cmd.Flags().Float64Var(&amount, "amount", 0, "importe de la reparación")
	cmd.Flags().StringVar(&errorDesc, "desc", "", "descripción de la falla")
	cmd.Flags().StringVar(&memo, "memo", "", "nota interna")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newOrderListCmd() *cobra.Command {
	var id, name, from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Consulta órdenes por ID, cliente o rango de fechas",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildFilter(id, name, from, to)
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			rows, err := a.OrderUC.Query(cmd.Context(), f)
			if err != nil {
				return err
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s  %.2f  %s  %s %s\n",
					r.OrderID, r.CustomerName, r.Phone, r.Device, r.FixAmount, r.Status, r.Date, r.Time)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d órdenes\n", len(rows))
			return nil
		},
	}
	addFilterFlags(cmd, &id, &name, &from, &to)
	return cmd
}

func newOrderUpdateCmd() *cobra.Command {
	var id, name, phone string
	var device, color, memo string
	var amount float64
	var errorDesc, status string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Actualiza una orden y los datos de su cliente",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			err = a.OrderUC.Update(cmd.Context(), usecase.UpdateOrderInput{
				OrderID:      id,
				CustomerName: name,
				Phone:        phone,
				Amount:       amount,
				ErrorDesc:    errorDesc,
				Device:       device,
				DeviceColor:  color,
				Memo:         memo,
				Status:       domain.FixStatus(status),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "orden %s actualizada\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "ID de la orden")
	cmd.Flags().StringVar(&name, "name", "", "nombre del cliente")
	cmd.Flags().StringVar(&phone, "phone", "", "teléfono del cliente")
	cmd.Flags().Float64Var(&amount, "amount", 0, "importe de la reparación")
	cmd.Flags().StringVar(&errorDesc, "desc", "", "descripción de la falla")
	cmd.Flags().StringVar(&device, "device", "", "equipo")
	cmd.Flags().StringVar(&color, "color", "", "color del equipo")
	cmd.Flags().StringVar(&memo, "memo", "", "nota interna")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusInRepair), "código de estado (01..05)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newOrderExportCmd() *cobra.Command {
	var id, name, from, to, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta el resultado de la consulta a un xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildFilter(id, name, from, to)
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			rows, err := a.OrderUC.Query(cmd.Context(), f)
			if err != nil {
				return err
			}
			path, err := report.WriteOrders(out, rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d órdenes exportadas a %s\n", len(rows), path)
			return nil
		},
	}
	addFilterFlags(cmd, &id, &name, &from, &to)
	cmd.Flags().StringVar(&out, "out", "", "archivo destino (default ordenes-<id>.xlsx)")
	return cmd
}

func addFilterFlags(cmd *cobra.Command, id, name, from, to *string) {
	cmd.Flags().StringVar(id, "id", "", "ID de orden exacto")
	cmd.Flags().StringVar(name, "name", "", "subcadena del nombre del cliente")
	cmd.Flags().StringVar(from, "from", "", "fecha desde (2006-01-02)")
	cmd.Flags().StringVar(to, "to", "", "fecha hasta (2006-01-02)")
}

func buildFilter(id, name, from, to string) (domain.OrderFilter, error) {
	f := domain.OrderFilter{OrderID: id, CustomerName: name}
	if from != "" {
		t, err := time.ParseInLocation(flagDateLayout, from, time.Local)
		if err != nil {
			return f, fmt.Errorf("fecha desde inválida: %w", err)
		}
		f.From = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(flagDateLayout, to, time.Local)
		if err != nil {
			return f, fmt.Errorf("fecha hasta inválida: %w", err)
		}
		// hasta el fin del día indicado
		end := t.AddDate(0, 0, 1).Add(-time.Second)
		f.To = &end
	}
	return f, nil
}
