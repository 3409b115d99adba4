package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
)

// NewItemsCommand agrupa las operaciones sobre items.
func NewItemsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Ver, crear, actualizar y eliminar items",
	}
	cmd.AddCommand(newItemsListCommand(opts))
	cmd.AddCommand(newItemsGetCommand(opts))
	cmd.AddCommand(newItemsAddCommand(opts))
	cmd.AddCommand(newItemsUpdateCommand(opts))
	cmd.AddCommand(newItemsDeleteCommand(opts))
	return cmd
}

func newItemsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listar todos los items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.Client().ListItems(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts, items, func() error {
				return writeItemsTable(cmd.OutOrStdout(), opts.Numbers(), items)
			})
		},
	}
}

func newItemsGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Ver un item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := opts.Client().GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderItem(cmd, opts, item)
		},
	}
}

type itemFlags struct {
	name, unit, cost, price, stock string
}

func (f *itemFlags) bind(cmd *cobra.Command, numericDefault string) {
	cmd.Flags().StringVar(&f.name, "name", "", "nombre del producto")
	cmd.Flags().StringVar(&f.unit, "unit", "", "unidad de medida (liter|meter|kilogram|cubic_meter|count)")
	cmd.Flags().StringVar(&f.cost, "cost", numericDefault, "costo promedio")
	cmd.Flags().StringVar(&f.price, "price", numericDefault, "valor de venta")
	cmd.Flags().StringVar(&f.stock, "stock", numericDefault, "cantidad en stock")
}

func newItemsAddCommand(opts *RootOptions) *cobra.Command {
	f := &itemFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Agregar un item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := parseDecimalFlag("cost", f.cost)
			if err != nil {
				return err
			}
			price, err := parseDecimalFlag("price", f.price)
			if err != nil {
				return err
			}
			stock, err := parseDecimalFlag("stock", f.stock)
			if err != nil {
				return err
			}
			item, err := opts.Client().CreateItem(cmd.Context(), dto.CreateItemRequest{
				ProductName:   f.name,
				UnitOfMeasure: f.unit,
				AverageCost:   &cost,
				SaleValue:     &price,
				StockQuantity: &stock,
			})
			if err != nil {
				return err
			}
			if opts.Format == FormatTable {
				fmt.Fprintln(cmd.OutOrStdout(), "Item agregado con éxito.")
			}
			return renderItem(cmd, opts, item)
		},
	}
	f.bind(cmd, "0")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}

func newItemsUpdateCommand(opts *RootOptions) *cobra.Command {
	f := &itemFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualizar un item (solo los flags indicados)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.patch(cmd)
			if err != nil {
				return err
			}
			if in.IsEmpty() {
				return fmt.Errorf("nada que actualizar: indique al menos uno de --name, --unit, --cost, --price, --stock")
			}
			item, err := opts.Client().UpdateItem(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			if opts.Format == FormatTable {
				fmt.Fprintln(cmd.OutOrStdout(), "Item actualizado con éxito.")
			}
			return renderItem(cmd, opts, item)
		},
	}
	f.bind(cmd, "")
	return cmd
}

// patch arma el UpdateItemRequest con los flags cambiados explícitamente.
func (f *itemFlags) patch(cmd *cobra.Command) (dto.UpdateItemRequest, error) {
	var in dto.UpdateItemRequest
	changed := cmd.Flags().Changed
	if changed("name") {
		in.ProductName = &f.name
	}
	if changed("unit") {
		in.UnitOfMeasure = &f.unit
	}
	for _, p := range []struct {
		flag string
		raw  string
		dst  **decimal.Decimal
	}{
		{"cost", f.cost, &in.AverageCost},
		{"price", f.price, &in.SaleValue},
		{"stock", f.stock, &in.StockQuantity},
	} {
		if !changed(p.flag) {
			continue
		}
		d, err := parseDecimalFlag(p.flag, p.raw)
		if err != nil {
			return in, err
		}
		*p.dst = &d
	}
	return in, nil
}

func newItemsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Eliminar un item y su historial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := opts.Client().DeleteItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.Format == FormatTable {
				fmt.Fprintln(cmd.OutOrStdout(), "Item eliminado con éxito.")
			}
			return renderItem(cmd, opts, item)
		},
	}
}

func renderItem(cmd *cobra.Command, opts *RootOptions, item *dto.ItemResponse) error {
	return render(cmd.OutOrStdout(), opts, item, func() error {
		return writeItemsTable(cmd.OutOrStdout(), opts.Numbers(), []dto.ItemResponse{*item})
	})
}

func parseDecimalFlag(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: número inválido %q", name, raw)
	}
	return d, nil
}
