package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewMovementsCommand historial de movimientos de un item.
func NewMovementsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "movements <item_id>",
		Short: "Ver el historial de movimientos de stock de un item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movs, err := opts.Client().ListMovements(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts, movs, func() error {
				return writeMovementsTable(cmd.OutOrStdout(), opts.Numbers(), movs)
			})
		},
	}
}

// NewSummaryCommand totales del inventario.
func NewSummaryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Resumen del inventario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.Client().Summary(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts, s, func() error {
				return writeSummary(cmd.OutOrStdout(), opts.Numbers(), s)
			})
		},
	}
}

// NewReportCommand descarga el reporte PDF.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Descargar el reporte de inventario en PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pdf, err := opts.Client().InventoryReport(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("guardar %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reporte guardado en %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "inventario.pdf", "archivo de salida")
	return cmd
}

// NewLoginCommand obtiene un token para las operaciones de escritura.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var user, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtener un Bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := opts.Client().IssueToken(cmd.Context(), user, password)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts, tok, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "export DASHBOARD_TOKEN=%s\n", tok.AccessToken)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "usuario")
	cmd.Flags().StringVar(&password, "password", "", "contraseña")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
