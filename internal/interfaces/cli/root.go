// Package cli dashboard de terminal sobre la API de inventario. No contiene lógica de negocio:
// cada comando llama a un endpoint y renderiza la respuesta.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jhoicas/stock-tracker/internal/infrastructure/apiclient"
	"github.com/jhoicas/stock-tracker/pkg/numfmt"
)

// Formatos de salida admitidos.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// DefaultAPIURL URL de la API cuando no se configura DASHBOARD_API_URL ni --api-url.
const DefaultAPIURL = "http://localhost:8000"

// RootOptions flags globales, resueltos desde flags y variables DASHBOARD_*.
type RootOptions struct {
	APIURL string
	Token  string
	Locale string
	Format string

	nf *numfmt.Formatter
}

// Client construye el cliente HTTP con la configuración resuelta.
func (o *RootOptions) Client() *apiclient.Client {
	return apiclient.New(o.APIURL, o.Token)
}

// Numbers formateador de números según --locale.
func (o *RootOptions) Numbers() *numfmt.Formatter {
	if o.nf == nil {
		o.nf = numfmt.New(o.Locale)
	}
	return o.nf
}

// NewRootCommand crea el comando raíz del dashboard.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Dashboard de inventario",
		Long:          "Consulta y administra items de inventario y su historial de movimientos a través de la API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.APIURL = v.GetString("api-url")
			opts.Token = v.GetString("token")
			opts.Locale = v.GetString("locale")
			opts.Format = v.GetString("format")
			if opts.Format != FormatTable && opts.Format != FormatJSON {
				return fmt.Errorf("formato inválido %q: use %s o %s", opts.Format, FormatTable, FormatJSON)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("api-url", DefaultAPIURL, "URL base de la API (DASHBOARD_API_URL)")
	flags.String("token", "", "Bearer token para operaciones de escritura (DASHBOARD_TOKEN)")
	flags.String("locale", numfmt.DefaultLocale, "locale para formatear números (DASHBOARD_LOCALE)")
	flags.String("format", FormatTable, "formato de salida (table|json)")
	_ = v.BindPFlags(flags)

	cmd.AddCommand(NewItemsCommand(opts))
	cmd.AddCommand(NewMovementsCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))

	return cmd
}

// FormatError texto que el dashboard muestra para un error: "Error: <status> - <mensaje>".
func FormatError(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Error: %d - %s", apiErr.Status, apiErr.Message)
	}
	return "Error: " + err.Error()
}
