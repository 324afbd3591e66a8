package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTransactionsCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transacciones",
		Short: "Lista las transacciones registradas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs, err := deps.Search.Transactions(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tTIPO\tFOLIO\tEMISOR\tFECHA\tLÍNEAS")
			for _, tx := range txs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
					tx.ID, tx.TransactionType, tx.FolioNumber,
					tx.PersonName, tx.TransactionDate, len(tx.Details))
			}
			return w.Flush()
		},
	}

	ver := &cobra.Command{
		Use:   "ver <id>",
		Short: "Muestra el detalle de una transacción",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id inválido: %q", args[0])
			}
			tx, err := deps.Submit.Transaction(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transacción %d (%s)\n", tx.ID, tx.TransactionType)
			fmt.Fprintf(out, "Folio: %s  Emisor: %s  Fecha: %s\n",
				tx.FolioNumber, tx.PersonName, tx.TransactionDate)

			w := newTable(out)
			fmt.Fprintln(w, "BARCODE\tPRODUCTO\tSERIAL\tCANT\tPRECIO")
			for _, d := range tx.Details {
				serial := "-"
				if d.SerialNumber != nil && *d.SerialNumber != "" {
					serial = *d.SerialNumber
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					d.Article.Barcode, d.Article.Product.Name,
					serial, d.Quantity, d.Price.StringFixed(2))
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(ver)
	return cmd
}

// newReportCmd descarga el acuse PDF de una transacción ya creada.
func newReportCmd(deps *Deps) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "acuse <transaccion-id>",
		Short: "Descarga el acuse PDF de una transacción",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("transaccion-id inválido: %q", args[0])
			}
			if out == "" {
				out = fmt.Sprintf("acuse-%d.pdf", id)
			}
			if err := deps.Submit.SaveAcknowledgment(cmd.Context(), id, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Acuse guardado en %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "ruta de salida del PDF")
	return cmd
}
