package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
)

func pageFlags(cmd *cobra.Command, p *dto.ListParams) {
	cmd.Flags().IntVar(&p.Limit, "limit", 20, "cantidad de filas por página")
	cmd.Flags().IntVar(&p.Offset, "offset", 0, "desplazamiento de la página")
}

func newWarehousesCmd(deps *Deps) *cobra.Command {
	var params dto.ListParams

	cmd := &cobra.Command{
		Use:   "almacenes",
		Short: "Lista los almacenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			whs, err := deps.Catalog.Warehouses(cmd.Context(), params)
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNOMBRE")
			for _, wh := range whs {
				fmt.Fprintf(w, "%d\t%s\n", wh.ID, wh.Name)
			}
			return w.Flush()
		},
	}
	pageFlags(cmd, &params)

	crear := &cobra.Command{
		Use:   "crear <nombre>",
		Short: "Crea un almacén",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.Catalog.CreateWarehouse(cmd.Context(), args[0])
		},
	}

	renombrar := &cobra.Command{
		Use:   "renombrar <id> <nombre>",
		Short: "Cambia el nombre de un almacén",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id inválido: %q", args[0])
			}
			return deps.Catalog.RenameWarehouse(cmd.Context(), id, args[1])
		},
	}

	cmd.AddCommand(crear, renombrar)
	return cmd
}

func newArticlesCmd(deps *Deps) *cobra.Command {
	var params dto.ListParams

	cmd := &cobra.Command{
		Use:   "articulos",
		Short: "Lista los artículos del catálogo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			arts, err := deps.Catalog.Articles(cmd.Context(), params)
			if err != nil {
				return err
			}
			renderArticles(cmd.OutOrStdout(), arts)
			return nil
		},
	}
	pageFlags(cmd, &params)

	var in dto.CreateArticleRequest
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Crea un artículo para un producto existente",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return deps.Catalog.CreateArticle(cmd.Context(), in)
		},
	}
	crear.Flags().IntVar(&in.ProductID, "producto", 0, "id del producto")
	crear.Flags().StringVar(&in.Barcode, "barcode", "", "código de barras")
	crear.Flags().StringVar(&in.Multiple, "multiplo", entity.MultipleUnidad, "UNIDAD, PAQUETE, CAJA u OTRO")
	crear.Flags().IntVar(&in.Factor, "factor", 1, "unidades por múltiplo")
	crear.Flags().IntVar(&in.Warehouse, "almacen", 0, "id del almacén")
	for _, f := range []string{"producto", "barcode", "almacen"} {
		_ = crear.MarkFlagRequired(f)
	}

	editar := newArticleEditCmd(deps)
	cmd.AddCommand(crear, editar)
	return cmd
}

// newArticleEditCmd arma el PATCH parcial: solo los flags que el usuario
// pasó viajan en el cuerpo.
func newArticleEditCmd(deps *Deps) *cobra.Command {
	var (
		barcode   string
		multiple  string
		factor    int
		warehouse int
	)

	cmd := &cobra.Command{
		Use:   "editar <id>",
		Short: "Edita un artículo existente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id inválido: %q", args[0])
			}
			in := dto.UpdateArticleRequest{ID: id}
			if cmd.Flags().Changed("barcode") {
				in.Barcode = &barcode
			}
			if cmd.Flags().Changed("multiplo") {
				in.Multiple = &multiple
			}
			if cmd.Flags().Changed("factor") {
				in.Factor = &factor
			}
			if cmd.Flags().Changed("almacen") {
				in.Warehouse = &warehouse
			}
			return deps.Catalog.UpdateArticle(cmd.Context(), in)
		},
	}
	cmd.Flags().StringVar(&barcode, "barcode", "", "nuevo código de barras")
	cmd.Flags().StringVar(&multiple, "multiplo", "", "nuevo múltiplo")
	cmd.Flags().IntVar(&factor, "factor", 0, "nuevo factor")
	cmd.Flags().IntVar(&warehouse, "almacen", 0, "nuevo almacén")
	return cmd
}

// newProductsCmd es el selector de productos: sin argumento lista el
// índice completo, con argumento filtra por subcadena como el buscador
// del formulario.
func newProductsCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "productos [busqueda]",
		Short: "Busca productos por nombre o descripción",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			products, err := deps.Search.FindProducts(cmd.Context(), query)
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tPRODUCTO\tDESCRIPCIÓN")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, p.Description)
			}
			return w.Flush()
		},
	}
}

func newInventoryCmd(deps *Deps) *cobra.Command {
	var params dto.ListParams

	cmd := &cobra.Command{
		Use:   "inventario [producto-id]",
		Short: "Muestra existencias: general, o los artículos de un producto",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				products, err := deps.Catalog.InventoryProducts(cmd.Context(), params)
				if err != nil {
					return err
				}
				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "ID\tPRODUCTO\tDESCRIPCIÓN")
				for _, p := range products {
					fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, p.Description)
				}
				return w.Flush()
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("producto-id inválido: %q", args[0])
			}
			arts, err := deps.Catalog.Inventory(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderArticles(cmd.OutOrStdout(), arts)
			return nil
		},
	}
	pageFlags(cmd, &params)
	return cmd
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func renderArticles(out io.Writer, arts []entity.Article) {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tBARCODE\tPRODUCTO\tMÚLTIPLO\tFACTOR\tALMACÉN")
	for _, a := range arts {
		warehouse := "-"
		if a.Warehouse != nil {
			warehouse = a.Warehouse.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			a.ID, a.Barcode, a.Product.Name, a.Multiple, a.Factor, warehouse)
	}
	w.Flush()
}
