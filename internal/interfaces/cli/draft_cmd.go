package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-movil/internal/application/usecase"
	"github.com/jhoicas/inventario-movil/internal/application/validation"
	"github.com/jhoicas/inventario-movil/internal/domain/draft"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
)

// newDraftCmd abre la sesión interactiva de captura de una transacción.
// Requiere sesión iniciada: el borrador es inútil si el envío va a fallar
// con 401 al final.
func newDraftCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "nueva",
		Short: "Captura interactiva de una transacción (escaneo y edición)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := deps.Auth.Session(); err != nil {
				return err
			}
			return runDraftSession(cmd.Context(), deps, os.Stdin, cmd.OutOrStdout())
		},
	}
}

// session es el estado de una captura en curso. Una única goroutine (el
// bucle de runDraftSession) es dueña del borrador: escaneos y comandos
// manuales entran por el mismo canal de líneas, así que nunca hay dos
// mutaciones concurrentes y el orden de llegada decide los merges.
type session struct {
	deps   *Deps
	draft  *usecase.DraftUseCase
	out    io.Writer
	listed []draft.Unit // última lista impresa, para direccionar por número
}

func runDraftSession(ctx context.Context, deps *Deps, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	s := &session{
		deps:  deps,
		draft: usecase.NewDraftUseCase(deps.Val, deps.Bus, deps.Log),
		out:   out,
	}
	s.printHelp()
	s.prompt()

	for line := range lines {
		quit, err := s.dispatch(ctx, line, lines)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		s.prompt()
	}
	return nil
}

func (s *session) prompt() {
	typ, _, folio, _ := s.draft.Header()
	if typ == "" {
		typ = "?"
	}
	if folio == "" {
		folio = "sin folio"
	}
	fmt.Fprintf(s.out, "[%s %s · %d líneas] > ", typ, folio, s.draft.Len())
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `Comandos:
  cabecera <ENTRY|EXIT> <emisor> <folio>   define la cabecera
  fecha <AAAA-MM-DD>                       cambia la fecha (hoy por defecto)
  scan <barcode> [serial]                  agrega vía escaneo (serial fija cantidad 1)
  agregar                                  alta manual campo por campo
  listar                                   muestra el borrador
  filtrar <texto>                          filtra por cualquier campo visible
  editar <n>                               edita la línea n del último listado
  quitar <n>                               elimina la línea n del último listado
  enviar                                   valida y envía la transacción
  cancelar                                 descarta el borrador
  salir                                    termina la sesión de captura
`)
}

// dispatch ejecuta un comando. Devuelve quit=true cuando la sesión debe
// terminar; error solo ante fallas de entrada/salida irrecuperables.
func (s *session) dispatch(ctx context.Context, line string, lines <-chan string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "ayuda", "help":
		s.printHelp()
	case "cabecera":
		s.setHeader(args)
	case "fecha":
		s.setDate(args)
	case "scan":
		s.scan(ctx, args)
	case "agregar":
		s.addManual(ctx, lines)
	case "listar":
		s.list(s.draft.Units())
	case "filtrar":
		s.list(s.draft.Filter(strings.Join(args, " ")))
	case "editar":
		s.edit(ctx, args, lines)
	case "quitar":
		s.remove(args)
	case "enviar":
		return s.send(ctx, lines), nil
	case "cancelar":
		s.draft.Cancel()
		fmt.Fprintln(s.out, "Borrador descartado")
	case "salir":
		return true, nil
	default:
		fmt.Fprintf(s.out, "Comando desconocido %q; escriba 'ayuda'\n", cmd)
	}
	return false, nil
}

func (s *session) setHeader(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.out, "Uso: cabecera <ENTRY|EXIT> <emisor> <folio>")
		return
	}
	typ := strings.ToUpper(args[0])
	folio := args[len(args)-1]
	emitter := strings.Join(args[1:len(args)-1], " ")
	s.draft.SetHeader(typ, emitter, folio)
}

func (s *session) setDate(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Uso: fecha <AAAA-MM-DD>")
		return
	}
	t, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
	if err != nil {
		fmt.Fprintf(s.out, "Fecha inválida %q\n", args[0])
		return
	}
	s.draft.SetDate(t)
}

// scan emula la lectura del escáner: busca el artículo por barcode para
// precargar la línea y la agrega con cantidad 1. Un escaneo con serial
// siempre fija cantidad 1 y factor 1; las unidades serializadas se mueven
// de a una.
func (s *session) scan(ctx context.Context, args []string) {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(s.out, "Uso: scan <barcode> [serial]")
		return
	}
	raw := draft.RawUnit{
		Barcode:    args[0],
		Multiple:   entity.MultipleUnidad,
		Factor:     "1",
		Quantity:   "1",
		Afectation: true,
	}
	if len(args) == 2 {
		raw.Serial = args[1]
	}

	art, err := s.deps.Search.FindArticleByBarcode(ctx, args[0])
	if err != nil {
		fmt.Fprintf(s.out, "No se pudo consultar el catálogo: %v\n", err)
		return
	}
	if art != nil {
		raw.ArticleID = strconv.Itoa(art.ID)
		raw.ProductID = strconv.Itoa(art.Product.ID)
		raw.Name = art.Product.Name
		raw.Description = art.Product.Description
		if raw.Serial == "" {
			raw.Multiple = art.Multiple
			raw.Factor = strconv.Itoa(art.Factor)
		}
		if art.Warehouse != nil {
			raw.Warehouse = strconv.Itoa(art.Warehouse.ID)
		}
	} else {
		fmt.Fprintf(s.out, "Barcode %s sin artículo en catálogo; complete la línea con 'agregar'\n", args[0])
		return
	}
	if raw.Warehouse == "" {
		fmt.Fprintln(s.out, "El artículo no tiene almacén asignado; use 'agregar' para indicarlo")
		return
	}

	if added, fe := s.draft.AddUnit(raw); added {
		fmt.Fprintf(s.out, "Agregado %s (%d líneas)\n", raw.Barcode, s.draft.Len())
	} else if !fe.Empty() {
		s.printFieldErrors(fe)
	}
}

// addManual captura una línea campo por campo, como el formulario de
// unidad. Enter en blanco conserva el valor propuesto.
func (s *session) addManual(ctx context.Context, lines <-chan string) {
	raw, ok := s.captureUnit(ctx, lines, draft.RawUnit{
		Multiple:   entity.MultipleUnidad,
		Factor:     "1",
		Quantity:   "1",
		Afectation: true,
	})
	if !ok {
		return
	}
	if added, fe := s.draft.AddUnit(raw); added {
		fmt.Fprintf(s.out, "Agregado %s (%d líneas)\n", raw.Barcode, s.draft.Len())
	} else if !fe.Empty() {
		s.printFieldErrors(fe)
	}
}

func (s *session) edit(ctx context.Context, args []string, lines <-chan string) {
	u, ok := s.pick(args)
	if !ok {
		return
	}
	seed := draft.RawUnit{
		Name:        u.Name,
		Description: u.Description,
		Barcode:     u.Barcode,
		Serial:      u.Serial,
		Multiple:    u.Multiple,
		Factor:      strconv.Itoa(u.Factor),
		Warehouse:   strconv.Itoa(u.Warehouse),
		Quantity:    strconv.Itoa(u.Quantity),
		Afectation:  u.Afectation,
	}
	if u.ProductID != nil {
		seed.ProductID = strconv.Itoa(*u.ProductID)
	}
	if u.ArticleID != nil {
		seed.ArticleID = strconv.Itoa(*u.ArticleID)
	}

	raw, ok := s.captureUnit(ctx, lines, seed)
	if !ok {
		return
	}
	if updated, fe := s.draft.UpdateUnit(u.ID, raw); updated {
		fmt.Fprintln(s.out, "Línea actualizada")
	} else if !fe.Empty() {
		s.printFieldErrors(fe)
	}
}

func (s *session) remove(args []string) {
	u, ok := s.pick(args)
	if !ok {
		return
	}
	if s.draft.RemoveUnit(u.ID) {
		fmt.Fprintf(s.out, "Eliminado %s (%d líneas)\n", u.Barcode, s.draft.Len())
	}
}

// pick resuelve "editar 2" / "quitar 2" contra el último listado impreso.
func (s *session) pick(args []string) (draft.Unit, bool) {
	if len(s.listed) == 0 {
		s.listed = s.draft.Units()
	}
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Indique el número de línea del último listado")
		return draft.Unit{}, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(s.listed) {
		fmt.Fprintf(s.out, "Línea inválida %q (1..%d)\n", args[0], len(s.listed))
		return draft.Unit{}, false
	}
	u := s.listed[n-1]
	// La línea pudo desaparecer por un merge posterior al listado.
	if _, ok := s.draft.Unit(u.ID); !ok {
		fmt.Fprintln(s.out, "La línea ya no existe; vuelva a listar")
		return draft.Unit{}, false
	}
	return u, true
}

func (s *session) list(units []draft.Unit) {
	s.listed = units
	if len(units) == 0 {
		fmt.Fprintln(s.out, "(sin líneas)")
		return
	}
	w := newTable(s.out)
	fmt.Fprintln(w, "N\tBARCODE\tSERIAL\tNOMBRE\tMÚLTIPLO\tFACTOR\tALMACÉN\tCANT")
	for i, u := range units {
		serial := u.Serial
		if serial == "" {
			serial = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			i+1, u.Barcode, serial, u.Name, u.Multiple, u.Factor, u.Warehouse, u.Quantity)
	}
	w.Flush()
}

// send valida y envía. Tras el éxito ofrece descargar el acuse; el
// borrador ya quedó en blanco, así que la sesión puede seguir capturando
// la siguiente transacción.
func (s *session) send(ctx context.Context, lines <-chan string) (quit bool) {
	tx, fe, err := s.deps.Submit.Submit(ctx, s.draft)
	if !fe.Empty() {
		s.printFieldErrors(fe)
		return false
	}
	if err != nil {
		// La notificación del bus ya mostró el motivo; el borrador
		// sigue intacto para corregir y reintentar.
		return false
	}
	s.listed = nil
	fmt.Fprintf(s.out, "Transacción %d creada (folio %s)\n", tx.ID, tx.FolioNumber)

	fmt.Fprint(s.out, "¿Descargar acuse PDF? [s/N]: ")
	answer, ok := <-lines
	if ok && strings.EqualFold(strings.TrimSpace(answer), "s") {
		path := fmt.Sprintf("acuse-%d.pdf", tx.ID)
		if err := s.deps.Submit.SaveAcknowledgment(ctx, tx.ID, path); err == nil {
			fmt.Fprintf(s.out, "Acuse guardado en %s\n", path)
		}
	}
	return false
}

func (s *session) printFieldErrors(fe validation.FieldErrors) {
	for field, msgs := range fe {
		for _, m := range msgs {
			fmt.Fprintf(s.out, "  %s: %s\n", field, m)
		}
	}
}

// captureUnit recorre los campos del formulario leyendo del mismo canal
// que el resto de comandos. Devuelve ok=false si la entrada se cerró o el
// usuario abortó con ".".
func (s *session) captureUnit(ctx context.Context, lines <-chan string, seed draft.RawUnit) (draft.RawUnit, bool) {
	fmt.Fprintln(s.out, "Alta de línea ('.' aborta, Enter conserva el valor entre corchetes)")

	ask := func(label, current string) (string, bool) {
		fmt.Fprintf(s.out, "  %s [%s]: ", label, current)
		line, ok := <-lines
		if !ok {
			return "", false
		}
		line = strings.TrimSpace(line)
		if line == "." {
			return "", false
		}
		if line == "" {
			return current, true
		}
		return line, true
	}

	var ok bool
	if seed.Barcode, ok = ask("Barcode", seed.Barcode); !ok {
		return seed, false
	}

	// Con el barcode definido se intenta precargar desde catálogo, igual
	// que haría el escáner.
	if seed.ArticleID == "" {
		if art, err := s.deps.Search.FindArticleByBarcode(ctx, seed.Barcode); err == nil && art != nil {
			seed.ArticleID = strconv.Itoa(art.ID)
			seed.ProductID = strconv.Itoa(art.Product.ID)
			if seed.Name == "" {
				seed.Name = art.Product.Name
			}
			if seed.Description == "" {
				seed.Description = art.Product.Description
			}
			seed.Multiple = art.Multiple
			seed.Factor = strconv.Itoa(art.Factor)
			if art.Warehouse != nil && seed.Warehouse == "" {
				seed.Warehouse = strconv.Itoa(art.Warehouse.ID)
			}
		}
	}

	// Selector de producto: "?" (o "?texto") busca en el índice; elegir un
	// producto existente precarga id, nombre y descripción, y evita que el
	// servidor cree un producto duplicado para un barcode nuevo.
	picked := false
	for {
		if seed.ProductID, ok = ask("Producto (id, '?texto' busca)", seed.ProductID); !ok {
			return seed, false
		}
		if !strings.HasPrefix(seed.ProductID, "?") {
			break
		}
		query := strings.TrimSpace(strings.TrimPrefix(seed.ProductID, "?"))
		seed.ProductID = ""
		products, err := s.deps.Search.FindProducts(ctx, query)
		if err != nil {
			fmt.Fprintf(s.out, "No se pudo buscar productos: %v\n", err)
			continue
		}
		if len(products) == 0 {
			fmt.Fprintln(s.out, "  (sin coincidencias)")
			continue
		}
		for _, p := range products {
			fmt.Fprintf(s.out, "  %d  %s — %s\n", p.ID, p.Name, p.Description)
		}
		picked = true
	}
	if id, err := strconv.Atoi(seed.ProductID); err == nil && id > 0 {
		if products, err := s.deps.Search.FindProducts(ctx, ""); err == nil {
			for _, p := range products {
				if p.ID != id {
					continue
				}
				if picked || seed.Name == "" {
					seed.Name = p.Name
				}
				if picked || seed.Description == "" {
					seed.Description = p.Description
				}
				break
			}
		}
	}

	if seed.Name, ok = ask("Nombre", seed.Name); !ok {
		return seed, false
	}
	if seed.Description, ok = ask("Descripción", seed.Description); !ok {
		return seed, false
	}
	if seed.Serial, ok = ask("Serial", seed.Serial); !ok {
		return seed, false
	}
	if seed.Serial != "" {
		// Unidad serializada: cantidad y factor quedan fijos en 1.
		seed.Multiple = entity.MultipleUnidad
		seed.Factor = "1"
		seed.Quantity = "1"
	} else {
		if seed.Multiple, ok = ask("Múltiplo (UNIDAD/PAQUETE/CAJA/OTRO)", seed.Multiple); !ok {
			return seed, false
		}
		if seed.Factor, ok = ask("Factor", seed.Factor); !ok {
			return seed, false
		}
		if seed.Quantity, ok = ask("Cantidad", seed.Quantity); !ok {
			return seed, false
		}
	}
	// "?" en el campo almacén despliega el selector con el índice cacheado.
	for {
		if seed.Warehouse, ok = ask("Almacén (id, '?' lista)", seed.Warehouse); !ok {
			return seed, false
		}
		if seed.Warehouse != "?" {
			break
		}
		seed.Warehouse = ""
		whs, err := s.deps.Search.Warehouses(ctx)
		if err != nil {
			fmt.Fprintf(s.out, "No se pudo listar almacenes: %v\n", err)
			continue
		}
		for _, wh := range whs {
			fmt.Fprintf(s.out, "  %d  %s\n", wh.ID, wh.Name)
		}
	}

	affect, ok := ask("Afecta stock (s/n)", boolSN(seed.Afectation))
	if !ok {
		return seed, false
	}
	seed.Afectation = strings.EqualFold(affect, "s")
	return seed, true
}

func boolSN(b bool) string {
	if b {
		return "s"
	}
	return "n"
}
