// seed_customers carga clientes desde un CSV pasando por las mismas validaciones que la UI.
//
// Uso: go run ./cmd/seed_customers [-latin1] [ruta/clientes.csv]
// Por defecto lee customers.csv del directorio actual. El CSV debe traer cabecera:
// firstName,lastName,dateOfBirth,phoneNumber,email,bankAccountNumber (en cualquier orden).
// Sale con código 1 si alguna fila fue rechazada.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appcustomer "github.com/jhoicas/customer-registry/internal/application/customer"
	"github.com/jhoicas/customer-registry/internal/domain/entity"
	"github.com/jhoicas/customer-registry/internal/infrastructure/kvstore"
	"github.com/jhoicas/customer-registry/internal/infrastructure/storage"
	"github.com/jhoicas/customer-registry/pkg/config"
	"github.com/jhoicas/customer-registry/pkg/logger"
)

var columns = []string{"firstName", "lastName", "dateOfBirth", "phoneNumber", "email", "bankAccountNumber"}

// csvRow una fila del archivo con su número de línea para los logs.
type csvRow struct {
	line     int
	customer entity.Customer
}

func main() {
	os.Exit(run())
}

func run() int {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1 en lugar de UTF-8")
	flag.Parse()

	csvPath := "customers.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("seed_customers")

	f, err := os.Open(csvPath)
	if err != nil {
		log.Error().Err(err).Str("file", csvPath).Msg("abrir CSV")
		return 1
	}
	defer f.Close()

	var input io.Reader = f
	if *latin1 {
		input = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readCustomers(input)
	if err != nil {
		log.Error().Err(err).Str("file", csvPath).Msg("leer CSV")
		return 1
	}

	ctx := context.Background()
	kv, closeStore, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento")
		return 1
	}
	defer closeStore()

	state := appcustomer.NewState(storage.NewCustomerRepository(kv, storage.WithKey(cfg.Storage.Key)), log)
	if err := state.Load(ctx); err != nil {
		log.Error().Err(err).Msg("cargar clientes existentes")
		return 1
	}

	created, failed := seed(ctx, state, rows, log)
	log.Info().Int("created", created).Int("failed", failed).Str("file", csvPath).Msg("carga terminada")
	if failed > 0 {
		return 1
	}
	return 0
}

// seed crea cada fila a través del estado; las rechazadas se registran con el mensaje de la UI.
func seed(ctx context.Context, state *appcustomer.State, rows []csvRow, log *logger.Logger) (created, failed int) {
	for _, r := range rows {
		c, err := state.Create(ctx, r.customer)
		if err != nil {
			failed++
			log.Warn().Int("line", r.line).Str("email", r.customer.Email).Str("reason", err.Error()).Msg("fila rechazada")
			continue
		}
		created++
		log.Debug().Int("line", r.line).Str("customer_id", c.ID).Msg("fila cargada")
	}
	return created, failed
}

// readCustomers lee el CSV ubicando las columnas por nombre de cabecera.
func readCustomers(r io.Reader) ([]csvRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("CSV vacío")
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q en la cabecera", col)
		}
	}
	cr.FieldsPerRecord = len(header)

	var rows []csvRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila: %w", err)
		}
		line, _ := cr.FieldPos(0)
		get := func(col string) string { return strings.TrimSpace(record[index[col]]) }
		rows = append(rows, csvRow{
			line: line,
			customer: entity.Customer{
				FirstName:         get("firstName"),
				LastName:          get("lastName"),
				DateOfBirth:       get("dateOfBirth"),
				PhoneNumber:       get("phoneNumber"),
				Email:             get("email"),
				BankAccountNumber: get("bankAccountNumber"),
			},
		})
	}
	return rows, nil
}
