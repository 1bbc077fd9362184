// seed carga usuarios y empresas de demostración en la base de datos configurada.
//
// Uso: go run ./cmd/seed [ruta/fixture.yaml]
// Sin argumento usa el fixture embebido (internal/application/seed/demo.yaml).
// Es idempotente: los emails y NIF existentes se omiten.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jhoicas/espacio-datos-api/internal/application/seed"
	"github.com/jhoicas/espacio-datos-api/internal/bootstrap"
	"github.com/jhoicas/espacio-datos-api/pkg/config"
	"github.com/jhoicas/espacio-datos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver == config.StoreDriverMemory {
		fmt.Fprintln(os.Stderr, "STORE_DRIVER=memory: el seed no persistiría nada; usa SEED_DEMO=true en la API")
		os.Exit(1)
	}

	path := cfg.App.SeedFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	fixture, err := seed.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fixture: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})
	ctx := context.Background()
	storage, err := bootstrap.PostgresStorage(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Base de datos: %v\n", err)
		os.Exit(1)
	}
	defer storage.Close()

	container := bootstrap.NewContainer(cfg, storage, log.Zerolog())
	res, err := container.NewSeeder(storage, log.Zerolog()).Apply(ctx, fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(out))
}
