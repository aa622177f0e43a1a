// Copyright (c) 2026 Knihovna. All rights reserved.

// Command import loads a semicolon-separated CSV book catalog into MongoDB.
//
// Usage:
//
//	import -file knihy.csv [-dry-run]
//
// Authors referenced by the CSV are resolved against the existing author
// collection and created when missing. A dry run parses and resolves the
// whole file without writing anything.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/knihovna/api/internal/catalog/author"
	"github.com/knihovna/api/internal/catalog/book"
	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/importer"
	"github.com/knihovna/api/internal/platform/config"
	"github.com/knihovna/api/internal/platform/constants"
	mongostore "github.com/knihovna/api/internal/platform/mongo"
)

func main() {
	var (
		file   = flag.String("file", "", "path to the semicolon-separated CSV export")
		dryRun = flag.Bool("dry-run", false, "parse and resolve without writing to the database")
	)
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName+"-import"))

	if *file == "" {
		log.Error("missing -file argument")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	mongoClient, database, err := mongostore.NewClient(ctx, cfg.MongoURL, cfg.MongoDatabase, log)
	must(log, err, "connect to mongodb")
	defer func() {
		if cerr := mongoClient.Disconnect(context.Background()); cerr != nil {
			log.Error("mongodb close error", slog.Any("error", cerr))
		}
	}()

	registry := query.NewRegistry(log,
		constants.CollectionBooks,
		constants.CollectionAuthors,
	)

	books := book.NewMongoRepository(database, registry, log)
	authors := author.NewMongoRepository(database, log)

	input, err := os.Open(*file)
	must(log, err, "open import file")
	defer input.Close()

	summary, err := importer.New(books, authors, log, *dryRun).Run(ctx, input)
	must(log, err, "import catalog")

	log.Info("import_finished",
		slog.Bool("dry_run", *dryRun),
		slog.Int("rows", summary.Rows),
		slog.Int("imported", summary.Imported),
		slog.Int("skipped", summary.Skipped),
		slog.Int("authors_created", summary.AuthorsCreated),
	)
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("import failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
