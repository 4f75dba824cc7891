package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SAP-F-2025/onlinecourse-service/internal/config"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/SAP-F-2025/onlinecourse-service/internal/utils"
	"github.com/SAP-F-2025/onlinecourse-service/internal/validator"
	"github.com/SAP-F-2025/onlinecourse-service/pkg"
)

const usage = `Usage: importer [-migrate] FILE...

Imports each course catalog file (.xlsx, .yaml or .yml) into the database.
`

func main() {
	migrate := flag.Bool("migrate", false, "run schema migrations before importing")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.AutoMigrate = *migrate

	logger := utils.NewLogger(cfg.Environment)
	if err := run(context.Background(), cfg, logger, flag.Args()); err != nil {
		logger.LogError(err, "Import failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger utils.Logger, files []string) error {
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	slogger := utils.ToSlogLogger(logger)
	repo := postgres.NewRepository(db)
	v := validator.New()
	importer := services.NewImportExportService(repo, services.NewExamService(repo, nil, slogger, v, cfg.PassingPercent), slogger, v)

	for _, path := range files {
		if err := importFile(ctx, importer, path); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		logger.Info("Imported course file", "file", path)
	}
	return nil
}

func importFile(ctx context.Context, importer services.ImportExportService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	course, err := importer.ImportCourseFromFile(ctx, f, path)
	if err != nil {
		return err
	}
	fmt.Printf("imported course %d %q: %d lessons, %d questions\n",
		course.ID, course.Name, len(course.Lessons), len(course.Questions))
	return nil
}
