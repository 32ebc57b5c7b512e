package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/popingalex/flowgram.ai-sub002/internal/config"
	"github.com/popingalex/flowgram.ai-sub002/internal/gen"
	"github.com/popingalex/flowgram.ai-sub002/internal/maps"
	"github.com/popingalex/flowgram.ai-sub002/internal/match"
	"github.com/popingalex/flowgram.ai-sub002/internal/pg"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed/schema"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const defaultCacheSize = 1024

type Settings struct {
	WorkingDir string

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Cache is used to parse the type-strings of the config. A private
	// cache is created when nil.
	Cache *typed.Cache
}

// namedType is a type collected from one of the sources of the config.
type namedType struct {
	gen.NamedType

	// Table that must populate the type, if any.
	Table string
}

func Run(s Settings) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cache := s.Cache
	if cache == nil {
		var err error
		if cache, err = typed.NewCache(defaultCacheSize, nil); err != nil {
			return err
		}
	}

	configPath := filepath.Join(s.WorkingDir, config.FileName)
	logger.Debug("reading config", zap.String("path", configPath))

	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}

	db, err := migrate(s, logger, cfg)
	if err != nil {
		return err
	}

	configTypes, err := readConfigTypes(logger, cache, cfg)
	if err != nil {
		return err
	}

	if err := checkTables(db, configTypes); err != nil {
		return err
	}

	openApiTypes, err := readOpenApiTypes(s, logger, cfg)
	if err != nil {
		return err
	}

	types := make([]gen.NamedType, 0)
	for _, t := range configTypes {
		types = append(types, t.NamedType)
	}

	types = append(types, openApiTypes...)
	types = append(types, tableTypes(db)...)

	if err := gen.GenerateCode(*cfg, s.WorkingDir, types); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	logger.Info(
		"generated code",
		zap.String("path", path.Join(s.WorkingDir, cfg.Package.Path)+".go"),
		zap.Int("types", len(types)),
		zap.Int("cachedTypes", cache.Len()),
	)

	if cfg.Schemas != nil {
		if err := writeSchemas(s, logger, *cfg.Schemas, types); err != nil {
			return err
		}
	}

	return nil
}

func migrate(s Settings, logger *zap.Logger, cfg *config.Config) (*pg.DB, error) {
	db := pg.NewDB()

	for _, m := range cfg.Migrations {
		files, err := glob(s, m.Path)
		if err != nil {
			return nil, fmt.Errorf(`failed to resolve migration files using glob "%s": %w`, m.Path, err)
		}

		for _, mf := range files {
			logger.Debug("applying migration", zap.String("path", mf))

			if err := pg.MigrateFile(db, mf); err != nil {
				return nil, err
			}
		}
	}

	return db, nil
}

// readConfigTypes parses the type-strings of `cfg.Types`. Problems the
// lenient parser skips over are logged, and returned as errors in strict
// mode.
func readConfigTypes(logger *zap.Logger, cache *typed.Cache, cfg *config.Config) ([]namedType, error) {
	types := make([]namedType, 0, len(cfg.Types))
	var errs error

	for _, ct := range cfg.Types {
		if _, err := typed.ParseStrict(ct.Type); err != nil {
			for _, e := range typed.Errors(err) {
				logger.Warn("lenient type", zap.String("type", ct.Name), zap.Error(e))
			}

			if cfg.Strict {
				errs = multierr.Append(errs, fmt.Errorf(`type "%s": %w`, ct.Name, err))
			}
		}

		types = append(types, namedType{
			NamedType: gen.NamedType{
				Name:        ct.Name,
				Description: ct.Description,
				Type:        cache.Parse(ct.Type),
			},
			Table: ct.Table,
		})
	}

	if errs != nil {
		return nil, errs
	}

	return types, nil
}

// checkTables checks that every type with a table is populated by it.
func checkTables(db *pg.DB, types []namedType) error {
	var errs error

	for _, t := range types {
		if len(t.Table) == 0 {
			continue
		}

		table := db.Table(t.Table)
		if table == nil {
			errs = multierr.Append(errs, fmt.Errorf(`type "%s": unknown table "%s"`, t.Name, t.Table))
			continue
		}

		if err := match.DoesTablePopulateType(*table, t.Type); err != nil {
			errs = multierr.Append(errs, fmt.Errorf(`type "%s" is not populated by table "%s": %w`, t.Name, t.Table, err))
		}
	}

	return errs
}

// readOpenApiTypes reads the component schemas of the OpenAPI files of the
// config. Files are visited in path order, models in declaration order.
func readOpenApiTypes(s Settings, logger *zap.Logger, cfg *config.Config) ([]gen.NamedType, error) {
	paths := make([]string, 0)

	for _, c := range cfg.OpenApi {
		files, err := glob(s, c.Path)
		if err != nil {
			return nil, fmt.Errorf(`failed to resolve OpenAPI files using glob "%s": %w`, c.Path, err)
		}

		paths = append(paths, files...)
	}

	if len(paths) == 0 {
		return nil, nil
	}

	models, err := schema.ReadOpenApiModels(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI models: %w", err)
	}

	types := make([]gen.NamedType, 0)
	for _, filePath := range maps.Keys(models) {
		logger.Debug("read OpenAPI models", zap.String("path", filePath), zap.Int("models", len(models[filePath])))

		for _, m := range models[filePath] {
			types = append(types, gen.NamedType{
				Name:        m.Name,
				Description: m.Description,
				Type:        m.Type,
			})
		}
	}

	return types, nil
}

// tableTypes returns a row type for each table, in table name order.
func tableTypes(db *pg.DB) []gen.NamedType {
	tables := db.Types()
	types := make([]gen.NamedType, 0, len(tables))

	for _, name := range maps.Keys(tables) {
		types = append(types, gen.NamedType{
			Name:        name + "Row",
			Description: fmt.Sprintf("A row of table %s.", name),
			Type:        tables[name],
		})
	}

	return types
}

func writeSchemas(s Settings, logger *zap.Logger, cfg config.Schemas, types []gen.NamedType) error {
	descriptors := make(map[string]*schema.Descriptor, len(types))

	for _, t := range types {
		descriptors[t.Name] = schema.ToSchema(t.Type, schema.WithDescription(t.Description))
	}

	data, err := json.MarshalIndent(descriptors, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schemas: %w", err)
	}

	filePath := filepath.Join(s.WorkingDir, cfg.Path)
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf(`failed to write schemas to "%s": %w`, filePath, err)
	}

	logger.Info("wrote schemas", zap.String("path", filePath), zap.Int("schemas", len(descriptors)))
	return nil
}

func glob(s Settings, pattern string) ([]string, error) {
	return filepath.Glob(filepath.Join(s.WorkingDir, pattern))
}
