package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"

	"github.com/syssam/veloxconv/compiler/gen"
	"github.com/syssam/veloxconv/compiler/load"
	"github.com/syssam/veloxconv/contrib/graphql"
	"github.com/syssam/veloxconv/dialect/sql"
)

// options holds the command-line flags.
type options struct {
	config    string
	out       string
	pkg       string
	framework string
	export    string
	graphql   string
	gqlgen    string
	modelPkg  string
	env       string
	watch     bool
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fset := flag.NewFlagSet("veloxconv", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.StringVar(&o.config, "config", "veloxconv.yaml", "path of the YAML mapping file")
	fset.StringVar(&o.out, "out", "schema", "directory the schema files are written to")
	fset.StringVar(&o.pkg, "package", gen.DefaultPackage, "package name of the schema files")
	fset.StringVar(&o.framework, "framework", gen.DefaultFramework, "import path root of the velox packages")
	fset.StringVar(&o.export, "export", "", "write a model snapshot to this file (.json, .yaml or .msgpack)")
	fset.StringVar(&o.graphql, "graphql", "", "write the GraphQL schema of the models to this file")
	fset.StringVar(&o.gqlgen, "gqlgen", "", "gqlgen.yml to bind the GraphQL schema in")
	fset.StringVar(&o.modelPkg, "models", "", "Go package of the models bound in the GraphQL schema")
	fset.StringVar(&o.env, "env", ".env", "environment file loaded before the mapping is read")
	fset.BoolVar(&o.watch, "watch", false, "regenerate when the mapping file changes")
	fset.BoolVar(&o.verbose, "v", false, "log every conversion step")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fset.Args())
	}
	return &o, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if o.env != "" {
		if err := godotenv.Load(o.env); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", o.env, err)
		}
	}
	if err := generate(ctx, o, logger); err != nil {
		if !o.watch {
			return err
		}
		logger.Error("generation failed", "error", err)
	}
	if o.watch {
		return watch(ctx, o, logger)
	}
	return nil
}

// generate runs one conversion of the mapped schema and writes its outputs.
func generate(ctx context.Context, o *options, logger *slog.Logger) error {
	mf, err := load.LoadFile(o.config)
	if err != nil {
		return err
	}
	drv, err := sql.Open(mf.Dialect, mf.DSN)
	if err != nil {
		return err
	}
	defer drv.Close()
	if err := drv.Ping(ctx); err != nil {
		return err
	}
	s, err := load.NewInspector(drv, load.WithInspectorLogger(logger)).InspectSchema(ctx, mf.Schema)
	if err != nil {
		return err
	}
	r, err := mf.Bind(s)
	if err != nil {
		return err
	}

	opts := []gen.Option{
		gen.WithLogger(logger),
		gen.WithMetadata(gen.NewMetadata(mf.Schema)),
		gen.WithDatabase(&gen.Database{Dialect: mf.Dialect, DSN: mf.DSN}),
		gen.WithTarget(o.out),
		gen.WithPackage(o.pkg),
		gen.WithFramework(o.framework),
	}
	for _, e := range r.Entities() {
		if cols := mf.Exclude(e.Name); len(cols) > 0 {
			opts = append(opts, gen.WithExclude(e.Name, cols...))
		}
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	g, err := gen.NewGraph(cfg, r)
	if err != nil {
		return err
	}
	if _, err := g.ConvertAll(); err != nil {
		return err
	}
	if err := gen.Write(ctx, g); err != nil {
		return err
	}
	if o.export != "" {
		if err := export(g, o.export); err != nil {
			return err
		}
	}
	if o.graphql != "" {
		if err := writeGraphQL(g, o); err != nil {
			return err
		}
	}
	logger.Info("conversion complete", "run", g.RunID(), "models", len(g.Models()), "out", o.out)
	return nil
}

func export(g *gen.Graph, path string) error {
	enc, err := gen.EncodingFromPath(path)
	if err != nil {
		return err
	}
	b, err := gen.Export(g).Marshal(enc)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

func writeGraphQL(g *gen.Graph, o *options) error {
	opts := []graphql.Option{graphql.WithQuery()}
	if o.modelPkg != "" {
		opts = append(opts, graphql.WithModelPackage(o.modelPkg))
	}
	sdl, err := graphql.Render(g.Models(), opts...)
	if err != nil {
		return err
	}
	if err := writeFile(o.graphql, sdl); err != nil {
		return err
	}
	if o.gqlgen == "" {
		return nil
	}
	cfg, err := graphql.LoadGQLGenConfig(o.gqlgen)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(filepath.Dir(o.gqlgen), o.graphql)
	if err != nil {
		rel = o.graphql
	}
	cfg.InjectBindings(filepath.ToSlash(rel), o.modelPkg)
	return graphql.SaveGQLGenConfig(o.gqlgen, cfg)
}

func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// watch regenerates on every change of the mapping file until ctx is done.
// The directory is watched rather than the file, as editors often replace
// the file on save.
func watch(ctx context.Context, o *options, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(o.config)); err != nil {
		return err
	}
	target := filepath.Clean(o.config)
	logger.Info("watching mapping file", "path", target)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Info("mapping file changed", "op", ev.Op.String())
			if err := generate(ctx, o, logger); err != nil {
				logger.Error("generation failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
