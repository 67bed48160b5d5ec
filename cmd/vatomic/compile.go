package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/recera/vango-atomic/internal/cache"
	"github.com/recera/vango-atomic/pkg/styling"
)

func newCompileCommand(a *app) *cobra.Command {
	var (
		watch   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "compile [sources...]",
		Short: "Compile YAML style sources into atomic definition bundles",
		Long: `Compiles each style source into <outputDir>/<name>.json.
Without arguments every *.yaml and *.yml file in the source directory is compiled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			atomic := a.config.Styling.Atomic

			c := &compiler{
				log:       a.log,
				outputDir: a.path(atomic.OutputDir),
			}
			if atomic.CacheDir != "" && !noCache {
				artifacts, err := cache.New(cache.Config{Dir: a.path(atomic.CacheDir)})
				if err != nil {
					return err
				}
				c.cache = artifacts
			}

			sourceDir := a.path(atomic.SourceDir)
			sources := args
			if len(sources) == 0 {
				found, err := findSources(sourceDir)
				if err != nil {
					return err
				}
				sources = found
			}

			if err := c.compileAll(sources); err != nil {
				return err
			}

			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.watch(ctx, sourceDir)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile when sources change")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignore the compile cache")

	return cmd
}

// path resolves p against the project directory
func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.projectDir, p)
}

type compiler struct {
	log       zerolog.Logger
	outputDir string
	cache     *cache.Cache
}

func (c *compiler) compileAll(sources []string) error {
	if len(sources) == 0 {
		c.log.Warn().Msg("no style sources found")
		return nil
	}

	compiled := 0
	for _, source := range sources {
		changed, err := c.compileFile(source)
		if err != nil {
			return err
		}
		if changed {
			compiled++
		}
	}

	c.log.Info().Int("sources", len(sources)).Int("compiled", compiled).Msg("compile finished")
	return nil
}

// compileFile compiles one source and reports whether its output changed
func (c *compiler) compileFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	key := cache.Key(path, string(data))
	out, hit := c.lookup(key)
	if !hit {
		src, err := styling.ParseSource(data)
		if err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}

		out, err = json.MarshalIndent(src.Compile(), "", "  ")
		if err != nil {
			return false, fmt.Errorf("failed to encode %s: %w", path, err)
		}

		if c.cache != nil {
			if err := c.cache.Put(key, out); err != nil {
				c.log.Warn().Err(err).Str("source", path).Msg("failed to cache bundle")
			}
		}
	}

	bundle, err := styling.LoadBundle(out)
	if err != nil {
		return false, err
	}
	target := filepath.Join(c.outputDir, bundle.Name+".json")

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, out) {
		c.log.Debug().Str("source", path).Bool("cached", hit).Msg("bundle unchanged")
		return false, nil
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(target, out, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", target, err)
	}

	c.log.Info().
		Str("source", path).
		Str("output", target).
		Int("rules", len(bundle.Rules)).
		Bool("cached", hit).
		Msg("compiled style bundle")
	return true, nil
}

func (c *compiler) lookup(key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

// watch recompiles sources in dir until ctx is done
func (c *compiler) watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	c.log.Info().Str("dir", dir).Msg("watching style sources")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSource(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, err := c.compileFile(event.Name); err != nil {
				c.log.Error().Err(err).Str("source", event.Name).Msg("compile failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func findSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() || !isSource(entry.Name()) {
			continue
		}
		sources = append(sources, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(sources)
	return sources, nil
}

func isSource(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
