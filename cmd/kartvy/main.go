package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"kartvy/internal/debug"
	"kartvy/internal/engine"
	"kartvy/internal/geom"
	"kartvy/internal/tui"
)

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName("kartvy")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "kartvy"))
	}
	v.SetEnvPrefix("KARTVY")
	v.AutomaticEnv()

	v.SetDefault("min_zoom", engine.DefaultMinZoom)
	v.SetDefault("max_zoom", engine.DefaultMaxZoom)
	v.SetDefault("initial_zoom", engine.DefaultInitialZoom)
	v.SetDefault("graticule_interval", engine.DefaultGraticuleInterval)
	v.SetDefault("outline", "")
	v.SetDefault("debug_log", "")

	// a missing config file is fine; defaults and env carry the day
	_ = v.ReadInConfig()
	return v
}

func loadRegionFile(path string) ([]geom.Region, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return geom.LoadRegions(path)
	case ".shp":
		return geom.LoadShapefile(path)
	default:
		return nil, fmt.Errorf("unsupported region file: %s", path)
	}
}

func main() {
	cfg := loadConfig()

	logger, err := debug.New(cfg.GetString("debug_log"))
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	opts := []engine.Option{
		engine.WithZoomLimits(cfg.GetFloat64("min_zoom"), cfg.GetFloat64("max_zoom")),
		engine.WithInitialZoom(cfg.GetFloat64("initial_zoom")),
		engine.WithGraticuleInterval(cfg.GetFloat64("graticule_interval")),
		engine.WithLogger(logger),
	}
	if outlinePath := cfg.GetString("outline"); outlinePath != "" {
		outlineRegions, err := loadRegionFile(outlinePath)
		if err != nil {
			log.Fatalf("outline: %v", err)
		}
		if len(outlineRegions) == 0 {
			log.Fatalf("outline: no polygons in %s", outlinePath)
		}
		outline := outlineRegions[0]
		outline.ID = "outline"
		opts = append(opts, engine.WithOutline(outline))
	}

	eng := engine.New(opts...)

	datasetName := ""
	if len(os.Args) > 1 {
		path := os.Args[1]
		regions, err := loadRegionFile(path)
		if err != nil {
			log.Fatal(err)
		}
		eng.SetRegions(regions)
		datasetName = filepath.Base(path)
	}

	m := tui.New(eng, datasetName)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
