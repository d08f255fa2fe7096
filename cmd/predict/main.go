package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Brownie44l1/weather-api/internal/config"
	"github.com/Brownie44l1/weather-api/internal/model"
	"github.com/Brownie44l1/weather-api/internal/weather"
)

type cliOptions struct {
	configPath  string
	temperature string
	humidity    string
	verbose     bool
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		switch {
		case errors.Is(err, weather.ErrMissingInput):
			fmt.Fprintln(os.Stderr, "Please enter both temperature and humidity")
			os.Exit(2)
		case errors.Is(err, weather.ErrInvalidInput):
			fmt.Fprintln(os.Stderr, "Please enter valid numeric values for temperature and humidity")
			os.Exit(2)
		}
		log.Fatalf("predict: %v", err)
	}
}

func parseFlags() cliOptions {
	var opts cliOptions
	pflag.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: search ./config.yaml)")
	pflag.StringVarP(&opts.temperature, "temperature", "t", "", "Temperature in degrees Celsius")
	pflag.StringVarP(&opts.humidity, "humidity", "u", "", "Relative humidity in percent")
	pflag.BoolVarP(&opts.verbose, "verbose", "v", false, "Print the raw category scores")
	pflag.String("model", "", "Path to the ONNX model (overrides model.path)")
	pflag.String("ort-lib", "", "Path to the onnxruntime shared library (overrides model.libraryPath)")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --temperature C --humidity PCT [options]\n\n", filepath.Base(os.Args[0]))
		pflag.PrintDefaults()
	}
	pflag.Parse()
	return opts
}

func run(opts cliOptions) error {
	// Parse before touching the model so bad input fails fast.
	sample, err := weather.ParseSample(opts.temperature, opts.humidity)
	if err != nil {
		return err
	}

	v := viper.New()
	if err := v.BindPFlag("model.path", pflag.Lookup("model")); err != nil {
		return err
	}
	if err := v.BindPFlag("model.libraryPath", pflag.Lookup("ort-lib")); err != nil {
		return err
	}
	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine, err := model.NewEngine(cfg.EngineConfig())
	if err != nil {
		return fmt.Errorf("init model: %w", err)
	}
	defer engine.Close()

	adapter, err := weather.NewAdapter(engine)
	if err != nil {
		return err
	}

	prediction, err := adapter.Predict(context.Background(), sample)
	if err != nil {
		return err
	}

	fmt.Printf("Predicted Weather: \n%s\n", prediction.Label)
	if opts.verbose {
		for i, l := range weather.Categories() {
			fmt.Printf("  %-14s %.4f\n", l, prediction.Scores[i])
		}
	}
	return nil
}
