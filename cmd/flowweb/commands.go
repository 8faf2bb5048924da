package main

import (
	"context"
	"flowweb/internal/build"
	"flowweb/internal/domain/config"
	"flowweb/internal/output"
	"flowweb/internal/watch"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
	"time"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flowweb",
		Short: "Generate the luflow.net static site",
		Long: `flowweb reads blog-posts/, screenshots/, templates/, static/ and static_root/
from the current directory and writes the complete site to output/.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBuilder()
			if err != nil {
				return err
			}
			defer b.Log.Sync()

			if _, err := b.Run(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Done! Output can be found in '%s' folder.\n", output.DirName)
			return nil
		},
	}
	root.AddCommand(newWatchCmd())
	return root
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Generate the site, then regenerate it whenever an input changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBuilder()
			if err != nil {
				return err
			}
			defer b.Log.Sync()

			rebuild := func(ctx context.Context) error {
				b.Cfg.Build.Now = time.Now()
				_, err := b.Run(ctx)
				return err
			}
			if err := rebuild(cmd.Context()); err != nil {
				b.Log.Error("initial build failed", zap.Error(err))
			}

			w, err := watch.New(b.Root, build.InputDirs, rebuild, b.Log.Named("watch"))
			if err != nil {
				return err
			}
			defer w.Close()
			return w.Run(cmd.Context())
		},
	}
}

func newBuilder() (*build.Builder, error) {
	cfg, err := config.LoadOrDefault(config.FileName)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", config.FileName, err)
	}
	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &build.Builder{Cfg: cfg, Root: ".", Log: log}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		lvl,
	)), nil
}
