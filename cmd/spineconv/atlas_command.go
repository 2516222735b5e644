package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binzume/spineconv/atlas"
	"github.com/binzume/spineconv/batch"
)

func newAtlasCommand(ctx *commandContext) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "atlas <file.atlas>",
		Short: "Add the missing page size line to an atlas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			path := args[0]
			src, err := batch.ReadText(path)
			if err != nil {
				return err
			}
			injector := &atlas.SizeInjector{ImageExtensions: cfg.ImageExtensions}
			text, changed, err := injector.Inject(src, atlas.NewImageDir(filepath.Dir(path)))
			if err != nil {
				return err
			}
			if toStdout {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if !changed {
				logger.Info("atlas already has a size", zap.String("atlas", path))
				return nil
			}
			ext := filepath.Ext(path)
			out := strings.TrimSuffix(path, ext) + cfg.OutputSuffix + ext
			if _, err := batch.WriteDocument(out, []byte(text)); err != nil {
				return err
			}
			logger.Info("atlas patched", zap.String("atlas", path), zap.String("output", out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the patched atlas instead of writing a file")
	return cmd
}
