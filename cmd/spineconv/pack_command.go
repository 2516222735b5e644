package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binzume/spineconv/batch"
)

func newPackCommand(ctx *commandContext) *cobra.Command {
	var outputsOnly bool

	cmd := &cobra.Command{
		Use:   "pack <dir> <out.zip>",
		Short: "Package a converted tree as a zip archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			root, outPath := args[0], args[1]
			absOut, err := filepath.Abs(outPath)
			if err != nil {
				return err
			}
			absRoot, err := filepath.Abs(root)
			if err != nil {
				return err
			}

			include := func(rel string) bool {
				if filepath.Join(absRoot, filepath.FromSlash(rel)) == absOut {
					return false
				}
				if !outputsOnly {
					return true
				}
				ext := strings.ToLower(filepath.Ext(rel))
				if ext != batch.DocumentExt && ext != batch.AtlasExt {
					return true
				}
				return strings.Contains(strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel)), cfg.OutputSuffix)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			n, err := batch.PackageTree(root, f, include)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(outPath)
				return err
			}
			info, err := os.Stat(outPath)
			if err != nil {
				return err
			}
			logger.Info("packed", zap.String("output", outPath), zap.Int("files", n))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files, %s\n", outPath, n, humanize.Bytes(uint64(info.Size())))
			return nil
		},
	}
	cmd.Flags().BoolVar(&outputsOnly, "outputs-only", false, "Leave out the original JSON and atlas files")
	return cmd
}
