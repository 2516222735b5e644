package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binzume/spineconv/batch"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		suffix       string
		indent       int
		workers      int
		keepDefaults bool
		template     string
		noAtlas      bool
	)

	cmd := &cobra.Command{
		Use:   "convert <dir|file.json>",
		Short: "Convert skeleton documents and patch their atlases",
		Long: `Convert every skeleton JSON below a directory (or a single file) to the 3.8 format.
Each input <name>.json is written as <name><suffix>.json next to it. Atlases get a
missing size line and are written as <name><suffix>.atlas. Sources are never modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("suffix") {
				cfg.OutputSuffix = suffix
			}
			if flags.Changed("indent") {
				cfg.Indent = fmt.Sprintf("%*s", indent, "")
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if keepDefaults {
				cfg.ElideDefaultTimelines = false
			}
			if noAtlas {
				cfg.InjectAtlasSize = false
				cfg.RewriteAtlasRefs = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runner := batch.NewRunner(cfg, logger)
			runner.Template = template
			summary, err := runner.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
			if summary.Failed > 0 {
				return fmt.Errorf("%d document(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&suffix, "suffix", "", "Output file name suffix (default from config: _v38)")
	cmd.Flags().IntVar(&indent, "indent", 0, "Indent output JSON with this many spaces")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Directories converted in parallel (0: number of CPUs)")
	cmd.Flags().BoolVar(&keepDefaults, "keep-default-timelines", false, "Keep bone and slot timelines that never leave the setup pose")
	cmd.Flags().StringVar(&template, "template", "", "Reference 3.8 document whose skeleton viewport is used for every output")
	cmd.Flags().BoolVar(&noAtlas, "no-atlas", false, "Do not touch atlas files")
	return cmd
}
