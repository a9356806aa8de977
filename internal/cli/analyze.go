package cli

import (
	"context"
	"fmt"

	"resumescore/internal/common"
	"resumescore/internal/types"
	"resumescore/internal/utils"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file] [job-description-file]",
	Short: "Score a resume, optionally against a job description",
	Long: `Analyze a resume and produce a deterministic quality score with a
per-category breakdown, prioritized issues, and improvement suggestions.

The analysis includes:
- ATS compatibility checks with prioritized fixes
- Keyword extraction and job description match rate
- Grammar, formatting, tone, and length scoring
- Industry detection with industry-weighted section scores
- An action plan ordered by impact

When a job description file is supplied, keyword and relevance scores
reflect how well the resume matches that specific posting.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

var (
	analyzeFileType string
	analyzeFileName string
	analyzeResumeID string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&analyzeFileType, "file-type", "", "MIME type of the original upload (default: inferred from extension)")
	analyzeCmd.Flags().StringVar(&analyzeFileName, "file-name", "", "Original file name used for ATS checks (default: the resume file argument)")
	analyzeCmd.Flags().StringVar(&analyzeResumeID, "resume-id", "", "Stable resume identifier used as the cache key")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	p, err := buildPipeline(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer p.close(logger)

	fileName := analyzeFileName
	if fileName == "" {
		fileName = args[0]
	}
	fileType := analyzeFileType
	if fileType == "" {
		fileType = utils.DetectContentType(fileName)
	}

	createInput := func(contents []string) (types.AnalysisInput, error) {
		input := types.AnalysisInput{
			ResumeText: contents[0],
			FileType:   fileType,
			FileName:   fileName,
			ResumeID:   analyzeResumeID,
		}
		if len(contents) > 1 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input types.AnalysisInput, cmdCfg common.CommandConfig) {
		logger.Info("Starting resume analysis",
			"resume_chars", len(input.ResumeText),
			"has_job_description", input.JobDescription != "",
			"file_type", input.FileType,
			"output_format", cmdCfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, input types.AnalysisInput) (*types.AnalysisResult, error) {
		result, err := p.engine.Analyze(ctx, input)
		if err != nil {
			return nil, err
		}
		if p.store != nil {
			if saveErr := p.store.SaveAnalysis(ctx, result); saveErr != nil {
				// Persistence is best effort
				logger.Warn("Failed to persist analysis", "error", saveErr)
			}
		}
		return result, nil
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
