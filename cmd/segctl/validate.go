package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/segment-insights-api/infrastructure/loader"
	"github.com/vfg2006/segment-insights-api/pkg/utils"
)

var errValidationFailed = errors.New("validação encontrou erros")

var validateFlags struct {
	json bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Valida os arquivos de entrada",
	Long: `Confere o snapshot base, os snapshots mensais (curr_seg_YYYYMM.csv) e a tabela de receita.

Colunas obrigatórias ausentes são erros; entidades repetidas e segmentos em branco são avisos.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Imprime o relatório em JSON")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schema, err := loader.LoadSchemaFile(cfg.DataSource.SchemaFile, cfg.Schema)
	if err != nil {
		return err
	}

	report, err := loader.NewCSVLoader(cfg.DataSource.DataDir, schema).Validate()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if validateFlags.json {
		fmt.Fprintln(out, utils.PrettyJson(report))
	} else {
		for _, file := range report.Files {
			status := "OK"
			if len(file.Errors) > 0 {
				status = "ERRO"
			} else if len(file.Warnings) > 0 {
				status = "AVISO"
			}
			fmt.Fprintf(out, "[%s] %s (%d linhas)\n", status, file.File, file.Rows)
			for _, msg := range file.Errors {
				fmt.Fprintf(out, "  erro: %s\n", msg)
			}
			for _, msg := range file.Warnings {
				fmt.Fprintf(out, "  aviso: %s\n", msg)
			}
		}
	}

	if report.HasErrors() {
		return errValidationFailed
	}
	return nil
}
