package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/segment-insights-api/internal/config"
)

var rootFlags struct {
	dataDir    string
	schemaFile string
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:   "segctl",
	Short: "Ferramentas de linha de comando do segment-insights",
	Long: `segctl opera o motor de análise de segmentos fora da API:

  validate    confere os arquivos CSV de segmentação e receita
  run         executa uma análise em lote e exporta os relatórios
  token       emite um token de acesso para a API`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Diretório dos arquivos CSV (padrão: DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.schemaFile, "schema", "", "Arquivo schema.yaml (padrão: DATA_SCHEMA_FILE)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "warn", "Nível de log")
}

// loadConfig carrega a configuração do ambiente e aplica as flags globais
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	if rootFlags.dataDir != "" {
		cfg.DataSource.DataDir = rootFlags.dataDir
	}
	if rootFlags.schemaFile != "" {
		cfg.DataSource.SchemaFile = rootFlags.schemaFile
	}

	return cfg, nil
}
