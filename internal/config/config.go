package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/segment-insights-api/internal/usecases/risk"
	"github.com/vfg2006/segment-insights-api/internal/usecases/timeline"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	DataSource    DataSource    `mapstructure:",squash"`
	Schema        Schema        `mapstructure:",squash"`
	Analysis      Analysis      `mapstructure:",squash"`
	BatchAnalysis BatchAnalysis `mapstructure:",squash"`
	CORS          CORS          `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

// DataSource define de onde o dataset é carregado
type DataSource struct {
	Kind       string `mapstructure:"data_source"` // csv | postgres
	DataDir    string `mapstructure:"data_dir"`
	SchemaFile string `mapstructure:"data_schema_file"`
}

// Schema descreve os nomes de colunas e arquivos das tabelas de entrada
type Schema struct {
	EntityColumn        string `mapstructure:"schema_entity_column" yaml:"entity_column"`
	SegmentMonthColumn  string `mapstructure:"schema_segment_month_column" yaml:"segment_month_column"`
	SegmentColumn       string `mapstructure:"schema_segment_column" yaml:"segment_column"`
	MetricsEntityColumn string `mapstructure:"schema_metrics_entity_column" yaml:"metrics_entity_column"`
	MetricsMonthColumn  string `mapstructure:"schema_metrics_month_column" yaml:"metrics_month_column"`
	RevenueSuffix       string `mapstructure:"schema_revenue_suffix" yaml:"revenue_suffix"`
	VolumeSuffix        string `mapstructure:"schema_volume_suffix" yaml:"volume_suffix"`
	BaseFile            string `mapstructure:"schema_base_file" yaml:"base_file"`
	MonthlyPrefix       string `mapstructure:"schema_monthly_prefix" yaml:"monthly_prefix"`
	RevenueFile         string `mapstructure:"schema_revenue_file" yaml:"revenue_file"`
}

type Analysis struct {
	TTMMonths              int     `mapstructure:"analysis_ttm_months"`
	MonthlyPrecedence      bool    `mapstructure:"analysis_monthly_precedence"`
	RiskWindowMonths       int     `mapstructure:"analysis_risk_window_months"`
	RiskWeightVolatility   float64 `mapstructure:"analysis_risk_weight_volatility"`
	RiskWeightRevenueTrend float64 `mapstructure:"analysis_risk_weight_revenue_trend"`
	RiskWeightPresenceGap  float64 `mapstructure:"analysis_risk_weight_presence_gap"`
	RiskTrendSensitivity   float64 `mapstructure:"analysis_risk_trend_sensitivity"`
	MaxConcurrentJobs      int     `mapstructure:"analysis_max_concurrent_jobs"`
}

type BatchAnalysis struct {
	CronSchedule string `mapstructure:"batch_analysis_cron"`
	Enabled      bool   `mapstructure:"batch_analysis_enabled"`
	ExportDir    string `mapstructure:"batch_analysis_export_dir"`
	RecordRuns   bool   `mapstructure:"batch_analysis_record_runs"` // grava analysis_runs no postgres
}

// NeedsDatabase indica se alguma parte configurada depende do postgres
func (c *Config) NeedsDatabase() bool {
	return c.DataSource.Kind == "postgres" || c.BatchAnalysis.RecordRuns
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// RiskOptions converte a configuração nos parâmetros do score de risco
func (a Analysis) RiskOptions() risk.Options {
	return risk.Options{
		Window: a.RiskWindowMonths,
		Weights: risk.Weights{
			Volatility:   a.RiskWeightVolatility,
			RevenueTrend: a.RiskWeightRevenueTrend,
			PresenceGap:  a.RiskWeightPresenceGap,
		},
		TrendSensitivity: a.RiskTrendSensitivity,
	}
}

// TimelineOptions converte a configuração na regra de precedência do histórico
func (a Analysis) TimelineOptions() timeline.Options {
	return timeline.Options{MonthlyPrecedence: a.MonthlyPrecedence}
}

// DefaultSchema retorna o layout de colunas dos arquivos de segmentação e receita
func DefaultSchema() Schema {
	return Schema{
		EntityColumn:        "glbl_enti_nbr",
		SegmentMonthColumn:  "segmentation_mnth",
		SegmentColumn:       "dmnt_seg_cd",
		MetricsEntityColumn: "glbl_enti_nbr",
		MetricsMonthColumn:  "shp_dt_yyyymm",
		RevenueSuffix:       "_rev_wf",
		VolumeSuffix:        "_vol_wf",
		BaseFile:            "base_seg.csv",
		MonthlyPrefix:       "curr_seg_",
		RevenueFile:         "rev_glbl.csv",
	}
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/segments?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("DATA_SOURCE", "csv")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("DATA_SCHEMA_FILE", "")

	schema := DefaultSchema()
	viper.SetDefault("SCHEMA_ENTITY_COLUMN", schema.EntityColumn)
	viper.SetDefault("SCHEMA_SEGMENT_MONTH_COLUMN", schema.SegmentMonthColumn)
	viper.SetDefault("SCHEMA_SEGMENT_COLUMN", schema.SegmentColumn)
	viper.SetDefault("SCHEMA_METRICS_ENTITY_COLUMN", schema.MetricsEntityColumn)
	viper.SetDefault("SCHEMA_METRICS_MONTH_COLUMN", schema.MetricsMonthColumn)
	viper.SetDefault("SCHEMA_REVENUE_SUFFIX", schema.RevenueSuffix)
	viper.SetDefault("SCHEMA_VOLUME_SUFFIX", schema.VolumeSuffix)
	viper.SetDefault("SCHEMA_BASE_FILE", schema.BaseFile)
	viper.SetDefault("SCHEMA_MONTHLY_PREFIX", schema.MonthlyPrefix)
	viper.SetDefault("SCHEMA_REVENUE_FILE", schema.RevenueFile)

	// Parâmetros de análise
	viper.SetDefault("ANALYSIS_TTM_MONTHS", 12)                  // Janela TTM de 12 meses
	viper.SetDefault("ANALYSIS_MONTHLY_PRECEDENCE", true)        // Arquivo mensal corrige a base
	viper.SetDefault("ANALYSIS_RISK_WINDOW_MONTHS", 6)           // Janela do score de risco
	viper.SetDefault("ANALYSIS_RISK_WEIGHT_VOLATILITY", 0.40)    // Peso da volatilidade de segmento
	viper.SetDefault("ANALYSIS_RISK_WEIGHT_REVENUE_TREND", 0.35) // Peso da tendência de receita
	viper.SetDefault("ANALYSIS_RISK_WEIGHT_PRESENCE_GAP", 0.25)  // Peso dos meses sem atribuição
	viper.SetDefault("ANALYSIS_RISK_TREND_SENSITIVITY", 5.0)     // Multiplicador da inclinação relativa
	viper.SetDefault("ANALYSIS_MAX_CONCURRENT_JOBS", 3)          // Pares de meses processados em paralelo

	viper.SetDefault("BATCH_ANALYSIS_CRON", "0 6 * * *")          // Todos os dias às 6h da manhã
	viper.SetDefault("BATCH_ANALYSIS_ENABLED", false)             // Habilitar análise em lote
	viper.SetDefault("BATCH_ANALYSIS_EXPORT_DIR", "data/exports") // Diretório dos relatórios
	viper.SetDefault("BATCH_ANALYSIS_RECORD_RUNS", false)         // Registrar execuções no banco

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate rejeita combinações que impedem o carregamento do dataset
func (c *Config) Validate() error {
	switch c.DataSource.Kind {
	case "csv", "postgres":
	default:
		return fmt.Errorf("DATA_SOURCE inválido %q: use csv ou postgres", c.DataSource.Kind)
	}

	if c.Analysis.TTMMonths <= 0 {
		return fmt.Errorf("ANALYSIS_TTM_MONTHS deve ser positivo")
	}
	if c.Analysis.RiskWindowMonths <= 0 {
		return fmt.Errorf("ANALYSIS_RISK_WINDOW_MONTHS deve ser positivo")
	}
	if c.Analysis.MaxConcurrentJobs <= 0 {
		c.Analysis.MaxConcurrentJobs = 1
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
