package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Identity          Identity          `mapstructure:",squash"`
	Gemini            Gemini            `mapstructure:",squash"`
	Advisor           Advisor           `mapstructure:",squash"`
	HistoricalSync    HistoricalSync    `mapstructure:",squash"`
	MonthlyReportSync MonthlyReportSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
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

// Identity guarda as credenciais do provedor de identidade.
// A chave publicável vai para o SPA; a secreta valida tokens e
// autoriza o writeback de metadados de onboarding.
type Identity struct {
	PublishableKey string `mapstructure:"identity_publishable_key"`
	SecretKey      string `mapstructure:"identity_secret_key"`
	APIURL         string `mapstructure:"identity_api_url"`
}

// Gemini guarda as credenciais e parâmetros de geração da API de IA
type Gemini struct {
	APIKey          string   `mapstructure:"gemini_api_key"`
	Models          []string `mapstructure:"gemini_models"`
	Temperature     float64  `mapstructure:"gemini_temperature"`
	TopK            int      `mapstructure:"gemini_top_k"`
	TopP            float64  `mapstructure:"gemini_top_p"`
	MaxOutputTokens int      `mapstructure:"gemini_max_output_tokens"`
}

// Advisor controla o rate-gate e a janela de contexto do consultor
type Advisor struct {
	MaxRequestsPerMinute int `mapstructure:"advisor_max_requests_per_minute"`
	MinIntervalSeconds   int `mapstructure:"advisor_min_interval_seconds"`
	HistoryWindow        int `mapstructure:"advisor_history_window"`
	MaxMessageLength     int `mapstructure:"advisor_max_message_length"`
}

type HistoricalSync struct {
	IntervalSeconds int  `mapstructure:"historical_sync_interval_seconds"`
	Enabled         bool `mapstructure:"historical_sync_enabled"`
}

type MonthlyReportSync struct {
	CronSchedule  string `mapstructure:"monthly_report_sync_cron"`
	MonthLookback int    `mapstructure:"monthly_report_sync_month_lookback"`
	Enabled       bool   `mapstructure:"monthly_report_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_USER", "")
	viper.SetDefault("DATABASE_PASSWORD", "")

	viper.SetDefault("IDENTITY_PUBLISHABLE_KEY", "")
	viper.SetDefault("IDENTITY_SECRET_KEY", "")
	viper.SetDefault("IDENTITY_API_URL", "https://api.clerk.com/v1")

	viper.SetDefault("GEMINI_API_KEY", "")
	// Modelos em ordem de preferência; o primeiro que responder vence
	viper.SetDefault("GEMINI_MODELS", "gemini-2.0-flash,gemini-2.5-flash,gemini-2.5-flash-preview-05-20,gemini-flash-latest,gemini-pro-latest,gemini-2.5-flash-lite")
	viper.SetDefault("GEMINI_TEMPERATURE", 0.7)
	viper.SetDefault("GEMINI_TOP_K", 40)
	viper.SetDefault("GEMINI_TOP_P", 0.95)
	viper.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 1024)

	viper.SetDefault("ADVISOR_MAX_REQUESTS_PER_MINUTE", 10)
	viper.SetDefault("ADVISOR_MIN_INTERVAL_SECONDS", 2)
	viper.SetDefault("ADVISOR_HISTORY_WINDOW", 5)
	viper.SetDefault("ADVISOR_MAX_MESSAGE_LENGTH", 1000)

	viper.SetDefault("HISTORICAL_SYNC_INTERVAL_SECONDS", 45) // Perturbação da série mock a cada 45s
	viper.SetDefault("HISTORICAL_SYNC_ENABLED", true)

	viper.SetDefault("MONTHLY_REPORT_SYNC_CRON", "0 5 1 * *") // Primeiro dia do mês às 5h
	viper.SetDefault("MONTHLY_REPORT_SYNC_MONTH_LOOKBACK", 1)
	viper.SetDefault("MONTHLY_REPORT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	if err := validateRequired(config); err != nil {
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

// validateRequired falha o startup quando alguma credencial obrigatória
// está ausente: chave do provedor de identidade, URL/credenciais da base
// hospedada e chave da API generativa
func validateRequired(cfg *Config) error {
	var missing []string

	if cfg.Identity.SecretKey == "" {
		missing = append(missing, "IDENTITY_SECRET_KEY")
	}
	if cfg.Identity.PublishableKey == "" {
		missing = append(missing, "IDENTITY_PUBLISHABLE_KEY")
	}
	if cfg.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.Gemini.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("variáveis de ambiente obrigatórias ausentes: %s", strings.Join(missing, ", "))
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
