package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // в минутах
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	// Entitlements - ЕДИНСТВЕННОЕ место, где определяются пороги и окна
	// entitlement-движка. Все потребители (доступ к главам, превью,
	// trial, журнал, скачивание) читают значения отсюда; никакой слой
	// не имеет права завести собственную константу.
	Entitlements struct {
		FreeChapterThreshold   int     `yaml:"free_chapter_threshold"`
		PartialPreviewFraction float64 `yaml:"partial_preview_fraction"`
		TrialDurationDays      int     `yaml:"trial_duration_days"`
		AdGrantDurationDays    int     `yaml:"ad_grant_duration_days"`
		MaxAdsPerDayPremium    int     `yaml:"max_ads_per_day_premium"`
		JournalFreeTrialDays   int     `yaml:"journal_free_trial_days"`
		JournalExtensionDays   int     `yaml:"journal_extension_days"`
		DownloadAdsRequired    int     `yaml:"download_ads_required"`
		// RewardTimezone - референсная таймзона сервера для дневных
		// лимитов. Клиентские часы не участвуют в расчете.
		RewardTimezone string `yaml:"reward_timezone"`
	} `yaml:"entitlements"`

	// AdVerify - проверка подлинности rewarded-ad колбэков.
	// mode: "trusted" (dev, верим клиенту) или "jwt" (SSV-токен сети).
	AdVerify struct {
		Mode      string `yaml:"mode"`
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"ad_verify"`

	FirstAdminEmail    string `yaml:"-"`
	FirstAdminPassword string `yaml:"-"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		// Режим НЕ-тест: загрузка из config.yaml
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
	} else {
		// Режим теста: конфигурация из переменных окружения
		cfg.Database.DSN = dbURL
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL = 60

		cfg.Email.SMTPHost = "smtp.test.com"
		cfg.Email.SMTPPort = 587
		cfg.Email.FromEmail = "test@readly.app"
	}

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyEntitlementDefaults(&cfg)

	AppConfig = &cfg
}

// applyEntitlementDefaults подставляет значения по умолчанию для пустых
// полей entitlements. Дефолты здесь - это и есть авторитетные значения
// для dev/test окружений.
func applyEntitlementDefaults(cfg *Config) {
	e := &cfg.Entitlements
	if e.FreeChapterThreshold <= 0 {
		e.FreeChapterThreshold = 3
	}
	if e.PartialPreviewFraction <= 0 || e.PartialPreviewFraction > 1 {
		e.PartialPreviewFraction = 0.25
	}
	if e.TrialDurationDays <= 0 {
		e.TrialDurationDays = 7
	}
	if e.AdGrantDurationDays <= 0 {
		e.AdGrantDurationDays = 1
	}
	if e.MaxAdsPerDayPremium <= 0 {
		e.MaxAdsPerDayPremium = 5
	}
	if e.JournalFreeTrialDays <= 0 {
		e.JournalFreeTrialDays = 14
	}
	if e.JournalExtensionDays <= 0 {
		e.JournalExtensionDays = 7
	}
	if e.DownloadAdsRequired <= 0 {
		e.DownloadAdsRequired = 3
	}
	if e.RewardTimezone == "" {
		e.RewardTimezone = "UTC"
	}
	if cfg.AdVerify.Mode == "" {
		cfg.AdVerify.Mode = "trusted"
	}
}

// RewardLocation возвращает *time.Location референсной таймзоны для
// дневных лимитов. Невалидное имя зоны - ошибка конфигурации, падаем.
func (c *Config) RewardLocation() *time.Location {
	loc, err := time.LoadLocation(c.Entitlements.RewardTimezone)
	if err != nil {
		log.Fatalf("Invalid entitlements.reward_timezone %q: %v", c.Entitlements.RewardTimezone, err)
	}
	return loc
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
