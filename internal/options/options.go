package options

import (
	"errors"
	"os"

	"github.com/go-yaml/yaml"

	"github.com/KaavyaOfficial/momentum-fc/pkg/constants"
)

const (
	defaultConfigPath = "configs/settings.yaml"
	defaultBaseURL    = "https://api.football-data.org/v4"
)

// Top competition ids: PL, PD, CL, BL1, SA, FL1.
var defaultCompetitions = []int64{2021, 2014, 2001, 2002, 2019, 2015}

type Options struct {
	APIToken     string  `yaml:"apiToken,omitempty"`
	APIBaseURL   string  `yaml:"apiBaseURL,omitempty"`
	Competitions []int64 `yaml:"competitions,omitempty"`

	PollIntervalSeconds int `yaml:"pollIntervalSeconds,omitempty"`
	FeedTimeoutSeconds  int `yaml:"feedTimeoutSeconds,omitempty"`
	SnapshotCap         int `yaml:"snapshotCap,omitempty"`

	DatabaseURL string `yaml:"databaseURL,omitempty"`
	Port        string `yaml:"port,omitempty"`
	LogPath     string `yaml:"logPath,omitempty"`

	KafkaEnabled bool   `yaml:"kafkaEnabled,omitempty"`
	KafkaAddress string `yaml:"kafkaAddress,omitempty"`
	KafkaPort    string `yaml:"kafkaPort,omitempty"`
	KafkaTopic   string `yaml:"kafkaTopic,omitempty"`
}

// NewOptions loads the yaml config, falling back to defaults when no file
// is present so the service boots into demo mode out of the box. Secrets
// can always be supplied through the environment.
func NewOptions() (*Options, error) {
	o := Options{}
	o.fillDefaultValues()

	path := os.Getenv("MOMENTUM_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	yamlData, err := os.ReadFile(path)
	if err == nil {
		if err = yaml.Unmarshal(yamlData, &o); err != nil {
			return nil, errors.New("could not parse config file " + path + ": " + err.Error())
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.New("could not load config file " + path + ": " + err.Error())
	}

	o.applyEnvOverrides()

	return &o, nil
}

func (o *Options) fillDefaultValues() {
	o.APIBaseURL = defaultBaseURL
	o.Competitions = defaultCompetitions
	o.PollIntervalSeconds = 60
	o.FeedTimeoutSeconds = 10
	o.SnapshotCap = 2000
	o.DatabaseURL = "postgres://localhost:5432/momentum?sslmode=disable"
	o.Port = "8080"
	o.KafkaAddress = "localhost"
	o.KafkaPort = "9092"
	o.KafkaTopic = constants.TOPIC
}

func (o *Options) applyEnvOverrides() {
	if v := os.Getenv("FOOTBALL_DATA_API_KEY"); v != "" {
		o.APIToken = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		o.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		o.Port = v
	}
}

// DemoMode reports whether the service should synthesize matches instead of
// calling the live feed. Placeholder keys from config templates count as
// missing.
func (o *Options) DemoMode() bool {
	return o.APIToken == "" || o.APIToken == "your_api_key_here"
}
