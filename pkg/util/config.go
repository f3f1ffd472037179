package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/viper"
)

// Config carries the proof run settings read from twoec.yaml.
type Config struct {
	Credit CreditConfig `mapstructure:"credit"`
	Output OutputConfig `mapstructure:"output"`
	Proof  ProofConfig  `mapstructure:"proof"`
}

// CreditConfig fixes the credit rate c = Numerator/Denominator.
type CreditConfig struct {
	Numerator   int64 `mapstructure:"numerator" validate:"gte=1"`
	Denominator int64 `mapstructure:"denominator" validate:"gte=1"`
}

type OutputConfig struct {
	// Dir receives one proof file per leaf component case.
	Dir string `mapstructure:"dir" validate:"required"`
	// Depth bounds how deep successful subtrees are rendered.
	Depth int `mapstructure:"depth" validate:"gte=0"`
	// Compress switches the proof artifacts to bzip2.
	Compress bool `mapstructure:"compress"`
}

type ProofConfig struct {
	ShortCircuit bool `mapstructure:"short_circuit"`
	Parallel     bool `mapstructure:"parallel"`
	// MaxDepth bounds the case split recursion of the path search.
	MaxDepth int `mapstructure:"max_depth" validate:"gte=1"`
	// InitialDepth pre-expands path instances before the search.
	InitialDepth int `mapstructure:"initial_depth" validate:"gte=1"`
}

// ReadConfig loads twoec.yaml from the working directory or ./data/ and
// validates it. Missing keys fall back to the defaults of a c = 1/3 run.
func ReadConfig() (*Config, error) {
	viper.SetConfigName("twoec")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./data/")

	viper.SetDefault("credit.numerator", 1)
	viper.SetDefault("credit.denominator", 3)
	viper.SetDefault("output.dir", "proofs")
	viper.SetDefault("output.depth", 2)
	viper.SetDefault("output.compress", false)
	viper.SetDefault("proof.short_circuit", true)
	viper.SetDefault("proof.parallel", true)
	viper.SetDefault("proof.max_depth", 6)
	viper.SetDefault("proof.initial_depth", 2)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	validate := validator.New()
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, v := range verrs {
		msgs = append(msgs, v.Translate(trans))
	}
	return fmt.Errorf("validation error: %v", msgs)
}
