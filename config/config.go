// Package config loads SDK settings from defaults, an optional file and
// ECPAY_* environment variables.
package config

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zoobzio/ecpay"
)

// Environments.
const (
	EnvStage      = "stage"
	EnvProduction = "production"
)

// Default API hosts per environment.
const (
	StageServer      = "https://einvoice-stage.ecpay.com.tw"
	ProductionServer = "https://einvoice.ecpay.com.tw"
)

// Settings holds everything needed to build a factory and a client.
type Settings struct {
	MerchantID     string
	HashKey        string
	HashIV         string
	Environment    string
	Server         string
	Namespace      string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	VerifyTLS      bool
	Aliases        map[string]string
}

// Load reads settings. Precedence is environment, then file, then defaults.
// An empty path skips the file.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ECPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	s := &Settings{
		MerchantID:     v.GetString("merchant_id"),
		HashKey:        v.GetString("hash_key"),
		HashIV:         v.GetString("hash_iv"),
		Environment:    strings.ToLower(v.GetString("environment")),
		Server:         v.GetString("server"),
		Namespace:      v.GetString("namespace"),
		Timeout:        v.GetDuration("timeout"),
		ConnectTimeout: v.GetDuration("connect_timeout"),
		VerifyTLS:      v.GetBool("verify_tls"),
		Aliases:        v.GetStringMapString("aliases"),
	}
	if s.Server == "" {
		s.Server = ServerFor(s.Environment)
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	def := ecpay.DefaultTransportConfig()
	v.SetDefault("environment", EnvStage)
	v.SetDefault("namespace", "ecpay")
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("connect_timeout", def.ConnectTimeout)
	v.SetDefault("verify_tls", true)
}

// ServerFor returns the API host for an environment.
func ServerFor(env string) string {
	if env == EnvProduction {
		return ProductionServer
	}
	return StageServer
}

// Validate reports the first missing or invalid setting.
func (s *Settings) Validate() error {
	switch {
	case s.MerchantID == "":
		return &ecpay.ConfigError{Key: "merchant_id"}
	case s.HashKey == "":
		return &ecpay.ConfigError{Key: "hash_key"}
	case s.HashIV == "":
		return &ecpay.ConfigError{Key: "hash_iv"}
	}
	if s.Environment != EnvStage && s.Environment != EnvProduction {
		return &ecpay.ConfigError{Key: "environment", Value: s.Environment, Reason: "must be stage or production"}
	}
	if s.Timeout <= 0 {
		return &ecpay.ConfigError{Key: "timeout", Value: s.Timeout, Reason: "must be positive"}
	}
	if s.ConnectTimeout <= 0 {
		return &ecpay.ConfigError{Key: "connect_timeout", Value: s.ConnectTimeout, Reason: "must be positive"}
	}
	if s.Environment == EnvProduction && !s.VerifyTLS {
		return &ecpay.ConfigError{Key: "verify_tls", Value: false, Reason: "cannot be disabled in production"}
	}
	return nil
}

// TransportConfig converts the settings into a transport configuration.
func (s *Settings) TransportConfig() ecpay.TransportConfig {
	return ecpay.TransportConfig{
		Timeout:            s.Timeout,
		ConnectTimeout:     s.ConnectTimeout,
		InsecureSkipVerify: !s.VerifyTLS,
		MinTLSVersion:      tls.VersionTLS12,
	}
}

// Client returns a client for the configured server.
func (s *Settings) Client() *ecpay.Client {
	return ecpay.NewClient(s.Server, ecpay.NewTransport(s.TransportConfig()))
}

// FactoryConfig builds a factory configuration carrying the credentials,
// namespace and aliases from s.
func FactoryConfig[T ecpay.Operation](s *Settings, catalog *ecpay.Catalog) ecpay.FactoryConfig[T] {
	aliases := make(map[string]string, len(s.Aliases))
	for k, v := range s.Aliases {
		aliases[k] = v
	}
	return ecpay.FactoryConfig[T]{
		Namespace:  s.Namespace,
		MerchantID: s.MerchantID,
		HashKey:    s.HashKey,
		HashIV:     s.HashIV,
		Aliases:    aliases,
		Catalog:    catalog,
	}
}
