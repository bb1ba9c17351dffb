package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoobzio/ecpay"
	"github.com/zoobzio/ecpay/config"
)

var Version = "dev"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	merchantID string
	hashKey    string
	hashIV     string
	server     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ecpay",
		Short:         "ecpay - envelope tooling for the ECPay e-invoice API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (yaml, json or toml)")
	flags.StringVar(&opts.merchantID, "merchant-id", "", "merchant id (overrides config)")
	flags.StringVar(&opts.hashKey, "hash-key", "", "HashKey (overrides config)")
	flags.StringVar(&opts.hashIV, "hash-iv", "", "HashIV (overrides config)")
	flags.StringVar(&opts.server, "server", "", "API host (overrides config)")

	rootCmd.AddCommand(encryptCmd(opts))
	rootCmd.AddCommand(decryptCmd(opts))
	rootCmd.AddCommand(encodeCmd(opts))
	rootCmd.AddCommand(decodeCmd(opts))
	rootCmd.AddCommand(verifyCmd(opts))
	rootCmd.AddCommand(resolveCmd(opts))
	rootCmd.AddCommand(sendCmd(opts))

	return rootCmd
}

// settings loads the config file and applies flag overrides.
func (o *rootOptions) settings() (*config.Settings, error) {
	s, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.merchantID != "" {
		s.MerchantID = o.merchantID
	}
	if o.hashKey != "" {
		s.HashKey = o.hashKey
	}
	if o.hashIV != "" {
		s.HashIV = o.hashIV
	}
	if o.server != "" {
		s.Server = o.server
	}
	return s, nil
}

// encoder returns an AES encoder for the configured credentials.
func (o *rootOptions) encoder() (*ecpay.AESEncoder, error) {
	s, err := o.settings()
	if err != nil {
		return nil, err
	}
	return ecpay.NewAESEncoderFromKeys(s.HashKey, s.HashIV)
}
