package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoobzio/ecpay"
	"github.com/zoobzio/ecpay/config"
)

// rawTypeName is the catalog name of the free-form operation.
const rawTypeName = "ecpay/Operations/Raw"

func encryptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [plaintext]",
		Short: "Encrypt a string with the configured HashKey and HashIV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := opts.encoder()
			if err != nil {
				return err
			}
			out, err := enc.Encrypt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func decryptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "Decrypt a base64 ciphertext",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := opts.encoder()
			if err != nil {
				return err
			}
			out, err := enc.Decrypt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func encodeCmd(opts *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "encode [data-json]",
		Short: "Build an encrypted request envelope from a Data object",
		Long: `Build the request envelope for a Data block.

Examples:
  ecpay encode '{"RelateNumber":"TEST123"}' --merchant-id 2000132
  ecpay encode '{"RelateNumber":"TEST123"}' --path /B2CInvoice/GetIssue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := opts.rawOperation(args[0], path)
			if err != nil {
				return err
			}
			envelope, err := op.Envelope()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), envelope)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "request path")
	return cmd
}

func decodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [data]",
		Short: "Decrypt and parse an encrypted Data block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := opts.encoder()
			if err != nil {
				return err
			}
			data, err := enc.DecodeData(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), data)
		},
	}
}

func verifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [response-json]",
		Short: "Check that a response's Data block decodes with the configured keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := opts.encoder()
			if err != nil {
				return err
			}
			resp, err := parseObject(args[0])
			if err != nil {
				return err
			}
			if !enc.VerifyResponse(resp) {
				return fmt.Errorf("response does not verify")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}

func resolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [target]",
		Short: "Show the operation type a target resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.settings()
			if err != nil {
				return err
			}
			f := ecpay.NewFactory(config.FactoryConfig[ecpay.Operation](s, newCatalog()))
			name, err := f.ResolveType(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func sendCmd(opts *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "send [data-json]",
		Short: "Encrypt a Data object, post it and print the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return fmt.Errorf("--path is required")
			}
			s, err := opts.settings()
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}
			op, err := opts.rawOperation(args[0], path)
			if err != nil {
				return err
			}

			resp, err := s.Client().Execute(cmd.Context(), op)
			if err != nil {
				return err
			}

			out := resp.Data()
			if decoded := resp.DecodedData(); decoded != nil {
				out = out.Clone()
				out[ecpay.FieldData] = decoded
			}
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			return resp.Err()
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "request path")
	return cmd
}

// rawOperation builds a raw operation from a Data JSON object.
func (o *rootOptions) rawOperation(dataJSON, path string) (*ecpay.RawContent, error) {
	s, err := o.settings()
	if err != nil {
		return nil, err
	}
	data, err := parseObject(dataJSON)
	if err != nil {
		return nil, err
	}

	op := ecpay.NewRawContent(s.MerchantID, s.HashKey, s.HashIV)
	op.SetRequestPath(path)
	for k, v := range data {
		op.Set(k, v)
	}
	return op, nil
}

func newCatalog() *ecpay.Catalog {
	c := ecpay.NewCatalog()
	c.Register(rawTypeName, func(m, k, iv string) ecpay.Operation {
		return ecpay.NewRawContent(m, k, iv)
	})
	return c
}

func parseObject(s string) (ecpay.Payload, error) {
	var out ecpay.Payload
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse JSON object: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
