package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/auth"
	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/tlsutil"
)

const (
	privateKeyFile = "jwt-private.pem"
	publicKeyFile  = "jwt-public.pem"
)

// devCmd groups helpers that produce local credentials for ratingd.
func devCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Issue local TLS certificates, signing keys and tokens for ratingd",
	}
	cmd.AddCommand(devCertsCmd(), devKeysCmd(), devTokenCmd())
	return cmd
}

func devCertsCmd() *cobra.Command {
	var (
		outDir   string
		hosts    []string
		validFor time.Duration
	)

	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Write a development CA and listener certificate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			certs, err := tlsutil.GenerateDevCertificates(hosts, outDir, validFor)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "GRPC_TLS_CERT_FILE=%s\n", certs.CertFile)
			fmt.Fprintf(out, "GRPC_TLS_KEY_FILE=%s\n", certs.KeyFile)
			fmt.Fprintf(out, "# clients trust %s\n", certs.CAFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "certs", "output directory")
	cmd.Flags().StringSliceVar(&hosts, "host", []string{"localhost", "127.0.0.1"}, "DNS names or IPs the certificate covers")
	cmd.Flags().DurationVar(&validFor, "valid-for", 30*24*time.Hour, "certificate lifetime")
	return cmd
}

func devKeysCmd() *cobra.Command {
	var (
		outDir string
		bits   int
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Write an RSA key pair for signing and verifying tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := auth.GenerateKeyPair(bits)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", outDir, err)
			}

			privPath := filepath.Join(outDir, privateKeyFile)
			pubPath := filepath.Join(outDir, publicKeyFile)
			if err := os.WriteFile(privPath, keys.PrivateKeyPEM, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", privPath, err)
			}
			if err := os.WriteFile(pubPath, keys.PublicKeyPEM, 0o644); err != nil { //nolint:gosec // public key
				return fmt.Errorf("write %s: %w", pubPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "JWT_PUBLIC_KEY_FILE=%s\n", pubPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "keys", "output directory")
	cmd.Flags().IntVar(&bits, "bits", auth.MinRSAKeyBits, "RSA key size")
	return cmd
}

func devTokenCmd() *cobra.Command {
	var (
		keyFile  string
		subject  string
		issuer   string
		roles    []string
		validFor time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token accepted by ratingd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keyPEM, err := auth.LoadKeyFromFile(keyFile)
			if err != nil {
				return err
			}
			svc, err := auth.NewJWTService(auth.JWTConfig{
				PrivateKeyPEM: string(keyPEM),
				Issuer:        issuer,
				Expiration:    validFor,
			})
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(subject, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&keyFile, "key", filepath.Join("keys", privateKeyFile), "PEM private key written by 'dev keys'")
	cmd.Flags().StringVar(&subject, "subject", "local-analyst", "token subject")
	cmd.Flags().StringVar(&issuer, "issuer", "rmbs-auth", "token issuer, must match JWT_ISSUER")
	cmd.Flags().StringSliceVar(&roles, "role", []string{auth.RoleCreditAnalyst}, "granted roles")
	cmd.Flags().DurationVar(&validFor, "valid-for", time.Hour, "token lifetime")
	return cmd
}
