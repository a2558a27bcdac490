// Package main implements liam-keygen, which generates the ECDSA P-256
// key pair used for LIAM API request signing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/liam-go/pkg/signer"
)

var (
	privatePath string
	publicPath  string
	force       bool

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "liam-keygen",
	Short: "Generate an ECDSA P-256 key pair for LIAM API authentication",
	Long: `liam-keygen generates the P-256 key pair used to sign LIAM API requests.

The private key (PKCS8 PEM) stays with you and is loaded by the client;
the public key (PKIX PEM) is submitted once during connector registration.

Examples:
  # Generate into the default files
  liam-keygen

  # Custom paths, overwriting existing files
  liam-keygen --private my_private.pem --public my_public.pem --force`,
	Version: version,
	RunE:    runKeygen,
}

func init() {
	rootCmd.Flags().StringVarP(&privatePath, "private", "p", "private_key.pem", "path for the private key")
	rootCmd.Flags().StringVarP(&publicPath, "public", "u", "public_key.pem", "path for the public key")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	if !force {
		for _, path := range []string{privatePath, publicPath} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
	}

	pair, err := signer.Generate()
	if err != nil {
		return err
	}

	// Private key is secret material; never group-readable.
	if err := os.WriteFile(privatePath, pair.PrivatePEM, 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, pair.PublicPEM, 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}

	fmt.Printf("Private key saved to: %s\n", privatePath)
	fmt.Printf("Public key saved to:  %s\n", publicPath)
	fmt.Println()
	fmt.Println("Use the public key when registering your connector.")
	fmt.Println("Keep the private key secure and never commit it to version control.")
	return nil
}
