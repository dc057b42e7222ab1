package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/tlsutil"
)

// pingCmd queries the gRPC health service of a running ratingd.
func pingCmd() *cobra.Command {
	var (
		addr    string
		service string
		caFile  string
		useTLS  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that a ratingd instance is serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := insecure.NewCredentials()
			if useTLS || caFile != "" {
				var err error
				if creds, err = tlsutil.ClientCredentials(caFile); err != nil {
					return err
				}
			}

			status, err := checkHealth(cmd.Context(), addr, service, creds, timeout)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", addr, status)
			if status != healthpb.HealthCheckResponse_SERVING {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:9095", "ratingd gRPC address")
	cmd.Flags().StringVar(&service, "service", "", "health service name; empty checks the whole server")
	cmd.Flags().StringVar(&caFile, "ca", "", "CA certificate to trust; implies --tls")
	cmd.Flags().BoolVar(&useTLS, "tls", false, "connect with TLS using the system roots")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	return cmd
}

func checkHealth(
	ctx context.Context,
	addr, service string,
	creds credentials.TransportCredentials,
	timeout time.Duration,
) (healthpb.HealthCheckResponse_ServingStatus, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("health check %s: %w", addr, err)
	}
	return resp.GetStatus(), nil
}
