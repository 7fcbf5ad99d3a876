package main

import (
	"fmt"
	"io"

	"github.com/gocql/gocql"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/scyllacdc"
	v1 "github.com/arloliu/scyllacdc/adapter/cql/v1"
	"github.com/arloliu/scyllacdc/contrib/logging/zaplog"
)

func newPingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Open a session and query system.local",
		Long: `Open a CDC reader session with the given settings, read the coordinator's
release version, cluster name and datacenter from system.local, then close
the session.

Example:
  cdc-ping ping --contact-point 10.0.0.1:9042 \
    --truststore /etc/cdc/truststore.jks --truststore-password changeit \
    --keystore /etc/cdc/client.p12 --keystore-password changeit --keystore-type PKCS12`,
		Args: cobra.NoArgs,
	}
	registerFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v, err := newSettings(cmd.Flags())
		if err != nil {
			return err
		}

		logger, err := newLogger(v.GetString(keyLogLevel), v.GetString(keyLogFormat))
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		return runPing(v, zaplog.New(logger), cmd.OutOrStdout())
	}

	return cmd
}

func runPing(v *viper.Viper, logger scyllacdc.Logger, out io.Writer) error {
	cfg, err := buildConfiguration(v)
	if err != nil {
		return err
	}

	timeout := v.GetDuration(keyTimeout)
	opts := []scyllacdc.Option{
		scyllacdc.WithLogger(logger),
		scyllacdc.WithDriver(v1.NewDriver(v1.WithClusterConfig(func(c *gocql.ClusterConfig) {
			c.Timeout = timeout
			c.ConnectTimeout = timeout
		}))),
	}
	if v.GetBool(keyVerifyHost) {
		opts = append(opts, scyllacdc.WithHostVerification())
	}

	session, err := scyllacdc.Bootstrap(cfg, opts...)
	if err != nil {
		return err
	}
	defer session.Close()

	var release, clusterName, dc string
	err = session.SystemQuery("SELECT release_version, cluster_name, data_center FROM system.local").
		Scan(&release, &clusterName, &dc)
	if err != nil {
		return fmt.Errorf("query system.local: %w", err)
	}

	fmt.Fprintf(out, "cluster:     %s\n", clusterName)
	fmt.Fprintf(out, "datacenter:  %s\n", dc)
	fmt.Fprintf(out, "release:     %s\n", release)
	fmt.Fprintf(out, "auth:        %s\n", cfg.Auth().Kind())
	fmt.Fprintf(out, "consistency: %s\n", session.ConsistencyLevel())

	return nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}
