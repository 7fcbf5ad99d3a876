// Package scyllacdc opens secured, authenticated sessions to a ScyllaDB or
// Cassandra cluster for reading a change-data-capture (CDC) log.
//
// A session is described by a Configuration, built with a Builder that
// validates every argument, and opened with Bootstrap.
//
// # Key Features
//
//   - Validating Builder: contact points, authentication, consistency and
//     datacenter affinity, frozen into an immutable Configuration
//   - Exclusive Authentication: credentials or mutual-TLS client certificates,
//     never both; the last selection wins
//   - Store Formats: JKS, PKCS#12 and PEM trust and key stores
//   - DC Affinity: DC-aware round-robin when a local datacenter is set
//   - Driver Agnostic: gocql v1 (default) or the Apache gocql v2 driver
//
// # Basic Usage
//
//	b := scyllacdc.NewBuilder()
//	if err := b.AddContactPoint("10.0.0.1", 9042); err != nil {
//	    return err
//	}
//	if err := b.WithClientCertAuth(
//	    "/etc/cdc/truststore.jks", "changeit", "JKS",
//	    "/etc/cdc/client.p12", "changeit", "PKCS12",
//	); err != nil {
//	    return err
//	}
//	_ = b.WithLocalDCName("dc1")
//
//	cfg, err := b.Build()
//	if err != nil {
//	    return err
//	}
//
//	session, err := scyllacdc.Bootstrap(cfg)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	iter := session.Query("SELECT * FROM ks.orders_scylla_cdc_log WHERE \"cdc$stream_id\" = ?", streamID).Iter()
//
// # Consistency
//
// Session.Query applies the configured consistency level (Quorum by
// default). Session.SystemQuery always uses LOCAL_ONE and is meant for
// system and metadata tables.
//
// # Ports
//
// Sessions use port 9042. With client certificate auth the session uses
// the TLS port 9142, and contact points declared on 9042 are dialed on
// 9142 as well. Contact points with any other port keep it.
//
// # Error Handling
//
// Every error wraps one of the sentinels in the types package:
//
//   - types.ErrInvalidArgument: rejected builder input (*types.ArgumentError)
//   - types.ErrSecurityInitialization: unusable trust or key store (*types.SecurityError)
//   - types.ErrConnection: the driver could not open the cluster or session (*types.ConnectionError)
//   - types.ErrIllegalState: internal invariant violated
//   - types.ErrSessionClosed: query on a closed session
//
// Check errors using errors.Is and errors.As:
//
//	session, err := scyllacdc.Bootstrap(cfg)
//	if errors.Is(err, types.ErrConnection) {
//	    // retry the whole bootstrap after a backoff
//	}
//
// Bootstrap never retries internally. Resources opened before a failure
// are released before the error is returned.
//
// # File Configuration
//
// LoadConfig reads the same settings from YAML; see FileConfig.
package scyllacdc
