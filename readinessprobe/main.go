package main

import (
	"time"

	"github.com/nineking424/kafka-dist/readinessprobe/probeconfig"
	"github.com/nineking424/kafka-dist/shared/kafkaclient"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Exec readiness probe for Kafka pods: exits zero once the broker answers a
// metadata request and the expected cluster has formed.
func main() {
	probeconfig.InitCLIFlags()
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	if viper.GetBool(probeconfig.DebugLogKey) {
		logrus.SetLevel(logrus.DebugLevel)
	}

	addr := viper.GetString(probeconfig.BootstrapServerKey)
	probe, err := kafkaclient.NewProbe(addr,
		viper.GetInt(probeconfig.ExpectedBrokersKey),
		viper.GetDuration(probeconfig.ProbeTimeoutKey))
	if err != nil {
		logrus.WithError(err).WithField("addr", addr).Fatal("broker not reachable")
	}
	defer probe.Close()

	if err := probe.Check(); err != nil {
		logrus.WithError(err).Fatal("broker not ready")
	}

	logrus.WithField("addr", addr).Debug("broker ready")
}
