package probeconfig

import (
	"strings"
	"time"

	"github.com/nineking424/kafka-dist/shared"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BootstrapServerKey     = "bootstrap-server" // Broker address the probe dials, normally the pod's own listener
	BootstrapServerDefault = "localhost:9092"
	ExpectedBrokersKey     = "expected-brokers" // Brokers that must be visible before the probe succeeds. Zero means any answer is enough
	ExpectedBrokersDefault = 0
	ProbeTimeoutKey        = "probe-timeout"
	ProbeTimeoutDefault    = 5 * time.Second
	DebugLogKey            = "debug"
	DebugLogDefault        = false
	EnvPrefix              = "KAFKA_DIST"
)

func init() {
	viper.SetDefault(BootstrapServerKey, BootstrapServerDefault)
	viper.SetDefault(ExpectedBrokersKey, ExpectedBrokersDefault)
	viper.SetDefault(ProbeTimeoutKey, ProbeTimeoutDefault)
	viper.SetDefault(DebugLogKey, DebugLogDefault)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func InitCLIFlags() {
	pflag.String(BootstrapServerKey, BootstrapServerDefault, "Broker address the probe dials")
	pflag.Int(ExpectedBrokersKey, ExpectedBrokersDefault, "Brokers that must be visible before the probe succeeds, 0 accepts any answer")
	pflag.Duration(ProbeTimeoutKey, ProbeTimeoutDefault, "Per-request network timeout")
	pflag.Bool(DebugLogKey, DebugLogDefault, "Enable debug logging")
	pflag.Parse()

	shared.Must(viper.BindPFlags(pflag.CommandLine))
}
