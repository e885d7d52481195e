package kafkaclient

import (
	"time"

	"github.com/Shopify/sarama"
	"github.com/nineking424/kafka-dist/shared/errors"
	"github.com/sirupsen/logrus"
)

//go:generate go run go.uber.org/mock/mockgen -package kafkaclientmocks -destination ./mocks/mock_cluster_admin.go -source=probe.go ClusterAdmin

// ClusterAdmin is the subset of sarama.ClusterAdmin the probe needs.
type ClusterAdmin interface {
	DescribeCluster() (brokers []*sarama.Broker, controllerID int32, err error)
	Close() error
}

// ErrClusterNotReady indicates the broker answered but the visible cluster
// does not yet match the expected topology.
var ErrClusterNotReady = errors.NewSentinelError("cluster not ready")

// Probe checks a broker's readiness over the Kafka protocol itself: the
// broker must answer a metadata request and, when an expectation is set, the
// visible cluster must have formed.
type Probe struct {
	admin           ClusterAdmin
	expectedBrokers int
}

func NewProbe(addr string, expectedBrokers int, timeout time.Duration) (*Probe, error) {
	logrus.WithField("addr", addr).Debug("connecting to kafka broker")

	config := sarama.NewConfig()
	config.Version = sarama.V3_0_0_0
	config.Net.DialTimeout = timeout
	config.Net.ReadTimeout = timeout
	config.Net.WriteTimeout = timeout

	admin, err := sarama.NewClusterAdmin([]string{addr}, config)
	if err != nil {
		return nil, errors.Wrap(err)
	}

	return NewProbeWithAdmin(admin, expectedBrokers), nil
}

func NewProbeWithAdmin(admin ClusterAdmin, expectedBrokers int) *Probe {
	return &Probe{admin: admin, expectedBrokers: expectedBrokers}
}

func (p *Probe) Check() error {
	brokers, controllerID, err := p.admin.DescribeCluster()
	if err != nil {
		return errors.Errorf("%w: describe cluster failed: %w", ErrClusterNotReady, err)
	}

	if controllerID < 0 {
		return errors.Errorf("%w: no active controller", ErrClusterNotReady)
	}

	if p.expectedBrokers > 0 && len(brokers) < p.expectedBrokers {
		return errors.Errorf("%w: %d of %d expected brokers registered", ErrClusterNotReady, len(brokers), p.expectedBrokers)
	}

	return nil
}

func (p *Probe) Close() {
	if err := p.admin.Close(); err != nil {
		logrus.WithError(err).Error("error closing kafka admin client")
	}
}
