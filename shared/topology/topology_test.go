package topology

import (
	"testing"

	"github.com/nineking424/kafka-dist/shared/errors"
	"github.com/stretchr/testify/suite"
)

type TopologySuite struct {
	suite.Suite
}

func (s *TopologySuite) clusterTopology() Topology {
	return Topology{
		Mode:                      ModeCluster,
		ControllerCount:           3,
		BrokerCount:               3,
		ClusterID:                 "ABC123",
		ExternalAdvertiseAddress:  "kafka.example.com",
		Namespace:                 "kafka",
		ControllerStatefulSetName: "kafka-controller",
		BrokerStatefulSetName:     "kafka-broker",
		CombinedStatefulSetName:   "kafka",
		HeadlessServiceName:       "kafka-headless",
		ClusterDomain:             DefaultClusterDomain,
		ClientPort:                DefaultClientPort,
		InternalPort:              DefaultInternalPort,
		ControllerPort:            DefaultControllerPort,
		LogDir:                    "/var/lib/kafka/data",
	}
}

func (s *TopologySuite) TestValidateClusterTopology() {
	s.Require().NoError(s.clusterTopology().Validate())
}

func (s *TopologySuite) TestValidateRejectsZeroControllers() {
	top := s.clusterTopology()
	top.ControllerCount = 0
	err := top.Validate()
	s.Require().Error(err)
	s.Require().True(errors.Is(err, ErrInvalidTopology))
}

func (s *TopologySuite) TestValidateRejectsZeroBrokers() {
	top := s.clusterTopology()
	top.BrokerCount = 0
	s.Require().True(errors.Is(top.Validate(), ErrInvalidTopology))
}

func (s *TopologySuite) TestValidateRejectsUnknownMode() {
	top := s.clusterTopology()
	top.Mode = "zookeeper"
	s.Require().True(errors.Is(top.Validate(), ErrInvalidTopology))
}

func (s *TopologySuite) TestValidateRejectsEmptyClusterID() {
	top := s.clusterTopology()
	top.ClusterID = ""
	s.Require().True(errors.Is(top.Validate(), ErrInvalidTopology))
}

func (s *TopologySuite) TestValidateRejectsMalformedExternalAddress() {
	top := s.clusterTopology()
	top.ExternalAdvertiseAddress = "kafka host with spaces"
	s.Require().True(errors.Is(top.Validate(), ErrInvalidTopology))
}

func (s *TopologySuite) TestValidateAcceptsIPAddress() {
	top := s.clusterTopology()
	top.ExternalAdvertiseAddress = "203.0.113.10"
	s.Require().NoError(top.Validate())
}

func (s *TopologySuite) TestValidateRejectsNegativeBandOffset() {
	top := s.clusterTopology()
	top.NodeIDBandOffset = -3
	s.Require().True(errors.Is(top.Validate(), ErrInvalidTopology))
}

func (s *TopologySuite) TestSingleModeIgnoresCounts() {
	top := s.clusterTopology()
	top.Mode = ModeSingle
	top.ControllerCount = 0
	top.BrokerCount = 0
	s.Require().NoError(top.Validate())
}

func (s *TopologySuite) TestPodFQDNUsesHeadlessService() {
	top := s.clusterTopology()
	s.Require().Equal(
		"kafka-broker-2.kafka-headless.kafka.svc.cluster.local",
		top.PodFQDN(RoleGroupBroker, 2),
	)
}

func (s *TopologySuite) TestQuorumVotersEnumeratesControllers() {
	voters := s.clusterTopology().QuorumVoters()
	s.Require().Len(voters, 3)
	s.Require().Equal("0@kafka-controller-0.kafka-headless.kafka.svc.cluster.local:29093", voters[0].String())
	s.Require().Equal("1@kafka-controller-1.kafka-headless.kafka.svc.cluster.local:29093", voters[1].String())
	s.Require().Equal("2@kafka-controller-2.kafka-headless.kafka.svc.cluster.local:29093", voters[2].String())
}

func (s *TopologySuite) TestQuorumVotersSingleMode() {
	top := s.clusterTopology()
	top.Mode = ModeSingle
	voters := top.QuorumVoters()
	s.Require().Len(voters, 1)
	s.Require().Equal("0@kafka-0.kafka-headless.kafka.svc.cluster.local:29093", voters[0].String())
}

func (s *TopologySuite) TestQuorumVotersHonorBandOffset() {
	top := s.clusterTopology()
	top.NodeIDBandOffset = 1
	voters := top.QuorumVoters()
	s.Require().Equal(1, voters[0].NodeID)
	s.Require().Equal(3, voters[2].NodeID)
}

func TestTopologySuite(t *testing.T) {
	suite.Run(t, new(TopologySuite))
}
