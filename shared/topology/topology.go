package topology

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/nineking424/kafka-dist/shared/errors"
	"github.com/samber/lo"
)

type Mode string

const (
	ModeSingle  Mode = "single"
	ModeCluster Mode = "cluster"
)

type RoleGroup string

const (
	RoleGroupController RoleGroup = "controller"
	RoleGroupBroker     RoleGroup = "broker"
	RoleGroupCombined   RoleGroup = "combined"
)

const (
	DefaultClientPort     = 9092
	DefaultInternalPort   = 19092
	DefaultControllerPort = 29093

	DefaultClusterDomain = "cluster.local"
)

// ErrInvalidTopology indicates a malformed or internally inconsistent
// topology. It is fatal to the current start attempt and never retried.
var ErrInvalidTopology = errors.NewSentinelError("invalid topology")

// Topology is the externally supplied description of one logical Kafka
// cluster. It is immutable for a given deployment and identical across every
// node, which is what keeps the nodes' derived configuration consistent
// without runtime coordination.
type Topology struct {
	Mode            Mode
	ControllerCount int
	BrokerCount     int

	// ClusterID is shared by all nodes of one logical cluster. A node holding
	// a different value than its peers is a fatal misconfiguration.
	ClusterID string

	// ExternalAdvertiseAddress is the client-facing host advertised on the
	// EXTERNAL listener, typically the ingress or LoadBalancer hostname.
	ExternalAdvertiseAddress string

	Namespace                 string
	ControllerStatefulSetName string
	BrokerStatefulSetName     string
	CombinedStatefulSetName   string
	HeadlessServiceName       string
	ClusterDomain             string

	// NodeIDBandOffset is where the controller node-ID band starts. Brokers
	// band starts at NodeIDBandOffset+ControllerCount. Kept configurable
	// rather than hardcoded to zero.
	NodeIDBandOffset int

	ClientPort     int
	InternalPort   int
	ControllerPort int

	LogDir string
}

func (t Topology) Validate() error {
	switch t.Mode {
	case ModeSingle, ModeCluster:
	default:
		return errors.Errorf("%w: mode must be %q or %q, got %q", ErrInvalidTopology, ModeSingle, ModeCluster, t.Mode)
	}

	if t.Mode == ModeCluster {
		if t.ControllerCount < 1 {
			return errors.Errorf("%w: controllerCount must be >= 1 in cluster mode, got %d", ErrInvalidTopology, t.ControllerCount)
		}
		if t.BrokerCount < 1 {
			return errors.Errorf("%w: brokerCount must be >= 1 in cluster mode, got %d", ErrInvalidTopology, t.BrokerCount)
		}
	}

	if t.ClusterID == "" {
		return errors.Errorf("%w: clusterId must not be empty", ErrInvalidTopology)
	}

	if !govalidator.IsDNSName(t.ExternalAdvertiseAddress) && !govalidator.IsIP(t.ExternalAdvertiseAddress) {
		return errors.Errorf("%w: externalAdvertiseAddress %q is neither a DNS name nor an IP", ErrInvalidTopology, t.ExternalAdvertiseAddress)
	}

	if t.NodeIDBandOffset < 0 {
		return errors.Errorf("%w: node ID band offset must be non-negative, got %d", ErrInvalidTopology, t.NodeIDBandOffset)
	}

	return nil
}

// StatefulSetName returns the name of the StatefulSet hosting the given role
// group, which is the prefix of each member pod's stable hostname.
func (t Topology) StatefulSetName(group RoleGroup) string {
	switch group {
	case RoleGroupController:
		return t.ControllerStatefulSetName
	case RoleGroupBroker:
		return t.BrokerStatefulSetName
	default:
		return t.CombinedStatefulSetName
	}
}

// PodFQDN returns the restart-stable DNS name of the pod at the given ordinal
// within the group's StatefulSet, via the headless service. Pod IPs are never
// used; they do not survive restarts.
func (t Topology) PodFQDN(group RoleGroup, ordinal int) string {
	return fmt.Sprintf("%s-%d.%s.%s.svc.%s",
		t.StatefulSetName(group), ordinal, t.HeadlessServiceName, t.Namespace, t.ClusterDomain)
}

// Voter is one controller-role member of the KRaft metadata quorum.
type Voter struct {
	NodeID int
	Host   string
	Port   int
}

func (v Voter) String() string {
	return fmt.Sprintf("%d@%s:%d", v.NodeID, v.Host, v.Port)
}

// QuorumVoters enumerates the metadata quorum. It is a pure function of the
// topology alone, never of any node's own ordinal, so every node derives the
// exact same voter list.
func (t Topology) QuorumVoters() []Voter {
	if t.Mode == ModeSingle {
		return []Voter{{
			NodeID: t.NodeIDBandOffset,
			Host:   t.PodFQDN(RoleGroupCombined, 0),
			Port:   t.ControllerPort,
		}}
	}

	return lo.Map(lo.Range(t.ControllerCount), func(ordinal int, _ int) Voter {
		return Voter{
			NodeID: t.NodeIDBandOffset + ordinal,
			Host:   t.PodFQDN(RoleGroupController, ordinal),
			Port:   t.ControllerPort,
		}
	})
}
