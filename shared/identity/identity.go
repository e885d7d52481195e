package identity

import (
	"fmt"
	"strings"

	"github.com/nineking424/kafka-dist/shared/configdoc"
	"github.com/nineking424/kafka-dist/shared/errors"
	"github.com/nineking424/kafka-dist/shared/topology"
	"github.com/samber/lo"
)

// Listener names as they appear in listeners, advertised.listeners and
// listener.security.protocol.map. All listeners are PLAINTEXT; TLS
// termination happens outside the broker.
const (
	ListenerController = "CONTROLLER"
	ListenerInternal   = "INTERNAL"
	ListenerExternal   = "EXTERNAL"
)

type Listener struct {
	Name     string
	BindPort int
}

type AdvertisedListener struct {
	Name string
	Host string
	Port int
}

// NodeIdentity is the derived identity of one running node: which role it
// plays, its cluster-wide unique node ID and the listeners it binds and
// advertises. It is a pure function of the node's ordinal and the topology.
type NodeIdentity struct {
	Role                topology.RoleGroup
	Ordinal             int
	NodeID              int
	Listeners           []Listener
	AdvertisedListeners []AdvertisedListener
}

// Result is the outcome of materializing a node's configuration: the
// identity, the finalized configuration document handed to the Kafka
// process, and whether stale lock reconciliation must run before start.
type Result struct {
	Identity          NodeIdentity
	Document          *configdoc.Document
	LockClearRequired bool
}

// Materialize derives the complete configuration document for the node at
// the given ordinal within the given role group. It performs no I/O and is
// deterministic: identical inputs yield byte-identical documents.
func Materialize(ordinal int, group topology.RoleGroup, top topology.Topology) (*Result, error) {
	if err := top.Validate(); err != nil {
		return nil, errors.Wrap(err)
	}
	if ordinal < 0 {
		return nil, errors.Errorf("%w: ordinal must be non-negative, got %d", topology.ErrInvalidTopology, ordinal)
	}

	nodeIdentity, err := deriveIdentity(ordinal, group, top)
	if err != nil {
		return nil, errors.Wrap(err)
	}

	return &Result{
		Identity:          nodeIdentity,
		Document:          buildDocument(nodeIdentity, top),
		LockClearRequired: true,
	}, nil
}

func deriveIdentity(ordinal int, group topology.RoleGroup, top topology.Topology) (NodeIdentity, error) {
	if top.Mode == topology.ModeSingle {
		// Single mode runs exactly one combined node. Anything else is an
		// orchestrator contract violation, asserted here defensively.
		if group != topology.RoleGroupCombined {
			return NodeIdentity{}, errors.Errorf("%w: role group %q is invalid in single mode", topology.ErrInvalidTopology, group)
		}
		if ordinal > 0 {
			return NodeIdentity{}, errors.Errorf("%w: single mode supports exactly one replica, got ordinal %d", topology.ErrInvalidTopology, ordinal)
		}
		return newIdentity(topology.RoleGroupCombined, ordinal, top.NodeIDBandOffset+ordinal, top), nil
	}

	switch group {
	case topology.RoleGroupController:
		if ordinal >= top.ControllerCount {
			return NodeIdentity{}, errors.Errorf("%w: controller ordinal %d out of range, controllerCount is %d", topology.ErrInvalidTopology, ordinal, top.ControllerCount)
		}
		return newIdentity(group, ordinal, top.NodeIDBandOffset+ordinal, top), nil
	case topology.RoleGroupBroker:
		if ordinal >= top.BrokerCount {
			return NodeIdentity{}, errors.Errorf("%w: broker ordinal %d out of range, brokerCount is %d", topology.ErrInvalidTopology, ordinal, top.BrokerCount)
		}
		// Brokers occupy the band immediately after the controllers, which
		// keeps node IDs globally unique across both StatefulSets without
		// any coordination beyond knowing controllerCount.
		return newIdentity(group, ordinal, top.NodeIDBandOffset+top.ControllerCount+ordinal, top), nil
	default:
		return NodeIdentity{}, errors.Errorf("%w: role group %q is invalid in cluster mode", topology.ErrInvalidTopology, group)
	}
}

func newIdentity(group topology.RoleGroup, ordinal int, nodeID int, top topology.Topology) NodeIdentity {
	nodeIdentity := NodeIdentity{
		Role:      group,
		Ordinal:   ordinal,
		NodeID:    nodeID,
		Listeners: []Listener{{Name: ListenerController, BindPort: top.ControllerPort}},
	}

	if group == topology.RoleGroupController {
		return nodeIdentity
	}

	nodeIdentity.Listeners = append(nodeIdentity.Listeners,
		Listener{Name: ListenerInternal, BindPort: top.InternalPort},
		Listener{Name: ListenerExternal, BindPort: top.ClientPort},
	)
	nodeIdentity.AdvertisedListeners = []AdvertisedListener{
		{Name: ListenerInternal, Host: top.PodFQDN(group, ordinal), Port: top.InternalPort},
		{Name: ListenerExternal, Host: top.ExternalAdvertiseAddress, Port: top.ClientPort},
	}

	return nodeIdentity
}

func buildDocument(nodeIdentity NodeIdentity, top topology.Topology) *configdoc.Document {
	doc := configdoc.New()
	doc.Setf("node.id", "%d", nodeIdentity.NodeID)
	doc.Set("process.roles", processRoles(nodeIdentity.Role))
	doc.Set("controller.quorum.voters", quorumVotersValue(top))
	doc.Set("controller.listener.names", ListenerController)
	doc.Set("listeners", listenersValue(nodeIdentity.Listeners))
	doc.Set("listener.security.protocol.map", securityProtocolMap(nodeIdentity.Listeners))
	if len(nodeIdentity.AdvertisedListeners) > 0 {
		doc.Set("advertised.listeners", advertisedListenersValue(nodeIdentity.AdvertisedListeners))
		doc.Set("inter.broker.listener.name", ListenerInternal)
	}
	doc.Set("log.dirs", top.LogDir)
	doc.Set("cluster.id", top.ClusterID)
	return doc
}

func processRoles(role topology.RoleGroup) string {
	switch role {
	case topology.RoleGroupCombined:
		return "broker,controller"
	case topology.RoleGroupController:
		return "controller"
	default:
		return "broker"
	}
}

func quorumVotersValue(top topology.Topology) string {
	return strings.Join(lo.Map(top.QuorumVoters(), func(voter topology.Voter, _ int) string {
		return voter.String()
	}), ",")
}

func listenersValue(listeners []Listener) string {
	return strings.Join(lo.Map(listeners, func(listener Listener, _ int) string {
		return fmt.Sprintf("%s://:%d", listener.Name, listener.BindPort)
	}), ",")
}

func advertisedListenersValue(listeners []AdvertisedListener) string {
	return strings.Join(lo.Map(listeners, func(listener AdvertisedListener, _ int) string {
		return fmt.Sprintf("%s://%s:%d", listener.Name, listener.Host, listener.Port)
	}), ",")
}

func securityProtocolMap(listeners []Listener) string {
	return strings.Join(lo.Map(listeners, func(listener Listener, _ int) string {
		return fmt.Sprintf("%s:PLAINTEXT", listener.Name)
	}), ",")
}
