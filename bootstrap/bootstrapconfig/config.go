package bootstrapconfig

import (
	"strings"
	"time"

	"github.com/nineking424/kafka-dist/shared"
	"github.com/nineking424/kafka-dist/shared/topology"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeKey                          = "mode" // Deployment mode: single or cluster
	ModeDefault                      = string(topology.ModeSingle)
	RoleGroupKey                     = "role-group" // Role group this node belongs to: controller, broker or combined
	RoleGroupDefault                 = string(topology.RoleGroupCombined)
	PodNameKey                       = "pod-name" // StatefulSet pod name, source of the node's ordinal
	PodNamespaceKey                  = "pod-namespace"
	OrdinalOverrideKey               = "ordinal-override" // Explicit ordinal, bypasses pod-name parsing. Negative means unset
	OrdinalOverrideDefault           = -1
	ControllerCountKey               = "controller-count"
	ControllerCountDefault           = 1
	BrokerCountKey                   = "broker-count"
	BrokerCountDefault               = 1
	ClusterIDKey                     = "cluster-id"
	ExternalAdvertiseAddressKey      = "external-advertise-address" // Host clients are told to reconnect to on the EXTERNAL listener
	ControllerStatefulSetNameKey     = "controller-statefulset-name"
	ControllerStatefulSetNameDefault = "kafka-controller"
	BrokerStatefulSetNameKey         = "broker-statefulset-name"
	BrokerStatefulSetNameDefault     = "kafka-broker"
	CombinedStatefulSetNameKey       = "statefulset-name" // StatefulSet name in single mode
	CombinedStatefulSetNameDefault   = "kafka"
	HeadlessServiceNameKey           = "headless-service-name"
	HeadlessServiceNameDefault       = "kafka-headless"
	ClusterDomainKey                 = "cluster-domain"
	ClusterDomainDefault             = topology.DefaultClusterDomain
	NodeIDBandOffsetKey              = "node-id-band-offset" // Where the controller node-ID band starts
	NodeIDBandOffsetDefault          = 0
	ClientPortKey                    = "client-port"
	ClientPortDefault                = topology.DefaultClientPort
	InternalPortKey                  = "internal-port"
	InternalPortDefault              = topology.DefaultInternalPort
	ControllerPortKey                = "controller-port"
	ControllerPortDefault            = topology.DefaultControllerPort
	LogDirKey                        = "log-dir" // Mount point of the node's persistent volume
	LogDirDefault                    = "/var/lib/kafka/data"
	OutputDirKey                     = "output-dir" // Where the materialized configuration is written
	OutputDirDefault                 = "/opt/kafka/generated"
	UseClusterInfoConfigMapKey       = "use-cluster-info-configmap" // Resolve the shared cluster id through an immutable ConfigMap
	UseClusterInfoConfigMapDefault   = false
	StorageTimeoutKey                = "storage-timeout" // Upper bound on log-dir reconciliation; exceeding it is treated as storage unavailable
	StorageTimeoutDefault            = 10 * time.Second
	DebugLogKey                      = "debug" // Whether to enable debug logging
	DebugLogDefault                  = false
	EnvPrefix                        = "KAFKA_DIST"
)

func init() {
	viper.SetDefault(ModeKey, ModeDefault)
	viper.SetDefault(RoleGroupKey, RoleGroupDefault)
	viper.SetDefault(OrdinalOverrideKey, OrdinalOverrideDefault)
	viper.SetDefault(ControllerCountKey, ControllerCountDefault)
	viper.SetDefault(BrokerCountKey, BrokerCountDefault)
	viper.SetDefault(ControllerStatefulSetNameKey, ControllerStatefulSetNameDefault)
	viper.SetDefault(BrokerStatefulSetNameKey, BrokerStatefulSetNameDefault)
	viper.SetDefault(CombinedStatefulSetNameKey, CombinedStatefulSetNameDefault)
	viper.SetDefault(HeadlessServiceNameKey, HeadlessServiceNameDefault)
	viper.SetDefault(ClusterDomainKey, ClusterDomainDefault)
	viper.SetDefault(NodeIDBandOffsetKey, NodeIDBandOffsetDefault)
	viper.SetDefault(ClientPortKey, ClientPortDefault)
	viper.SetDefault(InternalPortKey, InternalPortDefault)
	viper.SetDefault(ControllerPortKey, ControllerPortDefault)
	viper.SetDefault(LogDirKey, LogDirDefault)
	viper.SetDefault(OutputDirKey, OutputDirDefault)
	viper.SetDefault(UseClusterInfoConfigMapKey, UseClusterInfoConfigMapDefault)
	viper.SetDefault(StorageTimeoutKey, StorageTimeoutDefault)
	viper.SetDefault(DebugLogKey, DebugLogDefault)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// InitCLIFlags binds CLI flags for local runs. In the pod, everything is
// supplied through KAFKA_DIST_* environment variables.
func InitCLIFlags() {
	pflag.String(ModeKey, ModeDefault, "Deployment mode: single or cluster")
	pflag.String(RoleGroupKey, RoleGroupDefault, "Role group this node belongs to: controller, broker or combined")
	pflag.String(PodNameKey, "", "StatefulSet pod name, source of the node's ordinal")
	pflag.String(PodNamespaceKey, "", "Namespace the node runs in")
	pflag.Int(OrdinalOverrideKey, OrdinalOverrideDefault, "Explicit ordinal, bypasses pod-name parsing")
	pflag.Int(ControllerCountKey, ControllerCountDefault, "Number of controller replicas")
	pflag.Int(BrokerCountKey, BrokerCountDefault, "Number of broker replicas")
	pflag.String(ClusterIDKey, "", "Cluster id shared by every node of the cluster")
	pflag.String(ExternalAdvertiseAddressKey, "", "Host clients are told to reconnect to on the EXTERNAL listener")
	pflag.String(LogDirKey, LogDirDefault, "Mount point of the node's persistent volume")
	pflag.String(OutputDirKey, OutputDirDefault, "Where the materialized configuration is written")
	pflag.Bool(UseClusterInfoConfigMapKey, UseClusterInfoConfigMapDefault, "Resolve the shared cluster id through an immutable ConfigMap")
	pflag.Duration(StorageTimeoutKey, StorageTimeoutDefault, "Upper bound on log-dir reconciliation")
	pflag.Bool(DebugLogKey, DebugLogDefault, "Enable debug logging")
	pflag.Parse()

	shared.Must(viper.BindPFlags(pflag.CommandLine))
}

// Topology assembles the immutable cluster topology from the loaded
// configuration. The cluster id may still be empty at this point when it is
// resolved through the cluster-info ConfigMap afterwards.
func Topology() topology.Topology {
	return topology.Topology{
		Mode:                      topology.Mode(viper.GetString(ModeKey)),
		ControllerCount:           viper.GetInt(ControllerCountKey),
		BrokerCount:               viper.GetInt(BrokerCountKey),
		ClusterID:                 viper.GetString(ClusterIDKey),
		ExternalAdvertiseAddress:  viper.GetString(ExternalAdvertiseAddressKey),
		Namespace:                 viper.GetString(PodNamespaceKey),
		ControllerStatefulSetName: viper.GetString(ControllerStatefulSetNameKey),
		BrokerStatefulSetName:     viper.GetString(BrokerStatefulSetNameKey),
		CombinedStatefulSetName:   viper.GetString(CombinedStatefulSetNameKey),
		HeadlessServiceName:       viper.GetString(HeadlessServiceNameKey),
		ClusterDomain:             viper.GetString(ClusterDomainKey),
		NodeIDBandOffset:          viper.GetInt(NodeIDBandOffsetKey),
		ClientPort:                viper.GetInt(ClientPortKey),
		InternalPort:              viper.GetInt(InternalPortKey),
		ControllerPort:            viper.GetInt(ControllerPortKey),
		LogDir:                    viper.GetString(LogDirKey),
	}
}
