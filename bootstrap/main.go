package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nineking424/kafka-dist/bootstrap/bootstrapconfig"
	"github.com/nineking424/kafka-dist/shared/clusterinfo"
	"github.com/nineking424/kafka-dist/shared/identity"
	"github.com/nineking424/kafka-dist/shared/k8sconf"
	"github.com/nineking424/kafka-dist/shared/storagestate"
	"github.com/nineking424/kafka-dist/shared/topology"
	"github.com/nineking424/kafka-dist/shared/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"k8s.io/client-go/kubernetes"
)

func MustGetEnvVar(name string) string {
	value := viper.GetString(name)
	if value == "" {
		logrus.Fatalf("%s environment variable is required", name)
	}

	return value
}

func resolveOrdinal() int {
	if ordinal := viper.GetInt(bootstrapconfig.OrdinalOverrideKey); ordinal >= 0 {
		return ordinal
	}

	podName := viper.GetString(bootstrapconfig.PodNameKey)
	if podName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logrus.WithError(err).Fatal("pod name not configured and hostname unavailable")
		}
		podName = hostname
	}

	ordinal, err := identity.OrdinalFromPodName(podName)
	if err != nil {
		logrus.WithError(err).Fatal("failed resolving ordinal from pod name")
	}
	return ordinal
}

func resolveClusterID(ctx context.Context, top topology.Topology) string {
	if !viper.GetBool(bootstrapconfig.UseClusterInfoConfigMapKey) {
		return top.ClusterID
	}

	namespace := MustGetEnvVar(bootstrapconfig.PodNamespaceKey)

	conf, err := k8sconf.KubernetesConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed loading kubernetes configuration")
	}
	client, err := kubernetes.NewForConfig(conf)
	if err != nil {
		logrus.WithError(err).Fatal("failed creating kubernetes client")
	}

	clusterID, err := clusterinfo.GetOrCreateClusterID(ctx, client, namespace, top.ClusterID)
	if err != nil {
		logrus.WithError(err).Fatal("failed resolving shared cluster id")
	}
	if top.ClusterID != "" && clusterID != top.ClusterID {
		// Peers already agreed on a different id; materializing with ours
		// would produce an inconsistent cluster.
		logrus.Fatalf("configured cluster id %q conflicts with published cluster id %q", top.ClusterID, clusterID)
	}

	return clusterID
}

func main() {
	bootstrapconfig.InitCLIFlags()
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	if viper.GetBool(bootstrapconfig.DebugLogKey) {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.WithField("version", version.Version()).Info("kafka node bootstrap starting")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	top := bootstrapconfig.Topology()
	group := topology.RoleGroup(viper.GetString(bootstrapconfig.RoleGroupKey))
	if top.Mode == topology.ModeSingle {
		group = topology.RoleGroupCombined
	}
	top.ClusterID = resolveClusterID(ctx, top)

	ordinal := resolveOrdinal()
	seq := newSequence()

	result, err := identity.Materialize(ordinal, group, top)
	if err != nil {
		logrus.WithError(err).Fatal("failed materializing node configuration")
	}
	seq.advance(phaseIdentityComputed)
	logrus.WithFields(logrus.Fields{
		"nodeID":       result.Identity.NodeID,
		"role":         result.Identity.Role,
		"ordinal":      ordinal,
		"quorumVoters": len(top.QuorumVoters()),
	}).Info("node identity computed")

	if result.LockClearRequired {
		reconcileCtx, reconcileCancel := context.WithTimeout(ctx, viper.GetDuration(bootstrapconfig.StorageTimeoutKey))
		defer reconcileCancel()

		reconcileResult, err := storagestate.Reconcile(reconcileCtx, top.LogDir, top.ClusterID)
		if err != nil {
			logrus.WithError(err).Fatal("failed reconciling log directory")
		}
		if reconcileResult.Cleared {
			logrus.WithField("logDir", top.LogDir).Warn("cleared stale lock from previous unclean shutdown")
		}
	}
	seq.advance(phaseStorageReconciled)

	outputDir := viper.GetString(bootstrapconfig.OutputDirKey)
	if err := writeOutputs(outputDir, result.Document); err != nil {
		logrus.WithError(err).Fatal("failed writing configuration files")
	}

	seq.advance(phaseReady)
	logrus.WithFields(logrus.Fields{
		"outputDir":  outputDir,
		"properties": result.Document.Len(),
	}).Info("node configuration materialized, handing off to kafka")
}
