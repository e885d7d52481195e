package clusterinfo

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/nineking424/kafka-dist/shared/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	v1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

const (
	ClusterInfoConfigMapName = "kafka-cluster-info"
	ClusterIDKeyName         = "cluster.id"
)

// NewKRaftClusterID generates a cluster id in the format Kafka's own
// kafka-storage tool produces: a random UUID as 22 characters of unpadded
// url-safe base64.
func NewKRaftClusterID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// GetClusterID fetches the shared cluster id from the cluster-info ConfigMap
// in the given namespace.
func GetClusterID(ctx context.Context, client kubernetes.Interface, namespace string) (string, error) {
	configMap, err := client.CoreV1().ConfigMaps(namespace).Get(ctx, ClusterInfoConfigMapName, metav1.GetOptions{})
	if err != nil {
		return "", errors.Wrap(err)
	}

	clusterID, ok := configMap.Data[ClusterIDKeyName]
	if !ok || clusterID == "" {
		// Should never happen since the config map is created immutable with
		// the key set.
		return "", errors.Errorf("no cluster id found in %s config map", ClusterInfoConfigMapName)
	}

	return clusterID, nil
}

// SetClusterID publishes the given cluster id as an immutable ConfigMap. If
// another node won the race to create it, the already-published value is
// returned instead; first writer wins and every other node must agree.
func SetClusterID(ctx context.Context, client kubernetes.Interface, namespace string, clusterID string) (string, error) {
	_, err := client.CoreV1().ConfigMaps(namespace).Create(ctx, &v1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      ClusterInfoConfigMapName,
			Namespace: namespace,
		},
		Immutable: lo.ToPtr(true),
		Data:      map[string]string{ClusterIDKeyName: clusterID},
	}, metav1.CreateOptions{})

	if err != nil {
		if k8serrors.IsAlreadyExists(err) || k8serrors.IsConflict(err) {
			return GetClusterID(ctx, client, namespace)
		}
		return "", errors.Wrap(err)
	}

	return clusterID, nil
}

// GetOrCreateClusterID resolves the cluster id every node must share. An
// existing published id always wins; otherwise the proposed id is published,
// and when no id was proposed a fresh one is generated first.
func GetOrCreateClusterID(ctx context.Context, client kubernetes.Interface, namespace string, proposed string) (string, error) {
	clusterID, err := GetClusterID(ctx, client, namespace)
	if err == nil {
		return clusterID, nil
	}

	if k8sErr := &(k8serrors.StatusError{}); !errors.As(err, &k8sErr) || !k8serrors.IsNotFound(k8sErr) {
		return "", errors.Wrap(err)
	}

	if proposed == "" {
		proposed = NewKRaftClusterID()
		logrus.WithField("clusterID", proposed).Info("no cluster id supplied, generated a new one")
	}

	return SetClusterID(ctx, client, namespace, proposed)
}
